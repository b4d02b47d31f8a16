// Package tutor builds the LLM prompts behind the curriculum, lesson, and
// feedback features and renders the answers for display.
package tutor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	codelab "github.com/arvyn/codelab"
)

// Defaults applied when a caller sends an empty field, matching the API's
// documented behavior.
const (
	DefaultTopic       = "Python basics"
	DefaultConcept     = "variables in Python"
	DefaultReviewTopic = "Python"
)

// Answer pairs the model's markdown with its rendered HTML.
type Answer struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// Tutor turns topics, concepts, and code into prompts for a Provider.
// Safe for concurrent use.
type Tutor struct {
	provider codelab.Provider
	md       goldmark.Markdown
}

// New creates a Tutor on top of any Provider implementation.
func New(p codelab.Provider) *Tutor {
	return &Tutor{
		provider: p,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Curriculum asks for a 3-level curriculum on topic. The answer is returned
// raw because models (and the mock provider) often reply with structured
// JSON here rather than prose.
func (t *Tutor) Curriculum(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	prompt := fmt.Sprintf("Design a simple 3-level learning curriculum for %s with beginner, intermediate, and advanced lessons.", topic)
	return t.provider.Ask(ctx, prompt)
}

// Lesson asks for an explanation of concept with an example and an exercise.
func (t *Tutor) Lesson(ctx context.Context, concept string) (Answer, error) {
	if strings.TrimSpace(concept) == "" {
		concept = DefaultConcept
	}
	prompt := fmt.Sprintf("Explain %s in simple terms with one example and one short practice exercise.", concept)
	text, err := t.provider.Ask(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	return t.render(text), nil
}

// Feedback asks for a review of code in the given topic's language.
func (t *Tutor) Feedback(ctx context.Context, topic, code string) (Answer, error) {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultReviewTopic
	}
	prompt := fmt.Sprintf("Review this %s code:\n%s\nCheck correctness, give feedback, and suggest improvements.", topic, code)
	text, err := t.provider.Ask(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	return t.render(text), nil
}

// render converts the model's markdown to HTML. A conversion failure is not
// fatal: the markdown is still the answer, HTML is a convenience.
func (t *Tutor) render(text string) Answer {
	var buf bytes.Buffer
	if err := t.md.Convert([]byte(text), &buf); err != nil {
		return Answer{Markdown: text}
	}
	return Answer{Markdown: text, HTML: buf.String()}
}
