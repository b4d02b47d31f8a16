package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	codelab "github.com/arvyn/codelab"
)

// mockAPI simulates /models and /chat/completions.
func mockAPI(t *testing.T, models []string, reply func(req chatRequest) string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var probes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			probes.Add(1)
			var listing modelList
			for _, id := range models {
				listing.Data = append(listing.Data, struct {
					ID string `json:"id"`
				}{ID: id})
			}
			json.NewEncoder(w).Encode(listing)
		case "/chat/completions":
			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("mock api: decode: %v", err)
				http.Error(w, "bad request", 400)
				return
			}
			fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, reply(req))
		default:
			http.NotFound(w, r)
		}
	}))
	return srv, &probes
}

func TestAskReturnsContent(t *testing.T) {
	srv, _ := mockAPI(t, []string{"gpt-4o"}, func(req chatRequest) string {
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		return "variables hold values"
	})
	defer srv.Close()

	p := New("key", srv.URL)
	got, err := p.Ask(context.Background(), "Explain variables")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "variables hold values" {
		t.Errorf("answer: got %q", got)
	}
}

func TestModelProbePrefersListedModel(t *testing.T) {
	var usedModel string
	srv, probes := mockAPI(t, []string{"gpt-3.5-turbo", "gpt-4o", "text-embedding-3-small"}, func(req chatRequest) string {
		usedModel = req.Model
		return "ok"
	})
	defer srv.Close()

	p := New("key", srv.URL)
	for range 3 {
		if _, err := p.Ask(context.Background(), "hi"); err != nil {
			t.Fatalf("ask: %v", err)
		}
	}
	if usedModel != "gpt-4o" {
		t.Errorf("model: got %q, want gpt-4o", usedModel)
	}
	if got := probes.Load(); got != 1 {
		t.Errorf("probe calls: got %d, want 1 (probe must run once)", got)
	}
}

func TestModelProbeFallsBackOnAnyGPT(t *testing.T) {
	var usedModel string
	srv, _ := mockAPI(t, []string{"llama3", "my-gpt-clone"}, func(req chatRequest) string {
		usedModel = req.Model
		return "ok"
	})
	defer srv.Close()

	p := New("key", srv.URL)
	if _, err := p.Ask(context.Background(), "hi"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if usedModel != "my-gpt-clone" {
		t.Errorf("model: got %q, want my-gpt-clone", usedModel)
	}
}

func TestWithModelSkipsProbe(t *testing.T) {
	var usedModel string
	srv, probes := mockAPI(t, []string{"gpt-4o"}, func(req chatRequest) string {
		usedModel = req.Model
		return "ok"
	})
	defer srv.Close()

	p := New("key", srv.URL, WithModel("gpt-4"))
	if _, err := p.Ask(context.Background(), "hi"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if usedModel != "gpt-4" {
		t.Errorf("model: got %q, want gpt-4", usedModel)
	}
	if got := probes.Load(); got != 0 {
		t.Errorf("probe calls: got %d, want 0", got)
	}
}

func TestAskHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := New("key", srv.URL)
	_, err := p.Ask(context.Background(), "hi")

	var httpErr *codelab.ErrHTTP
	if !errors.As(err, &httpErr) {
		t.Fatalf("got %v, want ErrHTTP", err)
	}
	if httpErr.Status != http.StatusTooManyRequests {
		t.Errorf("status: got %d, want 429", httpErr.Status)
	}
}

func TestAskEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	p := New("key", srv.URL, WithModel("gpt-4"))
	_, err := p.Ask(context.Background(), "hi")

	var llmErr *codelab.ErrLLM
	if !errors.As(err, &llmErr) {
		t.Fatalf("got %v, want ErrLLM", err)
	}
}
