package judge

import (
	"fmt"
	"strings"
)

// Language describes one Judge0 language configuration: the numeric id the
// service understands plus display metadata for clients.
type Language struct {
	Key     string   `json:"key"`     // canonical lowercase identifier, unique
	ID      int      `json:"id"`      // Judge0 language_id
	Name    string   `json:"name"`    // human-readable name with version
	Editor  string   `json:"editor"`  // editor syntax-highlight hint
	Aliases []string `json:"aliases"` // extra lowercase lookup names
}

// builtinLanguages is the supported subset of the Judge0 CE catalog. The ids
// must match the target deployment's /languages listing.
var builtinLanguages = []Language{
	{Key: "python", ID: 71, Name: "Python (3.8.1)", Editor: "python", Aliases: []string{"py", "python3"}},
	{Key: "javascript", ID: 63, Name: "JavaScript (Node.js 12.14)", Editor: "javascript", Aliases: []string{"js", "node"}},
	{Key: "typescript", ID: 74, Name: "TypeScript (3.7.4)", Editor: "typescript", Aliases: []string{"ts"}},
	{Key: "c", ID: 50, Name: "C (GCC 9.2.0)", Editor: "c"},
	{Key: "cpp", ID: 54, Name: "C++ (GCC 9.2.0)", Editor: "cpp", Aliases: []string{"c++"}},
	{Key: "java", ID: 62, Name: "Java (OpenJDK 13)", Editor: "java"},
	{Key: "csharp", ID: 51, Name: "C# (Mono 6.6)", Editor: "csharp", Aliases: []string{"c#", "cs"}},
	{Key: "go", ID: 60, Name: "Go (1.13.5)", Editor: "go", Aliases: []string{"golang"}},
	{Key: "rust", ID: 73, Name: "Rust (1.40.0)", Editor: "rust"},
	{Key: "ruby", ID: 72, Name: "Ruby (2.7.0)", Editor: "ruby"},
	{Key: "php", ID: 68, Name: "PHP (7.4.1)", Editor: "php"},
	{Key: "swift", ID: 83, Name: "Swift (5.2.3)", Editor: "swift"},
	{Key: "kotlin", ID: 78, Name: "Kotlin (1.3.70)", Editor: "kotlin"},
	{Key: "sql", ID: 82, Name: "SQL (SQLite 3.27)", Editor: "sql", Aliases: []string{"sqlite"}},
	{Key: "bash", ID: 46, Name: "Bash (5.0.0)", Editor: "shell", Aliases: []string{"sh", "shell"}},
}

const defaultEditor = "plaintext"

// Registry resolves free-text language names to Language definitions.
// Read-only after construction, safe for any number of concurrent readers.
type Registry struct {
	ordered []Language
	byAlias map[string]Language
}

// NewRegistry builds the alias index over defs. Every key and every alias
// maps to its owning definition; a collision between definitions is a
// construction error.
func NewRegistry(defs []Language) (*Registry, error) {
	r := &Registry{byAlias: make(map[string]Language)}
	for _, def := range defs {
		if def.Editor == "" {
			def.Editor = defaultEditor
		}
		for _, alias := range append([]string{def.Key}, def.Aliases...) {
			alias = strings.ToLower(alias)
			if prev, ok := r.byAlias[alias]; ok {
				return nil, fmt.Errorf("judge: alias %q claimed by both %q and %q", alias, prev.Key, def.Key)
			}
			r.byAlias[alias] = def
		}
		r.ordered = append(r.ordered, def)
	}
	return r, nil
}

var builtinRegistry = func() *Registry {
	r, err := NewRegistry(builtinLanguages)
	if err != nil {
		panic(err)
	}
	return r
}()

// DefaultRegistry returns the registry built from the builtin language table.
func DefaultRegistry() *Registry { return builtinRegistry }

// Resolve finds the definition for a language name. Matching is
// case-insensitive over keys and aliases, with surrounding whitespace
// ignored.
func (r *Registry) Resolve(name string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key != "" {
		if def, ok := r.byAlias[key]; ok {
			return def, nil
		}
	}
	return Language{}, &ErrUnsupportedLanguage{Language: name}
}

// All returns every definition in registration order. The slice is a copy;
// callers may reorder it freely.
func (r *Registry) All() []Language {
	out := make([]Language, len(r.ordered))
	copy(out, r.ordered)
	return out
}
