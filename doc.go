// Package codelab is the backend core of a code-learning service: it runs
// untrusted student code through a remote Judge0 deployment and asks an LLM
// to produce curricula, lessons, and code reviews.
//
// The root package defines the contracts shared across the module:
//
//   - [Provider]: the LLM backend behind the tutoring prompts
//   - [ErrLLM], [ErrHTTP]: typed errors returned by provider implementations
//
// The Judge0 protocol client lives in the judge package. LLM provider
// implementations live under provider/ and are selected by configuration via
// provider/resolve. The tutor package turns topics, concepts, and code into
// prompts; observer adds OpenTelemetry instrumentation around both the
// execution client and the provider.
//
// # Quick start
//
//	client := judge.New("https://judge0-ce.p.rapidapi.com",
//		judge.WithRapidAPIKey(key, ""),
//	)
//	result, err := client.Execute(ctx, judge.ExecRequest{
//		Language:   "python",
//		SourceCode: `print("hello")`,
//	})
package codelab
