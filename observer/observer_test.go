package observer

import (
	"context"
	"errors"
	"testing"

	codelab "github.com/arvyn/codelab"
	"github.com/arvyn/codelab/judge"
)

// mockExecutor for observer tests.
type mockExecutor struct {
	res   *judge.ExecutionResult
	err   error
	calls int
}

func (m *mockExecutor) Execute(_ context.Context, _ judge.ExecRequest) (*judge.ExecutionResult, error) {
	m.calls++
	return m.res, m.err
}

// mockProvider for observer tests.
type mockProvider struct {
	answer string
	err    error
}

func (m *mockProvider) Name() string { return "mock" }
func (m *mockProvider) Ask(_ context.Context, _ string) (string, error) {
	return m.answer, m.err
}

var _ codelab.Provider = (*mockProvider)(nil)

// testInstruments creates Instruments against the global OTEL providers,
// which are no-ops by default. Safe for testing delegation behavior without
// a real backend.
func testInstruments(t *testing.T) *Instruments {
	t.Helper()
	inst, err := newInstruments()
	if err != nil {
		t.Fatalf("newInstruments: %v", err)
	}
	return inst
}

func TestObservedExecutorDelegates(t *testing.T) {
	want := &judge.ExecutionResult{Token: "tok", Status: judge.Status{ID: 3, Description: "Accepted"}, Stdout: "hi"}
	inner := &mockExecutor{res: want}

	wrapped := WrapExecutor(inner, testInstruments(t))
	got, err := wrapped.Execute(context.Background(), judge.ExecRequest{Language: "python", SourceCode: "1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got != want {
		t.Error("result not passed through")
	}
	if inner.calls != 1 {
		t.Errorf("inner calls: got %d, want 1", inner.calls)
	}
}

func TestObservedExecutorPropagatesError(t *testing.T) {
	wantErr := &judge.ErrTimeout{Token: "tok"}
	wrapped := WrapExecutor(&mockExecutor{err: wantErr}, testInstruments(t))

	_, err := wrapped.Execute(context.Background(), judge.ExecRequest{Language: "go", SourceCode: "1"})
	var timeout *judge.ErrTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("error kind lost through wrapper: %v", err)
	}
}

func TestObservedProviderDelegates(t *testing.T) {
	wrapped := WrapProvider(&mockProvider{answer: "42"}, testInstruments(t))

	got, err := wrapped.Ask(context.Background(), "meaning of life?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "42" {
		t.Errorf("answer: got %q", got)
	}
	if wrapped.Name() != "mock" {
		t.Errorf("name: got %q", wrapped.Name())
	}
}
