package judge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Executor runs source code on the remote service and waits for the outcome.
// *Client implements it; observer.WrapExecutor decorates it.
type Executor interface {
	Execute(ctx context.Context, req ExecRequest) (*ExecutionResult, error)
}

// ExecRequest describes one execution of untrusted source code.
type ExecRequest struct {
	Language             string  // free-text name, resolved against the registry
	SourceCode           string  // must not be blank
	Stdin                string  // defaults to empty input
	CommandLineArguments string  // optional
	ExpectedOutput       *string // optional; enables Judge0's output check
}

// Status is Judge0's submission status vocabulary. Ids 1 and 2 mean the
// submission has not finished; every other id is terminal and passed
// through verbatim, since the full vocabulary belongs to the deployment.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

const (
	statusInQueue    = 1
	statusProcessing = 2
)

// Pending reports whether the submission is still queued or processing.
func (s Status) Pending() bool {
	return s.ID == statusInQueue || s.ID == statusProcessing
}

// ExecutionResult is the normalized outcome of one submission. Textual
// fields default to "" when Judge0 omits them; timing and exit fields stay
// nil when absent.
type ExecutionResult struct {
	Token    string   `json:"token"`
	Language Language `json:"language"`
	Status   Status   `json:"status"`

	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Message       string `json:"message"`

	TimeSeconds *float64 `json:"time"`
	MemoryKiB   *float64 `json:"memory"`
	ExitCode    *int     `json:"exit_code"`
}

// Execute submits source code and polls until the submission leaves the
// pending state or the configured maximum wait elapses. Validation failures
// never reach the network.
func (c *Client) Execute(ctx context.Context, req ExecRequest) (*ExecutionResult, error) {
	if strings.TrimSpace(req.SourceCode) == "" {
		return nil, &ErrInvalidInput{Reason: "source code must not be blank"}
	}
	lang, err := c.languages.Resolve(req.Language)
	if err != nil {
		return nil, err
	}

	payload := createSubmissionRequest{
		LanguageID:           lang.ID,
		SourceCode:           req.SourceCode,
		Stdin:                req.Stdin,
		CommandLineArguments: req.CommandLineArguments,
		ExpectedOutput:       req.ExpectedOutput,
	}
	query := url.Values{"base64_encoded": {"false"}, "wait": {"false"}}

	var created createSubmissionResponse
	if err := c.do(ctx, http.MethodPost, "/submissions", query, payload, &created); err != nil {
		return nil, err
	}
	if created.Token == "" {
		return nil, &ErrRemote{Message: "judge0 did not return a submission token"}
	}
	c.logger.Debug("submission created", "token", created.Token, "language", lang.Key)

	final, err := c.waitForTerminal(ctx, created.Token)
	if err != nil {
		return nil, err
	}
	return assembleResult(created.Token, lang, final), nil
}

// waitForTerminal polls the submission until its status leaves the pending
// set. The deadline bounds the wait locally, regardless of how long the
// remote side queues the submission.
func (c *Client) waitForTerminal(ctx context.Context, token string) (*submissionStatus, error) {
	deadline := time.Now().Add(c.cfg.maxWait)
	query := url.Values{"base64_encoded": {"false"}}

	for {
		var st submissionStatus
		if err := c.do(ctx, http.MethodGet, "/submissions/"+token, query, nil, &st); err != nil {
			return nil, err
		}
		if !st.Status.Pending() {
			return &st, nil
		}
		if !time.Now().Before(deadline) {
			return nil, &ErrTimeout{Token: token, Waited: c.cfg.maxWait}
		}
		if err := sleep(ctx, c.cfg.pollInterval); err != nil {
			return nil, err
		}
	}
}

// sleep waits for d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func assembleResult(token string, lang Language, st *submissionStatus) *ExecutionResult {
	res := &ExecutionResult{
		Token:         token,
		Language:      lang,
		Status:        st.Status,
		Stdout:        orEmpty(st.Stdout),
		Stderr:        orEmpty(st.Stderr),
		CompileOutput: orEmpty(st.CompileOutput),
		Message:       orEmpty(st.Message),
		MemoryKiB:     st.Memory,
		ExitCode:      st.ExitCode,
	}
	if st.Time != nil {
		v := float64(*st.Time)
		res.TimeSeconds = &v
	}
	return res
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// --- wire types ---

type createSubmissionRequest struct {
	LanguageID           int     `json:"language_id"`
	SourceCode           string  `json:"source_code"`
	Stdin                string  `json:"stdin"`
	CommandLineArguments string  `json:"command_line_arguments,omitempty"`
	ExpectedOutput       *string `json:"expected_output,omitempty"`
}

type createSubmissionResponse struct {
	Token string `json:"token"`
}

// submissionStatus mirrors GET /submissions/{token}. Optional fields stay
// pointers so absent and empty remain distinguishable during assembly.
type submissionStatus struct {
	Status        Status   `json:"status"`
	Stdout        *string  `json:"stdout"`
	Stderr        *string  `json:"stderr"`
	CompileOutput *string  `json:"compile_output"`
	Message       *string  `json:"message"`
	Time          *seconds `json:"time"`
	Memory        *float64 `json:"memory"`
	ExitCode      *int     `json:"exit_code"`
}

// seconds decodes Judge0's runtime field, which arrives as either a JSON
// number or a numeric string ("0.003").
type seconds float64

func (s *seconds) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid time value %s", data)
	}
	*s = seconds(v)
	return nil
}
