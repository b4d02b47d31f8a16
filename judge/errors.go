package judge

import (
	"fmt"
	"time"
)

// ErrInvalidInput reports a request rejected before any network call.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string { return "judge: " + e.Reason }

// ErrUnsupportedLanguage reports a language name with no registry match.
type ErrUnsupportedLanguage struct {
	Language string
}

func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("judge: unsupported language %q", e.Language)
}

// ErrRemote reports a non-2xx response from Judge0, or a 2xx response
// missing a required field such as the submission token. Status is 0 for
// protocol violations found inside a successful response.
type ErrRemote struct {
	Status  int
	Message string
}

func (e *ErrRemote) Error() string {
	if e.Status == 0 {
		return "judge: " + e.Message
	}
	return fmt.Sprintf("judge: http %d: %s", e.Status, e.Message)
}

// ErrTransport reports a connection-level failure: DNS, refused connection,
// or a TLS handshake error. CertVerification marks the certificate
// verification variant, the most common operator misconfiguration, and its
// message names both remediation knobs.
type ErrTransport struct {
	Err              error
	CertVerification bool
}

func (e *ErrTransport) Error() string {
	if e.CertVerification {
		return fmt.Sprintf("judge: certificate verification failed: %v; "+
			"configure a CA bundle (WithCABundle / JUDGE0_CA_BUNDLE_PATH) to trust "+
			"your certificate authority, or disable verification "+
			"(WithInsecureSkipVerify / JUDGE0_DISABLE_SSL_VERIFY=1) for local testing", e.Err)
	}
	return fmt.Sprintf("judge: connection error: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrTimeout reports a submission still pending when the wait deadline
// elapsed.
type ErrTimeout struct {
	Token  string
	Waited time.Duration
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("judge: timed out after %s waiting for submission %s", e.Waited, e.Token)
}
