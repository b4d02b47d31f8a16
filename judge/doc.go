// Package judge is a client for the Judge0 code execution API.
//
// A [Client] resolves a free-text language name against its [Registry],
// creates a submission, and polls the submission's status until Judge0
// reports a terminal state or a locally enforced deadline elapses. The
// polling loop is the deliberate choice over Judge0's synchronous wait mode:
// the caller gets a hard upper bound on latency no matter how long the
// remote queue is, and no connection is held open across queueing time.
//
// Failures surface as distinct, inspectable error types: [ErrInvalidInput],
// [ErrUnsupportedLanguage], [ErrTransport], [ErrRemote], and [ErrTimeout].
// Nothing is retried except the still-pending status poll, which is bounded
// by the deadline rather than an attempt count.
package judge
