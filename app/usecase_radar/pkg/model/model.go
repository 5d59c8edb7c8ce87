package model

import (
	"fmt"
	"time"
)

// Call identifies one external call site of the pipeline.
type Call string

const (
	CallResearch    Call = "research"
	CallGeneration  Call = "generation"
	CallHuggingFace Call = "huggingface"
	CallKaggle      Call = "kaggle"
	CallMarkdown    Call = "markdown"
)

// FailureKind classifies why an external call did not produce a payload.
type FailureKind int

const (
	// FailureStatus the remote answered with a non-success HTTP status.
	FailureStatus FailureKind = iota + 1
	// FailureProcess a child process exited non-zero.
	FailureProcess
	// FailureTransport the request or process could not be carried out.
	FailureTransport
	// FailureDecode the response arrived but could not be parsed.
	FailureDecode
	// FailureIO a local file operation failed.
	FailureIO
)

func (k FailureKind) String() string {
	switch k {
	case FailureStatus:
		return "status"
	case FailureProcess:
		return "process"
	case FailureTransport:
		return "transport"
	case FailureDecode:
		return "decode"
	case FailureIO:
		return "io"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure typed failure reason of one external call
type Failure struct {
	Call       Call
	Kind       FailureKind
	StatusCode int // FailureStatus
	ExitCode   int // FailureProcess
	Err        error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureStatus:
		return fmt.Sprintf("%s: unexpected status %d", f.Call, f.StatusCode)
	case FailureProcess:
		if f.Err != nil {
			return fmt.Sprintf("%s: process exited with code %d: %v", f.Call, f.ExitCode, f.Err)
		}
		return fmt.Sprintf("%s: process exited with code %d", f.Call, f.ExitCode)
	default:
		if f.Err != nil {
			return fmt.Sprintf("%s %s failure: %v", f.Call, f.Kind, f.Err)
		}
		return fmt.Sprintf("%s %s failure", f.Call, f.Kind)
	}
}

func (f *Failure) Unwrap() error { return f.Err }

// Result success payload or typed failure of one external call
type Result[T any] struct {
	Value   T
	Failure *Failure
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.Failure == nil }

// Success wraps a payload.
func Success[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps a failure.
func Fail[T any](call Call, kind FailureKind, err error) Result[T] {
	return Result[T]{Failure: &Failure{Call: call, Kind: kind, Err: err}}
}

// FailStatus wraps a non-success HTTP status.
func FailStatus[T any](call Call, status int) Result[T] {
	return Result[T]{Failure: &Failure{Call: call, Kind: FailureStatus, StatusCode: status}}
}

// FailProcess wraps a non-zero process exit.
func FailProcess[T any](call Call, exitCode int, err error) Result[T] {
	return Result[T]{Failure: &Failure{Call: call, Kind: FailureProcess, ExitCode: exitCode, Err: err}}
}

// Report output of one pipeline run
type Report struct {
	Industry string   `json:"industry"`
	UseCases []string `json:"use_cases"`
	Datasets []string `json:"datasets"`
	File     string   `json:"file"`
}

// RunRecord persisted history of a pipeline run
type RunRecord struct {
	ID        int64     `json:"id"`
	Industry  string    `json:"industry"`
	UseCases  []string  `json:"use_cases"`
	Datasets  []string  `json:"datasets"`
	File      string    `json:"file"`
	CreatedAt time.Time `json:"created_at"`
}
