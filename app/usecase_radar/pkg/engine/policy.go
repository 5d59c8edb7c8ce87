package engine

import (
	"fmt"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

// Action what the driver does with a failed call
type Action int

const (
	// Escalate aborts the run with the failure as error.
	Escalate Action = iota
	// Substitute replaces the call output with a fixed one-element list.
	Substitute
	// SubstituteMessage replaces the call output with "Error: {message}".
	SubstituteMessage
)

// Policy handling of one (call, failure kind) pair
type Policy struct {
	Action   Action
	Sentinel string
}

// Sentinel texts shown in place of a failed call's output.
const (
	SentinelResearch    = "Failed to fetch data from the web."
	SentinelHuggingFace = "Failed to fetch Hugging Face data."
	SentinelKaggle      = "Kaggle API request failed."
)

// Policies failure handling per call. Pairs that are not listed escalate.
var Policies = map[model.Call]map[model.FailureKind]Policy{
	model.CallResearch: {
		model.FailureStatus: {Action: Substitute, Sentinel: SentinelResearch},
	},
	model.CallHuggingFace: {
		model.FailureStatus: {Action: Substitute, Sentinel: SentinelHuggingFace},
	},
	model.CallKaggle: {
		model.FailureStatus:    {Action: Substitute, Sentinel: SentinelKaggle},
		model.FailureProcess:   {Action: Substitute, Sentinel: SentinelKaggle},
		model.FailureTransport: {Action: SubstituteMessage},
		model.FailureDecode:    {Action: SubstituteMessage},
		model.FailureIO:        {Action: SubstituteMessage},
	},
}

// PolicyFor looks up the handling of f.
func PolicyFor(f *model.Failure) Policy {
	if byKind, ok := Policies[f.Call]; ok {
		if p, ok := byKind[f.Kind]; ok {
			return p
		}
	}
	return Policy{Action: Escalate}
}

// Resolve applies the policy table to a call result: the payload on success,
// a sentinel list for recoverable failures, or an error.
func Resolve(res model.Result[[]string]) ([]string, error) {
	if res.OK() {
		return res.Value, nil
	}

	f := res.Failure
	p := PolicyFor(f)
	switch p.Action {
	case Substitute:
		return []string{p.Sentinel}, nil
	case SubstituteMessage:
		msg := f.Error()
		if f.Err != nil {
			msg = f.Err.Error()
		}
		return []string{"Error: " + msg}, nil
	default:
		return nil, fmt.Errorf("%s failed: %w", f.Call, f)
	}
}
