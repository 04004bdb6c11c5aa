package harness

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/tessellated/extstore/internal/engine"
)

// TraceEvent records the observable output of one scenario step.
// Exactly one of Result, Changes, or Error is populated.
type TraceEvent struct {
	Op      string          `json:"op"`
	Result  json.RawMessage `json:"result,omitempty"`
	Changes json.RawMessage `json:"changes,omitempty"`
	Error   string          `json:"error,omitempty"` // quota reason
}

// Result holds a scenario execution's trace.
type Result struct {
	ExtensionID string
	Trace       []TraceEvent
}

// Run executes a scenario against the given record store.
//
// Quota rejections are expected scenario outcomes and land in the trace as
// their reason string; any other failure aborts the run with an error.
func Run(ctx context.Context, st engine.Store, sc *Scenario) (*Result, error) {
	extID := sc.ExtensionID
	if extID == "" {
		extID = uuid.NewString()
	}

	result := &Result{ExtensionID: extID}
	for i, step := range sc.Steps {
		event, err := runStep(ctx, st, extID, step)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: step %d (%s): %w", sc.Name, i, step.Op, err)
		}
		result.Trace = append(result.Trace, event)
	}
	return result, nil
}

func runStep(ctx context.Context, st engine.Store, extID string, step Step) (TraceEvent, error) {
	event := TraceEvent{Op: step.Op}

	switch step.Op {
	case "set":
		val, err := valueFromYAML(&step.Value)
		if err != nil {
			return event, err
		}
		changes, err := engine.Set(ctx, st, extID, val)
		if engine.IsQuotaError(err) {
			event.Error = string(engine.QuotaReasonOf(err))
			return event, nil
		}
		if err != nil {
			return event, err
		}
		return withChanges(event, changes)

	case "get":
		spec, err := valueFromYAML(&step.Keys)
		if err != nil {
			return event, err
		}
		obj, err := engine.Get(ctx, st, extID, spec)
		if err != nil {
			return event, err
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return event, err
		}
		event.Result = data
		return event, nil

	case "remove":
		spec, err := valueFromYAML(&step.Keys)
		if err != nil {
			return event, err
		}
		changes, err := engine.Remove(ctx, st, extID, spec)
		if err != nil {
			return event, err
		}
		return withChanges(event, changes)

	case "clear":
		changes, err := engine.Clear(ctx, st, extID)
		if err != nil {
			return event, err
		}
		return withChanges(event, changes)

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}
}

func withChanges(event TraceEvent, changes *engine.ChangeSet) (TraceEvent, error) {
	data, err := json.Marshal(changes)
	if err != nil {
		return event, err
	}
	event.Changes = data
	return event, nil
}
