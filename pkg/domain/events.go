package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventEvaluationStart EventType = "evaluation_start"
	EventCaseDecided     EventType = "case_decided"
	EventEvaluationEnd   EventType = "evaluation_end"
	EventEmptiness       EventType = "emptiness_checked"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
	Variant   Variant   `json:"variant"`
}

// EvaluationEvent describes a batch evaluation as a whole.
type EvaluationEvent struct {
	EventBase
	Cases    int           `json:"cases"`
	Accepted int           `json:"accepted,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// CaseEvent describes the verdict for a single input word.
type CaseEvent struct {
	EventBase
	Index    int  `json:"index"`
	Length   int  `json:"length"`
	Accepted bool `json:"accepted"`
	Explored int  `json:"explored"`
}

// EmptinessEvent describes the outcome of an emptiness check.
type EmptinessEvent struct {
	EventBase
	Empty    bool          `json:"empty"`
	Visited  int           `json:"visited"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnEvaluationStart  func(context.Context, *EvaluationEvent)
	OnCaseDecided      func(context.Context, *CaseEvent)
	OnEvaluationEnd    func(context.Context, *EvaluationEvent)
	OnEmptinessChecked func(context.Context, *EmptinessEvent)
}
