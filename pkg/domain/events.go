package domain

import (
	"context"
	"time"
)

// Stage names a step of the learning pipeline.
type Stage string

const (
	StageBuild      Stage = "build"
	StageGenerate   Stage = "generate"
	StageTest       Stage = "test"
	StageInduce     Stage = "induce"
	StageSynthesize Stage = "synthesize"
)

// StageEvent is emitted when a stage finishes for one type.
type StageEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Stage     Stage         `json:"stage"`
	Type      string        `json:"type,omitempty"`
	Duration  time.Duration `json:"duration"`
	// States is the machine size after the stage; Hypotheses the live hypothesis count.
	States     int `json:"states"`
	Hypotheses int `json:"hypotheses"`
}

// UnifyEvent is emitted when two states merge.
type UnifyEvent struct {
	Type   string `json:"type"`
	Kept   int    `json:"kept"`
	Merged int    `json:"merged"`
	States int    `json:"states"`
}

// FalsifyEvent is emitted when a trace contradicts a hypothesis.
type FalsifyEvent struct {
	Type   string `json:"type"`
	State  int    `json:"state"`
	From   Tag    `json:"from"`
	To     Tag    `json:"to"`
	Action Action `json:"action"`
}

// Hooks are optional observer callbacks. The learner never depends on them
// for correctness; nil callbacks are skipped.
type Hooks struct {
	OnStage   func(context.Context, *StageEvent)
	OnUnify   func(context.Context, *UnifyEvent)
	OnFalsify func(context.Context, *FalsifyEvent)
}

// Merge chains two hook sets so both observers are called.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStage:   chain(h.OnStage, other.OnStage),
		OnUnify:   chain(h.OnUnify, other.OnUnify),
		OnFalsify: chain(h.OnFalsify, other.OnFalsify),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
