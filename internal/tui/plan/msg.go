package plan

import "planforge/internal/usecase"

// Msg is the sealed interface for all plan TUI messages.
//
//sumtype:decl
type Msg interface {
	sealed()
}

// MsgPlanLoaded is sent when the dry-run planner finishes.
//
//nolint:govet // Logical field order preferred
type MsgPlanLoaded struct {
	Actions []usecase.PlannedAction
	Err     error
}

func (MsgPlanLoaded) sealed() {}
