package models

import (
	"fmt"

	"github.com/stridefoot/footwear-erp-api/errs"
)

// WorkflowPatch carries the optional workflow changes applied to an order.
// Nil fields are left untouched.
type WorkflowPatch struct {
	Stage        *ProductionStage
	Status       *OrderStatus
	Progress     *int
	AssignedTeam *string
}

// IsEmpty reports whether the patch changes nothing
func (p WorkflowPatch) IsEmpty() bool {
	return p.Stage == nil && p.Status == nil && p.Progress == nil && p.AssignedTeam == nil
}

// ApplyWorkflow validates and applies a patch to the order.
//
// Completed is a terminal stage: entering it forces status completed and
// progress 100, and an order in it cannot leave it or take another status.
// The order is left unchanged when an error is returned.
func (o *Order) ApplyWorkflow(p WorkflowPatch) error {
	next := *o

	if p.Stage != nil {
		if !p.Stage.Valid() {
			return errs.NewValidationError("current_stage", fmt.Sprintf("unknown production stage %q", *p.Stage))
		}
		if o.CurrentStage == StageCompleted && *p.Stage != StageCompleted {
			return errs.NewValidationError("current_stage", "a completed order cannot return to an earlier stage")
		}
		next.CurrentStage = *p.Stage
	}

	if p.Status != nil {
		if !p.Status.Valid() {
			return errs.NewValidationError("status", fmt.Sprintf("unknown order status %q", *p.Status))
		}
		next.Status = *p.Status
	}

	if p.Progress != nil {
		if *p.Progress < 0 || *p.Progress > MaxProgress {
			return errs.NewValidationError("progress", "progress must be between 0 and 100")
		}
		next.Progress = *p.Progress
	}

	if p.AssignedTeam != nil {
		next.AssignedTeam = *p.AssignedTeam
	}

	if next.CurrentStage == StageCompleted {
		if p.Status != nil && *p.Status != StatusCompleted {
			return errs.NewValidationError("status", "an order in the completed stage must have status completed")
		}
		next.Status = StatusCompleted
		next.Progress = MaxProgress
	}

	*o = next
	return nil
}
