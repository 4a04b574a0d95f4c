package approval

import (
	"time"

	approvalerrors "tourhr/internal/approval/errors"
)

// Approver is a resolved step approver.
type Approver struct {
	ID   string
	Name string
}

// ActionInput is one approver action fed into the transition function.
type ActionInput struct {
	ActorID    string
	Type       ActionType
	Comment    string
	DelegateTo Approver
}

type Decision int

const (
	// DecisionAdvanced moved the request to a later step.
	DecisionAdvanced Decision = iota
	// DecisionApproved passed the final step.
	DecisionApproved
	// DecisionRejected closed the request at the acted step.
	DecisionRejected
	// DecisionDelegated re-targeted the current step without advancing.
	DecisionDelegated
)

// StepOutcome is the result of one transition. Steps is a fresh copy;
// the input list is never mutated, so a failed persistence attempt can
// simply be retried from the reloaded row.
type StepOutcome struct {
	Decision          Decision
	Steps             StepSnapshotList
	CurrentStep       int
	CurrentApproverID string
	Skipped           []int
}

// NewSnapshot freezes a chain step for one request. The skip condition
// is evaluated here, against facts as they are at submission, so later
// advancement needs no access to the entity.
func NewSnapshot(step ChainStep, approver Approver, facts EntityFacts) StepSnapshot {
	snap := StepSnapshot{
		Order:                step.StepOrder,
		Name:                 step.Name,
		ApproverID:           approver.ID,
		ApproverName:         approver.Name,
		Status:               StepPending,
		Skip:                 step.CanSkip && step.SkipCondition.Evaluate(facts),
		RequiresComment:      step.RequiresComment,
		AutoApproveAfterDays: step.AutoApproveAfterDays,
		EscalateAfterDays:    step.EscalateAfterDays,
	}
	if step.EscalateTo != nil {
		snap.EscalateTo = step.EscalateTo.String()
	}
	return snap
}

// ActivateFrom advances past every pre-marked skip step starting at
// index from, recording SKIPPED on each. It lands on the first step
// that needs a human, or reports DecisionApproved when none is left.
func ActivateFrom(steps StepSnapshotList, from int, now time.Time) StepOutcome {
	out := StepOutcome{Steps: steps.Clone(), CurrentStep: from}
	for out.CurrentStep < len(out.Steps) {
		cur := &out.Steps[out.CurrentStep]
		if !cur.Skip {
			out.Decision = DecisionAdvanced
			out.CurrentApproverID = cur.ApproverID
			return out
		}
		cur.Status = StepSkipped
		cur.ActedBy = SystemActor
		at := now
		cur.ActedAt = &at
		out.Skipped = append(out.Skipped, cur.Order)
		out.CurrentStep++
	}
	out.Decision = DecisionApproved
	return out
}

// Transition applies one action at the current step and returns the new
// step state. It enforces approver authorization, comment requirements
// and terminal-state protection, and is the single advance rule for
// every approval-gated entity type.
func Transition(status RequestStatus, steps StepSnapshotList, currentStep int, in ActionInput, now time.Time) (StepOutcome, error) {
	if status.Terminal() {
		return StepOutcome{}, approvalerrors.ErrRequestClosed
	}
	if currentStep < 0 || currentStep >= len(steps) {
		return StepOutcome{}, approvalerrors.ErrRequestClosed
	}

	cur := steps[currentStep]
	if in.ActorID != cur.ApproverID && in.ActorID != SystemActor {
		return StepOutcome{}, approvalerrors.ErrNotCurrentApprover
	}

	switch in.Type {
	case ActionApproved:
		if cur.RequiresComment && in.Comment == "" {
			return StepOutcome{}, approvalerrors.ErrCommentRequired
		}
		next := steps.Clone()
		markStep(&next[currentStep], StepApproved, in, now)
		out := ActivateFrom(next, currentStep+1, now)
		return out, nil

	case ActionRejected, ActionReturned:
		// RETURNED closes the run like a rejection but keeps its own
		// audit action type. Step indices never rewind, so a returned
		// entity comes back as a fresh request.
		next := steps.Clone()
		markStep(&next[currentStep], StepRejected, in, now)
		return StepOutcome{
			Decision:    DecisionRejected,
			Steps:       next,
			CurrentStep: currentStep,
		}, nil

	case ActionDelegated:
		if in.DelegateTo.ID == "" {
			return StepOutcome{}, approvalerrors.ErrDelegateRequired
		}
		next := steps.Clone()
		next[currentStep].ApproverID = in.DelegateTo.ID
		next[currentStep].ApproverName = in.DelegateTo.Name
		return StepOutcome{
			Decision:          DecisionDelegated,
			Steps:             next,
			CurrentStep:       currentStep,
			CurrentApproverID: in.DelegateTo.ID,
		}, nil

	default:
		return StepOutcome{}, approvalerrors.ErrInvalidActionType
	}
}

// Escalate re-targets the current step at its escalation target. The
// caller keeps the auto-approve deadline untouched: escalation never
// restarts the clock that was already running against the step.
func Escalate(steps StepSnapshotList, currentStep int, now time.Time) (StepOutcome, error) {
	if currentStep < 0 || currentStep >= len(steps) {
		return StepOutcome{}, approvalerrors.ErrRequestClosed
	}
	cur := steps[currentStep]
	if cur.EscalateTo == "" {
		return StepOutcome{}, approvalerrors.ErrApproverUnresolved
	}
	next := steps.Clone()
	next[currentStep].ApproverID = cur.EscalateTo
	next[currentStep].ApproverName = cur.EscalateToName
	return StepOutcome{
		Decision:          DecisionDelegated,
		Steps:             next,
		CurrentStep:       currentStep,
		CurrentApproverID: cur.EscalateTo,
	}, nil
}

// StepDeadlines derives the denormalized timer columns for the step at
// index idx, activated at the given instant.
func StepDeadlines(steps StepSnapshotList, idx int, activatedAt time.Time) (autoApproveAt, escalateAt *time.Time) {
	if idx < 0 || idx >= len(steps) {
		return nil, nil
	}
	cur := steps[idx]
	if cur.AutoApproveAfterDays != nil {
		t := activatedAt.AddDate(0, 0, *cur.AutoApproveAfterDays)
		autoApproveAt = &t
	}
	if cur.EscalateAfterDays != nil && cur.EscalateTo != "" {
		t := activatedAt.AddDate(0, 0, *cur.EscalateAfterDays)
		escalateAt = &t
	}
	return autoApproveAt, escalateAt
}

func markStep(s *StepSnapshot, status string, in ActionInput, now time.Time) {
	s.Status = status
	s.Comment = in.Comment
	s.ActedBy = in.ActorID
	at := now
	s.ActedAt = &at
}
