package approval

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSweeper_EscalatesDueRequests(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	now := time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC)
	approverID := uuid.New()
	bossID := uuid.New()
	autoApproveAt := now.Add(24 * time.Hour)
	due := ApprovalRequest{
		ID:                uuid.New(),
		CompanyID:         uuid.New(),
		Status:            StatusInProgress,
		CurrentStep:       0,
		CurrentApproverID: &approverID,
		AutoApproveAt:     &autoApproveAt,
		Steps: StepSnapshotList{
			{Order: 1, ApproverID: approverID.String(), Status: StepPending, EscalateTo: bossID.String(), EscalateToName: "Beata Boss"},
		},
	}

	var saved *ApprovalRequest
	repo := &fakeRepo{}
	repo.findEscalationDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return []ApprovalRequest{due}, nil
	}
	repo.findAutoApproveDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return nil, nil
	}
	repo.appendActionFn = func(ctx context.Context, action *ApprovalAction) error {
		assert.Equal(t, ActionEscalated, action.Action)
		assert.Equal(t, SystemActor, action.ActorID)
		return nil
	}
	repo.updateRequestCASFn = func(ctx context.Context, req *ApprovalRequest, prevStatus RequestStatus, prevStep int, prevApprover *uuid.UUID) (bool, error) {
		saved = req
		assert.Equal(t, StatusInProgress, prevStatus)
		return true, nil
	}

	sweeper := NewSweeper(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	stats, err := sweeper.Sweep(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, SweepStats{Escalated: 1}, stats)

	assert.Equal(t, StatusEscalated, saved.Status)
	assert.Equal(t, bossID, *saved.CurrentApproverID)
	assert.Nil(t, saved.EscalateAt)
	// Escalation never restarts the auto-approve clock.
	assert.Equal(t, autoApproveAt, *saved.AutoApproveAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweeper_AutoApprovesFinalStep(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	now := time.Now().UTC()
	approverID := uuid.New()
	due := ApprovalRequest{
		ID:                uuid.New(),
		CompanyID:         uuid.New(),
		Status:            StatusPending,
		CurrentStep:       0,
		CurrentApproverID: &approverID,
		Steps: StepSnapshotList{
			{Order: 1, ApproverID: approverID.String(), Status: StepPending},
		},
	}

	var saved *ApprovalRequest
	var actions []ApprovalAction
	repo := &fakeRepo{}
	repo.findEscalationDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return nil, nil
	}
	repo.findAutoApproveDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return []ApprovalRequest{due}, nil
	}
	repo.appendActionFn = func(ctx context.Context, action *ApprovalAction) error {
		actions = append(actions, *action)
		return nil
	}
	repo.updateRequestCASFn = func(ctx context.Context, req *ApprovalRequest, prevStatus RequestStatus, prevStep int, prevApprover *uuid.UUID) (bool, error) {
		saved = req
		return true, nil
	}

	sweeper := NewSweeper(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	stats, err := sweeper.Sweep(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, SweepStats{AutoApproved: 1}, stats)

	assert.Equal(t, StatusApproved, saved.Status)
	assert.Nil(t, saved.CurrentApproverID)
	assert.NotNil(t, saved.CompletedAt)
	assert.Len(t, actions, 1)
	assert.Equal(t, SystemActor, actions[0].ActorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweeper_CASLoserIsSkippedNotFailed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	approverID := uuid.New()
	due := ApprovalRequest{
		ID:                uuid.New(),
		CompanyID:         uuid.New(),
		Status:            StatusPending,
		CurrentApproverID: &approverID,
		Steps: StepSnapshotList{
			{Order: 1, ApproverID: approverID.String(), Status: StepPending},
		},
	}

	repo := &fakeRepo{}
	repo.findEscalationDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return nil, nil
	}
	repo.findAutoApproveDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return []ApprovalRequest{due}, nil
	}
	repo.appendActionFn = func(ctx context.Context, action *ApprovalAction) error { return nil }
	repo.updateRequestCASFn = func(ctx context.Context, req *ApprovalRequest, prevStatus RequestStatus, prevStep int, prevApprover *uuid.UUID) (bool, error) {
		return false, nil
	}

	sweeper := NewSweeper(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	stats, err := sweeper.Sweep(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, SweepStats{Skipped: 1}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweeper_FailureOnOneRequestDoesNotAbortPass(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	approverID := uuid.New()
	// No escalation target, so the escalation fails before any tx.
	broken := ApprovalRequest{
		ID:                uuid.New(),
		Status:            StatusInProgress,
		CurrentApproverID: &approverID,
		Steps: StepSnapshotList{
			{Order: 1, ApproverID: approverID.String(), Status: StepPending},
		},
	}
	healthy := ApprovalRequest{
		ID:                uuid.New(),
		CompanyID:         uuid.New(),
		Status:            StatusPending,
		CurrentApproverID: &approverID,
		Steps: StepSnapshotList{
			{Order: 1, ApproverID: approverID.String(), Status: StepPending},
		},
	}

	repo := &fakeRepo{}
	repo.findEscalationDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return []ApprovalRequest{broken}, nil
	}
	repo.findAutoApproveDueFn = func(ctx context.Context, at time.Time, limit int) ([]ApprovalRequest, error) {
		return []ApprovalRequest{healthy}, nil
	}
	repo.appendActionFn = func(ctx context.Context, action *ApprovalAction) error { return nil }
	repo.updateRequestCASFn = func(ctx context.Context, req *ApprovalRequest, prevStatus RequestStatus, prevStep int, prevApprover *uuid.UUID) (bool, error) {
		return true, nil
	}

	sweeper := NewSweeper(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	stats, err := sweeper.Sweep(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, SweepStats{AutoApproved: 1, Failed: 1}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
