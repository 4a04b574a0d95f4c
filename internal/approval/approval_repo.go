package approval

import (
	"context"
	"database/sql"
	"time"

	"tourhr/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateChain(ctx context.Context, chain *ApprovalChain) error
	FindChains(ctx context.Context, companyID string, entityType EntityType) ([]ApprovalChain, error)
	FindChainByID(ctx context.Context, companyID, chainID string) (*ApprovalChain, error)
	FindDefaultChain(ctx context.Context, companyID string, entityType EntityType) (*ApprovalChain, error)
	ReplaceChain(ctx context.Context, chain *ApprovalChain) error
	DeactivateChain(ctx context.Context, companyID, chainID string) error

	CreateRequest(ctx context.Context, req *ApprovalRequest) error
	FindRequestByID(ctx context.Context, companyID, requestID string) (*ApprovalRequest, error)
	FindPendingByApprover(ctx context.Context, companyID, approverID string) ([]ApprovalRequest, error)
	FindAutoApproveDue(ctx context.Context, now time.Time, limit int) ([]ApprovalRequest, error)
	FindEscalationDue(ctx context.Context, now time.Time, limit int) ([]ApprovalRequest, error)

	AppendAction(ctx context.Context, action *ApprovalAction) error
	UpdateRequestCAS(ctx context.Context, req *ApprovalRequest, prevStatus RequestStatus, prevStep int, prevApprover *uuid.UUID) (bool, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	sqlDB, _ := db.DB()
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

func (r *repository) CreateChain(ctx context.Context, chain *ApprovalChain) error {
	return r.db.WithContext(ctx).Create(chain).Error
}

func (r *repository) FindChains(ctx context.Context, companyID string, entityType EntityType) ([]ApprovalChain, error) {
	var chains []ApprovalChain
	q := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Scopes(tenant.Scope(companyID))
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	err := q.Order("created_at DESC").Find(&chains).Error
	return chains, err
}

func (r *repository) FindChainByID(ctx context.Context, companyID, chainID string) (*ApprovalChain, error) {
	var chain ApprovalChain
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Scopes(tenant.Scope(companyID)).
		First(&chain, "id = ?", chainID).Error
	return &chain, err
}

func (r *repository) FindDefaultChain(ctx context.Context, companyID string, entityType EntityType) (*ApprovalChain, error) {
	var chain ApprovalChain
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Scopes(tenant.Scope(companyID)).
		Where("entity_type = ?", entityType).
		Where("is_active = ?", true).
		Where("is_default = ?", true).
		First(&chain).Error
	return &chain, err
}

// ReplaceChain rewrites the chain row and its full step list. Running
// requests are untouched: they carry their own frozen snapshots.
func (r *repository) ReplaceChain(ctx context.Context, chain *ApprovalChain) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chain_id = ?", chain.ID).Delete(&ChainStep{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(chain).Error
	})
}

func (r *repository) DeactivateChain(ctx context.Context, companyID, chainID string) error {
	return r.db.WithContext(ctx).
		Model(&ApprovalChain{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", chainID).
		Updates(map[string]any{"is_active": false, "is_default": false}).Error
}

func (r *repository) CreateRequest(ctx context.Context, req *ApprovalRequest) error {
	steps, err := req.Steps.Value()
	if err != nil {
		return err
	}
	meta, err := req.Meta.Value()
	if err != nil {
		return err
	}

	query := `
INSERT INTO approval_requests (
    id, company_id, chain_id, entity_type, entity_id, requestor_id,
    status, current_step, current_approver_id, steps, meta,
    step_activated_at, auto_approve_at, escalate_at,
    submitted_at, completed_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
`
	_, err = r.execer().ExecContext(
		ctx, query,
		req.ID, req.CompanyID, req.ChainID, req.EntityType, req.EntityID, req.RequestorID,
		req.Status, req.CurrentStep, req.CurrentApproverID, steps, meta,
		req.StepActivatedAt, req.AutoApproveAt, req.EscalateAt,
		req.SubmittedAt, req.CompletedAt,
	)
	return err
}

func (r *repository) FindRequestByID(ctx context.Context, companyID, requestID string) (*ApprovalRequest, error) {
	var req ApprovalRequest
	err := r.db.WithContext(ctx).
		Preload("Actions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Scopes(tenant.Scope(companyID)).
		First(&req, "id = ?", requestID).Error
	return &req, err
}

func (r *repository) FindPendingByApprover(ctx context.Context, companyID, approverID string) ([]ApprovalRequest, error) {
	var reqs []ApprovalRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("current_approver_id = ?", approverID).
		Where("status IN ?", []RequestStatus{StatusPending, StatusInProgress, StatusEscalated}).
		Order("submitted_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindAutoApproveDue(ctx context.Context, now time.Time, limit int) ([]ApprovalRequest, error) {
	var reqs []ApprovalRequest
	err := r.db.WithContext(ctx).
		Where("auto_approve_at IS NOT NULL AND auto_approve_at <= ?", now).
		Where("status IN ?", []RequestStatus{StatusPending, StatusInProgress, StatusEscalated}).
		Order("auto_approve_at ASC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindEscalationDue(ctx context.Context, now time.Time, limit int) ([]ApprovalRequest, error) {
	var reqs []ApprovalRequest
	err := r.db.WithContext(ctx).
		Where("escalate_at IS NOT NULL AND escalate_at <= ?", now).
		Where("status IN ?", []RequestStatus{StatusPending, StatusInProgress}).
		Order("escalate_at ASC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) AppendAction(ctx context.Context, action *ApprovalAction) error {
	query := `
INSERT INTO approval_actions (
    id, request_id, step_order, actor_id, action, comment, delegated_to, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		action.ID, action.RequestID, action.StepOrder, action.ActorID,
		action.Action, action.Comment, action.DelegToID,
	)
	return err
}

// UpdateRequestCAS persists a transition only if the row still holds
// the status, step and current approver the transition was computed
// from. The approver is part of the predicate because a delegation
// changes neither status nor step. A false return means another writer
// got there first; the caller reloads and retries or gives up, it
// never applies the stale outcome.
func (r *repository) UpdateRequestCAS(ctx context.Context, req *ApprovalRequest, prevStatus RequestStatus, prevStep int, prevApprover *uuid.UUID) (bool, error) {
	steps, err := req.Steps.Value()
	if err != nil {
		return false, err
	}
	meta, err := req.Meta.Value()
	if err != nil {
		return false, err
	}

	query := `
UPDATE approval_requests
SET
    status = $4,
    current_step = $5,
    current_approver_id = $6,
    steps = $7,
    meta = $8,
    step_activated_at = $9,
    auto_approve_at = $10,
    escalate_at = $11,
    completed_at = $12,
    updated_at = NOW()
WHERE id = $1
  AND status = $2
  AND current_step = $3
  AND current_approver_id IS NOT DISTINCT FROM $13
`
	res, err := r.execer().ExecContext(
		ctx, query,
		req.ID, prevStatus, prevStep,
		req.Status, req.CurrentStep, req.CurrentApproverID, steps, meta,
		req.StepActivatedAt, req.AutoApproveAt, req.EscalateAt, req.CompletedAt,
		prevApprover,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
