package leavetype

import (
	"context"
	"database/sql"
	"testing"

	leavetypeerrors "tourhr/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn               func(ctx context.Context, t *LeaveType) error
	findAllByCompanyFn     func(ctx context.Context, companyID string, activeOnly bool) ([]LeaveType, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*LeaveType, error)
	findByCodeAndCompanyFn func(ctx context.Context, companyID, code string) (*LeaveType, error)
	updateFn               func(ctx context.Context, t *LeaveType) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository            { return f }
func (f *fakeRepo) Create(ctx context.Context, t *LeaveType) error { return f.createFn(ctx, t) }
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, activeOnly bool) ([]LeaveType, error) {
	return f.findAllByCompanyFn(ctx, companyID, activeOnly)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeRepo) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*LeaveType, error) {
	return f.findByCodeAndCompanyFn(ctx, companyID, code)
}
func (f *fakeRepo) Update(ctx context.Context, t *LeaveType) error { return f.updateFn(ctx, t) }

func validCreateRequest() CreateLeaveTypeRequest {
	return CreateLeaveTypeRequest{
		Code:           "ANNUAL",
		Name:           "Annual leave",
		IsPaid:         true,
		MaxDaysPerYear: "20",
	}
}

func TestService_Create(t *testing.T) {
	companyID := uuid.New().String()

	var saved *LeaveType
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, lt *LeaveType) error { saved = lt; return nil }
	repo.findByCodeAndCompanyFn = func(ctx context.Context, companyID, code string) (*LeaveType, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(repo)

	req := validCreateRequest()
	req.BlackoutPeriods = []BlackoutPeriodPayload{
		{Name: "Peak season", From: "2026-12-20", To: "2027-01-05"},
	}
	resp, err := svc.Create(context.Background(), companyID, req)
	assert.NoError(t, err)
	assert.Equal(t, "ANNUAL", resp.Code)
	assert.Equal(t, "20", resp.MaxDaysPerYear)
	assert.True(t, resp.IsActive)
	// Approval defaults to required when the field is omitted.
	assert.True(t, resp.RequiresApproval)
	assert.Len(t, resp.BlackoutPeriods, 1)

	assert.NotNil(t, saved)
	assert.Equal(t, AccrualAnnual, saved.AccrualPolicy)
}

func TestService_Create_DuplicateCode(t *testing.T) {
	companyID := uuid.New().String()

	repo := &fakeRepo{}
	repo.findByCodeAndCompanyFn = func(ctx context.Context, companyID, code string) (*LeaveType, error) {
		return &LeaveType{ID: uuid.New(), Code: code}, nil
	}

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), companyID, validCreateRequest())
	assert.ErrorIs(t, err, leavetypeerrors.ErrDuplicateCode)
}

func TestService_Create_Validation(t *testing.T) {
	companyID := uuid.New().String()
	repo := &fakeRepo{}
	repo.findByCodeAndCompanyFn = func(ctx context.Context, companyID, code string) (*LeaveType, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewService(repo)
	ctx := context.Background()

	req := validCreateRequest()
	req.MaxDaysPerYear = "-3"
	_, err := svc.Create(ctx, companyID, req)
	assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidDayAmount)

	req = validCreateRequest()
	req.BlackoutPeriods = []BlackoutPeriodPayload{{Name: "bad", From: "2026-12-20", To: "2026-12-01"}}
	_, err = svc.Create(ctx, companyID, req)
	assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidBlackoutRange)

	req = validCreateRequest()
	req.BlackoutPeriods = []BlackoutPeriodPayload{{Name: "bad", From: "20/12/2026", To: "2027-01-05"}}
	_, err = svc.Create(ctx, companyID, req)
	assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidDateFormat)

	_, err = svc.Create(ctx, "not-a-uuid", validCreateRequest())
	assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidCompanyID)
}

func TestService_Update_CodeIsImmutable(t *testing.T) {
	companyID := uuid.New().String()
	existing := &LeaveType{
		ID:        uuid.New(),
		Code:      "ANNUAL",
		Name:      "Annual leave",
		IsActive:  true,
	}

	var saved *LeaveType
	repo := &fakeRepo{}
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*LeaveType, error) {
		return existing, nil
	}
	repo.updateFn = func(ctx context.Context, lt *LeaveType) error { saved = lt; return nil }

	svc := NewService(repo)

	resp, err := svc.Update(context.Background(), companyID, existing.ID.String(), UpdateLeaveTypeRequest{
		Name:           "Annual holiday",
		MaxDaysPerYear: "25",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ANNUAL", resp.Code)
	assert.Equal(t, "Annual holiday", resp.Name)
	assert.Equal(t, "25", saved.MaxDaysPerYear.String())
}

func TestService_Deactivate(t *testing.T) {
	companyID := uuid.New().String()
	existing := &LeaveType{ID: uuid.New(), Code: "SICK", IsActive: true}

	repo := &fakeRepo{}
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*LeaveType, error) {
		return existing, nil
	}
	repo.updateFn = func(ctx context.Context, lt *LeaveType) error { return nil }

	svc := NewService(repo)

	resp, err := svc.Deactivate(context.Background(), companyID, existing.ID.String())
	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*LeaveType, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(repo)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
}

func TestLeaveType_AppliesTo(t *testing.T) {
	open := LeaveType{}
	assert.True(t, open.AppliesTo("TOUR_GUIDE"))
	assert.True(t, open.AppliesTo(""))

	restricted := LeaveType{ApplicableClasses: StringList{"TOUR_GUIDE", "DRIVER"}}
	assert.True(t, restricted.AppliesTo("DRIVER"))
	assert.False(t, restricted.AppliesTo("OFFICE"))
}
