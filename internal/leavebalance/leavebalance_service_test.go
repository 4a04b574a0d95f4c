package leavebalance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	leavebalanceerrors "tourhr/internal/leavebalance/errors"
	"tourhr/internal/leavetype"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn             func(ctx context.Context, b *LeaveBalance) error
	findByIDFn           func(ctx context.Context, companyID, id string) (*LeaveBalance, error)
	findByKeyFn          func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	findByEmployeeYearFn func(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	reserveFn            func(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	commitFn             func(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	releaseFn            func(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	refundFn             func(ctx context.Context, id string, days decimal.Decimal) (bool, error)
	adjustFn             func(ctx context.Context, id string, delta decimal.Decimal) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, b *LeaveBalance) error {
	return f.createFn(ctx, b)
}
func (f *fakeRepo) FindByID(ctx context.Context, companyID, id string) (*LeaveBalance, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeRepo) FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	return f.findByKeyFn(ctx, companyID, employeeID, leaveTypeID, year)
}
func (f *fakeRepo) FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	return f.findByEmployeeYearFn(ctx, companyID, employeeID, year)
}
func (f *fakeRepo) Reserve(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	return f.reserveFn(ctx, id, days)
}
func (f *fakeRepo) Commit(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	return f.commitFn(ctx, id, days)
}
func (f *fakeRepo) Release(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	return f.releaseFn(ctx, id, days)
}
func (f *fakeRepo) Refund(ctx context.Context, id string, days decimal.Decimal) (bool, error) {
	return f.refundFn(ctx, id, days)
}
func (f *fakeRepo) Adjust(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
	return f.adjustFn(ctx, id, delta)
}

type fakeCatalog struct {
	types []leavetype.LeaveType
}

func (f *fakeCatalog) FindAllByCompany(ctx context.Context, companyID string, activeOnly bool) ([]leavetype.LeaveType, error) {
	return f.types, nil
}

func TestBalance_Available(t *testing.T) {
	b := LeaveBalance{
		Opening:      decimal.RequireFromString("20"),
		Accrued:      decimal.RequireFromString("2"),
		CarryForward: decimal.RequireFromString("5"),
		Adjusted:     decimal.RequireFromString("-1"),
		Taken:        decimal.RequireFromString("8"),
		Pending:      decimal.RequireFromString("3.5"),
	}
	assert.Equal(t, "14.5", b.Available().String())
}

func TestService_InitializeYear(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	annual := leavetype.LeaveType{ID: uuid.New(), MaxDaysPerYear: decimal.RequireFromString("20")}
	sick := leavetype.LeaveType{ID: uuid.New(), MaxDaysPerYear: decimal.RequireFromString("10")}

	var created []LeaveBalance
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, b *LeaveBalance) error {
		created = append(created, *b)
		return nil
	}
	repo.findByEmployeeYearFn = func(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
		return created, nil
	}

	svc := NewService(repo, &fakeCatalog{types: []leavetype.LeaveType{annual, sick}})

	resp, err := svc.InitializeYear(context.Background(), companyID, InitializeYearRequest{EmployeeID: employeeID, Year: 2027})
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 0, resp.Skipped)
	assert.Len(t, resp.Balances, 2)
	assert.Equal(t, "20", created[0].Opening.String())
	assert.Equal(t, "0", created[0].Taken.String())
}

func TestService_InitializeYear_RerunSkipsExisting(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	annual := leavetype.LeaveType{ID: uuid.New(), MaxDaysPerYear: decimal.RequireFromString("20")}

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, b *LeaveBalance) error {
		return &pgconn.PgError{Code: "23505"}
	}
	repo.findByEmployeeYearFn = func(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
		return []LeaveBalance{{ID: uuid.New(), Taken: decimal.RequireFromString("4")}}, nil
	}

	svc := NewService(repo, &fakeCatalog{types: []leavetype.LeaveType{annual}})

	resp, err := svc.InitializeYear(context.Background(), companyID, InitializeYearRequest{EmployeeID: employeeID, Year: 2027})
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
	// The existing row's counters survive the rerun.
	assert.Equal(t, "4", resp.Balances[0].Taken)
}

func TestService_InitializeYear_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCatalog{})

	_, err := svc.InitializeYear(context.Background(), "not-a-uuid", InitializeYearRequest{EmployeeID: uuid.New().String(), Year: 2027})
	assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidCompanyID)

	_, err = svc.InitializeYear(context.Background(), uuid.New().String(), InitializeYearRequest{EmployeeID: "nope", Year: 2027})
	assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidEmployeeID)

	_, err = svc.InitializeYear(context.Background(), uuid.New().String(), InitializeYearRequest{EmployeeID: uuid.New().String(), Year: 1999})
	assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidYear)
}

func TestService_Adjust(t *testing.T) {
	companyID := uuid.New().String()
	balance := &LeaveBalance{ID: uuid.New(), Opening: decimal.RequireFromString("10")}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, companyID, id string) (*LeaveBalance, error) { return balance, nil }
	repo.adjustFn = func(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
		balance.Adjusted = balance.Adjusted.Add(delta)
		return true, nil
	}

	svc := NewService(repo, &fakeCatalog{})

	resp, err := svc.Adjust(context.Background(), companyID, balance.ID.String(), AdjustBalanceRequest{Delta: "2.5", Reason: "overtime comp"})
	assert.NoError(t, err)
	assert.Equal(t, "2.5", resp.Adjusted)
	assert.Equal(t, "12.5", resp.Available)
}

func TestService_Adjust_GuardRejectsOverdraw(t *testing.T) {
	companyID := uuid.New().String()
	balance := &LeaveBalance{ID: uuid.New(), Opening: decimal.RequireFromString("1")}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, companyID, id string) (*LeaveBalance, error) { return balance, nil }
	repo.adjustFn = func(ctx context.Context, id string, delta decimal.Decimal) (bool, error) { return false, nil }

	svc := NewService(repo, &fakeCatalog{})

	_, err := svc.Adjust(context.Background(), companyID, balance.ID.String(), AdjustBalanceRequest{Delta: "-5"})
	assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)

	_, err = svc.Adjust(context.Background(), companyID, balance.ID.String(), AdjustBalanceRequest{Delta: "0"})
	assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidDayAmount)
}

func TestLedger_GuardFailuresSurfaceAsDomainErrors(t *testing.T) {
	repo := &fakeRepo{}
	repo.reserveFn = func(ctx context.Context, id string, days decimal.Decimal) (bool, error) { return false, nil }
	repo.commitFn = func(ctx context.Context, id string, days decimal.Decimal) (bool, error) { return false, nil }
	repo.releaseFn = func(ctx context.Context, id string, days decimal.Decimal) (bool, error) { return false, nil }
	repo.refundFn = func(ctx context.Context, id string, days decimal.Decimal) (bool, error) { return false, nil }

	ledger := NewLedger(repo)
	ctx := context.Background()
	id := uuid.New().String()
	three := decimal.NewFromInt(3)

	assert.ErrorIs(t, ledger.Reserve(ctx, id, three), leavebalanceerrors.ErrInsufficientBalance)
	assert.ErrorIs(t, ledger.Commit(ctx, id, three), leavebalanceerrors.ErrPendingUnderflow)
	assert.ErrorIs(t, ledger.Release(ctx, id, three), leavebalanceerrors.ErrPendingUnderflow)
	assert.ErrorIs(t, ledger.Refund(ctx, id, three), leavebalanceerrors.ErrPendingUnderflow)
}

func TestLedger_RejectsNonPositiveAmounts(t *testing.T) {
	ledger := NewLedger(&fakeRepo{})
	ctx := context.Background()
	id := uuid.New().String()

	for _, days := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		assert.ErrorIs(t, ledger.Reserve(ctx, id, days), leavebalanceerrors.ErrInvalidDayAmount)
		assert.ErrorIs(t, ledger.Commit(ctx, id, days), leavebalanceerrors.ErrInvalidDayAmount)
		assert.ErrorIs(t, ledger.Release(ctx, id, days), leavebalanceerrors.ErrInvalidDayAmount)
		assert.ErrorIs(t, ledger.Refund(ctx, id, days), leavebalanceerrors.ErrInvalidDayAmount)
	}
}

func TestService_GetByEmployee_DefaultsToCurrentYear(t *testing.T) {
	var queriedYear int
	repo := &fakeRepo{}
	repo.findByEmployeeYearFn = func(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
		queriedYear = year
		return nil, nil
	}

	svc := NewService(repo, &fakeCatalog{})

	_, err := svc.GetByEmployee(context.Background(), uuid.New().String(), uuid.New().String(), 0)
	assert.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Year(), queriedYear)
}
