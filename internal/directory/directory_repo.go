package directory

import (
	"context"

	"tourhr/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the read-only slice of the directory this service needs
// for approver resolution. The directory itself is owned by the
// identity/org service.
type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	FullName      string     `gorm:"column:full_name"`
	ManagerID     *uuid.UUID `gorm:"type:uuid"`
	DepartmentID  *uuid.UUID `gorm:"type:uuid"`
	EmployeeClass string     `gorm:"type:varchar(30)"`
	Role          string     `gorm:"type:varchar(50)"`
	IsActive      bool       `gorm:"column:is_active"`
}

func (Employee) TableName() string {
	return "employees"
}

type department struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	HeadID *uuid.UUID `gorm:"type:uuid"`
}

func (department) TableName() string {
	return "departments"
}

type Repository interface {
	FindByID(ctx context.Context, companyID, employeeID string) (*Employee, error)
	FindManager(ctx context.Context, companyID, employeeID string) (*Employee, error)
	FindDepartmentHead(ctx context.Context, companyID, employeeID string) (*Employee, error)
	FindRoleHolder(ctx context.Context, companyID, role string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, companyID, employeeID string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		First(&e, "id = ?", employeeID).Error
	return &e, err
}

func (r *repository) FindManager(ctx context.Context, companyID, employeeID string) (*Employee, error) {
	e, err := r.FindByID(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	if e.ManagerID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, companyID, e.ManagerID.String())
}

func (r *repository) FindDepartmentHead(ctx context.Context, companyID, employeeID string) (*Employee, error) {
	e, err := r.FindByID(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	if e.DepartmentID == nil {
		return nil, gorm.ErrRecordNotFound
	}

	var d department
	if err := r.db.WithContext(ctx).First(&d, "id = ?", e.DepartmentID).Error; err != nil {
		return nil, err
	}
	if d.HeadID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, companyID, d.HeadID.String())
}

func (r *repository) FindRoleHolder(ctx context.Context, companyID, role string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("role = ?", role).
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&e).Error
	return &e, err
}
