package trip

import (
	"context"
	"time"

	"tourhr/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment mirrors the roster service's trip_assignments table. This
// module only reads it; staffing itself is owned elsewhere.
type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_trip_assignments_employee_dates"`
	TripID     uuid.UUID `gorm:"type:uuid;not null"`
	TripName   string    `gorm:"type:varchar(150);not null"`
	StartDate  time.Time `gorm:"type:date;not null;index:idx_trip_assignments_employee_dates"`
	EndDate    time.Time `gorm:"type:date;not null;index:idx_trip_assignments_employee_dates"`
}

func (Assignment) TableName() string {
	return "trip_assignments"
}

type Conflict struct {
	TripID    string `json:"trip_id"`
	TripName  string `json:"trip_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ConflictFinder answers "is this employee rostered on a trip in this
// range". Conflicts flag a leave request but never block it.
type ConflictFinder interface {
	FindTripConflicts(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Conflict, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ConflictFinder {
	return &repository{db: db}
}

func (r *repository) FindTripConflicts(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Conflict, error) {
	var assignments []Assignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("NOT (end_date < ? OR start_date > ?)", from, to).
		Order("start_date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	conflicts := make([]Conflict, len(assignments))
	for i, a := range assignments {
		conflicts[i] = Conflict{
			TripID:    a.TripID.String(),
			TripName:  a.TripName,
			StartDate: a.StartDate.Format("2006-01-02"),
			EndDate:   a.EndDate.Format("2006-01-02"),
		}
	}
	return conflicts, nil
}
