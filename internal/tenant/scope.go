package tenant

import "gorm.io/gorm"

// Scope restricts a gorm query to a single operator (tenant).
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
