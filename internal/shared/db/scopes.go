package db

import (
	"gorm.io/gorm"
)

// ByAgency is a GORM scope that restricts a query to one tenant. Every
// top-level table carries an agency_id column; repositories apply this scope
// on all list and lookup queries so rows never cross agency boundaries.
//
// Example usage:
//
//	db.Model(&BookingModel{}).Scopes(db.ByAgency(agencyID)).Find(&results)
func ByAgency(agencyID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("agency_id = ?", agencyID)
	}
}

// NotDeleted is a GORM scope that filters out soft-deleted records. Use it
// with Model().Where().Count() or raw Table() queries that bypass gorm's
// automatic soft delete filtering.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}
