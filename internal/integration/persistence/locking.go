package persistence

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate appends a SELECT ... FOR UPDATE clause on databases that support
// it. SQLite has no row-level locks; its transactions serialize on a single
// writer, which gives the same isolation for the unit of work.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
