package persistence

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// notDeleted keeps rows whose soft-delete flag is clear
func notDeleted(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".deleted = ?", false)
	}
}

// containsLike matches column as a case-sensitive substring of value.
// An empty value matches every row.
func containsLike(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(value)+"%")
	}
}

// excludingID drops the row with id, unless id is zero
func excludingID(table string, id int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == 0 {
			return db
		}
		return db.Where(table+".id <> ?", id)
	}
}
