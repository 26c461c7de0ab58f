// Package crud holds the row-level helpers shared by every repository:
// insert with generated-id check, lookup by primary key, full-row update and
// hard delete, each reporting absence and zero affected rows the same way.
package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

// Create inserts row and requires the store to have assigned an id.
func Create[T any](db *gorm.DB, op string, row *T, id func() int64) error {
	if row == nil {
		return apperr.InvalidInput(op + ": nil row")
	}
	res := db.Omit(clause.Associations).Create(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 || (id != nil && id() <= 0) {
		return apperr.Persistence(op, nil)
	}
	return nil
}

// First returns the first match or nil when nothing matched.
func First[T any](q *gorm.DB) (*T, error) {
	var rows []*T
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func ByID[T any](db *gorm.DB, id int64) (*T, error) {
	if id <= 0 {
		return nil, nil
	}
	return First[T](db.Where("id = ?", id))
}

func ByIDs[T any](db *gorm.DB, ids []int64) ([]*T, error) {
	out := []*T{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := db.Where("id IN ?", ids).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Find runs q into a fresh slice that is never nil.
func Find[T any](q *gorm.DB) ([]*T, error) {
	out := []*T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every updatable column of the row with the given id.
func Update[T any](db *gorm.DB, row *T, id int64) (bool, error) {
	if row == nil || id <= 0 {
		return false, nil
	}
	res := db.Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", clause.Associations).
		Updates(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateFields applies a partial update to the row with the given id.
func UpdateFields[T any](db *gorm.DB, id int64, updates map[string]any) (bool, error) {
	if id <= 0 || len(updates) == 0 {
		return false, nil
	}
	res := db.Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func Delete[T any](db *gorm.DB, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	res := db.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteWhere removes every T matching the condition and reports how many went.
func DeleteWhere[T any](db *gorm.DB, query string, args ...any) (int64, error) {
	res := db.Where(query, args...).Delete(new(T))
	return res.RowsAffected, res.Error
}

// WithStudentName selects table rows plus the author's name as student_name.
func WithStudentName(db *gorm.DB, table string) *gorm.DB {
	return db.Table(table).
		Select(table + `.*, u.name AS student_name`).
		Joins(`LEFT JOIN "user" u ON u.id = ` + table + `.student_id`)
}
