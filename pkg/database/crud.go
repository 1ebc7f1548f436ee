package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNoFields is returned by UpdateByID for an empty change set; no SQL is issued.
var ErrNoFields = errors.New("no fields to update")

// UpdateByID writes only the given columns of row id and reports whether the row existed.
func UpdateByID[T any](ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return false, ErrNoFields
	}
	var model T
	res := db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteByID removes row id and reports whether it existed.
func DeleteByID[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var model T
	res := db.WithContext(ctx).Delete(&model, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExistsByID is a cheap existence predicate on the primary key.
func ExistsByID[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var n int64
	var model T
	if err := db.WithContext(ctx).Model(&model).Where("id = ?", id).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Like wraps s for a case-insensitive literal substring match. The pattern
// escapes % and _ with a backslash, so pair it with Contains.
func Like(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// Contains is the WHERE fragment comparing LOWER(col) with a Like pattern.
func Contains(col string) string {
	return "LOWER(" + col + `) LIKE ? ESCAPE '\'`
}
