package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrInvalidID         = errors.New("invalid dataset ID")
	ErrDuplicateDataset  = errors.New("dataset with this name already exists for this owner")
	ErrDatasetNotFound   = errors.New("dataset not found")
	ErrNoQualityLogs     = errors.New("no quality logs found for this dataset")
	ErrInvalidPagination = errors.New("page and limit must be positive")
)

// isDuplicateKey recognizes a unique-constraint violation from either
// database. The string checks cover drivers that don't participate in
// GORM's error translation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "UNIQUE constraint failed")
}
