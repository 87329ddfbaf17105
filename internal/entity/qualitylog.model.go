package entity

import (
	"time"

	"github.com/google/uuid"
)

type QualityStatus string

const (
	StatusPass QualityStatus = "PASS"
	StatusFail QualityStatus = "FAIL"
)

// ParseQualityStatus reports whether raw names one of the two known
// outcomes. Anything else is rejected before it reaches the store.
func ParseQualityStatus(raw string) (QualityStatus, bool) {
	switch QualityStatus(raw) {
	case StatusPass, StatusFail:
		return QualityStatus(raw), true
	}
	return "", false
}

// QualityLog records one quality-check outcome for a dataset. DatasetID is a
// value reference only: logs are never cascaded when a dataset is deleted.
type QualityLog struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	DatasetID uuid.UUID     `gorm:"type:uuid;not null;index;index:idx_quality_logs_dataset_ts,priority:1" json:"dataset_id"`
	Status    QualityStatus `gorm:"type:varchar(10);not null" json:"status"`
	Details   *string       `gorm:"type:text" json:"details"`
	Timestamp time.Time     `gorm:"not null;index;index:idx_quality_logs_dataset_ts,priority:2" json:"timestamp"`
}

func (QualityLog) TableName() string { return "quality_logs" }
