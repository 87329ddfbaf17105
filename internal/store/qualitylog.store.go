package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
)

// QualityLogStore owns quality-log records. Logs are append-only: there is
// no update or delete. Creation requires the referenced dataset to be live,
// but existing logs outlive a later soft delete of their dataset.
type QualityLogStore struct {
	db       *gorm.DB
	datasets *DatasetStore
}

func NewQualityLogStore(db *gorm.DB, datasets *DatasetStore) *QualityLogStore {
	return &QualityLogStore{db: db, datasets: datasets}
}

type QualityLogPage struct {
	Logs       []entity.QualityLog
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type QualitySummary struct {
	TotalLogs int64   `json:"total_logs"`
	PassCount int64   `json:"pass_count"`
	FailCount int64   `json:"fail_count"`
	PassRate  float64 `json:"pass_rate"`
}

// Create appends a quality log for a live dataset. The existence check is
// last-check-wins against a concurrent soft delete: if the dataset was live
// when checked, the log is created.
func (s *QualityLogStore) Create(ctx context.Context, datasetID uuid.UUID, status entity.QualityStatus, details *string) (*entity.QualityLog, error) {
	if _, err := s.datasets.GetByID(ctx, datasetID); err != nil {
		return nil, err
	}

	log := entity.QualityLog{
		ID:        uuid.New(),
		DatasetID: datasetID,
		Status:    status,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// List returns logs for a dataset id, newest first. The dataset's liveness
// is deliberately not checked: logs of a deleted dataset stay listable.
func (s *QualityLogStore) List(ctx context.Context, datasetID uuid.UUID, page, limit int) (*QualityLogPage, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPagination
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&entity.QualityLog{}).
		Where("dataset_id = ?", datasetID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []entity.QualityLog
	if err := s.db.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Order("timestamp DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return &QualityLogPage{
		Logs:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Summary aggregates all logs for a dataset id regardless of the dataset's
// liveness. PassRate is a percentage in [0, 100], 0 when there are no logs.
func (s *QualityLogStore) Summary(ctx context.Context, datasetID uuid.UUID) (*QualitySummary, error) {
	var rows []struct {
		Status entity.QualityStatus
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&entity.QualityLog{}).
		Select("status, COUNT(*) AS count").
		Where("dataset_id = ?", datasetID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := QualitySummary{}
	for _, row := range rows {
		switch row.Status {
		case entity.StatusPass:
			summary.PassCount = row.Count
		case entity.StatusFail:
			summary.FailCount = row.Count
		}
	}
	summary.TotalLogs = summary.PassCount + summary.FailCount
	if summary.TotalLogs > 0 {
		summary.PassRate = float64(summary.PassCount) / float64(summary.TotalLogs) * 100
	}
	return &summary, nil
}

// LatestStatus returns the most recent log for a dataset id. Timestamp ties
// break by descending id so the result is deterministic.
func (s *QualityLogStore) LatestStatus(ctx context.Context, datasetID uuid.UUID) (*entity.QualityLog, error) {
	var logs []entity.QualityLog
	if err := s.db.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Order("timestamp DESC, id DESC").
		Limit(1).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoQualityLogs
	}
	return &logs[0], nil
}
