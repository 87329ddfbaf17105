package utils

import (
	"time"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/store"
)

// Presentation forms of stored records: identifiers become their string
// encoding, timestamps become RFC 3339 UTC. Serialization never mutates
// its input.

type DatasetResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Owner       string   `json:"owner"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	IsDeleted   bool     `json:"is_deleted"`
}

type QualityLogResponse struct {
	ID        string  `json:"id"`
	DatasetID string  `json:"dataset_id"`
	Status    string  `json:"status"`
	Details   *string `json:"details"`
	Timestamp string  `json:"timestamp"`
}

type DatasetPageResponse struct {
	Datasets   []DatasetResponse `json:"datasets"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type QualityLogPageResponse struct {
	Logs       []QualityLogResponse `json:"logs"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

func SerializeDataset(dataset *entity.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:          dataset.ID.String(),
		Name:        dataset.Name,
		Owner:       dataset.Owner,
		Description: dataset.Description,
		Tags:        dataset.TagValues(),
		CreatedAt:   formatTime(dataset.CreatedAt),
		UpdatedAt:   formatTime(dataset.UpdatedAt),
		IsDeleted:   dataset.IsDeleted,
	}
}

func SerializeDatasets(datasets []entity.Dataset) []DatasetResponse {
	out := make([]DatasetResponse, 0, len(datasets))
	for i := range datasets {
		out = append(out, SerializeDataset(&datasets[i]))
	}
	return out
}

func SerializeDatasetPage(page *store.DatasetPage) DatasetPageResponse {
	return DatasetPageResponse{
		Datasets:   SerializeDatasets(page.Datasets),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func SerializeQualityLog(log *entity.QualityLog) QualityLogResponse {
	return QualityLogResponse{
		ID:        log.ID.String(),
		DatasetID: log.DatasetID.String(),
		Status:    string(log.Status),
		Details:   log.Details,
		Timestamp: formatTime(log.Timestamp),
	}
}

func SerializeQualityLogs(logs []entity.QualityLog) []QualityLogResponse {
	out := make([]QualityLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, SerializeQualityLog(&logs[i]))
	}
	return out
}

func SerializeQualityLogPage(page *store.QualityLogPage) QualityLogPageResponse {
	return QualityLogPageResponse{
		Logs:       SerializeQualityLogs(page.Logs),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
