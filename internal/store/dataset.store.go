package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
)

// DatasetStore owns dataset records. Deletion is logical: deleted rows are
// kept forever but excluded from every read path and from the live
// (name, owner) uniqueness invariant.
type DatasetStore struct {
	db *gorm.DB
}

func NewDatasetStore(db *gorm.DB) *DatasetStore {
	return &DatasetStore{db: db}
}

type DatasetPage struct {
	Datasets   []entity.Dataset
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DatasetUpdate carries the fields of a partial update. A nil field means
// "leave unchanged", which is distinct from an empty value.
type DatasetUpdate struct {
	Name        *string
	Owner       *string
	Description *string
	Tags        *[]string
}

type OwnerCount struct {
	Owner string `json:"owner"`
	Count int64  `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

type DatasetStats struct {
	TotalDatasets int64        `json:"total_datasets"`
	TopOwners     []OwnerCount `json:"top_owners"`
	TopTags       []TagCount   `json:"top_tags"`
}

// Create inserts a new live dataset. The duplicate pre-check is an early
// exit only; the partial unique index closes the race between two
// concurrent creates with the same (name, owner).
func (s *DatasetStore) Create(ctx context.Context, name, owner string, description *string, tags []string) (*entity.Dataset, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&entity.Dataset{}).
		Where("name = ? AND owner = ? AND is_deleted = ?", name, owner, false).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateDataset
	}

	now := time.Now().UTC()
	dataset := entity.Dataset{
		ID:          uuid.New(),
		Name:        name,
		Owner:       owner,
		Description: description,
		Tags:        tagRows(tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&dataset).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateDataset
		}
		return nil, err
	}
	return &dataset, nil
}

// List returns live datasets, newest first, optionally filtered by exact
// owner and/or tag membership. Page is 1-based; a page past the end of the
// data yields an empty slice.
func (s *DatasetStore) List(ctx context.Context, owner, tag string, page, limit int) (*DatasetPage, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPagination
	}

	var total int64
	if err := s.listQuery(ctx, owner, tag).Count(&total).Error; err != nil {
		return nil, err
	}

	var datasets []entity.Dataset
	if err := s.listQuery(ctx, owner, tag).
		Preload("Tags", orderTags).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&datasets).Error; err != nil {
		return nil, err
	}

	return &DatasetPage{
		Datasets:   datasets,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *DatasetStore) listQuery(ctx context.Context, owner, tag string) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&entity.Dataset{}).Where("is_deleted = ?", false)
	if owner != "" {
		query = query.Where("owner = ?", owner)
	}
	if tag != "" {
		query = query.Where("EXISTS (SELECT 1 FROM dataset_tags WHERE dataset_tags.dataset_id = datasets.id AND dataset_tags.tag = ?)", tag)
	}
	return query
}

// GetByID resolves id to a live dataset.
func (s *DatasetStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Dataset, error) {
	var dataset entity.Dataset
	err := s.db.WithContext(ctx).
		Preload("Tags", orderTags).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&dataset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, err
	}
	return &dataset, nil
}

// Update applies the provided fields to a live dataset and refreshes
// updated_at. When name or owner changes, the resulting pair is
// re-validated against other live datasets; the unique index remains the
// authoritative guard if a concurrent write slips past the pre-check.
func (s *DatasetStore) Update(ctx context.Context, id uuid.UUID, update DatasetUpdate) (*entity.Dataset, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := current.Name
	owner := current.Owner
	if update.Name != nil {
		name = *update.Name
	}
	if update.Owner != nil {
		owner = *update.Owner
	}

	if update.Name != nil || update.Owner != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&entity.Dataset{}).
			Where("id <> ? AND name = ? AND owner = ? AND is_deleted = ?", id, name, owner, false).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateDataset
		}
	}

	values := map[string]interface{}{
		"name":       name,
		"owner":      owner,
		"updated_at": time.Now().UTC(),
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Dataset{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(values).Error; err != nil {
			return err
		}
		if update.Tags != nil {
			if err := tx.Where("dataset_id = ?", id).Delete(&entity.DatasetTag{}).Error; err != nil {
				return err
			}
			rows := tagRows(*update.Tags)
			for i := range rows {
				rows[i].DatasetID = id
			}
			if len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateDataset
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// SoftDelete marks a live dataset deleted and reports whether a record
// actually transitioned. Deleting a missing or already-deleted dataset
// returns false, never an error.
func (s *DatasetStore) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Model(&entity.Dataset{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Stats aggregates live datasets: total count, top 5 owners and top 10
// tags by dataset/occurrence count. Ties order by key ascending so results
// are reproducible.
func (s *DatasetStore) Stats(ctx context.Context) (*DatasetStats, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&entity.Dataset{}).
		Where("is_deleted = ?", false).
		Count(&total).Error; err != nil {
		return nil, err
	}

	topOwners := make([]OwnerCount, 0, 5)
	if err := s.db.WithContext(ctx).Model(&entity.Dataset{}).
		Select("owner, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Group("owner").
		Order("count DESC, owner ASC").
		Limit(5).
		Scan(&topOwners).Error; err != nil {
		return nil, err
	}

	topTags := make([]TagCount, 0, 10)
	if err := s.db.WithContext(ctx).Table("dataset_tags").
		Select("dataset_tags.tag, COUNT(*) AS count").
		Joins("JOIN datasets ON datasets.id = dataset_tags.dataset_id").
		Where("datasets.is_deleted = ?", false).
		Group("dataset_tags.tag").
		Order("count DESC, dataset_tags.tag ASC").
		Limit(10).
		Scan(&topTags).Error; err != nil {
		return nil, err
	}

	return &DatasetStats{
		TotalDatasets: total,
		TopOwners:     topOwners,
		TopTags:       topTags,
	}, nil
}

func tagRows(tags []string) []entity.DatasetTag {
	rows := make([]entity.DatasetTag, 0, len(tags))
	for i, tag := range tags {
		rows = append(rows, entity.DatasetTag{Position: i, Tag: tag})
	}
	return rows
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}
