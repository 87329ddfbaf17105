package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
)

func TestCreateDatasetEnforcesLiveUniqueness(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	created, err := datasets.Create(ctx, "Test Dataset", "test_user", strPtr("first"), []string{"customer", "2024"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.False(t, created.IsDeleted)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.Equal(t, []string{"customer", "2024"}, created.TagValues())

	_, err = datasets.Create(ctx, "Test Dataset", "test_user", nil, nil)
	require.ErrorIs(t, err, ErrDuplicateDataset)

	// Same name under another owner is a different dataset.
	_, err = datasets.Create(ctx, "Test Dataset", "other_user", nil, nil)
	require.NoError(t, err)

	// Deleted records leave the uniqueness scope.
	deleted, err := datasets.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = datasets.Create(ctx, "Test Dataset", "test_user", nil, nil)
	require.NoError(t, err)
}

func TestCreateDatasetConstraintBacksPreCheck(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	_, err := datasets.Create(ctx, "Race Dataset", "racer", nil, nil)
	require.NoError(t, err)

	// Insert bypassing the store's pre-check: the partial unique index must
	// reject the row on its own.
	now := time.Now().UTC()
	dup := entity.Dataset{
		ID:        uuid.New(),
		Name:      "Race Dataset",
		Owner:     "racer",
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = datasets.db.Create(&dup).Error
	require.Error(t, err)
	require.True(t, isDuplicateKey(err))
}

func TestListDatasetsFiltersAndPagination(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	a, err := datasets.Create(ctx, "Alpha", "alice", nil, []string{"ml"})
	require.NoError(t, err)
	b, err := datasets.Create(ctx, "Beta", "bob", nil, []string{"ml", "etl"})
	require.NoError(t, err)
	c, err := datasets.Create(ctx, "Gamma", "alice", nil, []string{"etl"})
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []uuid.UUID{a.ID, b.ID, c.ID} {
		err := datasets.db.Model(&entity.Dataset{}).
			Where("id = ?", id).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error
		require.NoError(t, err)
	}

	page, err := datasets.List(ctx, "", "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, []string{"Gamma", "Beta", "Alpha"}, datasetNames(page.Datasets))
	require.Equal(t, []string{"ml", "etl"}, page.Datasets[1].TagValues())

	byOwner, err := datasets.List(ctx, "alice", "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(2), byOwner.Total)
	require.Equal(t, []string{"Gamma", "Alpha"}, datasetNames(byOwner.Datasets))

	byTag, err := datasets.List(ctx, "", "ml", 1, 20)
	require.NoError(t, err)
	require.Equal(t, []string{"Beta", "Alpha"}, datasetNames(byTag.Datasets))

	both, err := datasets.List(ctx, "alice", "etl", 1, 20)
	require.NoError(t, err)
	require.Equal(t, []string{"Gamma"}, datasetNames(both.Datasets))

	paged, err := datasets.List(ctx, "", "", 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), paged.Total)
	require.Equal(t, 2, paged.TotalPages)
	require.Equal(t, []string{"Alpha"}, datasetNames(paged.Datasets))

	beyond, err := datasets.List(ctx, "", "", 5, 2)
	require.NoError(t, err)
	require.Empty(t, beyond.Datasets)
	require.Equal(t, int64(3), beyond.Total)

	_, err = datasets.List(ctx, "", "", 1, 0)
	require.ErrorIs(t, err, ErrInvalidPagination)
	_, err = datasets.List(ctx, "", "", 0, 10)
	require.ErrorIs(t, err, ErrInvalidPagination)
}

func TestListDatasetsEmpty(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	page, err := datasets.List(ctx, "", "", 1, 20)
	require.NoError(t, err)
	require.Empty(t, page.Datasets)
	require.Equal(t, int64(0), page.Total)
	require.Equal(t, 0, page.TotalPages)
}

func TestSoftDeleteHidesDataset(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	created, err := datasets.Create(ctx, "Ephemeral", "alice", nil, nil)
	require.NoError(t, err)

	got, err := datasets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ephemeral", got.Name)

	backdated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, datasets.db.Model(&entity.Dataset{}).
		Where("id = ?", created.ID).
		Update("updated_at", backdated).Error)

	deleted, err := datasets.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = datasets.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrDatasetNotFound)

	page, err := datasets.List(ctx, "", "", 1, 20)
	require.NoError(t, err)
	require.Empty(t, page.Datasets)

	stats, err := datasets.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.TotalDatasets)

	// The row is retained, marked deleted, with updated_at refreshed.
	var raw entity.Dataset
	require.NoError(t, datasets.db.Where("id = ?", created.ID).First(&raw).Error)
	require.True(t, raw.IsDeleted)
	require.True(t, raw.UpdatedAt.After(backdated))

	// Idempotent: repeating reports false, never an error.
	deleted, err = datasets.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = datasets.SoftDelete(ctx, uuid.New())
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestUpdateDatasetPartialFields(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	created, err := datasets.Create(ctx, "Customer Data", "alice", strPtr("v1"), []string{"customer"})
	require.NoError(t, err)

	backdated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, datasets.db.Model(&entity.Dataset{}).
		Where("id = ?", created.ID).
		Update("updated_at", backdated).Error)

	updated, err := datasets.Update(ctx, created.ID, DatasetUpdate{Description: strPtr("Updated description")})
	require.NoError(t, err)
	require.Equal(t, "Customer Data", updated.Name)
	require.Equal(t, "alice", updated.Owner)
	require.Equal(t, []string{"customer"}, updated.TagValues())
	require.Equal(t, "Updated description", *updated.Description)
	require.True(t, updated.UpdatedAt.After(backdated))

	updated, err = datasets.Update(ctx, created.ID, DatasetUpdate{Tags: &[]string{"customer", "2024", "analysis"}})
	require.NoError(t, err)
	require.Equal(t, []string{"customer", "2024", "analysis"}, updated.TagValues())
	require.Equal(t, "Customer Data", updated.Name)

	updated, err = datasets.Update(ctx, created.ID, DatasetUpdate{Name: strPtr("Customer Data v2")})
	require.NoError(t, err)
	require.Equal(t, "Customer Data v2", updated.Name)
	require.Equal(t, "alice", updated.Owner)
}

func TestUpdateDatasetUniquenessConflicts(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	_, err := datasets.Create(ctx, "Taken", "alice", nil, nil)
	require.NoError(t, err)
	mine, err := datasets.Create(ctx, "Mine", "alice", nil, nil)
	require.NoError(t, err)
	theirs, err := datasets.Create(ctx, "Mine", "bob", nil, nil)
	require.NoError(t, err)

	_, err = datasets.Update(ctx, mine.ID, DatasetUpdate{Name: strPtr("Taken")})
	require.ErrorIs(t, err, ErrDuplicateDataset)

	// Owner-only change colliding with a live (name, owner) pair.
	_, err = datasets.Update(ctx, theirs.ID, DatasetUpdate{Owner: strPtr("alice")})
	require.ErrorIs(t, err, ErrDuplicateDataset)

	// Renaming to itself is not a conflict.
	_, err = datasets.Update(ctx, mine.ID, DatasetUpdate{Name: strPtr("Mine")})
	require.NoError(t, err)

	_, err = datasets.Update(ctx, uuid.New(), DatasetUpdate{Name: strPtr("Ghost")})
	require.ErrorIs(t, err, ErrDatasetNotFound)

	deleted, err := datasets.SoftDelete(ctx, mine.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	_, err = datasets.Update(ctx, mine.ID, DatasetUpdate{Description: strPtr("too late")})
	require.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestStatsAggregatesLiveDatasets(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	_, err := datasets.Create(ctx, "A1", "alice", nil, []string{"ml", "ml"})
	require.NoError(t, err)
	_, err = datasets.Create(ctx, "A2", "alice", nil, []string{"ml"})
	require.NoError(t, err)
	_, err = datasets.Create(ctx, "B1", "bob", nil, []string{"etl"})
	require.NoError(t, err)
	gone, err := datasets.Create(ctx, "C1", "carol", nil, []string{"etl", "legacy"})
	require.NoError(t, err)

	deleted, err := datasets.SoftDelete(ctx, gone.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	stats, err := datasets.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalDatasets)

	require.Equal(t, []OwnerCount{
		{Owner: "alice", Count: 2},
		{Owner: "bob", Count: 1},
	}, stats.TopOwners)

	// A tag listed twice on one dataset counts twice; deleted datasets
	// contribute nothing.
	require.Equal(t, []TagCount{
		{Tag: "ml", Count: 3},
		{Tag: "etl", Count: 1},
	}, stats.TopTags)
}

func TestStatsTieBreakByKey(t *testing.T) {
	ctx := context.Background()
	datasets, _ := newTestStores(t)

	_, err := datasets.Create(ctx, "Z", "zoe", nil, []string{"zeta"})
	require.NoError(t, err)
	_, err = datasets.Create(ctx, "A", "amy", nil, []string{"alpha"})
	require.NoError(t, err)

	stats, err := datasets.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, []OwnerCount{
		{Owner: "amy", Count: 1},
		{Owner: "zoe", Count: 1},
	}, stats.TopOwners)
	require.Equal(t, []TagCount{
		{Tag: "alpha", Count: 1},
		{Tag: "zeta", Count: 1},
	}, stats.TopTags)
}

func datasetNames(datasets []entity.Dataset) []string {
	names := make([]string, 0, len(datasets))
	for _, d := range datasets {
		names = append(names, d.Name)
	}
	return names
}
