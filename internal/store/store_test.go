package store

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, entity.Migrate(db))
	return db
}

func newTestStores(t *testing.T) (*DatasetStore, *QualityLogStore) {
	t.Helper()

	db := newTestDB(t)
	datasets := NewDatasetStore(db)
	return datasets, NewQualityLogStore(db, datasets)
}

func strPtr(s string) *string {
	return &s
}
