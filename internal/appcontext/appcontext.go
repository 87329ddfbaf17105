package appcontext

import (
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Context carries the handles initialized once at startup and shared by all
// requests. MeilisearchClient is nil when search is not configured.
type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	MeilisearchClient *meilisearch.Client
}
