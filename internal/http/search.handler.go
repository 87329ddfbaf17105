package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/appcontext"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/utils"
)

func SearchDatasets(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			errorResponse(c, http.StatusBadRequest, "Missing search query")
			return
		}

		if ctx.MeilisearchClient == nil {
			errorResponse(c, http.StatusServiceUnavailable, "Search is not configured")
			return
		}

		searchParams := &meilisearch.SearchRequest{
			Query: query,
		}
		if owner := c.Query("owner"); owner != "" {
			searchParams.Filter = fmt.Sprintf("owner = %q", owner)
		}

		searchResult, err := ctx.MeilisearchClient.Index(utils.SearchIndex).Search(query, searchParams)
		if err != nil {
			ctx.Logger.Error("Failed to perform search", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to perform search")
			return
		}

		successResponse(c, http.StatusOK, gin.H{"results": searchResult.Hits}, "")
	}
}
