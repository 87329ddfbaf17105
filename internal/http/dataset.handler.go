package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/appcontext"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/config"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/store"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/utils"
)

type createDatasetRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Owner       string   `json:"owner" binding:"required,min=1,max=50"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Tags        []string `json:"tags" binding:"omitempty,dive,min=1,max=100"`
}

type updateDatasetRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=100"`
	Owner       *string   `json:"owner" binding:"omitempty,min=1,max=50"`
	Description *string   `json:"description" binding:"omitempty,max=500"`
	Tags        *[]string `json:"tags" binding:"omitempty,dive,min=1,max=100"`
}

func CreateDataset(ctx *appcontext.Context, datasets *store.DatasetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request createDatasetRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			errorResponse(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}

		dataset, err := datasets.Create(c.Request.Context(), request.Name, request.Owner, request.Description, request.Tags)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateDataset) {
				errorResponse(c, http.StatusConflict, err.Error())
				return
			}
			ctx.Logger.Error("Failed to create dataset", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to create dataset")
			return
		}

		if err := utils.IndexDataset(ctx.MeilisearchClient, dataset); err != nil {
			ctx.Logger.Warn("Failed to index dataset for search", zap.Error(err))
		}

		successResponse(c, http.StatusCreated, utils.SerializeDataset(dataset), "Dataset created successfully")
	}
}

func GetDatasets(ctx *appcontext.Context, datasets *store.DatasetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Query("owner")
		tag := c.Query("tag")

		page := intQuery(c, "page", 1)
		if page < 1 {
			page = 1
		}
		limit := intQuery(c, "limit", config.DefaultPageSize())
		if limit < 1 || limit > 100 {
			limit = config.DefaultPageSize()
		}

		result, err := datasets.List(c.Request.Context(), owner, tag, page, limit)
		if err != nil {
			ctx.Logger.Error("Failed to list datasets", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to list datasets")
			return
		}

		successResponse(c, http.StatusOK, utils.SerializeDatasetPage(result), "")
	}
}

func GetDataset(ctx *appcontext.Context, datasets *store.DatasetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("datasetID"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid dataset ID")
			return
		}

		dataset, err := datasets.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrDatasetNotFound) {
				errorResponse(c, http.StatusNotFound, "Dataset not found")
				return
			}
			ctx.Logger.Error("Failed to get dataset", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to get dataset")
			return
		}

		successResponse(c, http.StatusOK, utils.SerializeDataset(dataset), "")
	}
}

func UpdateDataset(ctx *appcontext.Context, datasets *store.DatasetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("datasetID"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid dataset ID")
			return
		}

		var request updateDatasetRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			errorResponse(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}

		dataset, err := datasets.Update(c.Request.Context(), id, store.DatasetUpdate{
			Name:        request.Name,
			Owner:       request.Owner,
			Description: request.Description,
			Tags:        request.Tags,
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrDatasetNotFound):
				errorResponse(c, http.StatusNotFound, "Dataset not found")
			case errors.Is(err, store.ErrDuplicateDataset):
				errorResponse(c, http.StatusConflict, err.Error())
			default:
				ctx.Logger.Error("Failed to update dataset", zap.Error(err))
				errorResponse(c, http.StatusInternalServerError, "Failed to update dataset")
			}
			return
		}

		if err := utils.IndexDataset(ctx.MeilisearchClient, dataset); err != nil {
			ctx.Logger.Warn("Failed to index dataset for search", zap.Error(err))
		}

		successResponse(c, http.StatusOK, utils.SerializeDataset(dataset), "Dataset updated successfully")
	}
}

func DeleteDataset(ctx *appcontext.Context, datasets *store.DatasetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("datasetID"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid dataset ID")
			return
		}

		deleted, err := datasets.SoftDelete(c.Request.Context(), id)
		if err != nil {
			ctx.Logger.Error("Failed to delete dataset", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to delete dataset")
			return
		}
		if !deleted {
			errorResponse(c, http.StatusNotFound, "Dataset not found")
			return
		}

		if err := utils.RemoveDataset(ctx.MeilisearchClient, id); err != nil {
			ctx.Logger.Warn("Failed to remove dataset from search index", zap.Error(err))
		}

		successResponse(c, http.StatusOK, gin.H{"deleted": true}, "Dataset deleted successfully")
	}
}

func GetDatasetStats(ctx *appcontext.Context, datasets *store.DatasetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := datasets.Stats(c.Request.Context())
		if err != nil {
			ctx.Logger.Error("Failed to get dataset stats", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to get dataset stats")
			return
		}

		successResponse(c, http.StatusOK, stats, "")
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
