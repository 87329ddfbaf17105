package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/appcontext"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/config"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/store"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/utils"
)

type createQualityLogRequest struct {
	Status  string  `json:"status" binding:"required,oneof=PASS FAIL"`
	Details *string `json:"details" binding:"omitempty,max=1000"`
}

func CreateQualityLog(ctx *appcontext.Context, logs *store.QualityLogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("datasetID"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid dataset ID")
			return
		}

		var request createQualityLogRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			errorResponse(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}

		status, ok := entity.ParseQualityStatus(request.Status)
		if !ok {
			errorResponse(c, http.StatusBadRequest, "Status must be PASS or FAIL")
			return
		}

		log, err := logs.Create(c.Request.Context(), id, status, request.Details)
		if err != nil {
			if errors.Is(err, store.ErrDatasetNotFound) {
				errorResponse(c, http.StatusNotFound, "Dataset not found")
				return
			}
			ctx.Logger.Error("Failed to create quality log", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to create quality log")
			return
		}

		successResponse(c, http.StatusCreated, utils.SerializeQualityLog(log), "Quality log created successfully")
	}
}

func GetQualityLogs(ctx *appcontext.Context, logs *store.QualityLogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("datasetID"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid dataset ID")
			return
		}

		page := intQuery(c, "page", 1)
		if page < 1 {
			page = 1
		}
		limit := intQuery(c, "limit", config.DefaultPageSize())
		if limit < 1 || limit > 100 {
			limit = config.DefaultPageSize()
		}

		result, err := logs.List(c.Request.Context(), id, page, limit)
		if err != nil {
			ctx.Logger.Error("Failed to list quality logs", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to list quality logs")
			return
		}

		successResponse(c, http.StatusOK, utils.SerializeQualityLogPage(result), "")
	}
}

func GetQualitySummary(ctx *appcontext.Context, logs *store.QualityLogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("datasetID"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid dataset ID")
			return
		}

		summary, err := logs.Summary(c.Request.Context(), id)
		if err != nil {
			ctx.Logger.Error("Failed to get quality summary", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to get quality summary")
			return
		}

		successResponse(c, http.StatusOK, summary, "")
	}
}

func GetQualityStatus(ctx *appcontext.Context, logs *store.QualityLogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("datasetID"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "Invalid dataset ID")
			return
		}

		log, err := logs.LatestStatus(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNoQualityLogs) {
				errorResponse(c, http.StatusNotFound, "No quality logs found for this dataset")
				return
			}
			ctx.Logger.Error("Failed to get latest quality status", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to get latest quality status")
			return
		}

		successResponse(c, http.StatusOK, utils.SerializeQualityLog(log), "")
	}
}
