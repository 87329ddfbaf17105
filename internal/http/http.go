package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/appcontext"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/http/middleware"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/store"
)

type APIService struct {
	engine   *gin.Engine
	context  *appcontext.Context
	datasets *store.DatasetStore
	logs     *store.QualityLogStore
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	datasets := store.NewDatasetStore(ctx.DB)
	service := &APIService{
		engine:   engine,
		context:  ctx,
		datasets: datasets,
		logs:     store.NewQualityLogStore(ctx.DB, datasets),
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	h.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Dataset Catalog API",
			"version": "1.0.0",
		})
	})

	h.setupDatasetRoutes()
	h.setupQualityLogRoutes()
	h.setupSearchRoutes()
}

func (h *APIService) setupDatasetRoutes() {
	datasets := h.engine.Group("/datasets")

	datasets.POST("", CreateDataset(h.context, h.datasets))
	datasets.GET("", GetDatasets(h.context, h.datasets))
	datasets.GET("/stats", GetDatasetStats(h.context, h.datasets))
	datasets.GET("/:datasetID", GetDataset(h.context, h.datasets))
	datasets.PUT("/:datasetID", UpdateDataset(h.context, h.datasets))
	datasets.DELETE("/:datasetID", DeleteDataset(h.context, h.datasets))
}

func (h *APIService) setupQualityLogRoutes() {
	logs := h.engine.Group("/datasets/:datasetID")

	logs.POST("/quality-logs", CreateQualityLog(h.context, h.logs))
	logs.GET("/quality-logs", GetQualityLogs(h.context, h.logs))
	logs.GET("/quality-summary", GetQualitySummary(h.context, h.logs))
	logs.GET("/quality-status", GetQualityStatus(h.context, h.logs))
}

func (h *APIService) setupSearchRoutes() {
	h.engine.GET("/search", SearchDatasets(h.context))
}
