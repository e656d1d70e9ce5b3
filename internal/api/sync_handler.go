package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/pipeline"
	"github.com/sseok-lee/ilsangkit-sub001/internal/service"
)

type SyncHandler struct {
	syncService *service.SyncService
	logger      *logrus.Logger
}

func NewSyncHandler(syncService *service.SyncService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{syncService: syncService, logger: logger}
}

// SyncCategoryHandler 지정 카테고리 동기화 실행
// @Summary 공공데이터 동기화 트리거
// @Param category path string true "카테고리(toilet/wifi/clothes/parking/library)"
// @Success 200 {object} map[string]any
// @Failure 400,500 {object} map[string]string
// @Router /sync/{category} [post]
func (h *SyncHandler) SyncCategoryHandler(c *gin.Context) {
	category := model.Category(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "알 수 없는 카테고리: " + string(category)})
		return
	}

	stats, err := h.syncService.SyncCategory(c.Request.Context(), category, service.RunOptions{})
	if err != nil {
		h.logger.WithError(err).Errorf("%s 동기화 실패", category)
		resp := gin.H{"error": err.Error()}
		if stats != nil {
			resp["stats"] = statsJSON(stats)
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": string(category) + " 동기화 완료",
		"stats":   statsJSON(stats),
	})
}

// ListHistoriesHandler 동기화 이력 조회
// @Router /api/sync/histories [get]
func (h *SyncHandler) ListHistoriesHandler(c *gin.Context) {
	category := model.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "알 수 없는 카테고리: " + string(category)})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	histories, err := h.syncService.Histories(c.Request.Context(), category, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"histories": histories})
}

func statsJSON(stats *pipeline.SyncStats) gin.H {
	return gin.H{
		"total":   stats.Total(),
		"new":     stats.New(),
		"updated": stats.Updated(),
		"skipped": stats.Skipped(),
		"errors":  len(stats.Errors()),
	}
}
