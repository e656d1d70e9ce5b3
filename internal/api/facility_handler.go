package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/repository"
)

type FacilityHandler struct {
	repo   repository.FacilityRepository
	logger *logrus.Logger
}

func NewFacilityHandler(db *gorm.DB, logger *logrus.Logger) *FacilityHandler {
	return &FacilityHandler{repo: repository.NewFacilityRepository(db), logger: logger}
}

// ListFacilities 시설 목록 조회(프런트 지도/목록 화면용)
// @Router /api/facilities [get]
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	category := model.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "알 수 없는 카테고리: " + string(category)})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.FacilityFilter{
		Category: category,
		City:     c.Query("city"),
		District: c.Query("district"),
	}
	list, total, err := h.repo.ListFacilities(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("시설 목록 조회 실패")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
		"facilities": list,
	})
}
