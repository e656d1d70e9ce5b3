package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
)

// HistoryRepository 동기화 이력 저장소.
// 이력 행은 실행을 생성한 오케스트레이터만 쓰며, 파이프라인은 절대 삭제하지 않는다
type HistoryRepository interface {
	Create(ctx context.Context, h *model.SyncHistory) error
	Finish(ctx context.Context, id string, status string, total, created, updated int64, errMsg *string) error
	ListRecent(ctx context.Context, category model.Category, limit int) ([]*model.SyncHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, h *model.SyncHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// Finish 종료 상태로 1회 갱신(success/failed)
func (r *historyRepository) Finish(ctx context.Context, id string, status string, total, created, updated int64, errMsg *string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.SyncHistory{}).Where("id = ?", id).Updates(map[string]any{
		"status":          status,
		"total_records":   total,
		"new_records":     created,
		"updated_records": updated,
		"error_message":   errMsg,
		"completed_at":    &now,
	}).Error
}

func (r *historyRepository) ListRecent(ctx context.Context, category model.Category, limit int) ([]*model.SyncHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	db := r.db.WithContext(ctx).Model(&model.SyncHistory{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	var list []*model.SyncHistory
	if err := db.Order("started_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
