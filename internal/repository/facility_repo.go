package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/pipeline"
)

// FacilityRepository 시설 저장소(자연키 source_id 기준 멱등 upsert)
type FacilityRepository interface {
	Upsert(ctx context.Context, f *model.Facility) (pipeline.UpsertResult, error)
	FindBySourceID(ctx context.Context, sourceID string) (*model.Facility, error)
	ListFacilities(ctx context.Context, filter FacilityFilter, page, pageSize int) ([]*model.Facility, int64, error)
}

// FacilityFilter 시설 목록 필터
type FacilityFilter struct {
	Category model.Category // 카테고리
	City     string         // 시도 약칭
	District string         // 시군구
}

type facilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

// Upsert source_id 충돌 시 갱신, 아니면 삽입. 신규/갱신 태그를 돌려준다
func (r *facilityRepository) Upsert(ctx context.Context, f *model.Facility) (pipeline.UpsertResult, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Facility{}).
		Where("source_id = ?", f.SourceID).Count(&count).Error; err != nil {
		return "", err
	}

	now := time.Now()
	f.SyncedAt = now
	f.UpdatedAt = now
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "address", "road_address", "lat", "lng",
			"city", "district", "details", "synced_at", "updated_at",
		}),
	}).Create(f).Error; err != nil {
		return "", err
	}

	if count > 0 {
		return pipeline.UpsertUpdated, nil
	}
	return pipeline.UpsertNew, nil
}

func (r *facilityRepository) FindBySourceID(ctx context.Context, sourceID string) (*model.Facility, error) {
	var f model.Facility
	if err := r.db.WithContext(ctx).Where("source_id = ?", sourceID).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *facilityRepository) ListFacilities(ctx context.Context, filter FacilityFilter, page, pageSize int) ([]*model.Facility, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	db := r.db.WithContext(ctx).Model(&model.Facility{})
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		db = db.Where("city = ?", filter.City)
	}
	if filter.District != "" {
		db = db.Where("district = ?", filter.District)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []*model.Facility
	if err := db.Order("name ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
