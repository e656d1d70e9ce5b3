package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter"
	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/geocode"
	"github.com/sseok-lee/ilsangkit-sub001/internal/interfaces"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/pipeline"
	"github.com/sseok-lee/ilsangkit-sub001/internal/repository"
)

// SyncService 동기화 오케스트레이터.
// 실행 1회 = 이력 행 1개 생성 + 종료 상태 1회 갱신.
// 행 단위 오류만 내부에서 흡수하고 나머지는 이력에 기록한 뒤 그대로 전파한다
type SyncService struct {
	facilityRepo repository.FacilityRepository
	historyRepo  repository.HistoryRepository
	registry     *adapter.Registry
	geocoder     *geocode.Client // nil이면 좌표 보정 생략
	logger       *logrus.Logger
	batchSize    int
}

func NewSyncService(db *gorm.DB, registry *adapter.Registry, geocoder *geocode.Client, cfg *config.Config, logger *logrus.Logger) *SyncService {
	return &SyncService{
		facilityRepo: repository.NewFacilityRepository(db),
		historyRepo:  repository.NewHistoryRepository(db),
		registry:     registry,
		geocoder:     geocoder,
		logger:       logger,
		batchSize:    cfg.Sync.BatchSize,
	}
}

// RunOptions 실행 옵션
type RunOptions struct {
	FilePath string // CSV 파일 경로(지정 시 원천 모드보다 우선)
}

// SyncCategory 카테고리 1개 동기화 실행.
// 상태 전이: running → success/failed(종료 상태는 정확히 1회만 기록).
// 실패 시에도 이력에 사유를 남긴 뒤 에러를 호출자에게 그대로 돌려준다
func (s *SyncService) SyncCategory(ctx context.Context, category model.Category, opts RunOptions) (*pipeline.SyncStats, error) {
	adapterIns, err := s.registry.Get(category)
	if err != nil {
		return nil, err
	}

	stats := pipeline.NewSyncStats()
	hist := &model.SyncHistory{
		ID:        uuid.NewString(),
		Category:  category,
		Status:    model.SyncStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.historyRepo.Create(ctx, hist); err != nil {
		return nil, fmt.Errorf("동기화 이력 생성 실패: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"category": category, "run_id": hist.ID}).Info("동기화 시작")

	if err := s.run(ctx, adapterIns, opts, stats); err != nil {
		msg := err.Error()
		stats.AddError(msg)
		if ferr := s.historyRepo.Finish(ctx, hist.ID, model.SyncStatusFailed,
			stats.Total(), stats.New(), stats.Updated(), &msg); ferr != nil {
			s.logger.WithError(ferr).Error("동기화 실패 이력 기록 실패")
		}
		return stats, err
	}

	if err := s.historyRepo.Finish(ctx, hist.ID, model.SyncStatusSuccess,
		stats.Total(), stats.New(), stats.Updated(), nil); err != nil {
		return stats, fmt.Errorf("동기화 이력 종료 갱신 실패: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"category": category,
		"total":    stats.Total(),
		"new":      stats.New(),
		"updated":  stats.Updated(),
		"skipped":  stats.Skipped(),
	}).Info("동기화 완료")
	return stats, nil
}

// run 수집 → 변환/중복제거 → 좌표 보정 → 배치 upsert
func (s *SyncService) run(ctx context.Context, a interfaces.CategoryAdapter, opts RunOptions, stats *pipeline.SyncStats) error {
	rows, err := a.Fetch(ctx, interfaces.FetchOptions{
		FilePath: opts.FilePath,
		OnProgress: func(fetched, total int) {
			s.logger.Debugf("%s 수집 진행: %d/%d", a.Category(), fetched, total)
		},
	})
	if err != nil {
		return fmt.Errorf("%s 수집 실패: %w", a.Category(), err)
	}
	stats.AddTotal(int64(len(rows)))

	records := pipeline.TransformAndDedupe(rows, a.Transform,
		func(f *model.Facility) string { return f.SourceID }, stats)

	if s.geocoder != nil {
		records = s.geocoder.BackfillMissing(ctx, records, stats)
	} else {
		// 지오코더 미구성 시 좌표 없는 레코드는 보정 없이 제외
		kept := make([]*model.Facility, 0, len(records))
		for _, r := range records {
			if r.Lat == 0 && r.Lng == 0 {
				stats.AddSkipped(1)
				continue
			}
			kept = append(kept, r)
		}
		records = kept
	}

	result, err := pipeline.BatchUpsert(ctx, records, s.facilityRepo.Upsert, s.batchSize,
		func(done, total int) {
			s.logger.Infof("%s 저장 진행: %d/%d", a.Category(), done, total)
		})
	stats.AddNew(result.NewCount)
	stats.AddUpdated(result.UpdateCount)
	if err != nil {
		return fmt.Errorf("%s 저장 실패: %w", a.Category(), err)
	}
	return nil
}

// Histories 최근 동기화 이력 조회(감사용)
func (s *SyncService) Histories(ctx context.Context, category model.Category, limit int) ([]*model.SyncHistory, error) {
	return s.historyRepo.ListRecent(ctx, category, limit)
}
