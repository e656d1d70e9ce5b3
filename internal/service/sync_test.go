package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter"
	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/pipeline"
	"github.com/sseok-lee/ilsangkit-sub001/internal/repository"
)

// fakeFacilityRepo 메모리 시설 저장소(자연키 기준 신규/갱신 판정)
type fakeFacilityRepo struct {
	mu        sync.Mutex
	seen      map[string]*model.Facility
	upsertErr error
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{seen: make(map[string]*model.Facility)}
}

func (r *fakeFacilityRepo) Upsert(_ context.Context, f *model.Facility) (pipeline.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return "", r.upsertErr
	}
	_, exists := r.seen[f.SourceID]
	r.seen[f.SourceID] = f
	if exists {
		return pipeline.UpsertUpdated, nil
	}
	return pipeline.UpsertNew, nil
}

func (r *fakeFacilityRepo) FindBySourceID(_ context.Context, sourceID string) (*model.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[sourceID], nil
}

func (r *fakeFacilityRepo) ListFacilities(_ context.Context, _ repository.FacilityFilter, _, _ int) ([]*model.Facility, int64, error) {
	return nil, 0, nil
}

// fakeHistoryRepo 이력 생성/종료 호출을 기록하는 저장소
type fakeHistoryRepo struct {
	mu        sync.Mutex
	created   []*model.SyncHistory
	finishes  []finishCall
	createErr error
}

type finishCall struct {
	id      string
	status  string
	total   int64
	created int64
	updated int64
	errMsg  *string
}

func (r *fakeHistoryRepo) Create(_ context.Context, h *model.SyncHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, h)
	return nil
}

func (r *fakeHistoryRepo) Finish(_ context.Context, id string, status string, total, created, updated int64, errMsg *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishes = append(r.finishes, finishCall{id: id, status: status, total: total, created: created, updated: updated, errMsg: errMsg})
	return nil
}

func (r *fakeHistoryRepo) ListRecent(_ context.Context, _ model.Category, _ int) ([]*model.SyncHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, nil
}

const toiletCSV = "화장실명,소재지도로명주소,소재지지번주소,WGS84위도,WGS84경도,구분,개방시간\n" +
	"시청앞화장실,서울특별시 중구 세종대로 110,서울특별시 중구 태평로1가 31,37.5663,126.9779,공중화장실,24시간\n" +
	"역전화장실,부산광역시 동구 중앙대로 206,,35.1151,129.0403,공중화장실,05:00~24:00\n" +
	"시청앞화장실,서울특별시 중구 세종대로 110,서울특별시 중구 태평로1가 31,37.5665,126.9780,공중화장실,24시간\n"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toilet.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestService(t *testing.T, facRepo repository.FacilityRepository, histRepo repository.HistoryRepository) *SyncService {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		Categories: map[string]config.CategoryConfig{
			"toilet": {Mode: "csv"},
		},
	}
	registry := adapter.NewRegistry(cfg, nil, logger)
	return &SyncService{
		facilityRepo: facRepo,
		historyRepo:  histRepo,
		registry:     registry,
		logger:       logger,
		batchSize:    2,
	}
}

func TestSyncCategory_Success(t *testing.T) {
	facRepo := newFakeFacilityRepo()
	histRepo := &fakeHistoryRepo{}
	svc := newTestService(t, facRepo, histRepo)
	path := writeTempCSV(t, toiletCSV)

	stats, err := svc.SyncCategory(context.Background(), model.CategoryToilet, RunOptions{FilePath: path})
	require.NoError(t, err)

	// 3행 중 중복 1행은 후행이 덮어써서 저장은 2건
	assert.Equal(t, int64(3), stats.Total())
	assert.Equal(t, int64(2), stats.New())
	assert.Equal(t, int64(0), stats.Updated())
	assert.Len(t, facRepo.seen, 2)

	// 중복 자연키는 마지막 행의 좌표로 남는다
	dup, _ := facRepo.FindBySourceID(context.Background(),
		"toilet:시청앞화장실:서울특별시 중구 세종대로 110")
	require.NotNil(t, dup)
	assert.Equal(t, 37.5665, dup.Lat)

	require.Len(t, histRepo.created, 1)
	require.Len(t, histRepo.finishes, 1)
	fin := histRepo.finishes[0]
	assert.Equal(t, histRepo.created[0].ID, fin.id)
	assert.Equal(t, model.SyncStatusSuccess, fin.status)
	assert.Equal(t, int64(3), fin.total)
	assert.Equal(t, int64(2), fin.created)
	assert.Nil(t, fin.errMsg)
}

func TestSyncCategory_SecondRunUpdates(t *testing.T) {
	facRepo := newFakeFacilityRepo()
	histRepo := &fakeHistoryRepo{}
	svc := newTestService(t, facRepo, histRepo)
	path := writeTempCSV(t, toiletCSV)

	_, err := svc.SyncCategory(context.Background(), model.CategoryToilet, RunOptions{FilePath: path})
	require.NoError(t, err)

	stats, err := svc.SyncCategory(context.Background(), model.CategoryToilet, RunOptions{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.New())
	assert.Equal(t, int64(2), stats.Updated())
	assert.Len(t, facRepo.seen, 2)
}

func TestSyncCategory_FetchFailure(t *testing.T) {
	facRepo := newFakeFacilityRepo()
	histRepo := &fakeHistoryRepo{}
	svc := newTestService(t, facRepo, histRepo)

	stats, err := svc.SyncCategory(context.Background(), model.CategoryToilet,
		RunOptions{FilePath: filepath.Join(t.TempDir(), "없는파일.csv")})
	require.Error(t, err)
	require.NotNil(t, stats)
	assert.NotEmpty(t, stats.Errors())

	// 실패해도 종료 상태는 정확히 1회 기록되고 사유가 남는다
	require.Len(t, histRepo.finishes, 1)
	fin := histRepo.finishes[0]
	assert.Equal(t, model.SyncStatusFailed, fin.status)
	require.NotNil(t, fin.errMsg)
	assert.Contains(t, *fin.errMsg, "수집 실패")
}

func TestSyncCategory_UpsertFailure(t *testing.T) {
	facRepo := newFakeFacilityRepo()
	facRepo.upsertErr = errors.New("connection refused")
	histRepo := &fakeHistoryRepo{}
	svc := newTestService(t, facRepo, histRepo)
	path := writeTempCSV(t, toiletCSV)

	stats, err := svc.SyncCategory(context.Background(), model.CategoryToilet, RunOptions{FilePath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "저장 실패")
	assert.Equal(t, int64(3), stats.Total())

	require.Len(t, histRepo.finishes, 1)
	assert.Equal(t, model.SyncStatusFailed, histRepo.finishes[0].status)
	require.NotNil(t, histRepo.finishes[0].errMsg)
}

func TestSyncCategory_HistoryCreateFailure(t *testing.T) {
	facRepo := newFakeFacilityRepo()
	histRepo := &fakeHistoryRepo{createErr: errors.New("table missing")}
	svc := newTestService(t, facRepo, histRepo)

	_, err := svc.SyncCategory(context.Background(), model.CategoryToilet, RunOptions{FilePath: "아무경로.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "이력 생성 실패")
	assert.Empty(t, histRepo.finishes)
}

func TestSyncCategory_UnknownCategory(t *testing.T) {
	svc := newTestService(t, newFakeFacilityRepo(), &fakeHistoryRepo{})
	_, err := svc.SyncCategory(context.Background(), model.Category("병원"), RunOptions{})
	require.Error(t, err)
}
