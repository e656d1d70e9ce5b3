package pipeline

import (
	"sync"
	"sync/atomic"
)

// SyncStats 실행 단위 집계(동시 upsert 완료가 갱신하므로 원자 연산 사용)
type SyncStats struct {
	total   atomic.Int64
	created atomic.Int64
	updated atomic.Int64
	skipped atomic.Int64

	mu   sync.Mutex
	errs []string
}

func NewSyncStats() *SyncStats { return &SyncStats{} }

func (s *SyncStats) AddTotal(n int64)   { s.total.Add(n) }
func (s *SyncStats) AddNew(n int64)     { s.created.Add(n) }
func (s *SyncStats) AddUpdated(n int64) { s.updated.Add(n) }
func (s *SyncStats) AddSkipped(n int64) { s.skipped.Add(n) }

// AddError 행 단위 오류 메시지 기록(행 식별 정보 포함 권장)
func (s *SyncStats) AddError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, msg)
}

func (s *SyncStats) Total() int64   { return s.total.Load() }
func (s *SyncStats) New() int64     { return s.created.Load() }
func (s *SyncStats) Updated() int64 { return s.updated.Load() }
func (s *SyncStats) Skipped() int64 { return s.skipped.Load() }

// Errors 기록된 오류 메시지 사본
func (s *SyncStats) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.errs))
	copy(out, s.errs)
	return out
}
