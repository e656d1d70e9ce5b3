package model

import "time"

// 동기화 상태
const (
	SyncStatusRunning = "running"
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// SyncHistory 동기화 실행 이력(1회 실행당 1행, 감사 목적상 삭제하지 않음)
// running으로 생성 → 종료 시 success/failed로 정확히 1회만 갱신
type SyncHistory struct {
	ID             string     `gorm:"column:id;primaryKey;type:varchar(40);comment:실행 ID(UUID)"`
	Category       Category   `gorm:"column:category;type:varchar(16);index;not null;comment:동기화 카테고리"`
	Status         string     `gorm:"column:status;type:varchar(16);not null;default:running;comment:상태 running/success/failed"`
	TotalRecords   int64      `gorm:"column:total_records;not null;default:0;comment:원천 레코드 수"`
	NewRecords     int64      `gorm:"column:new_records;not null;default:0;comment:신규 건수"`
	UpdatedRecords int64      `gorm:"column:updated_records;not null;default:0;comment:갱신 건수"`
	ErrorMessage   *string    `gorm:"column:error_message;type:text;comment:실패 사유"`
	StartedAt      time.Time  `gorm:"column:started_at;type:timestamp;not null;comment:시작 시각"`
	CompletedAt    *time.Time `gorm:"column:completed_at;type:timestamp;comment:종료 시각"`
}

func (SyncHistory) TableName() string { return "sync_histories" }
