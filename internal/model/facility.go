package model

import (
	"time"

	"gorm.io/datatypes"
)

// Category 시설 카테고리 열거형
type Category string

const (
	CategoryToilet  Category = "toilet"  // 공중화장실
	CategoryWifi    Category = "wifi"    // 공공와이파이
	CategoryClothes Category = "clothes" // 의류수거함
	CategoryParking Category = "parking" // 공영주차장
	CategoryLibrary Category = "library" // 공공도서관
)

// AllCategories 동기화 대상 전체 카테고리(등록 순서 고정)
func AllCategories() []Category {
	return []Category{CategoryToilet, CategoryWifi, CategoryClothes, CategoryParking, CategoryLibrary}
}

// Valid 알려진 카테고리인지 검사
func (c Category) Valid() bool {
	switch c {
	case CategoryToilet, CategoryWifi, CategoryClothes, CategoryParking, CategoryLibrary:
		return true
	}
	return false
}

// Facility 통합 시설 모델(카테고리별 원천 데이터 차이를 흡수)
// SourceID가 자연키이며 upsert 매칭 기준
type Facility struct {
	ID          string         `gorm:"column:id;primaryKey;type:varchar(80);comment:내부 ID(카테고리+관리번호 파생)"`
	SourceID    string         `gorm:"column:source_id;type:varchar(80);uniqueIndex;not null;comment:원천 데이터 관리번호"`
	Category    Category       `gorm:"column:category;type:varchar(16);index;not null;comment:시설 카테고리"`
	Name        string         `gorm:"column:name;type:varchar(256);not null;comment:시설명"`
	Address     *string        `gorm:"column:address;type:varchar(512);comment:지번주소"`
	RoadAddress *string        `gorm:"column:road_address;type:varchar(512);comment:도로명주소"`
	Lat         float64        `gorm:"column:lat;type:numeric(10,7);not null;comment:위도"`
	Lng         float64        `gorm:"column:lng;type:numeric(10,7);not null;comment:경도"`
	City        string         `gorm:"column:city;type:varchar(16);index;comment:시도 약칭"`
	District    string         `gorm:"column:district;type:varchar(32);index;comment:시군구"`
	Details     datatypes.JSON `gorm:"column:details;type:jsonb;comment:카테고리별 상세 속성"`
	SyncedAt    time.Time      `gorm:"column:synced_at;type:timestamp;not null;comment:마지막 동기화 시각"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:생성 시각"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:수정 시각"`
}

func (Facility) TableName() string { return "facilities" }

// 국내 좌표 경계(위도 33~39, 경도 124~132). 범위 밖이면 원천 데이터 오류로 간주
const (
	MinLat = 33.0
	MaxLat = 39.0
	MinLng = 124.0
	MaxLng = 132.0
)

// InBoundingBox 좌표가 국내 경계 안에 있는지 검사
func InBoundingBox(lat, lng float64) bool {
	return lat >= MinLat && lat <= MaxLat && lng >= MinLng && lng <= MaxLng
}
