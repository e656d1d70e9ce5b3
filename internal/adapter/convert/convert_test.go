package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseok-lee/ilsangkit-sub001/internal/openapi"
)

func TestDeriveID_Deterministic(t *testing.T) {
	a := DeriveID("toilet:시청앞화장실:서울특별시 중구 세종대로 110")
	b := DeriveID("toilet:시청앞화장실:서울특별시 중구 세종대로 110")
	c := DeriveID("toilet:다른화장실:부산광역시 동구 중앙대로 206")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}

func TestCoords(t *testing.T) {
	tests := []struct {
		name    string
		lat     string
		lng     string
		missing bool
		ok      bool
	}{
		{"정상 좌표", "37.5663", "126.9779", false, true},
		{"둘 다 공백", "", "  ", true, true},
		{"위도만 공백", "", "126.9779", false, false},
		{"숫자 아님", "위도", "126.9779", false, false},
		{"경계 남쪽 밖", "32.9", "126.9", false, false},
		{"경계 동쪽 밖", "37.5", "132.1", false, false},
		{"경계값 포함", "33.0", "124.0", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, missing, ok := Coords(tt.lat, tt.lng)
			assert.Equal(t, tt.missing, missing)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRegion(t *testing.T) {
	// 원천 컬럼 힌트가 먼저
	city, district := Region("", "", "전라북도", "전주시")
	assert.Equal(t, "전북", city)
	assert.Equal(t, "전주시", district)

	// 힌트 없으면 도로명 주소 파싱
	city, district = Region("서울특별시 중구 세종대로 110", "", "", "")
	assert.Equal(t, "서울", city)
	assert.Equal(t, "중구", district)

	// 도로명이 비면 지번 주소로
	city, district = Region("", "부산광역시 동구 초량동 1187", "", "")
	assert.Equal(t, "부산", city)
	assert.Equal(t, "동구", district)

	// 세종은 시군구가 없어 고정값
	city, district = Region("세종특별자치시 한누리대로 2130", "", "", "")
	assert.Equal(t, "세종", city)
	assert.Equal(t, "세종시", district)

	// 파싱 불가 주소는 폴백(빈 값 허용)
	city, district = Region("어딘지 모르는 곳", "", "", "")
	assert.Equal(t, "어딘지", city)
	assert.Equal(t, "모르는", district)
}

func TestNullableStr(t *testing.T) {
	assert.Nil(t, NullableStr("   "))
	v := NullableStr(" 서울 ")
	require.NotNil(t, v)
	assert.Equal(t, "서울", *v)
}

func TestItemRow(t *testing.T) {
	row := ItemRow(openapi.Item{
		"주차장명":  "세종로공영주차장",
		"주차구획수": float64(451),
	})
	assert.Equal(t, "세종로공영주차장", row["주차장명"])
	assert.Equal(t, "451", row["주차구획수"])
}
