package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCity(t *testing.T) {
	// 같은 시도의 모든 표기가 하나의 약칭으로 수렴
	assert.Equal(t, "서울", NormalizeCity("서울특별시"))
	assert.Equal(t, "서울", NormalizeCity("서울시"))
	assert.Equal(t, "서울", NormalizeCity("서울"))
	assert.Equal(t, "전북", NormalizeCity("전라북도"))
	assert.Equal(t, "전북", NormalizeCity("전북특별자치도"))
	assert.Equal(t, "강원", NormalizeCity("강원특별자치도"))
	assert.Equal(t, "제주", NormalizeCity("제주특별자치도"))

	// 모르는 입력은 그대로 통과
	assert.Equal(t, "알수없음", NormalizeCity("알수없음"))
	assert.Equal(t, "", NormalizeCity("  "))
}

func TestParseAddress(t *testing.T) {
	cd := ParseAddress("서울특별시 중구 세종대로 110")
	require.NotNil(t, cd)
	assert.Equal(t, "서울", cd.City)
	assert.Equal(t, "중구", cd.District)

	cd = ParseAddress("경기도 수원시 팔달구")
	require.NotNil(t, cd)
	assert.Equal(t, "경기", cd.City)
	assert.Equal(t, "수원시", cd.District)

	cd = ParseAddress("충청북도 청주시 상당구 상당로")
	require.NotNil(t, cd)
	assert.Equal(t, "충북", cd.City)
}

func TestParseAddress_Sejong(t *testing.T) {
	// 세종은 시군구가 없어 뒤 토큰과 무관하게 고정 라벨
	for _, addr := range []string{"세종특별자치시 아무동", "세종시 한누리대로 2130", "세종특별자치시"} {
		cd := ParseAddress(addr)
		require.NotNil(t, cd, addr)
		assert.Equal(t, "세종", cd.City)
		assert.Equal(t, "세종시", cd.District)
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	assert.Nil(t, ParseAddress(""))
	assert.Nil(t, ParseAddress("   "))
	assert.Nil(t, ParseAddress("미지의도시 어딘가"))
	// 시도만 있고 시군구 토큰이 없는 경우
	assert.Nil(t, ParseAddress("경기도"))
	assert.Nil(t, ParseAddress("경기도 세종대로"))
}

func TestExtractCityDistrict(t *testing.T) {
	cd := ExtractCityDistrict("서울특별시 강남구 테헤란로")
	assert.Equal(t, "서울", cd.City)
	assert.Equal(t, "강남구", cd.District)

	// 실패하지 않고 빈 문자열 허용
	cd = ExtractCityDistrict("")
	assert.Equal(t, "", cd.City)
	assert.Equal(t, "", cd.District)

	cd = ExtractCityDistrict("부산")
	assert.Equal(t, "부산", cd.City)
	assert.Equal(t, "", cd.District)
}
