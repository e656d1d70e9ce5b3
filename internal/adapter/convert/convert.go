// Package convert 어댑터 공통 변환 유틸(좌표 파싱, 행정구역 결정, ID 파생)
package convert

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sseok-lee/ilsangkit-sub001/internal/address"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/openapi"
	"github.com/sseok-lee/ilsangkit-sub001/internal/parser"
)

// idNamespace source_id → 내부 ID 파생용 고정 네임스페이스.
// 같은 자연키는 실행이 달라도 항상 같은 내부 ID로 떨어진다
var idNamespace = uuid.MustParse("f2aa7da4-40c4-4a6e-9d5c-3b1a9f0e6c21")

// DeriveID 자연키에서 결정적 내부 ID(UUIDv5) 파생
func DeriveID(sourceID string) string {
	return uuid.NewSHA1(idNamespace, []byte(sourceID)).String()
}

// ParseLatLng 좌표 문자열 파싱 + 국내 경계 검증
func ParseLatLng(latStr, lngStr string) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return 0, 0, false
	}
	if !model.InBoundingBox(lat, lng) {
		return 0, 0, false
	}
	return lat, lng, true
}

// Coords 좌표 파싱. 두 값이 모두 비어 있으면 지오코딩 보정 대상으로 (0,0)을 돌려준다.
// 값이 있는데 숫자가 아니거나 국내 경계를 벗어나면 ok=false(레코드 거부 대상)
func Coords(latStr, lngStr string) (lat, lng float64, missing, ok bool) {
	latStr = strings.TrimSpace(latStr)
	lngStr = strings.TrimSpace(lngStr)
	if latStr == "" && lngStr == "" {
		return 0, 0, true, true
	}
	lat, lng, ok = ParseLatLng(latStr, lngStr)
	return lat, lng, false, ok
}

// Region 시도/시군구 결정.
// 원천에 시도명·시군구명 컬럼이 이미 있으면 그 값을 정규화해 쓰고,
// 없으면 주소 문자열 파싱으로 추출한다
func Region(roadAddr, jibunAddr, cityHint, districtHint string) (string, string) {
	cityHint = strings.TrimSpace(cityHint)
	districtHint = strings.TrimSpace(districtHint)
	if cityHint != "" && districtHint != "" {
		return address.NormalizeCity(cityHint), districtHint
	}
	for _, addr := range []string{roadAddr, jibunAddr} {
		if cd := address.ParseAddress(addr); cd != nil {
			return cd.City, cd.District
		}
	}
	// 파싱 불가 시 폴백(빈 문자열 허용)
	cd := address.ExtractCityDistrict(FirstNonEmpty(roadAddr, jibunAddr))
	return cd.City, cd.District
}

// NullableStr 빈 문자열이면 nil
func NullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// DetailsJSON 카테고리별 상세 속성을 jsonb 페이로드로 직렬화(실패 시 빈 객체)
func DetailsJSON(m map[string]any) datatypes.JSON {
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

// ItemRow 원천 API 아이템을 CSV 행과 같은 RawRow 형태로 변환.
// 변환기 하나가 CSV/API 양쪽 원천을 동일하게 처리할 수 있게 한다
func ItemRow(it openapi.Item) parser.RawRow {
	row := make(parser.RawRow, len(it))
	for k := range it {
		row[k] = it.Str(k)
	}
	return row
}

// FirstNonEmpty 공백이 아닌 첫 값
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
