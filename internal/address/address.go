// Package address 행정구역 주소 문자열 정규화.
// 정부 데이터셋은 같은 시도를 2~4가지 표기로 섞어 쓰므로(서울특별시/서울시/서울),
// 휴리스틱이 아닌 고정 테이블로 모든 알려진 표기를 하나의 약칭으로 수렴시킨다.
package address

import "strings"

// cityTable 17개 광역자치단체의 전체 표기 → 약칭
var cityTable = map[string]string{
	"서울특별시": "서울", "서울시": "서울", "서울": "서울",
	"부산광역시": "부산", "부산시": "부산", "부산": "부산",
	"대구광역시": "대구", "대구시": "대구", "대구": "대구",
	"인천광역시": "인천", "인천시": "인천", "인천": "인천",
	"광주광역시": "광주", "광주시": "광주", "광주": "광주",
	"대전광역시": "대전", "대전시": "대전", "대전": "대전",
	"울산광역시": "울산", "울산시": "울산", "울산": "울산",
	"세종특별자치시": "세종", "세종시": "세종", "세종": "세종",
	"경기도": "경기", "경기": "경기",
	"강원특별자치도": "강원", "강원도": "강원", "강원": "강원",
	"충청북도": "충북", "충북": "충북",
	"충청남도": "충남", "충남": "충남",
	"전북특별자치도": "전북", "전라북도": "전북", "전북": "전북",
	"전라남도": "전남", "전남": "전남",
	"경상북도": "경북", "경북": "경북",
	"경상남도": "경남", "경남": "경남",
	"제주특별자치도": "제주", "제주도": "제주", "제주": "제주",
}

// NormalizeCity 시도 표기를 약칭으로 정규화. 테이블에 없는 입력은 그대로 반환
func NormalizeCity(raw string) string {
	raw = strings.TrimSpace(raw)
	if short, ok := cityTable[raw]; ok {
		return short
	}
	return raw
}

// CityDistrict 시도 약칭 + 시군구
type CityDistrict struct {
	City     string
	District string
}

// ParseAddress 주소 선두의 "시도 + 시군구" 패턴을 파싱.
// 세종은 기초자치단체가 없으므로 구/군 토큰 없이 고정 라벨을 돌려준다.
// 빈 주소이거나 패턴이 맞지 않으면 nil
func ParseAddress(addr string) *CityDistrict {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}

	tokens := strings.Fields(addr)
	first := tokens[0]

	city, ok := cityTable[first]
	if !ok {
		return nil
	}
	if city == "세종" {
		return &CityDistrict{City: "세종", District: "세종시"}
	}

	if len(tokens) < 2 {
		return nil
	}
	district := tokens[1]
	if !strings.HasSuffix(district, "구") && !strings.HasSuffix(district, "군") && !strings.HasSuffix(district, "시") {
		return nil
	}
	return &CityDistrict{City: city, District: district}
}

// ExtractCityDistrict 공백 분리 후 앞 두 토큰을 취하는 폴백.
// 원천 데이터가 이미 시도/시군구로 분리돼 있을 때 사용하며 실패하지 않는다(빈 문자열 허용)
func ExtractCityDistrict(addr string) CityDistrict {
	tokens := strings.Fields(strings.TrimSpace(addr))
	out := CityDistrict{}
	if len(tokens) > 0 {
		out.City = NormalizeCity(tokens[0])
	}
	if len(tokens) > 1 {
		out.District = tokens[1]
	}
	return out
}
