package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// resultCodeOK 공공데이터포털 정상 응답 코드
const resultCodeOK = "00"

// Item 원천 API의 개별 레코드(필드 구성이 카테고리마다 달라 비정형으로 보존)
type Item map[string]any

// Str 문자열 필드 조회. 숫자로 내려오는 값도 문자열로 변환한다
func (it Item) Str(key string) string {
	switch v := it[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Float 수치 필드 조회. 문자열로 내려온 숫자도 허용한다
func (it Item) Float(key string) (float64, bool) {
	switch v := it[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ItemList 응답 body.items의 유니언 형태를 평탄화한 목록.
// 원천 응답은 아래 세 형태가 섞여 내려온다.
//   - {"item": [ ... ]}        일반 목록
//   - {"item": { ... }}        1건일 때 단일 객체 래핑
//   - null / "" / 필드 없음    빈 페이지
type ItemList []Item

func (l *ItemList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*l = nil
		return nil
	}

	switch data[0] {
	case '[':
		var arr []Item
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	case '{':
		var wrap struct {
			Item json.RawMessage `json:"item"`
		}
		if err := json.Unmarshal(data, &wrap); err != nil {
			return err
		}
		inner := bytes.TrimSpace(wrap.Item)
		if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
			*l = nil
			return nil
		}
		if inner[0] == '[' {
			var arr []Item
			if err := json.Unmarshal(inner, &arr); err != nil {
				return err
			}
			*l = arr
			return nil
		}
		var single Item
		if err := json.Unmarshal(inner, &single); err != nil {
			return err
		}
		*l = ItemList{single}
		return nil
	default:
		return fmt.Errorf("items 필드 형태를 해석할 수 없음: %s", string(data))
	}
}

// envelope 공공데이터포털 표준 응답 래퍼
type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      ItemList `json:"items"`
			NumOfRows  int      `json:"numOfRows"`
			PageNo     int      `json:"pageNo"`
			TotalCount int      `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// APIError 원천 API가 정상 코드(00) 외의 결과를 돌려준 경우.
// 전송 오류와 재시도 정책을 분리할 수 있도록 코드를 보존한다
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("공공데이터 API 오류(code=%s): %s", e.Code, e.Message)
}
