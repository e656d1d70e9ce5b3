package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// RawRow 헤더 셀 → 원본 문자열 값 매핑(파싱된 한 행)
type RawRow map[string]string

// Options CSV 파싱 옵션
type Options struct {
	// SkipRows 헤더 이전에 버릴 선행 라인 수(안내문 등 프리앰블 대응)
	SkipRows int
}

// Parse CSV 텍스트를 RawRow 시퀀스로 변환.
// 첫 번째(스킵 이후) 라인이 헤더이며, 이후 각 행을 헤더 셀 기준으로 매핑한다.
//   - \n, \r\n 라인 구분 모두 인식
//   - 큰따옴표 필드 안의 쉼표/개행/이스케이프된 따옴표("") 처리
//   - 헤더보다 셀이 적은 행은 빈 문자열로 채움, 많은 행은 잘라냄
//   - 빈 입력, 헤더만 있는 입력은 빈 시퀀스(에러 아님)
//
// 닫히지 않은 따옴표는 LazyQuotes로 파일 끝까지 필드의 일부로 취급한다.
// 원천 데이터 품질을 통제할 수 없으므로 파싱 도중 에러를 내지 않는다.
func Parse(content string, opts *Options) []RawRow {
	skip := 0
	if opts != nil {
		skip = opts.SkipRows
	}
	content = strings.TrimPrefix(content, "\uFEFF")
	for i := 0; i < skip; i++ {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			return []RawRow{}
		}
		content = content[idx+1:]
	}

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if err != nil {
		return []RawRow{}
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
	}

	rows := []RawRow{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ParseFile CSV 파일을 읽어 인코딩 변환 후 파싱
func ParseFile(path string, opts *Options) ([]RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(DecodeToUTF8(data), opts), nil
}
