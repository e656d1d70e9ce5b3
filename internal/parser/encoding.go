package parser

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DecodeToUTF8 원천 CSV 바이트를 UTF-8 문자열로 변환.
// 정부 공개데이터 CSV는 CP949(EUC-KR)로 내려오는 경우가 많아
// UTF-8이 아니면 EUC-KR 디코딩을 시도하고, 그마저 실패하면 원본을 그대로 돌려준다.
func DecodeToUTF8(data []byte) string {
	data = bytes.TrimPrefix(data, bomUTF8)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
