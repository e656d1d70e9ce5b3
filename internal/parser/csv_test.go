package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestParse_BasicRows(t *testing.T) {
	rows := Parse("이름,나이\n홍길동,30\r\n김철수,25", nil)
	require.Len(t, rows, 2)
	assert.Equal(t, RawRow{"이름": "홍길동", "나이": "30"}, rows[0])
	assert.Equal(t, RawRow{"이름": "김철수", "나이": "25"}, rows[1])
}

func TestParse_EmptyInputs(t *testing.T) {
	assert.Empty(t, Parse("", nil))
	assert.Empty(t, Parse("header1,header2", nil))
	assert.Empty(t, Parse("header1,header2\n", nil))
}

func TestParse_QuotedFields(t *testing.T) {
	rows := Parse("a,b\n\"x, y\",2", nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "x, y", rows[0]["a"])

	rows = Parse("a,b\n\"인용 \"\"문구\"\" 포함\",2", nil)
	require.Len(t, rows, 1)
	assert.Equal(t, `인용 "문구" 포함`, rows[0]["a"])
}

func TestParse_EmbeddedNewline(t *testing.T) {
	rows := Parse("a,b\n\"줄1\n줄2\",2", nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "줄1\n줄2", rows[0]["a"])
	assert.Equal(t, "2", rows[0]["b"])
}

func TestParse_BOMStripped(t *testing.T) {
	rows := Parse("\uFEFFa,b\n1,2", nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
}

func TestParse_SkipRows(t *testing.T) {
	content := "안내문입니다\n발급일: 2024-01-01\na,b\n1,2"
	rows := Parse(content, &Options{SkipRows: 2})
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])

	// 스킵할 라인이 내용보다 많으면 빈 결과
	assert.Empty(t, Parse("a,b", &Options{SkipRows: 5}))
}

func TestParse_ShortRowPadded(t *testing.T) {
	rows := Parse("a,b,c\n1,2", nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "2", rows[0]["b"])
	assert.Equal(t, "", rows[0]["c"])
}

func TestParse_UnterminatedQuote(t *testing.T) {
	// 닫히지 않은 따옴표: 파일 끝까지 필드로 취급하고 에러 없이 반환
	rows := Parse("a,b\n\"깨진행,2\nx,y", nil)
	require.NotNil(t, rows)
}

func TestDecodeToUTF8_EUCKR(t *testing.T) {
	original := "화장실명,소재지\n남산공원화장실,서울특별시 중구"
	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(original))
	require.NoError(t, err)

	decoded := DecodeToUTF8(encoded)
	assert.Equal(t, original, decoded)
}

func TestDecodeToUTF8_PassthroughAndBOM(t *testing.T) {
	assert.Equal(t, "a,b", DecodeToUTF8([]byte("a,b")))
	assert.Equal(t, "a,b", DecodeToUTF8([]byte{0xEF, 0xBB, 0xBF, 'a', ',', 'b'}))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	content, err := korean.EUCKR.NewEncoder().Bytes([]byte("이름,주소\n도서관,서울특별시 중구 세종대로"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	rows, err := ParseFile(path, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "도서관", rows[0]["이름"])

	_, err = ParseFile(filepath.Join(t.TempDir(), "none.csv"), nil)
	assert.Error(t, err)
}
