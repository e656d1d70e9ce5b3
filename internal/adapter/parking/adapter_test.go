package parking

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/parser"
)

func newTestAdapter() *Adapter {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(config.CategoryConfig{Mode: "api"}, nil, logger)
}

func TestTransform_ManagementNumberKey(t *testing.T) {
	a := newTestAdapter()
	f := a.Transform(parser.RawRow{
		"주차장관리번호":  "110-2-000001",
		"주차장명":     "세종로공영주차장",
		"소재지도로명주소": "서울특별시 종로구 세종대로 189",
		"위도":       "37.5720",
		"경도":       "126.9768",
		"주차구획수":    "451",
	})
	require.NotNil(t, f)
	assert.Equal(t, "parking:110-2-000001", f.SourceID)
	assert.Equal(t, model.CategoryParking, f.Category)
	assert.Equal(t, "세종로공영주차장", f.Name)
	assert.Equal(t, "서울", f.City)
	assert.Equal(t, "종로구", f.District)
	assert.Contains(t, string(f.Details), "451")
}

func TestTransform_RejectWithoutManagementNumber(t *testing.T) {
	a := newTestAdapter()
	f := a.Transform(parser.RawRow{
		"주차장명": "이름만있는주차장",
		"위도":   "37.5",
		"경도":   "127.0",
	})
	assert.Nil(t, f)
}

// 좌표도 주소도 없으면 지오코딩조차 불가능하므로 거부
func TestTransform_RejectMissingCoordsAndAddress(t *testing.T) {
	a := newTestAdapter()
	f := a.Transform(parser.RawRow{
		"주차장관리번호": "110-2-000002",
		"주차장명":    "좌표없는주차장",
	})
	assert.Nil(t, f)
}

func TestTransform_MissingCoordsWithAddressKept(t *testing.T) {
	a := newTestAdapter()
	f := a.Transform(parser.RawRow{
		"주차장관리번호": "110-2-000003",
		"주차장명":    "주소만있는주차장",
		"소재지지번주소": "전라북도 전주시 완산구 중앙동 1",
	})
	require.NotNil(t, f)
	assert.Equal(t, float64(0), f.Lat)
	assert.Equal(t, "전북", f.City)
	assert.Equal(t, "전주시", f.District)
}
