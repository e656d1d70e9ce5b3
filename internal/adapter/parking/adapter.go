// Package parking 전국주차장정보표준데이터(공공데이터포털 API) 어댑터
package parking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter/convert"
	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/interfaces"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/openapi"
	"github.com/sseok-lee/ilsangkit-sub001/internal/parser"
)

type Adapter struct {
	cfg    config.CategoryConfig
	client *openapi.Client
	logger *logrus.Logger
}

func New(cfg config.CategoryConfig, client *openapi.Client, logger *logrus.Logger) *Adapter {
	return &Adapter{cfg: cfg, client: client, logger: logger}
}

func (a *Adapter) Category() model.Category { return model.CategoryParking }

func (a *Adapter) Fetch(ctx context.Context, opts interfaces.FetchOptions) ([]parser.RawRow, error) {
	if opts.FilePath != "" || a.cfg.Mode == "csv" {
		path := convert.FirstNonEmpty(opts.FilePath, a.cfg.CSVPath)
		if path == "" {
			return nil, fmt.Errorf("주차장 CSV 경로가 설정되지 않음")
		}
		return parser.ParseFile(path, &parser.Options{SkipRows: a.cfg.SkipRows})
	}

	if a.client == nil {
		return nil, openapi.ErrMissingServiceKey
	}
	items, err := a.client.FetchAll(ctx, openapi.RequestConfig{
		BaseURL:   a.cfg.BaseURL,
		Path:      a.cfg.Path,
		NumOfRows: a.cfg.NumOfRows,
	}, openapi.FetchAllOptions{
		PageDelay:  time.Duration(a.cfg.PageDelayMs) * time.Millisecond,
		MaxPages:   a.cfg.MaxPages,
		OnProgress: opts.OnProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("주차장 수집 실패: %w", err)
	}

	rows := make([]parser.RawRow, len(items))
	for i, it := range items {
		rows[i] = convert.ItemRow(it)
	}
	return rows, nil
}

// Transform 표준데이터 중 드물게 관리번호가 있는 카테고리. 그대로 자연키로 쓴다
func (a *Adapter) Transform(row parser.RawRow) *model.Facility {
	mgmtNo := strings.TrimSpace(row["주차장관리번호"])
	name := strings.TrimSpace(row["주차장명"])
	if mgmtNo == "" || name == "" {
		return nil
	}
	road := strings.TrimSpace(row["소재지도로명주소"])
	jibun := strings.TrimSpace(row["소재지지번주소"])
	lat, lng, missing, ok := convert.Coords(row["위도"], row["경도"])
	if !ok {
		return nil
	}
	if missing && road == "" && jibun == "" {
		return nil
	}

	city, district := convert.Region(road, jibun, "", "")
	sourceID := fmt.Sprintf("parking:%s", mgmtNo)

	details := map[string]any{
		"주차장구분":    row["주차장구분"],
		"주차장유형":    row["주차장유형"],
		"주차구획수":    row["주차구획수"],
		"운영요일":     row["운영요일"],
		"평일운영시작시각": row["평일운영시작시각"],
		"평일운영종료시각": row["평일운영종료시각"],
		"요금정보":     row["요금정보"],
		"주차기본시간":   row["주차기본시간"],
		"주차기본요금":   row["주차기본요금"],
		"데이터기준일자":  row["데이터기준일자"],
	}

	return &model.Facility{
		ID:          convert.DeriveID(sourceID),
		SourceID:    sourceID,
		Category:    model.CategoryParking,
		Name:        name,
		Address:     convert.NullableStr(jibun),
		RoadAddress: convert.NullableStr(road),
		Lat:         lat,
		Lng:         lng,
		City:        city,
		District:    district,
		Details:     convert.DetailsJSON(details),
	}
}
