// Package library 전국도서관표준데이터(공공데이터포털 API) 어댑터
package library

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

func (a *Adapter) Category() model.Category { return model.CategoryLibrary }

func (a *Adapter) Fetch(ctx context.Context, opts interfaces.FetchOptions) ([]parser.RawRow, error) {
	if opts.FilePath != "" || a.cfg.Mode == "csv" {
		path := convert.FirstNonEmpty(opts.FilePath, a.cfg.CSVPath)
		if path == "" {
			return nil, fmt.Errorf("도서관 CSV 경로가 설정되지 않음")
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
		return nil, fmt.Errorf("도서관 수집 실패: %w", err)
	}

	rows := make([]parser.RawRow, len(items))
	for i, it := range items {
		rows[i] = convert.ItemRow(it)
	}
	return rows, nil
}

func (a *Adapter) Transform(row parser.RawRow) *model.Facility {
	name := strings.TrimSpace(row["도서관명"])
	if name == "" {
		return nil
	}
	road := strings.TrimSpace(row["소재지도로명주소"])
	lat, lng, missing, ok := convert.Coords(row["위도"], row["경도"])
	if !ok {
		return nil
	}
	if missing && road == "" {
		return nil
	}

	city, district := convert.Region(road, "", row["시도명"], row["시군구명"])
	sourceID := fmt.Sprintf("library:%s:%s", name, road)

	details := map[string]any{
		"도서관유형":    row["도서관유형"],
		"휴관일":      row["휴관일"],
		"평일운영시작시각": row["평일운영시작시각"],
		"평일운영종료시각": row["평일운영종료시각"],
		"열람좌석수":    row["열람좌석수"],
		"자료수도서":    row["자료수(도서)"],
		"운영기관명":    row["운영기관명"],
		"도서관전화번호":  row["도서관전화번호"],
		"데이터기준일자":  row["데이터기준일자"],
	}

	return &model.Facility{
		ID:          convert.DeriveID(sourceID),
		SourceID:    sourceID,
		Category:    model.CategoryLibrary,
		Name:        name,
		RoadAddress: convert.NullableStr(road),
		Lat:         lat,
		Lng:         lng,
		City:        city,
		District:    district,
		Details:     convert.DetailsJSON(details),
	}
}
