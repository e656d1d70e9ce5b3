// Package clothes 의류수거함 설치 현황(지자체 CSV) 어댑터
package clothes

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter/convert"
	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/interfaces"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/parser"
)

type Adapter struct {
	cfg    config.CategoryConfig
	logger *logrus.Logger
}

func New(cfg config.CategoryConfig, logger *logrus.Logger) *Adapter {
	return &Adapter{cfg: cfg, logger: logger}
}

func (a *Adapter) Category() model.Category { return model.CategoryClothes }

func (a *Adapter) Fetch(ctx context.Context, opts interfaces.FetchOptions) ([]parser.RawRow, error) {
	_ = ctx
	path := opts.FilePath
	if path == "" {
		path = a.cfg.CSVPath
	}
	if path == "" {
		return nil, fmt.Errorf("의류수거함 CSV 경로가 설정되지 않음")
	}
	rows, err := parser.ParseFile(path, &parser.Options{SkipRows: a.cfg.SkipRows})
	if err != nil {
		return nil, fmt.Errorf("의류수거함 CSV 읽기 실패: %w", err)
	}
	if opts.OnProgress != nil {
		opts.OnProgress(len(rows), len(rows))
	}
	return rows, nil
}

// Transform 지자체마다 연번이 겹치므로 도로명주소+설치지점 조합을 자연키로 쓴다
func (a *Adapter) Transform(row parser.RawRow) *model.Facility {
	road := strings.TrimSpace(row["소재지도로명주소"])
	jibun := strings.TrimSpace(row["소재지지번주소"])
	spot := strings.TrimSpace(row["설치지점"])
	if road == "" && jibun == "" {
		return nil
	}
	lat, lng, _, ok := convert.Coords(row["위도"], row["경도"])
	if !ok {
		return nil
	}

	city, district := convert.Region(road, jibun, row["시도명"], row["시군구명"])

	name := spot
	if name == "" {
		name = fmt.Sprintf("의류수거함(%s)", convert.FirstNonEmpty(road, jibun))
	}
	sourceID := fmt.Sprintf("clothes:%s:%s", convert.FirstNonEmpty(road, jibun), spot)

	details := map[string]any{
		"관리기관명":   row["관리기관명"],
		"전화번호":    row["관리기관전화번호"],
		"데이터기준일자": row["데이터기준일자"],
	}

	return &model.Facility{
		ID:          convert.DeriveID(sourceID),
		SourceID:    sourceID,
		Category:    model.CategoryClothes,
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
