// Package toilet 전국공중화장실표준데이터(CSV) 어댑터
package toilet

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

func (a *Adapter) Category() model.Category { return model.CategoryToilet }

func (a *Adapter) Fetch(ctx context.Context, opts interfaces.FetchOptions) ([]parser.RawRow, error) {
	_ = ctx
	path := opts.FilePath
	if path == "" {
		path = a.cfg.CSVPath
	}
	if path == "" {
		return nil, fmt.Errorf("공중화장실 CSV 경로가 설정되지 않음")
	}
	rows, err := parser.ParseFile(path, &parser.Options{SkipRows: a.cfg.SkipRows})
	if err != nil {
		return nil, fmt.Errorf("공중화장실 CSV 읽기 실패: %w", err)
	}
	if opts.OnProgress != nil {
		opts.OnProgress(len(rows), len(rows))
	}
	return rows, nil
}

// Transform 표준데이터에는 관리번호가 없어 시설명+주소 조합을 자연키로 쓴다
func (a *Adapter) Transform(row parser.RawRow) *model.Facility {
	name := strings.TrimSpace(row["화장실명"])
	road := strings.TrimSpace(row["소재지도로명주소"])
	jibun := strings.TrimSpace(row["소재지지번주소"])
	if name == "" {
		return nil
	}
	if road == "" && jibun == "" {
		return nil
	}
	// 좌표가 아예 없는 행은 주소가 있으므로 지오코딩 보정 대상으로 남긴다
	lat, lng, _, ok := convert.Coords(row["WGS84위도"], row["WGS84경도"])
	if !ok {
		return nil
	}

	city, district := convert.Region(road, jibun, "", "")
	sourceID := fmt.Sprintf("toilet:%s:%s", name, convert.FirstNonEmpty(road, jibun))

	details := map[string]any{
		"구분":      row["구분"],
		"개방시간":    row["개방시간"],
		"남성용대변기수": row["남성용-대변기수"],
		"여성용대변기수": row["여성용-대변기수"],
		"관리기관명":   row["관리기관명"],
		"전화번호":    row["전화번호"],
		"설치연월":    row["설치연월"],
		"데이터기준일자": row["데이터기준일자"],
	}

	return &model.Facility{
		ID:          convert.DeriveID(sourceID),
		SourceID:    sourceID,
		Category:    model.CategoryToilet,
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
