// Package wifi 무료와이파이 표준데이터(공공데이터포털 API) 어댑터
package wifi

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

func (a *Adapter) Category() model.Category { return model.CategoryWifi }

// Fetch 기본은 API 페이지네이션 수집, 파일 경로가 주어지면 CSV 배포본을 읽는다
func (a *Adapter) Fetch(ctx context.Context, opts interfaces.FetchOptions) ([]parser.RawRow, error) {
	if opts.FilePath != "" || a.cfg.Mode == "csv" {
		path := convert.FirstNonEmpty(opts.FilePath, a.cfg.CSVPath)
		if path == "" {
			return nil, fmt.Errorf("공공와이파이 CSV 경로가 설정되지 않음")
		}
		return parser.ParseFile(path, &parser.Options{SkipRows: a.cfg.SkipRows})
	}

	// 인증키 없이 기동된 경우 API 수집은 설정 오류
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
		return nil, fmt.Errorf("공공와이파이 수집 실패: %w", err)
	}

	rows := make([]parser.RawRow, len(items))
	for i, it := range items {
		rows[i] = convert.ItemRow(it)
	}
	return rows, nil
}

// Transform 관리번호가 없어 SSID+설치장소명 조합을 자연키로 쓴다
func (a *Adapter) Transform(row parser.RawRow) *model.Facility {
	place := strings.TrimSpace(row["설치장소명"])
	ssid := strings.TrimSpace(row["와이파이SSID"])
	if place == "" {
		return nil
	}
	road := strings.TrimSpace(row["소재지도로명주소"])
	jibun := strings.TrimSpace(row["소재지지번주소"])
	lat, lng, missing, ok := convert.Coords(row["WGS84위도"], row["WGS84경도"])
	if !ok {
		return nil
	}
	// 좌표도 주소도 없으면 보정 불가
	if missing && road == "" && jibun == "" {
		return nil
	}

	city, district := convert.Region(road, jibun, row["설치시도명"], row["설치시군구명"])
	sourceID := fmt.Sprintf("wifi:%s:%s", ssid, place)

	details := map[string]any{
		"설치장소상세":  row["설치장소상세"],
		"설치시설구분":  row["설치시설구분"],
		"서비스제공사명": row["서비스제공사명"],
		"와이파이SSID": ssid,
		"설치연월":    row["설치연월"],
		"관리기관명":   row["관리기관명"],
		"데이터기준일자": row["데이터기준일자"],
	}

	return &model.Facility{
		ID:          convert.DeriveID(sourceID),
		SourceID:    sourceID,
		Category:    model.CategoryWifi,
		Name:        place,
		Address:     convert.NullableStr(jibun),
		RoadAddress: convert.NullableStr(road),
		Lat:         lat,
		Lng:         lng,
		City:        city,
		District:    district,
		Details:     convert.DetailsJSON(details),
	}
}
