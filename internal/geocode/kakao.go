// Package geocode 카카오 로컬 API로 좌표가 빠진 레코드를 보정한다.
// 원천 데이터에 좌표가 아예 없는 행은 주소 지오코딩으로 채우고,
// 끝내 좌표를 얻지 못한 행만 skipped로 떨어뜨린다
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/pipeline"
	"github.com/sseok-lee/ilsangkit-sub001/internal/utils/httpclient"
)

// ErrMissingRestKey 카카오 REST 키 미설정. 좌표 보정은 선택 기능이라 실행을 막지 않는다
var ErrMissingRestKey = errors.New("카카오 REST API 키가 설정되지 않음(KAKAO_REST_API_KEY)")

const defaultBaseURL = "https://dapi.kakao.com"

// Client 카카오 주소 검색 클라이언트(동시 요청 상한 + 요청 간 최소 간격)
type Client struct {
	httpClient  *http.Client
	logger      *logrus.Logger
	baseURL     string
	restKey     string
	retryCount  int
	concurrency int
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(cfg config.GeocodeConfig, logger *logrus.Logger) (*Client, error) {
	if cfg.RestAPIKey == "" {
		return nil, ErrMissingRestKey
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retryCount := cfg.RetryCount
	if retryCount <= 0 {
		retryCount = 3
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Client{
		httpClient:  httpclient.New(httpclient.Options{TimeoutSec: cfg.Timeout}, logger),
		logger:      logger,
		baseURL:     baseURL,
		restKey:     cfg.RestAPIKey,
		retryCount:  retryCount,
		concurrency: concurrency,
		minInterval: time.Duration(cfg.MinIntervalMs) * time.Millisecond,
	}, nil
}

type addressResponse struct {
	Documents []struct {
		X string `json:"x"` // 경도
		Y string `json:"y"` // 위도
	} `json:"documents"`
}

// Lookup 주소 1건 지오코딩(고정 간격 재시도 포함)
func (c *Client) Lookup(ctx context.Context, addr string) (float64, float64, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryCount; attempt++ {
		lat, lng, err := c.lookupOnce(ctx, addr)
		if err == nil {
			return lat, lng, nil
		}
		lastErr = err
		if attempt < c.retryCount {
			select {
			case <-ctx.Done():
				return 0, 0, ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
	return 0, 0, fmt.Errorf("지오코딩 %d회 모두 실패: %w", c.retryCount, lastErr)
}

func (c *Client) lookupOnce(ctx context.Context, addr string) (float64, float64, error) {
	c.enforceInterval()

	reqURL := fmt.Sprintf("%s/v2/local/search/address.json?query=%s", c.baseURL, url.QueryEscape(addr))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Authorization", "KakaoAK "+c.restKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, 0, fmt.Errorf("지오코딩 응답 오류: status=%d", resp.StatusCode)
	}

	var body addressResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, err
	}
	if len(body.Documents) == 0 {
		return 0, 0, fmt.Errorf("주소 검색 결과 없음: %s", addr)
	}

	var lat, lng float64
	if _, err := fmt.Sscanf(body.Documents[0].Y, "%f", &lat); err != nil {
		return 0, 0, fmt.Errorf("위도 파싱 실패: %w", err)
	}
	if _, err := fmt.Sscanf(body.Documents[0].X, "%f", &lng); err != nil {
		return 0, 0, fmt.Errorf("경도 파싱 실패: %w", err)
	}
	return lat, lng, nil
}

// enforceInterval 요청 간 최소 간격 보장(카카오 호출량 제한 준수)
func (c *Client) enforceInterval() {
	if c.minInterval <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elapsed := time.Since(c.lastRequest); elapsed < c.minInterval {
		time.Sleep(c.minInterval - elapsed)
	}
	c.lastRequest = time.Now()
}

// BackfillMissing 좌표가 비어 있는(0,0) 레코드를 주소로 지오코딩해 채운다.
// 독립 요청이므로 concurrency 상한 안에서 병렬 실행하고,
// 좌표를 얻지 못했거나 국내 경계를 벗어난 레코드는 제외하며 skipped로 집계한다
func (c *Client) BackfillMissing(ctx context.Context, records []*model.Facility, stats *pipeline.SyncStats) []*model.Facility {
	type target struct {
		idx  int
		addr string
	}
	var targets []target
	for i, rec := range records {
		if rec.Lat != 0 || rec.Lng != 0 {
			continue
		}
		addr := ""
		if rec.RoadAddress != nil {
			addr = *rec.RoadAddress
		} else if rec.Address != nil {
			addr = *rec.Address
		}
		targets = append(targets, target{idx: i, addr: addr})
	}
	if len(targets) == 0 {
		return records
	}

	dropped := make([]bool, len(records))
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.concurrency)
	var mu sync.Mutex

	for _, t := range targets {
		wg.Add(1)
		sem <- struct{}{}
		go func(t target) {
			defer wg.Done()
			defer func() { <-sem }()

			rec := records[t.idx]
			lat, lng, err := c.Lookup(ctx, t.addr)
			if err == nil && !model.InBoundingBox(lat, lng) {
				err = fmt.Errorf("좌표가 국내 경계를 벗어남: %f,%f", lat, lng)
			}
			if err != nil {
				mu.Lock()
				dropped[t.idx] = true
				mu.Unlock()
				stats.AddSkipped(1)
				stats.AddError(fmt.Sprintf("좌표 보정 실패(%s): %v", rec.SourceID, err))
				return
			}
			rec.Lat = lat
			rec.Lng = lng
		}(t)
	}
	wg.Wait()

	kept := make([]*model.Facility, 0, len(records))
	for i, rec := range records {
		if !dropped[i] {
			kept = append(kept, rec)
		}
	}
	return kept
}
