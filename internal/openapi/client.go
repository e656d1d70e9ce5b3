package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/utils/httpclient"
)

// ErrMissingServiceKey 인증키 미설정(네트워크 호출 전에 잡아야 하는 설정 오류)
var ErrMissingServiceKey = errors.New("공공데이터포털 인증키가 설정되지 않음(DATA_GO_KR_API_KEY)")

const defaultNumOfRows = 100

// Client 공공데이터포털(data.go.kr) 페이지네이션 클라이언트
type Client struct {
	httpClient *http.Client
	logger     *logrus.Logger
	serviceKey string
	retryCount int
	retryDelay time.Duration
	timeout    time.Duration // 페이지 1회 시도당 타임아웃
}

// NewClient 클라이언트 생성. 인증키가 없으면 어떤 요청도 보내기 전에 실패한다
func NewClient(cfg config.OpenAPIConfig, logger *logrus.Logger) (*Client, error) {
	if cfg.ServiceKey == "" {
		return nil, ErrMissingServiceKey
	}
	retryCount := cfg.RetryCount
	if retryCount <= 0 {
		retryCount = 3
	}
	retryDelay := time.Duration(cfg.RetryDelayMs) * time.Millisecond
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: httpclient.New(httpclient.Options{TimeoutSec: cfg.Timeout, Proxy: cfg.Proxy}, logger),
		logger:     logger,
		serviceKey: cfg.ServiceKey,
		retryCount: retryCount,
		retryDelay: retryDelay,
		timeout:    timeout,
	}, nil
}

// RequestConfig 카테고리별 엔드포인트 설정
type RequestConfig struct {
	BaseURL   string            // API 기본 주소
	Path      string            // 엔드포인트 경로
	NumOfRows int               // 페이지당 행 수(0이면 100)
	Params    map[string]string // 엔드포인트별 추가 파라미터
}

// Page 한 페이지 응답
type Page struct {
	Items      []Item
	TotalCount int
	PageNo     int
	NumOfRows  int
}

// FetchPage 단일 페이지 조회. 인증키를 쿼리에 주입하고 응답 래퍼를 해석한다
func (c *Client) FetchPage(ctx context.Context, rc RequestConfig, pageNo int) (*Page, error) {
	numOfRows := rc.NumOfRows
	if numOfRows <= 0 {
		numOfRows = defaultNumOfRows
	}

	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("pageNo", fmt.Sprintf("%d", pageNo))
	q.Set("numOfRows", fmt.Sprintf("%d", numOfRows))
	q.Set("type", "json")
	for k, v := range rc.Params {
		q.Set(k, v)
	}
	reqURL := fmt.Sprintf("%s%s?%s", rc.BaseURL, rc.Path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("요청 생성 실패: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("페이지 %d 요청 실패: %w", pageNo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("페이지 %d 응답 오류: status=%d %s", pageNo, resp.StatusCode, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("페이지 %d 응답 파싱 실패: %w", pageNo, err)
	}
	if env.Response.Header.ResultCode != resultCodeOK {
		return nil, &APIError{Code: env.Response.Header.ResultCode, Message: env.Response.Header.ResultMsg}
	}

	return &Page{
		Items:      env.Response.Body.Items,
		TotalCount: env.Response.Body.TotalCount,
		PageNo:     env.Response.Body.PageNo,
		NumOfRows:  numOfRows,
	}, nil
}

// FetchPageWithRetry 단일 페이지를 고정 간격으로 재시도하며 조회.
// 시도마다 개별 타임아웃 컨텍스트를 걸고, 모두 소진하면 마지막 에러를 돌려준다
func (c *Client) FetchPageWithRetry(ctx context.Context, rc RequestConfig, pageNo int) (*Page, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryCount; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		page, err := c.FetchPage(attemptCtx, rc, pageNo)
		cancel()
		if err == nil {
			return page, nil
		}
		lastErr = err
		if attempt < c.retryCount {
			c.logger.WithError(err).Warnf("페이지 %d 조회 실패(%d/%d회), %v 후 재시도", pageNo, attempt, c.retryCount, c.retryDelay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("페이지 %d 조회 %d회 모두 실패: %w", pageNo, c.retryCount, lastErr)
}

// FetchAllOptions 전체 페이지 조회 옵션
type FetchAllOptions struct {
	PageDelay  time.Duration           // 페이지 간 대기(원천 호출량 제한 준수)
	MaxPages   int                     // 최대 페이지 수(0이면 무제한, 제한 실행/테스트용)
	OnProgress func(fetched, total int) // 페이지 처리 후 진행 콜백
}

// FetchAll 페이지 1에서 totalCount를 파악한 뒤 나머지 페이지를 순차 조회.
// 페이지 번호는 오름차순으로만 진행한다(원천 페이지네이션 의미론 준수)
func (c *Client) FetchAll(ctx context.Context, rc RequestConfig, opts FetchAllOptions) ([]Item, error) {
	first, err := c.FetchPageWithRetry(ctx, rc, 1)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(first.Items))
	items = append(items, first.Items...)
	total := first.TotalCount
	if opts.OnProgress != nil {
		opts.OnProgress(len(items), total)
	}
	// totalCount 0이면 추가 요청 없이 종료
	if total == 0 {
		return items, nil
	}

	totalPages := (total + first.NumOfRows - 1) / first.NumOfRows
	if opts.MaxPages > 0 && totalPages > opts.MaxPages {
		c.logger.Infof("최대 페이지 제한 적용: %d → %d", totalPages, opts.MaxPages)
		totalPages = opts.MaxPages
	}

	for pageNo := 2; pageNo <= totalPages; pageNo++ {
		if opts.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.PageDelay):
			}
		}
		page, err := c.FetchPageWithRetry(ctx, rc, pageNo)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if opts.OnProgress != nil {
			opts.OnProgress(len(items), total)
		}
	}
	return items, nil
}
