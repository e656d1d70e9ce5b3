package interfaces

import (
	"context"

	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/parser"
)

// FetchOptions 원천 수집 옵션
type FetchOptions struct {
	FilePath   string                    // CSV 파일 경로(지정 시 설정보다 우선)
	OnProgress func(fetched, total int) // 수집 진행 콜백(API 모드에서 페이지마다 호출)
}

// CategoryAdapter 카테고리별 원천 수집 + 변환 어댑터.
// Fetch는 I/O를 수행하지만 Transform은 순수 함수여야 한다.
// 데이터 품질 문제는 nil 반환으로만 알린다(행 하나가 실행을 중단시키지 않도록)
type CategoryAdapter interface {
	Category() model.Category
	Fetch(ctx context.Context, opts FetchOptions) ([]parser.RawRow, error)
	Transform(row parser.RawRow) *model.Facility
}
