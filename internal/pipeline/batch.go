package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
)

// UpsertResult upsert 1건의 결과 태그
type UpsertResult string

const (
	UpsertNew     UpsertResult = "new"     // 신규 삽입
	UpsertUpdated UpsertResult = "updated" // 기존 행 갱신
)

// UpsertFunc 시설 1건 upsert
type UpsertFunc func(ctx context.Context, f *model.Facility) (UpsertResult, error)

// BatchResult 배치 실행 집계
type BatchResult struct {
	NewCount    int64
	UpdateCount int64
}

const defaultBatchSize = 50

// BatchUpsert 레코드를 batchSize 단위로 잘라 배치 안에서만 동시에 upsert.
// 배치가 전부 끝나야 다음 배치를 시작하므로 동시 실행 수가 batchSize로 묶이고
// 저장소에 대한 자연스러운 배압 지점이 된다.
// 한 건이라도 실패하면 해당 배치가 끝난 뒤 즉시 중단한다(fail-fast,
// 다음 정기 실행에서 전체가 재검증되므로 부분 복구는 두지 않음)
func BatchUpsert(
	ctx context.Context,
	items []*model.Facility,
	upsert UpsertFunc,
	batchSize int,
	onProgress func(done, total int),
) (BatchResult, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var newCount, updateCount atomic.Int64
	total := len(items)

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		batch := items[start:end]

		var wg sync.WaitGroup
		var mu sync.Mutex
		var batchErr error

		for _, it := range batch {
			wg.Add(1)
			go func(f *model.Facility) {
				defer wg.Done()
				res, err := upsert(ctx, f)
				if err != nil {
					mu.Lock()
					if batchErr == nil {
						batchErr = err
					}
					mu.Unlock()
					return
				}
				switch res {
				case UpsertNew:
					newCount.Add(1)
				case UpsertUpdated:
					updateCount.Add(1)
				}
			}(it)
		}
		// 배치 경계: 전부 끝나야 다음 배치로 넘어간다
		wg.Wait()

		result := BatchResult{NewCount: newCount.Load(), UpdateCount: updateCount.Load()}
		if batchErr != nil {
			return result, batchErr
		}
		if onProgress != nil {
			onProgress(end, total)
		}
	}

	return BatchResult{NewCount: newCount.Load(), UpdateCount: updateCount.Load()}, nil
}
