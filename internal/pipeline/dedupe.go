package pipeline

import (
	"fmt"

	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
)

// TransformAndDedupe 원시 행 전체에 변환 함수를 적용하고 자연키 기준으로 중복을 제거.
//   - 변환이 nil을 돌려주면(데이터 품질 거부) skipped로만 집계
//   - 변환 중 panic은 해당 행만 skipped 처리하고 stats.Errors에 행 번호와 함께 기록
//   - 같은 키가 여러 번 나오면 입력 순서상 마지막 행이 이긴다
//     (원천 파일에서 뒤에 나온 행이 최신이라는 전제, 먼저 본 행은 skipped로 집계)
//
// 반환 목록 안에서 keyFn 값은 유일함이 보장된다
func TransformAndDedupe[R any](
	rows []R,
	transform func(R) *model.Facility,
	keyFn func(*model.Facility) string,
	stats *SyncStats,
) []*model.Facility {
	out := make([]*model.Facility, 0, len(rows))
	pos := make(map[string]int, len(rows))

	for i, row := range rows {
		rec, err := safeTransform(row, transform)
		if err != nil {
			stats.AddSkipped(1)
			stats.AddError(fmt.Sprintf("%d번째 행 변환 실패: %v", i+1, err))
			continue
		}
		if rec == nil {
			stats.AddSkipped(1)
			continue
		}

		key := keyFn(rec)
		if p, ok := pos[key]; ok {
			out[p] = rec
			stats.AddSkipped(1)
			continue
		}
		pos[key] = len(out)
		out = append(out, rec)
	}
	return out
}

// safeTransform 변환 함수의 panic을 에러로 흡수(한 행의 문제가 배치를 중단시키지 않도록)
func safeTransform[R any](row R, transform func(R) *model.Facility) (rec *model.Facility, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return transform(row), nil
}
