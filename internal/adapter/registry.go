package adapter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter/clothes"
	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter/library"
	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter/parking"
	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter/toilet"
	"github.com/sseok-lee/ilsangkit-sub001/internal/adapter/wifi"
	"github.com/sseok-lee/ilsangkit-sub001/internal/config"
	"github.com/sseok-lee/ilsangkit-sub001/internal/interfaces"
	"github.com/sseok-lee/ilsangkit-sub001/internal/model"
	"github.com/sseok-lee/ilsangkit-sub001/internal/openapi"
)

// Registry 카테고리 → 어댑터 인스턴스 레지스트리.
// 기동 시 1회 구성하며, 이후 조회는 열거형 카테고리 키로만 한다
type Registry struct {
	logger   *logrus.Logger
	adapters map[model.Category]interfaces.CategoryAdapter
}

// NewRegistry 설정된 전체 카테고리 어댑터를 생성해 등록.
// API 원천 어댑터는 공용 openapi 클라이언트를 공유한다
func NewRegistry(cfg *config.Config, client *openapi.Client, logger *logrus.Logger) *Registry {
	r := &Registry{
		logger:   logger,
		adapters: make(map[model.Category]interfaces.CategoryAdapter),
	}

	r.register(toilet.New(cfg.Category("toilet"), logger))
	r.register(clothes.New(cfg.Category("clothes"), logger))
	r.register(wifi.New(cfg.Category("wifi"), client, logger))
	r.register(parking.New(cfg.Category("parking"), client, logger))
	r.register(library.New(cfg.Category("library"), client, logger))

	logger.WithField("categories", len(r.adapters)).Info("카테고리 어댑터 등록 완료")
	return r
}

func (r *Registry) register(a interfaces.CategoryAdapter) {
	r.adapters[a.Category()] = a
}

// Get 카테고리 어댑터 조회
func (r *Registry) Get(category model.Category) (interfaces.CategoryAdapter, error) {
	a, ok := r.adapters[category]
	if !ok {
		return nil, fmt.Errorf("등록되지 않은 카테고리: %s", category)
	}
	return a, nil
}

// Categories 등록된 카테고리 목록(고정 순서)
func (r *Registry) Categories() []model.Category {
	out := make([]model.Category, 0, len(r.adapters))
	for _, c := range model.AllCategories() {
		if _, ok := r.adapters[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
