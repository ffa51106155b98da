package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio/internal/repository"
	"k8s.io/klog/v2"
)

// Resolved 是单例区块解析后的结果
type Resolved[T any] struct {
	Value     T
	Defaulted bool
}

// singletonSection 按字段把存储行与默认内容合并
type singletonSection[M any] struct {
	name     string
	repo     repository.SingletonRepository[M]
	defaults func() M
	merge    func(stored, defaults M) M
}

func (s *singletonSection[M]) resolve(ctx context.Context) (Resolved[M], error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Resolved[M]{Value: s.defaults(), Defaulted: true}, nil
		}
		klog.Errorf("加载 %s 失败，回退到默认内容: %v", s.name, err)
		return Resolved[M]{Value: s.defaults(), Defaulted: true}, fmt.Errorf("resolve %s: %w", s.name, err)
	}
	return Resolved[M]{Value: s.merge(*stored, s.defaults())}, nil
}

func (s *singletonSection[M]) upsert(ctx context.Context, record *M) error {
	if err := s.repo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	return nil
}

// pick 空白字符串视为缺失
func pick(stored, fallback string) string {
	if strings.TrimSpace(stored) == "" {
		return fallback
	}
	return stored
}

func pickList(stored, fallback []string) []string {
	if len(stored) == 0 {
		return fallback
	}
	return stored
}

func trimLines(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
