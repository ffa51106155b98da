package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/portfolio/internal/repository"
	"k8s.io/klog/v2"
)

// ResolvedList 是列表区块解析后的结果
// Defaulted 为 true 时所有条目都来自默认内容，否则全部来自存储，两者不会混合
type ResolvedList[T any] struct {
	Items     []Item[T]
	Defaulted bool
}

// Len 返回条目数
func (r ResolvedList[T]) Len() int {
	return len(r.Items)
}

// Find 按引用查找条目
func (r ResolvedList[T]) Find(ref Ref) (Item[T], int, bool) {
	for index, item := range r.Items {
		if ref.IsDefault() && item.key == ref.DefaultKey {
			return item, index, true
		}
		if !ref.IsDefault() && !item.IsDefault() && item.id == ref.ID {
			return item, index, true
		}
	}
	return Item[T]{}, -1, false
}

// listHooks 描述一个列表区块与具体模型相关的部分
type listHooks[M any] struct {
	defaults  func() []M
	idOf      func(M) uint
	normalize func(M) M
	validate  func(M) error
	// detach 清掉主键和时间戳，使记录可以重新插入
	detach func(M) M
	// arrangeBatch 在批量插入前按最终顺序调整记录
	arrangeBatch func([]M)
	// beforeCreate 在单条插入前补充字段
	beforeCreate func(ctx context.Context, record *M) error
}

// ListSection 负责一个列表区块的解析与写入：
// 读取时在默认内容与存储记录之间二选一，首次编辑默认条目时把整组默认内容提升为存储记录
type ListSection[M any] struct {
	name  string
	repo  repository.ListRepository[M]
	hooks listHooks[M]
}

func newListSection[M any](name string, repo repository.ListRepository[M], hooks listHooks[M]) *ListSection[M] {
	return &ListSection[M]{name: name, repo: repo, hooks: hooks}
}

// Name 返回区块名称
func (s *ListSection[M]) Name() string {
	return s.name
}

// Resolve 读取区块当前应展示的内容
// 读取失败时返回默认内容并附带错误，后台写入路径应据此拒绝操作，前台只需记录日志
func (s *ListSection[M]) Resolve(ctx context.Context) (ResolvedList[M], error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		klog.Errorf("加载 %s 失败，回退到默认内容: %v", s.name, err)
		return s.defaulted(), fmt.Errorf("resolve %s: %w", s.name, err)
	}
	if len(rows) == 0 {
		return s.defaulted(), nil
	}

	items := make([]Item[M], 0, len(rows))
	for _, row := range rows {
		items = append(items, Persisted(s.hooks.idOf(row), row))
	}
	return ResolvedList[M]{Items: items}, nil
}

func (s *ListSection[M]) defaulted() ResolvedList[M] {
	defaults := s.hooks.defaults()
	items := make([]Item[M], 0, len(defaults))
	for index, fields := range defaults {
		items = append(items, Defaulted(defaultKey(index), fields))
	}
	return ResolvedList[M]{Items: items, Defaulted: true}
}

// Save 保存对某个条目的编辑
// 引用为默认键时，把其余默认条目与编辑后的条目一次性插入；引用为主键时只更新该行
func (s *ListSection[M]) Save(ctx context.Context, ref Ref, fields M) (ResolvedList[M], error) {
	fields, err := s.prepare(fields)
	if err != nil {
		return ResolvedList[M]{}, err
	}

	if ref.IsDefault() {
		return s.promote(ctx, ref, fields)
	}

	record := s.hooks.detach(fields)
	if err := s.repo.Update(ctx, ref.ID, &record); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ResolvedList[M]{}, ErrItemNotFound
		}
		return ResolvedList[M]{}, fmt.Errorf("update %s item %d: %w", s.name, ref.ID, err)
	}
	return s.refetch(ctx), nil
}

func (s *ListSection[M]) promote(ctx context.Context, ref Ref, fields M) (ResolvedList[M], error) {
	current, err := s.Resolve(ctx)
	if err != nil {
		return current, err
	}
	if !current.Defaulted {
		return current, ErrDefaultsSuperseded
	}

	_, editedIndex, ok := current.Find(ref)
	if !ok {
		return current, ErrItemNotFound
	}

	batch := make([]M, 0, len(current.Items))
	for index, item := range current.Items {
		if index == editedIndex {
			continue
		}
		batch = append(batch, s.hooks.detach(item.Fields))
	}
	batch = append(batch, s.hooks.detach(fields))
	if s.hooks.arrangeBatch != nil {
		s.hooks.arrangeBatch(batch)
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return current, fmt.Errorf("promote %s defaults: %w", s.name, err)
	}
	klog.V(2).Infof("%s 默认内容已写入存储，共 %d 条", s.name, len(batch))
	return s.refetch(ctx), nil
}

// Create 新增一条记录
// 区块处于默认状态时直接插入，之后默认内容不再展示
func (s *ListSection[M]) Create(ctx context.Context, fields M) (ResolvedList[M], error) {
	fields, err := s.prepare(fields)
	if err != nil {
		return ResolvedList[M]{}, err
	}

	record := s.hooks.detach(fields)
	if s.hooks.beforeCreate != nil {
		if err := s.hooks.beforeCreate(ctx, &record); err != nil {
			return ResolvedList[M]{}, fmt.Errorf("create %s item: %w", s.name, err)
		}
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return ResolvedList[M]{}, fmt.Errorf("create %s item: %w", s.name, err)
	}
	return s.refetch(ctx), nil
}

// Delete 删除一条存储记录，默认条目直接拒绝，不访问存储
func (s *ListSection[M]) Delete(ctx context.Context, ref Ref) (ResolvedList[M], error) {
	if ref.IsDefault() {
		return ResolvedList[M]{}, ErrDefaultItemImmutable
	}

	if err := s.repo.Delete(ctx, ref.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ResolvedList[M]{}, ErrItemNotFound
		}
		return ResolvedList[M]{}, fmt.Errorf("delete %s item %d: %w", s.name, ref.ID, err)
	}
	return s.refetch(ctx), nil
}

func (s *ListSection[M]) prepare(fields M) (M, error) {
	if s.hooks.normalize != nil {
		fields = s.hooks.normalize(fields)
	}
	if s.hooks.validate != nil {
		if err := s.hooks.validate(fields); err != nil {
			return fields, err
		}
	}
	return fields, nil
}

// refetch 在写入成功后重新读取，读取失败只记录日志，写入本身已经生效
func (s *ListSection[M]) refetch(ctx context.Context) ResolvedList[M] {
	resolved, err := s.Resolve(ctx)
	if err != nil {
		klog.Warningf("%s 写入后重新读取失败: %v", s.name, err)
	}
	return resolved
}
