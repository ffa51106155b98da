package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/repository"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

// SkillColumns 是技能条目可编辑的列，排序通过 SaveOrder 单独维护
var SkillColumns = []string{"title", "src", "invert_dark"}

// skillOrderColumns 是保存排序时写入的列
var skillOrderColumns = []string{"order_index", "title", "src", "updated_at"}

// SkillService 维护技术栈列表及其展示顺序
type SkillService struct {
	*ListSection[db.Skill]
	repo repository.ListRepository[db.Skill]
	now  func() time.Time
}

// NewSkillService 构造 SkillService
func NewSkillService(gdb *gorm.DB) *SkillService {
	repo := repository.NewListRepository[db.Skill](gdb, "order_index ASC, id ASC", SkillColumns)
	return NewSkillServiceWithRepository(repo)
}

// NewSkillServiceWithRepository 使用给定仓储构造
func NewSkillServiceWithRepository(repo repository.ListRepository[db.Skill]) *SkillService {
	s := &SkillService{repo: repo, now: time.Now}
	s.ListSection = newListSection("skills", repo, listHooks[db.Skill]{
		defaults:  catalog.Skills,
		idOf:      func(m db.Skill) uint { return m.ID },
		normalize: normalizeSkill,
		validate:  validateSkill,
		detach: func(m db.Skill) db.Skill {
			m.Model = gorm.Model{}
			return m
		},
		arrangeBatch: func(batch []db.Skill) {
			for index := range batch {
				batch[index].OrderIndex = index
			}
		},
		beforeCreate: s.appendOrder,
	})
	return s
}

// appendOrder 新技能排在已存储条目之后
func (s *SkillService) appendOrder(ctx context.Context, record *db.Skill) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	record.OrderIndex = int(total)
	return nil
}

// Draft 以当前存储顺序创建排序草稿
func (s *SkillService) Draft(ctx context.Context) (*OrderDraft, error) {
	current, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if current.Defaulted {
		return nil, ErrReorderDefaulted
	}
	return NewOrderDraft(itemIDs(current.Items)), nil
}

// SaveOrder 把草稿中的顺序写回存储，索引从 0 连续编号，只发出一条批量语句
func (s *SkillService) SaveOrder(ctx context.Context, draft *OrderDraft) (ResolvedList[db.Skill], error) {
	current, err := s.Resolve(ctx)
	if err != nil {
		return current, err
	}
	if current.Defaulted {
		return current, ErrReorderDefaulted
	}
	if draft == nil {
		return current, fmt.Errorf("%w: empty draft", ErrOrderMismatch)
	}
	// 草稿基于的顺序必须与存储一致，否则说明列表已被改动
	if !sameOrder(draft.Persisted(), itemIDs(current.Items)) {
		return current, fmt.Errorf("%w: list changed since the draft was taken", ErrOrderMismatch)
	}
	if !draft.Dirty() {
		return current, nil
	}

	working := draft.Working()
	if len(working) != len(current.Items) {
		return current, fmt.Errorf("%w: got %d ids for %d items", ErrOrderMismatch, len(working), len(current.Items))
	}

	byID := make(map[uint]db.Skill, len(current.Items))
	for _, item := range current.Items {
		byID[item.ID()] = item.Fields
	}

	now := s.now()
	rows := make([]db.Skill, 0, len(working))
	for index, id := range working {
		record, ok := byID[id]
		if !ok {
			return current, fmt.Errorf("%w: id %d is not stored or repeated", ErrOrderMismatch, id)
		}
		delete(byID, id)
		record.OrderIndex = index
		record.UpdatedAt = now
		rows = append(rows, record)
	}

	if err := s.repo.UpsertColumns(ctx, rows, skillOrderColumns); err != nil {
		return current, fmt.Errorf("save skill order: %w", err)
	}
	draft.markSaved()
	klog.V(2).Infof("技能排序已保存，共 %d 条", len(rows))
	return s.refetch(ctx), nil
}

func itemIDs[T any](items []Item[T]) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID())
	}
	return ids
}

func sameOrder(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func normalizeSkill(m db.Skill) db.Skill {
	m.Title = strings.TrimSpace(m.Title)
	m.Src = strings.TrimSpace(m.Src)
	return m
}

func validateSkill(m db.Skill) error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if m.Src == "" {
		return fmt.Errorf("%w: icon src is required", ErrInvalidInput)
	}
	return nil
}
