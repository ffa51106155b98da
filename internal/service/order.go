package service

import "fmt"

// OrderDraft 保存列表的已存储顺序与编辑中的顺序
// 移动只影响编辑中的顺序，保存成功后两者才一致
type OrderDraft struct {
	persisted []uint
	working   []uint
}

// NewOrderDraft 以已存储顺序创建草稿
func NewOrderDraft(ids []uint) *OrderDraft {
	return &OrderDraft{
		persisted: append([]uint(nil), ids...),
		working:   append([]uint(nil), ids...),
	}
}

// Persisted 返回已存储顺序的副本
func (d *OrderDraft) Persisted() []uint {
	return append([]uint(nil), d.persisted...)
}

// Working 返回编辑中顺序的副本
func (d *OrderDraft) Working() []uint {
	return append([]uint(nil), d.working...)
}

// Dirty 编辑中的顺序是否与已存储顺序不同
func (d *OrderDraft) Dirty() bool {
	return !sameOrder(d.persisted, d.working)
}

// Move 把 from 位置的条目移动到 to 位置
func (d *OrderDraft) Move(from, to int) error {
	if from < 0 || from >= len(d.working) || to < 0 || to >= len(d.working) {
		return fmt.Errorf("%w: move %d -> %d out of range", ErrOrderMismatch, from, to)
	}
	if from == to {
		return nil
	}

	id := d.working[from]
	next := make([]uint, 0, len(d.working))
	next = append(next, d.working[:from]...)
	next = append(next, d.working[from+1:]...)

	next = append(next[:to], append([]uint{id}, next[to:]...)...)
	d.working = next
	return nil
}

// Arrange 用完整的主键序列替换编辑中的顺序，序列必须是已存储主键的一个排列
func (d *OrderDraft) Arrange(ids []uint) error {
	if len(ids) != len(d.persisted) {
		return fmt.Errorf("%w: got %d ids for %d items", ErrOrderMismatch, len(ids), len(d.persisted))
	}

	remaining := make(map[uint]int, len(d.persisted))
	for _, id := range d.persisted {
		remaining[id]++
	}
	for _, id := range ids {
		if remaining[id] == 0 {
			return fmt.Errorf("%w: id %d is not stored or repeated", ErrOrderMismatch, id)
		}
		remaining[id]--
	}

	d.working = append([]uint(nil), ids...)
	return nil
}

func (d *OrderDraft) markSaved() {
	d.persisted = append([]uint(nil), d.working...)
}
