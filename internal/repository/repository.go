// Package repository 封装内容区块对数据库的访问。
// 单例区块按固定主键读写，列表区块提供批量插入与按主键更新、删除。
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// SingletonRepository 读写只有一行的区块表
type SingletonRepository[M any] interface {
	// Get 读取单例行，不存在时返回 ErrNotFound
	Get(ctx context.Context) (*M, error)
	// Upsert 以完整字段集写入单例行，调用方负责设置固定主键
	Upsert(ctx context.Context, record *M) error
}

// ListRepository 读写列表类区块
type ListRepository[M any] interface {
	// List 按仓储约定的顺序返回全部记录
	List(ctx context.Context) ([]M, error)
	// Count 返回记录数
	Count(ctx context.Context) (int64, error)
	// Create 插入单条记录
	Create(ctx context.Context, record *M) error
	// CreateBatch 在一条 INSERT 语句中插入多条记录
	CreateBatch(ctx context.Context, records []M) error
	// Update 按主键更新可编辑列
	Update(ctx context.Context, id uint, record *M) error
	// Delete 按主键删除
	Delete(ctx context.Context, id uint) error
	// UpsertColumns 按主键批量写入指定列，只发出一条语句
	UpsertColumns(ctx context.Context, records []M, columns []string) error
}

type singletonRepository[M any] struct {
	db *gorm.DB
	id uint
}

// NewSingletonRepository 创建以 id 为固定主键的单例仓储
func NewSingletonRepository[M any](gdb *gorm.DB, id uint) SingletonRepository[M] {
	return &singletonRepository[M]{db: gdb, id: id}
}

func (r *singletonRepository[M]) Get(ctx context.Context) (*M, error) {
	var record M
	if err := r.db.WithContext(ctx).Where("id = ?", r.id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *singletonRepository[M]) Upsert(ctx context.Context, record *M) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(record).Error
}

type listRepository[M any] struct {
	db      *gorm.DB
	order   string
	columns []string
}

// NewListRepository 创建列表仓储
// order 为 List 使用的排序子句，columns 为 Update 时写入的列（包含零值）
func NewListRepository[M any](gdb *gorm.DB, order string, columns []string) ListRepository[M] {
	return &listRepository[M]{db: gdb, order: order, columns: columns}
}

func (r *listRepository[M]) List(ctx context.Context) ([]M, error) {
	var items []M
	query := r.db.WithContext(ctx).Model(new(M))
	if r.order != "" {
		query = query.Order(r.order)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *listRepository[M]) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(new(M)).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *listRepository[M]) Create(ctx context.Context, record *M) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *listRepository[M]) CreateBatch(ctx context.Context, records []M) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *listRepository[M]) Update(ctx context.Context, id uint, record *M) error {
	columns := append([]string{}, r.columns...)
	columns = append(columns, "updated_at")

	result := r.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Select(columns).Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *listRepository[M]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(new(M), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *listRepository[M]) UpsertColumns(ctx context.Context, records []M, columns []string) error {
	if len(records) == 0 {
		return nil
	}
	if len(columns) == 0 {
		return fmt.Errorf("upsert columns: no columns given")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&records).Error
}
