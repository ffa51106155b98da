package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

var errStoreUnavailable = errors.New("store unavailable")

// stubListRepository 记录调用次数，可配置为读取失败
type stubListRepository[M any] struct {
	rows    []M
	listErr error
	calls   int
}

func (r *stubListRepository[M]) List(context.Context) ([]M, error) {
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]M(nil), r.rows...), nil
}

func (r *stubListRepository[M]) Count(context.Context) (int64, error) {
	r.calls++
	return int64(len(r.rows)), nil
}

func (r *stubListRepository[M]) Create(context.Context, *M) error {
	r.calls++
	return nil
}

func (r *stubListRepository[M]) CreateBatch(context.Context, []M) error {
	r.calls++
	return nil
}

func (r *stubListRepository[M]) Update(context.Context, uint, *M) error {
	r.calls++
	return nil
}

func (r *stubListRepository[M]) Delete(context.Context, uint) error {
	r.calls++
	return nil
}

func (r *stubListRepository[M]) UpsertColumns(context.Context, []M, []string) error {
	r.calls++
	return nil
}

var _ repository.ListRepository[db.Skill] = (*stubListRepository[db.Skill])(nil)

type stubSingletonRepository[M any] struct {
	getErr error
}

func (r *stubSingletonRepository[M]) Get(context.Context) (*M, error) {
	return nil, r.getErr
}

func (r *stubSingletonRepository[M]) Upsert(context.Context, *M) error {
	return errStoreUnavailable
}

// countWrites 统计之后发往存储的写语句条数
func countWrites(t *testing.T, gdb *gorm.DB) *int {
	t.Helper()
	count := new(int)
	inc := func(tx *gorm.DB) { *count++ }
	if err := gdb.Callback().Create().After("gorm:create").Register("test:count_create", inc); err != nil {
		t.Fatalf("register create counter failed: %v", err)
	}
	if err := gdb.Callback().Update().After("gorm:update").Register("test:count_update", inc); err != nil {
		t.Fatalf("register update counter failed: %v", err)
	}
	if err := gdb.Callback().Delete().After("gorm:delete").Register("test:count_delete", inc); err != nil {
		t.Fatalf("register delete counter failed: %v", err)
	}
	return count
}

// failCreates 让之后的插入全部失败
func failCreates(t *testing.T, gdb *gorm.DB, err error) {
	t.Helper()
	if regErr := gdb.Callback().Create().Before("gorm:create").Register("test:fail_create", func(tx *gorm.DB) {
		tx.AddError(err)
	}); regErr != nil {
		t.Fatalf("register failing create failed: %v", regErr)
	}
}
