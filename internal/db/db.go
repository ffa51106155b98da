package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	puresqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

const (
	// TypeSQLite 使用 mattn/go-sqlite3 驱动（需要 CGO）。
	TypeSQLite = "sqlite"
	// TypeSQLitePureGo 使用纯 Go 的 sqlite 驱动，适合 CGO_ENABLED=0 的构建。
	TypeSQLitePureGo = "sqlite-purego"
	// TypeMySQL 连接托管的 MySQL 实例。
	TypeMySQL = "mysql"
)

// Models 返回需要自动迁移的全部模型。
func Models() []interface{} {
	return []interface{}{
		&User{},
		&About{},
		&Contact{},
		&Experience{},
		&Project{},
		&Skill{},
	}
}

// Init 初始化数据库连接并执行自动迁移。
// dsn 为空时将回退到默认值 portfolio.db。
func Init(dbType, dsn string) error {
	gdb, err := Open(dbType, dsn, logger.Warn)
	if err != nil {
		return err
	}

	if err := Migrate(gdb); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Open 根据类型选择 gorm 方言并建立连接，不做迁移。
func Open(dbType, dsn string, level logger.LogLevel) (*gorm.DB, error) {
	path := strings.TrimSpace(dsn)
	if path == "" {
		path = "portfolio.db"
	}

	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(dbType)) {
	case TypeMySQL:
		dialector = mysql.Open(path)
	case TypeSQLitePureGo:
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		dialector = puresqlite.Open(path)
	case "", TypeSQLite:
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	return gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
}

// Migrate 为全部内容模型创建或更新表结构。
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("database not initialized")
	}
	return gdb.AutoMigrate(Models()...)
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
