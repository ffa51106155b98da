package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/klog/v2"
)

// 用法: go run scripts/init_user.go -email owner@example.com -password secret [-reset]
func main() {
	cfg := config.Load()

	email := flag.String("email", cfg.AdminEmail, "管理员邮箱")
	password := flag.String("password", cfg.AdminPassword, "管理员密码")
	reset := flag.Bool("reset", false, "账号已存在时重置密码")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	trimmedEmail := strings.ToLower(strings.TrimSpace(*email))
	if trimmedEmail == "" || strings.TrimSpace(*password) == "" {
		klog.Exit("邮箱和密码不能为空")
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabaseType, cfg.DatabasePath); err != nil {
		klog.Exitf("数据库初始化失败: %v", err)
	}

	var existing db.User
	if err := db.DB.Where("email = ?", trimmedEmail).First(&existing).Error; err == nil {
		if !*reset {
			fmt.Println("用户已存在，无需初始化")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(*password)), bcrypt.DefaultCost)
		if err != nil {
			klog.Exitf("密码加密失败: %v", err)
		}
		if err := db.DB.Model(&existing).Update("password", string(hashed)).Error; err != nil {
			klog.Exitf("重置密码失败: %v", err)
		}
		fmt.Println("密码已重置:", trimmedEmail)
		return
	}

	if err := db.EnsureUser(db.DB, trimmedEmail, *password); err != nil {
		klog.Exitf("创建用户失败: %v", err)
	}
	fmt.Println("管理员账号创建成功:", trimmedEmail)
}
