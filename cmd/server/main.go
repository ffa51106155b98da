package main

import (
	"flag"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/router"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabaseType, cfg.DatabasePath); err != nil {
		klog.Fatalf("failed to initialize database: %v", err)
	}
	if err := db.EnsureUser(db.DB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		klog.Fatalf("failed to ensure admin account: %v", err)
	}

	// 设置并运行 Gin 服务器
	r, err := router.SetupRouter(cfg, db.DB, handler.Options{})
	if err != nil {
		klog.Fatalf("failed to set up router: %v", err)
	}
	klog.Infof("portfolio listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		klog.Fatalf("failed to run server: %v", err)
	}
}
