package router

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/mailer"
	"github.com/portfolio/internal/storage"
	"github.com/portfolio/internal/view"
	"github.com/portfolio/web"
	"gorm.io/gorm"
)

const (
	sessionName = "portfolio_session"
	// aboutStreamPath 为 SSE 长连接，不能经过 gzip 缓冲
	aboutStreamPath = "/api/about/stream"
)

// SetupRouter 配置 Gin 引擎和路由
// opts 中未提供的依赖按配置创建：对象桶挂载在上传目录，邮件中继使用配置中的模板参数
func SetupRouter(cfg config.AppConfig, gdb *gorm.DB, opts handler.Options) (*gin.Engine, error) {
	if gdb == nil {
		return nil, fmt.Errorf("setup router: database not initialized")
	}

	r := gin.Default()

	r.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{aboutStreamPath})))

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	tmpl, err := web.Templates(view.FuncMap())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	r.StaticFS("/static", http.FS(web.StaticFS()))
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	if opts.Assets == nil {
		opts.Assets = storage.NewBucket(cfg.StorageBucket, cfg.UploadDir, cfg.SiteBaseURL+cfg.UploadURLPath)
	}
	if opts.Mailer == nil {
		opts.Mailer = mailer.NewClient(mailer.Settings{
			Endpoint:   cfg.Mail.Endpoint,
			ServiceID:  cfg.Mail.ServiceID,
			TemplateID: cfg.Mail.TemplateID,
			PublicKey:  cfg.Mail.PublicKey,
			Recipient:  cfg.Mail.Recipient,
		})
	}
	api := handler.NewAPI(gdb, opts)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// 前台
	r.GET("/", api.ShowHome)
	public := r.Group("/api")
	{
		public.GET("/sections", api.GetSections)
		public.GET("/about/stream", api.StreamAbout)
		public.POST("/contact/messages", api.SendContactMessage)
	}

	// 登录
	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)

	// 需要认证的后台路由
	r.GET("/dashboard", handler.AuthRequired(), api.ShowDashboard)

	admin := r.Group("/admin/api")
	admin.Use(handler.AuthRequired())
	{
		admin.GET("/about", api.GetAbout)
		admin.PUT("/about", api.UpdateAbout)
		admin.POST("/about/assets/:slot", api.UploadAboutAsset)

		admin.GET("/contact", api.GetContact)
		admin.PUT("/contact", api.UpdateContact)

		registerSection(admin, "/experiences", api.Experiences())
		registerSection(admin, "/projects", api.Projects())

		skills := api.Skills()
		// order 必须先于 :ref 注册
		admin.PUT("/skills/order", api.ReorderSkills)
		registerSection(admin, "/skills", skills)
	}

	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})

	return r, nil
}

func registerSection(group *gin.RouterGroup, path string, handlers handler.SectionHandlers) {
	group.GET(path, handlers.List)
	group.POST(path, handlers.Create)
	group.PUT(path+"/:ref", handlers.Update)
	group.DELETE(path+"/:ref", handlers.Delete)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
