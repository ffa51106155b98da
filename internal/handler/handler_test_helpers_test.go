package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/mailer"
	"github.com/portfolio/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	last *stubHTMLInstance
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.last = &stubHTMLInstance{name: name, data: data}
	return r.last
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type stubSender struct {
	configured bool
	err        error
	sent       []mailer.Message
}

func (s *stubSender) Configured() bool {
	return s.configured
}

func (s *stubSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "req-1", nil
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

type handlerFixture struct {
	api       *API
	db        *gorm.DB
	router    *gin.Engine
	html      *stubHTMLRender
	sender    *stubSender
	uploadDir string
}

// newHandlerFixture 构造测试路由，signedIn 为 true 时每个请求都带有登录会话
func newHandlerFixture(t *testing.T, signedIn bool) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := setupHandlerTestDB(t)
	uploadDir := t.TempDir()
	bucket := storage.NewBucket("portfolio", uploadDir, "/uploads")
	bucket.SetClock(func() time.Time { return time.UnixMilli(1700000000000) })
	sender := &stubSender{configured: true}

	api := NewAPI(gdb, Options{Assets: bucket, Mailer: sender})
	html := &stubHTMLRender{}

	router := gin.New()
	router.HTMLRender = html
	router.Use(sessions.Sessions("portfolio_session", cookie.NewStore([]byte("test-secret"))))
	if signedIn {
		router.Use(func(c *gin.Context) {
			session := sessions.Default(c)
			session.Set(sessionUserIDKey, uint(1))
			session.Set(sessionEmailKey, "owner@example.com")
			c.Next()
		})
	}

	router.GET("/", api.ShowHome)
	router.GET("/api/sections", api.GetSections)
	router.GET("/api/about/stream", api.StreamAbout)
	router.POST("/api/contact/messages", api.SendContactMessage)
	router.GET("/login", api.ShowLoginPage)
	router.POST("/login", api.Login)
	router.GET("/logout", api.Logout)
	router.GET("/dashboard", AuthRequired(), api.ShowDashboard)

	admin := router.Group("/admin/api", AuthRequired())
	admin.GET("/about", api.GetAbout)
	admin.PUT("/about", api.UpdateAbout)
	admin.POST("/about/assets/:slot", api.UploadAboutAsset)
	admin.GET("/contact", api.GetContact)
	admin.PUT("/contact", api.UpdateContact)
	for path, handlers := range map[string]SectionHandlers{
		"/experiences": api.Experiences(),
		"/projects":    api.Projects(),
		"/skills":      api.Skills(),
	} {
		admin.GET(path, handlers.List)
		admin.POST(path, handlers.Create)
		admin.PUT(path+"/:ref", handlers.Update)
		admin.DELETE(path+"/:ref", handlers.Delete)
	}
	admin.PUT("/skills/order", api.ReorderSkills)

	return &handlerFixture{api: api, db: gdb, router: router, html: html, sender: sender, uploadDir: uploadDir}
}
