package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

const (
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
	// adminAPIPrefix 下的请求未登录时返回 401 而不是跳转
	adminAPIPrefix = "/admin/api"
)

// ShowLoginPage 渲染登录页面，已登录时直接进入后台
func (a *API) ShowLoginPage(c *gin.Context) {
	if sessions.Default(c).Get(sessionUserIDKey) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Admin Login",
	})
}

// Login 使用邮箱与密码登录
func (a *API) Login(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	fail := func(status int, message string) {
		a.renderHTML(c, status, "login.html", gin.H{
			"title": "Admin Login",
			"email": email,
			"error": message,
		})
	}

	if email == "" || password == "" {
		fail(http.StatusBadRequest, "Email and password are required")
		return
	}

	var user db.User
	if err := a.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			klog.Errorf("查询用户失败: %v", err)
		}
		fail(http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		fail(http.StatusUnauthorized, "Invalid email or password")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionEmailKey, user.Email)
	if err := session.Save(); err != nil {
		fail(http.StatusInternalServerError, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		klog.Warningf("清理会话失败: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

type sectionSummary struct {
	Name      string
	Count     int
	Defaulted bool
}

// ShowDashboard 渲染后台主面板，列出各区块条目数以及是否仍在使用默认内容
func (a *API) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	session := sessions.Default(c)

	about, aboutErr := a.about.Resolve(ctx)
	contact, contactErr := a.contact.Resolve(ctx)
	experiences, expErr := a.experiences.Resolve(ctx)
	projects, projectErr := a.projects.Resolve(ctx)
	skills, skillErr := a.skills.Resolve(ctx)

	// 任一区块读取失败时提示刷新，避免在过期数据上编辑
	stale := errors.Join(aboutErr, contactErr, expErr, projectErr, skillErr) != nil

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title": "Dashboard",
		"email": session.Get(sessionEmailKey),
		"stale": stale,
		"sections": []sectionSummary{
			{Name: "About", Count: 1, Defaulted: about.Defaulted},
			{Name: "Contact", Count: 1, Defaulted: contact.Defaulted},
			{Name: "Experience", Count: experiences.Len(), Defaulted: experiences.Defaulted},
			{Name: "Projects", Count: projects.Len(), Defaulted: projects.Defaulted},
			{Name: "Tech Stack", Count: skills.Len(), Defaulted: skills.Defaulted},
		},
	})
}

// AuthRequired 是一个简单的认证中间件
// 页面请求跳转到登录页，后台接口返回 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			if strings.HasPrefix(c.Request.URL.Path, adminAPIPrefix) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
