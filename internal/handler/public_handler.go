package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/eventbus"
	"github.com/portfolio/internal/mailer"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
	"k8s.io/klog/v2"
)

// aboutStreamEvent 是资料推送的 SSE 事件名
const aboutStreamEvent = "about"

type experienceView struct {
	Ref         string
	Role        string
	Period      string
	Description string
	IsCurrently bool
}

type skillView struct {
	Title      string
	Src        string
	InvertDark bool
}

type publicSections struct {
	About       service.Resolved[db.About]
	Contact     service.Resolved[db.Contact]
	Experiences service.ResolvedList[db.Experience]
	Projects    service.ResolvedList[db.Project]
	Skills      service.ResolvedList[db.Skill]
}

// loadPublicSections 读取全部区块，读取失败时沿用默认内容，只记录日志
func (a *API) loadPublicSections(ctx context.Context) publicSections {
	var sections publicSections
	var err error

	if sections.About, err = a.about.Resolve(ctx); err != nil {
		klog.Warningf("首页资料使用默认内容: %v", err)
	}
	if sections.Contact, err = a.contact.Resolve(ctx); err != nil {
		klog.Warningf("首页联系信息使用默认内容: %v", err)
	}
	if sections.Experiences, err = a.experiences.Resolve(ctx); err != nil {
		klog.Warningf("首页经历使用默认内容: %v", err)
	}
	if sections.Projects, err = a.projects.Resolve(ctx); err != nil {
		klog.Warningf("首页作品使用默认内容: %v", err)
	}
	if sections.Skills, err = a.skills.Resolve(ctx); err != nil {
		klog.Warningf("首页技术栈使用默认内容: %v", err)
	}
	return sections
}

// ShowHome renders the one-page public site.
func (a *API) ShowHome(c *gin.Context) {
	sections := a.loadPublicSections(c.Request.Context())
	about := sections.About.Value

	experiences := make([]experienceView, 0, sections.Experiences.Len())
	for _, item := range sections.Experiences.Items {
		experiences = append(experiences, experienceView{
			Ref:         item.Ref(),
			Role:        item.Fields.Role,
			Period:      item.Fields.Period,
			Description: item.Fields.Description,
			IsCurrently: item.Fields.IsCurrently,
		})
	}

	projects := make([]view.ProjectCard, 0, sections.Projects.Len())
	for _, item := range sections.Projects.Items {
		projects = append(projects, view.NewProjectCard(item.Ref(), item.Fields))
	}

	skills := make([]skillView, 0, sections.Skills.Len())
	for _, item := range sections.Skills.Items {
		skills = append(skills, skillView{Title: item.Fields.Title, Src: item.Fields.Src, InvertDark: item.Fields.InvertDark})
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"title":        about.Name,
		"about":        about,
		"paragraphs":   []string{about.Paragraph1, about.Paragraph2, about.Paragraph3, about.Paragraph4},
		"resume":       view.Resume(about),
		"contact":      sections.Contact.Value,
		"contactLinks": view.ContactLinks(sections.Contact.Value),
		"experiences":  experiences,
		"projects":     projects,
		"skills":       skills,
		"mailEnabled":  a.mailer != nil && a.mailer.Configured(),
	})
}

// GetSections 以 JSON 返回前台展示的全部区块
func (a *API) GetSections(c *gin.Context) {
	sections := a.loadPublicSections(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"about":   aboutPayload(sections.About.Value, sections.About.Defaulted),
		"contact": gin.H{"contact": sections.Contact.Value, "defaulted": sections.Contact.Defaulted},
		"experiences": gin.H{
			"items":     itemsPayload(sections.Experiences.Items, experiencePayload),
			"defaulted": sections.Experiences.Defaulted,
		},
		"projects": gin.H{
			"items":     itemsPayload(sections.Projects.Items, projectPayload),
			"defaulted": sections.Projects.Defaulted,
		},
		"skills": gin.H{
			"items":     itemsPayload(sections.Skills.Items, skillPayload),
			"defaulted": sections.Skills.Defaulted,
		},
	})
}

// StreamAbout 以 SSE 推送资料区块，连接建立时先发送当前值
// 客户端断开后取消订阅，尚未发送的更新直接丢弃
func (a *API) StreamAbout(c *gin.Context) {
	ctx := c.Request.Context()

	updates := make(chan db.About, 1)
	unsubscribe := a.events.Subscribe(eventbus.AboutUpdated, func(_ context.Context, event eventbus.AboutEvent) error {
		merged := service.MergeAbout(event.About, catalog.About())
		// 只保留最新的一次更新
		for {
			select {
			case updates <- merged:
				return nil
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	resolved, err := a.about.Resolve(ctx)
	if err != nil {
		klog.Warningf("资料推送使用默认内容: %v", err)
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(aboutStreamEvent, aboutPayload(resolved.Value, resolved.Defaulted))
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case about := <-updates:
			c.SSEvent(aboutStreamEvent, aboutPayload(about, false))
			c.Writer.Flush()
		}
	}
}

type contactMessageRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// SendContactMessage 校验访客留言并通过邮件中继发送
func (a *API) SendContactMessage(c *gin.Context) {
	var payload contactMessageRequest
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid message payload")
		return
	}

	msg := mailer.Message{
		SenderName:  strings.TrimSpace(payload.Name),
		SenderEmail: strings.TrimSpace(payload.Email),
		Subject:     strings.TrimSpace(payload.Subject),
		Body:        strings.TrimSpace(payload.Message),
	}
	if err := mailer.Validate(msg); err != nil {
		handleMailError(c, err)
		return
	}
	if a.mailer == nil || !a.mailer.Configured() {
		handleMailError(c, mailer.ErrNotConfigured)
		return
	}

	requestID, err := a.mailer.Send(c.Request.Context(), msg)
	if err != nil {
		handleMailError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Message sent successfully!", "request_id": requestID})
}
