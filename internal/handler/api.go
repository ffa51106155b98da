package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/eventbus"
	"github.com/portfolio/internal/mailer"
	"github.com/portfolio/internal/repository"
	"github.com/portfolio/internal/service"
	"gorm.io/gorm"
)

// MessageSender 把访客留言转发到邮件中继
type MessageSender interface {
	Configured() bool
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// Options 描述 API 的可选依赖
type Options struct {
	Assets service.AssetStore
	Events *eventbus.AboutEventBus
	Mailer MessageSender
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	about       *service.AboutService
	contact     *service.ContactService
	experiences *service.ExperienceService
	projects    *service.ProjectService
	skills      *service.SkillService
	events      *eventbus.AboutEventBus
	mailer      MessageSender
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	events := opts.Events
	if events == nil {
		events = eventbus.NewAboutEventBus()
	}

	return &API{
		db:          gdb,
		about:       service.NewAboutService(repository.NewSingletonRepository[db.About](gdb, db.AboutRowID), opts.Assets, events),
		contact:     service.NewContactService(repository.NewSingletonRepository[db.Contact](gdb, db.ContactRowID)),
		experiences: service.NewExperienceService(gdb),
		projects:    service.NewProjectService(gdb),
		skills:      service.NewSkillService(gdb),
		events:      events,
		mailer:      opts.Mailer,
	}
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}
	c.HTML(status, template, payload)
}
