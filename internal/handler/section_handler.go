package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
)

// SectionHandlers 是一个列表区块的增删改查接口
type SectionHandlers struct {
	List   gin.HandlerFunc
	Create gin.HandlerFunc
	Update gin.HandlerFunc
	Delete gin.HandlerFunc
}

type sectionRequest[M any] interface {
	toModel() M
}

type sectionEndpoints[M any, R sectionRequest[M]] struct {
	section *service.ListSection[M]
	payload func(service.Item[M]) gin.H
}

func newSectionHandlers[M any, R sectionRequest[M]](section *service.ListSection[M], payload func(service.Item[M]) gin.H) SectionHandlers {
	e := sectionEndpoints[M, R]{section: section, payload: payload}
	return SectionHandlers{List: e.list, Create: e.create, Update: e.update, Delete: e.remove}
}

func (e sectionEndpoints[M, R]) list(c *gin.Context) {
	resolved, err := e.section.Resolve(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "failed to load "+e.section.Name()+", reload before editing")
		return
	}
	c.JSON(http.StatusOK, e.render(resolved))
}

func (e sectionEndpoints[M, R]) create(c *gin.Context) {
	var payload R
	if !bindJSON(c, &payload, "invalid "+e.section.Name()+" payload") {
		return
	}

	resolved, err := e.section.Create(c.Request.Context(), payload.toModel())
	if err != nil {
		handleSectionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e.render(resolved))
}

// update 引用为默认键时会把整组默认内容写入存储
func (e sectionEndpoints[M, R]) update(c *gin.Context) {
	ref, ok := parseRefParam(c, "ref")
	if !ok {
		return
	}

	var payload R
	if !bindJSON(c, &payload, "invalid "+e.section.Name()+" payload") {
		return
	}

	resolved, err := e.section.Save(c.Request.Context(), ref, payload.toModel())
	if err != nil {
		handleSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, e.render(resolved))
}

func (e sectionEndpoints[M, R]) remove(c *gin.Context) {
	ref, ok := parseRefParam(c, "ref")
	if !ok {
		return
	}

	resolved, err := e.section.Delete(c.Request.Context(), ref)
	if err != nil {
		handleSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, e.render(resolved))
}

func (e sectionEndpoints[M, R]) render(resolved service.ResolvedList[M]) gin.H {
	return gin.H{
		"items":     itemsPayload(resolved.Items, e.payload),
		"defaulted": resolved.Defaulted,
	}
}

func itemsPayload[M any](items []service.Item[M], payload func(service.Item[M]) gin.H) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		entry := payload(item)
		entry["ref"] = item.Ref()
		entry["id"] = item.ID()
		entry["is_default"] = item.IsDefault()
		out = append(out, entry)
	}
	return out
}

type experienceRequest struct {
	Role        string `json:"role"`
	Period      string `json:"period"`
	Description string `json:"description"`
	IsCurrently bool   `json:"is_currently"`
}

func (r experienceRequest) toModel() db.Experience {
	return db.Experience{Role: r.Role, Period: r.Period, Description: r.Description, IsCurrently: r.IsCurrently}
}

func experiencePayload(item service.Item[db.Experience]) gin.H {
	return gin.H{
		"role":         item.Fields.Role,
		"period":       item.Fields.Period,
		"description":  item.Fields.Description,
		"is_currently": item.Fields.IsCurrently,
	}
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	IsDownload  bool   `json:"is_download"`
}

func (r projectRequest) toModel() db.Project {
	return db.Project{
		Title:       r.Title,
		Description: r.Description,
		Link:        r.Link,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		IsDownload:  r.IsDownload,
	}
}

func projectPayload(item service.Item[db.Project]) gin.H {
	return gin.H{
		"title":       item.Fields.Title,
		"description": item.Fields.Description,
		"link":        item.Fields.Link,
		"image_url":   item.Fields.ImageURL,
		"category":    item.Fields.Category,
		"is_download": item.Fields.IsDownload,
	}
}

type skillRequest struct {
	Title      string `json:"title"`
	Src        string `json:"src"`
	InvertDark bool   `json:"invert_dark"`
}

func (r skillRequest) toModel() db.Skill {
	return db.Skill{Title: r.Title, Src: r.Src, InvertDark: r.InvertDark}
}

func skillPayload(item service.Item[db.Skill]) gin.H {
	return gin.H{
		"title":       item.Fields.Title,
		"src":         item.Fields.Src,
		"invert_dark": item.Fields.InvertDark,
		"order_index": item.Fields.OrderIndex,
	}
}

// Experiences 返回经历区块的接口
func (a *API) Experiences() SectionHandlers {
	return newSectionHandlers[db.Experience, experienceRequest](a.experiences.ListSection, experiencePayload)
}

// Projects 返回作品区块的接口
func (a *API) Projects() SectionHandlers {
	return newSectionHandlers[db.Project, projectRequest](a.projects.ListSection, projectPayload)
}

// Skills 返回技术栈区块的接口
func (a *API) Skills() SectionHandlers {
	return newSectionHandlers[db.Skill, skillRequest](a.skills.ListSection, skillPayload)
}

type skillMove struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// skillOrderRequest 给出完整的主键顺序，或者基于已存储顺序的一组移动
type skillOrderRequest struct {
	IDs   []uint      `json:"ids"`
	Moves []skillMove `json:"moves"`
}

func (r skillOrderRequest) apply(draft *service.OrderDraft) error {
	if len(r.IDs) > 0 {
		return draft.Arrange(r.IDs)
	}
	for _, move := range r.Moves {
		if err := draft.Move(move.From, move.To); err != nil {
			return err
		}
	}
	return nil
}

// ReorderSkills 把后台编辑好的排序一次性保存，顺序未变化时不写存储
func (a *API) ReorderSkills(c *gin.Context) {
	var payload skillOrderRequest
	if !bindJSON(c, &payload, "invalid order payload") {
		return
	}
	if len(payload.IDs) == 0 && len(payload.Moves) == 0 {
		respondError(c, http.StatusBadRequest, "ids or moves are required")
		return
	}

	ctx := c.Request.Context()
	draft, err := a.skills.Draft(ctx)
	if err != nil {
		handleSectionError(c, err)
		return
	}
	if err := payload.apply(draft); err != nil {
		handleSectionError(c, err)
		return
	}
	changed := draft.Dirty()

	resolved, err := a.skills.SaveOrder(ctx, draft)
	if err != nil {
		handleSectionError(c, err)
		return
	}

	message := "Order saved"
	if !changed {
		message = "Order unchanged"
	}
	c.JSON(http.StatusOK, gin.H{
		"items":     itemsPayload(resolved.Items, skillPayload),
		"defaulted": resolved.Defaulted,
		"saved":     changed,
		"message":   message,
	})
}
