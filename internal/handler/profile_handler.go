package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

type aboutRequest struct {
	Name         string   `json:"name"`
	TypedStrings []string `json:"typed_strings"`
	CircularText string   `json:"circular_text"`
	ResumeLink   string   `json:"resume_link"`
	ResumeFile   string   `json:"resume_file"`
	FrontImage   string   `json:"front_image"`
	BackImage    string   `json:"back_image"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Paragraph1   string   `json:"paragraph1"`
	Paragraph2   string   `json:"paragraph2"`
	Paragraph3   string   `json:"paragraph3"`
	Paragraph4   string   `json:"paragraph4"`
}

type contactRequest struct {
	SectionTitle       string `json:"section_title"`
	SectionDescription string `json:"section_description"`
	Email              string `json:"email"`
	GithubURL          string `json:"github_url"`
	BehanceURL         string `json:"behance_url"`
}

// GetAbout 返回资料区块，供后台表单预填
func (a *API) GetAbout(c *gin.Context) {
	resolved, err := a.about.Resolve(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "failed to load profile, reload before editing")
		return
	}
	c.JSON(http.StatusOK, aboutPayload(resolved.Value, resolved.Defaulted))
}

// UpdateAbout 以完整字段集保存资料
func (a *API) UpdateAbout(c *gin.Context) {
	var payload aboutRequest
	if !bindJSON(c, &payload, "invalid profile payload") {
		return
	}

	saved, err := a.about.Save(c.Request.Context(), payload.toModel())
	if err != nil {
		handleSectionError(c, err)
		return
	}

	body := aboutPayload(saved, false)
	body["message"] = "Profile saved"
	c.JSON(http.StatusOK, body)
}

// GetContact 返回联系区块
func (a *API) GetContact(c *gin.Context) {
	resolved, err := a.contact.Resolve(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "failed to load contact info, reload before editing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": resolved.Value, "defaulted": resolved.Defaulted})
}

// UpdateContact 以完整字段集保存联系信息
func (a *API) UpdateContact(c *gin.Context) {
	var payload contactRequest
	if !bindJSON(c, &payload, "invalid contact payload") {
		return
	}

	saved, err := a.contact.Save(c.Request.Context(), db.Contact{
		SectionTitle:       payload.SectionTitle,
		SectionDescription: payload.SectionDescription,
		Email:              payload.Email,
		GithubURL:          payload.GithubURL,
		BehanceURL:         payload.BehanceURL,
	})
	if err != nil {
		handleSectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact info saved", "contact": saved, "defaulted": false})
}

func (r aboutRequest) toModel() db.About {
	return db.About{
		Name:         r.Name,
		TypedStrings: r.TypedStrings,
		CircularText: r.CircularText,
		ResumeLink:   r.ResumeLink,
		ResumeFile:   r.ResumeFile,
		FrontImage:   r.FrontImage,
		BackImage:    r.BackImage,
		Title:        r.Title,
		Location:     r.Location,
		Paragraph1:   r.Paragraph1,
		Paragraph2:   r.Paragraph2,
		Paragraph3:   r.Paragraph3,
		Paragraph4:   r.Paragraph4,
	}
}

func aboutPayload(about db.About, defaulted bool) gin.H {
	return gin.H{
		"about":     about,
		"defaulted": defaulted,
		"resume":    view.Resume(about),
		"slots":     []string{service.AssetSlotFront, service.AssetSlotBack, service.AssetSlotResume},
	}
}
