package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/router"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	e2eBaseURL  = "http://example.test"
	e2eEmail    = "owner@example.com"
	e2ePassword = "e2e-secret"
)

type e2eSuite struct {
	public *localClient
	admin  *localClient
	db     *gorm.DB
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

type listBody struct {
	Defaulted bool `json:"defaulted"`
	Items     []struct {
		Ref       string `json:"ref"`
		ID        uint   `json:"id"`
		IsDefault bool   `json:"is_default"`
		Role      string `json:"role"`
		Title     string `json:"title"`
	} `json:"items"`
}

func TestE2E_ContentLifecycle(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("public site before login", suite.testPublicDefaults)
	t.Run("admin requires login", suite.testAdminRequiresLogin)
	suite.login(t)
	t.Run("promote experiences", suite.testPromoteExperiences)
	t.Run("reorder skills", suite.testReorderSkills)
	t.Run("upload portrait", suite.testUploadPortrait)
	t.Run("logout", suite.testLogout)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.EnsureUser(gdb, e2eEmail, e2ePassword); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	cfg := config.AppConfig{
		SessionSecret:    "test-session-secret",
		UploadDir:        t.TempDir(),
		UploadURLPath:    "/uploads",
		StorageBucket:    "portfolio",
		CORSAllowOrigins: []string{"*"},
	}
	engine, err := router.SetupRouter(cfg, gdb, handler.Options{})
	if err != nil {
		t.Fatalf("failed to set up router: %v", err)
	}

	return &e2eSuite{
		public: newLocalClient(engine, false),
		admin:  newLocalClient(engine, true),
		db:     gdb,
	}
}

func (s *e2eSuite) do(t *testing.T, client *localClient, method, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e2eBaseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *e2eSuite) doJSON(t *testing.T, method, path, body string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	resp := s.do(t, s.admin, method, path, reader, "application/json")
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	form := url.Values{"email": {strings.ToUpper(e2eEmail)}, "password": {e2ePassword}}
	resp := s.do(t, s.admin, http.MethodPost, "/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/dashboard" {
		t.Fatalf("login failed: %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func (s *e2eSuite) testPublicDefaults(t *testing.T) {
	resp := s.do(t, s.public, http.MethodGet, "/", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected home page, got %d", resp.StatusCode)
	}
	page, _ := io.ReadAll(resp.Body)
	for _, want := range []string{catalog.About().Name, catalog.Experiences()[0].Role, catalog.Projects()[0].Title} {
		if !strings.Contains(string(page), want) {
			t.Fatalf("expected home page to contain %q", want)
		}
	}

	resp = s.do(t, s.public, http.MethodGet, "/api/sections", nil, "")
	var sections map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&sections); err != nil {
		t.Fatalf("failed to decode sections: %v", err)
	}
	var skills listBody
	if err := json.Unmarshal(sections["skills"], &skills); err != nil {
		t.Fatalf("failed to decode skills: %v", err)
	}
	if !skills.Defaulted || len(skills.Items) != len(catalog.Skills()) {
		t.Fatalf("expected default skills, got %+v", skills)
	}
}

func (s *e2eSuite) testAdminRequiresLogin(t *testing.T) {
	resp := s.do(t, s.public, http.MethodGet, "/admin/api/experiences", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	resp = s.do(t, s.public, http.MethodGet, "/dashboard", nil, "")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to login, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testPromoteExperiences(t *testing.T) {
	var listed listBody
	if code := s.doJSON(t, http.MethodGet, "/admin/api/experiences", "", &listed); code != http.StatusOK {
		t.Fatalf("expected list, got %d", code)
	}
	target := listed.Items[1]
	if !target.IsDefault || target.Ref != "default-2" {
		t.Fatalf("unexpected default item %+v", target)
	}

	original := catalog.Experiences()[1]
	payload, _ := json.Marshal(map[string]interface{}{
		"role":         "Lead Coach",
		"period":       original.Period,
		"description":  original.Description,
		"is_currently": original.IsCurrently,
	})
	var saved listBody
	if code := s.doJSON(t, http.MethodPut, "/admin/api/experiences/"+target.Ref, string(payload), &saved); code != http.StatusOK {
		t.Fatalf("expected promotion to succeed, got %d", code)
	}
	if saved.Defaulted || len(saved.Items) != 3 {
		t.Fatalf("expected three stored experiences, got %+v", saved)
	}

	var total int64
	s.db.Model(&db.Experience{}).Count(&total)
	if total != 3 {
		t.Fatalf("expected 3 rows, got %d", total)
	}

	resp := s.do(t, s.public, http.MethodGet, "/", nil, "")
	page, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(page), "Lead Coach") || strings.Contains(string(page), "<h3>"+original.Role) {
		t.Fatalf("expected public page to show the edited role")
	}
}

func (s *e2eSuite) testReorderSkills(t *testing.T) {
	if code := s.doJSON(t, http.MethodPut, "/admin/api/skills/order", `{"ids":[1]}`, nil); code != http.StatusConflict {
		t.Fatalf("expected reorder to be refused while defaulted, got %d", code)
	}

	var listed listBody
	for _, title := range []string{"Go", "Gin", "GORM"} {
		body := fmt.Sprintf(`{"title":%q,"src":"/static/%s.svg"}`, title, strings.ToLower(title))
		if code := s.doJSON(t, http.MethodPost, "/admin/api/skills", body, &listed); code != http.StatusCreated {
			t.Fatalf("expected skill to be created, got %d", code)
		}
	}

	order := []uint{listed.Items[1].ID, listed.Items[2].ID, listed.Items[0].ID}
	body, _ := json.Marshal(map[string][]uint{"ids": order})
	var saved listBody
	if code := s.doJSON(t, http.MethodPut, "/admin/api/skills/order", string(body), &saved); code != http.StatusOK {
		t.Fatalf("expected reorder to succeed, got %d", code)
	}

	var rows []db.Skill
	s.db.Order("order_index ASC").Find(&rows)
	for index, row := range rows {
		if row.ID != order[index] || row.OrderIndex != index {
			t.Fatalf("unexpected stored order at %d: %+v", index, row)
		}
	}
}

func (s *e2eSuite) testUploadPortrait(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "portrait.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write(encoded.Bytes())
	writer.Close()

	resp := s.do(t, s.admin, http.MethodPost, "/admin/api/about/assets/front", &body, writer.FormDataContentType())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected upload to succeed, got %d", resp.StatusCode)
	}
	var uploaded struct {
		About struct {
			Name       string `json:"name"`
			FrontImage string `json:"front_image"`
		} `json:"about"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("failed to decode upload response: %v", err)
	}
	if !strings.HasPrefix(uploaded.About.FrontImage, "/uploads/fronts/front_") || !strings.HasSuffix(uploaded.About.FrontImage, ".png") {
		t.Fatalf("unexpected front image url %q", uploaded.About.FrontImage)
	}
	if uploaded.About.Name != catalog.About().Name {
		t.Fatalf("expected untouched fields to keep defaults, got %q", uploaded.About.Name)
	}

	resp = s.do(t, s.public, http.MethodGet, uploaded.About.FrontImage, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected uploaded file to be served, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testLogout(t *testing.T) {
	resp := s.do(t, s.admin, http.MethodGet, "/logout", nil, "")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", resp.StatusCode)
	}
	if code := s.doJSON(t, http.MethodGet, "/admin/api/about", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected session to be cleared, got %d", code)
	}
}
