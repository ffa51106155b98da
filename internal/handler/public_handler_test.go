package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/eventbus"
	"github.com/portfolio/internal/view"
)

// lockedRecorder 允许在处理器仍在写入时读取已输出的内容
type lockedRecorder struct {
	mu  sync.Mutex
	rec *httptest.ResponseRecorder
}

func (r *lockedRecorder) Header() http.Header {
	return r.rec.Header()
}

func (r *lockedRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rec.Write(b)
}

func (r *lockedRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.WriteHeader(code)
}

func (r *lockedRecorder) Flush() {}

func (r *lockedRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rec.Body.String()
}

func TestShowHomeRendersDefaults(t *testing.T) {
	fx := newHandlerFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if fx.html.last == nil || fx.html.last.name != "index.html" {
		t.Fatalf("expected index template, got %+v", fx.html.last)
	}

	data, ok := fx.html.last.data.(gin.H)
	if !ok {
		t.Fatalf("unexpected template data %T", fx.html.last.data)
	}
	about := data["about"].(db.About)
	if about.Name != catalog.About().Name {
		t.Fatalf("expected default name, got %q", about.Name)
	}
	if projects := data["projects"].([]view.ProjectCard); len(projects) != len(catalog.Projects()) {
		t.Fatalf("expected %d projects, got %d", len(catalog.Projects()), len(projects))
	}
	if resume := data["resume"].(view.ResumeTarget); resume.Href != catalog.DefaultResumePath || !resume.Download {
		t.Fatalf("expected bundled resume download, got %+v", resume)
	}
	if data["mailEnabled"] != true {
		t.Fatalf("expected contact form to be enabled")
	}
}

func TestShowHomeUsesStoredRows(t *testing.T) {
	fx := newHandlerFixture(t, false)
	fx.db.Create(&db.Skill{Title: "Go", Src: "go.svg"})
	fx.db.Create(&db.About{ID: db.AboutRowID, Name: "Liann G."})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	fx.router.ServeHTTP(httptest.NewRecorder(), req)

	data := fx.html.last.data.(gin.H)
	if skills := data["skills"].([]skillView); len(skills) != 1 || skills[0].Title != "Go" {
		t.Fatalf("expected stored skills only, got %+v", skills)
	}
	about := data["about"].(db.About)
	if about.Name != "Liann G." || about.Title != catalog.About().Title {
		t.Fatalf("expected stored name merged with defaults, got %+v", about)
	}
}

func TestGetSectionsReportsDefaulted(t *testing.T) {
	fx := newHandlerFixture(t, false)
	fx.db.Create(&db.Project{Title: "Poster", Category: db.ProjectCategoryDesign})

	req := httptest.NewRequest(http.MethodGet, "/api/sections", nil)
	rr := httptest.NewRecorder()
	fx.router.ServeHTTP(rr, req)

	var payload map[string]struct {
		Defaulted bool `json:"defaulted"`
		Items     []struct {
			Ref string `json:"ref"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !payload["experiences"].Defaulted || payload["experiences"].Items[0].Ref != "default-1" {
		t.Fatalf("expected default experiences, got %+v", payload["experiences"])
	}
	if payload["projects"].Defaulted || len(payload["projects"].Items) != 1 {
		t.Fatalf("expected stored projects, got %+v", payload["projects"])
	}
}

func TestStreamAboutPushesUpdates(t *testing.T) {
	fx := newHandlerFixture(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/about/stream", nil).WithContext(ctx)
	rec := &lockedRecorder{rec: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		defer close(done)
		fx.router.ServeHTTP(rec, req)
	}()

	waitFor(t, func() bool {
		return fx.api.events.SubscriberCount(eventbus.AboutUpdated) == 1 && strings.Contains(rec.String(), "event:about")
	})
	if !strings.Contains(rec.String(), catalog.About().Name) {
		t.Fatalf("expected initial event with default profile, got %q", rec.String())
	}

	if _, err := fx.api.about.Save(context.Background(), db.About{Name: "Liann Updated"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	waitFor(t, func() bool { return strings.Contains(rec.String(), "Liann Updated") })

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after the client disconnected")
	}
	if count := fx.api.events.SubscriberCount(eventbus.AboutUpdated); count != 0 {
		t.Fatalf("expected subscription to be released, got %d", count)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSendContactMessage(t *testing.T) {
	post := func(fx *handlerFixture, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contact/messages", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		fx.router.ServeHTTP(rr, req)
		return rr
	}
	valid := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "subject": {"Hi"}, "message": {"Hello there"}}

	t.Run("invalid", func(t *testing.T) {
		fx := newHandlerFixture(t, false)
		rr := post(fx, url.Values{"name": {"Ana"}, "email": {"not-an-email"}, "message": {"Hi"}})
		if rr.Code != http.StatusBadRequest || len(fx.sender.sent) != 0 {
			t.Fatalf("expected 400 without sending, got %d", rr.Code)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		fx := newHandlerFixture(t, false)
		fx.sender.configured = false
		if rr := post(fx, valid); rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rr.Code)
		}
	})

	t.Run("relay failure", func(t *testing.T) {
		fx := newHandlerFixture(t, false)
		fx.sender.err = errors.New("relay returned 500")
		if rr := post(fx, valid); rr.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rr.Code)
		}
	})

	t.Run("sent", func(t *testing.T) {
		fx := newHandlerFixture(t, false)
		rr := post(fx, valid)
		if rr.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", rr.Code, rr.Body.String())
		}
		if len(fx.sender.sent) != 1 || fx.sender.sent[0].SenderEmail != "ana@example.com" {
			t.Fatalf("unexpected sent messages %+v", fx.sender.sent)
		}
		if !strings.Contains(rr.Body.String(), "req-1") {
			t.Fatalf("expected request id in response, got %s", rr.Body.String())
		}
	})
}
