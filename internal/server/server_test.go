package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/druckwerk/belegdesigner/internal/clock"
	"github.com/druckwerk/belegdesigner/internal/config"
	"github.com/druckwerk/belegdesigner/internal/render"
	templatedomain "github.com/druckwerk/belegdesigner/internal/template/domain"
	templaterepo "github.com/druckwerk/belegdesigner/internal/template/repository"
	templateservice "github.com/druckwerk/belegdesigner/internal/template/service"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS document_templates (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			document_type TEXT NOT NULL,
			paper_format TEXT NOT NULL DEFAULT 'A4',
			elements TEXT,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create document_templates: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	log := zap.NewNop()
	svc := templateservice.NewService(templateservice.ServiceParam{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  templaterepo.Provide(),
	})

	router := gin.New()
	srv := NewServer(ServerParam{
		Cfg:         config.Config{Environment: "test"},
		Log:         log,
		DB:          db,
		TemplateSvc: svc,
		Engine:      render.NewEngine(log, clock.SystemClock{}),
		Preview:     render.NewHTMLPreview(),
		Router:      router,
	})
	srv.RegisterAPIRoutes()
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func saveStarterTemplate(t *testing.T, srv *Server) string {
	t.Helper()
	rec, body := doJSON(t, srv, http.MethodPost, "/api/templates", map[string]any{
		"name":          "Versandetikett",
		"document_type": templatedomain.DocTypeVersandetikett,
		"elements": []map[string]any{
			{"id": 1, "kind": "field", "x": 50, "y": 50, "width": 120, "height": 24, "binding": "{Versand.TrackingNr}", "text": "{Versand.TrackingNr}"},
			{"id": 2, "kind": "table", "x": 20, "y": 120, "width": 400, "height": 150, "columns": []map[string]any{
				{"field": "ArtNr", "title": "Art-Nr", "width": 80},
				{"field": "Bezeichnung", "title": "Name", "width": 160},
				{"field": "Menge", "title": "Menge", "width": 40},
			}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save status %d: %v", rec.Code, body)
	}
	data := body["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" || id == "0" {
		t.Fatalf("expected generated id, got %v", data["id"])
	}
	return id
}

func TestSaveAndLoadTemplateRoundTrip(t *testing.T) {
	srv := setupTestServer(t)
	id := saveStarterTemplate(t, srv)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/templates/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("load status %d", rec.Code)
	}
	data := body["data"].(map[string]any)
	elements := data["elements"].([]any)
	if len(elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(elements))
	}
	first := elements[0].(map[string]any)
	if first["binding"] != "{Versand.TrackingNr}" {
		t.Fatalf("binding %v lost in round trip", first["binding"])
	}
}

func TestLoadUnknownTemplate(t *testing.T) {
	srv := setupTestServer(t)
	rec, body := doJSON(t, srv, http.MethodGet, "/api/templates/99999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404 (%v)", rec.Code, body)
	}
}

func TestSaveRejectsMissingName(t *testing.T) {
	srv := setupTestServer(t)
	rec, body := doJSON(t, srv, http.MethodPost, "/api/templates", map[string]any{
		"document_type": templatedomain.DocTypeRechnung,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 (%v)", rec.Code, body)
	}
	errObj := body["error"].(map[string]any)
	if errObj["code"] != "invalid_name" {
		t.Fatalf("code %v, want invalid_name", errObj["code"])
	}
}

func TestListTemplatesCatalog(t *testing.T) {
	srv := setupTestServer(t)
	id := saveStarterTemplate(t, srv)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/templates?document_type="+templatedomain.DocTypeVersandetikett, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	items := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("got %d templates, want 1", len(items))
	}

	rec, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/templates/%s/deactivate", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate status %d", rec.Code)
	}
	_, body = doJSON(t, srv, http.MethodGet, "/api/templates", nil)
	if len(body["data"].([]any)) != 0 {
		t.Fatal("deactivated template still in catalog")
	}
}

func TestPreviewTemplateScenario(t *testing.T) {
	srv := setupTestServer(t)
	id := saveStarterTemplate(t, srv)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/templates/"+id+"/preview", map[string]any{
		"context": map[string]any{
			"Versand": map[string]any{"TrackingNr": "1Z999"},
			"Pos": []map[string]any{
				{"ArtNr": "A-1", "Bezeichnung": "Schraube", "Menge": 10},
				{"ArtNr": "A-2", "Bezeichnung": "Mutter", "Menge": 20},
				{"ArtNr": "A-3", "Bezeichnung": "Scheibe", "Menge": 5},
			},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status %d: %v", rec.Code, body)
	}

	data := body["data"].(map[string]any)
	tree := data["tree"].(map[string]any)
	nodes := tree["Nodes"].([]any)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	field := nodes[0].(map[string]any)
	if field["Text"] != "1Z999" {
		t.Fatalf("field text %v, want 1Z999", field["Text"])
	}
	table := nodes[1].(map[string]any)["Table"].(map[string]any)
	rows := table["Rows"].([]any)
	if len(rows) != 3 {
		t.Fatalf("got %d body rows, want 3", len(rows))
	}
}

func TestPreviewMissingDataKeepsLiteralToken(t *testing.T) {
	srv := setupTestServer(t)
	id := saveStarterTemplate(t, srv)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/templates/"+id+"/preview", map[string]any{
		"context": map[string]any{},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("preview with missing data must still succeed, status %d", rec.Code)
	}
	data := body["data"].(map[string]any)
	nodes := data["tree"].(map[string]any)["Nodes"].([]any)
	field := nodes[0].(map[string]any)
	if field["Text"] != "{Versand.TrackingNr}" {
		t.Fatalf("field text %v, want literal token", field["Text"])
	}
	warnings := data["warnings"].([]any)
	if len(warnings) == 0 {
		t.Fatal("expected non-fatal warnings")
	}
}

func TestPreviewHTMLFormat(t *testing.T) {
	srv := setupTestServer(t)
	id := saveStarterTemplate(t, srv)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/templates/"+id+"/preview", map[string]any{
		"format":  "html",
		"context": map[string]any{"Versand": map[string]any{"TrackingNr": "1Z999"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	data := body["data"].(map[string]any)
	html, _ := data["html"].(string)
	if html == "" {
		t.Fatal("expected html payload")
	}
}

func TestListPlaceholders(t *testing.T) {
	srv := setupTestServer(t)
	rec, body := doJSON(t, srv, http.MethodGet, "/api/placeholders", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	groups := body["data"].([]any)
	if len(groups) != 6 {
		t.Fatalf("got %d groups, want 6", len(groups))
	}
}
