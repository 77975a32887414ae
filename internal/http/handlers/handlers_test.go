package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/staffing-graph-backend/internal/graph/memory"
	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
	"github.com/yungbote/staffing-graph-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	store := memory.NewStore()

	cvs := services.NewCVService(store, log, nil)
	rfps := services.NewRFPService(store, log, nil, nil)
	projects := services.NewProjectService(store, log, nil, 2)
	matching := services.NewMatchingService(store, log, nil)
	conversion := services.NewConversionService(store, log, nil)

	r := gin.New()
	ingest := NewIngestHandler(cvs, rfps, projects)
	match := NewMatchingHandler(matching, conversion)
	entities := NewEntityHandler(cvs, rfps, projects)
	r.POST("/api/v1/ingest/cv", ingest.IngestCV)
	r.POST("/api/v1/ingest/rfp", ingest.IngestRFP)
	r.GET("/api/v1/match/:rfp_id", match.FindCandidates)
	r.GET("/api/v1/rfps", entities.ListRFPs)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIngestCVStatusCodes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/ingest/cv",
		`{"full_name": "maria garcia", "skills": [{"skill_name": "go", "proficiency": "Expert"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("valid CV status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/ingest/cv", `{"full_name": "   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank name status = %d, want 400: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/ingest/cv", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d, want 400", w.Code)
	}
}

func TestIngestRFPDuplicateIsConflict(t *testing.T) {
	r := newTestRouter(t)

	body := `{"id": "RFP-001", "title": "X", "start_date": "2025-09-01", "requirements": []}`
	if w := doJSON(t, r, http.MethodPost, "/api/v1/ingest/rfp", body); w.Code != http.StatusOK {
		t.Fatalf("first save status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, "/api/v1/ingest/rfp", body); w.Code != http.StatusConflict {
		t.Fatalf("duplicate save status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestFindCandidatesUnknownRFPIsNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/match/RFP-404", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown RFP status = %d, want 404: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/match/RFP-404?threshold_months=zero", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad threshold status = %d, want 400: %s", w.Code, w.Body.String())
	}
}
