package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	appai "github.com/bryanwahyu/tender-guard/internal/application/ai"
	appanalysis "github.com/bryanwahyu/tender-guard/internal/application/analysis"
	domain "github.com/bryanwahyu/tender-guard/internal/domain/analysis"
	domai "github.com/bryanwahyu/tender-guard/internal/domain/ai"
	"github.com/bryanwahyu/tender-guard/internal/domain/records"
	"github.com/bryanwahyu/tender-guard/internal/middleware"
)

type Router struct {
	analysisSvc *appanalysis.Service
	aiSvc       *appai.Service
}

func NewRouter(analysisSvc *appanalysis.Service, aiSvc *appai.Service) http.Handler {
	r := &Router{analysisSvc: analysisSvc, aiSvc: aiSvc}
	mux := chi.NewRouter()

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/analyses/{id}/errors", r.wrap(r.handleErrors))
		rt.Get("/summary", r.wrap(r.handleSummary))
		rt.Post("/ai/brief", r.wrap(r.handleBrief))
		rt.Get("/ai/brief", r.wrap(r.handleBriefList))
		rt.Get("/ai/brief/latest", r.wrap(r.handleBriefLatest))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, records.ErrInvalidRecord):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

type analyzeResults struct {
	Score     int               `json:"score"`
	Patterns  []domain.Pattern  `json:"patterns"`
	GraphData *domain.Graph     `json:"graphData,omitempty"`
	Warnings  []records.Warning `json:"warnings,omitempty"`
}

type analyzeResponse struct {
	Success     bool           `json:"success"`
	AnalysisID  string         `json:"analysisId"`
	RiskScore   int            `json:"riskScore"`
	Results     analyzeResults `json:"results"`
	ArtifactURL string         `json:"artifactUrl,omitempty"`
}

// POST /v1/{tenant}/analyze
// Body: {"analysisType": "bid_patterns"|"company_background", "tenderId": "...",
// "supplierIds": [...], "supplierId": "..."}
// Runs synchronously: the engine is pure in-memory work, unlike a scanner
// there is nothing to queue.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		AnalysisType string   `json:"analysisType"`
		TenderID     string   `json:"tenderId"`
		SupplierIDs  []string `json:"supplierIds"`
		SupplierID   string   `json:"supplierId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	if err := middleware.ValidateAnalysisType(body.AnalysisType); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if body.TenderID != "" {
		if err := middleware.ValidateEntityID(body.TenderID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
	}
	if len(body.SupplierIDs) > 0 {
		if err := middleware.ValidateSupplierIDs(body.SupplierIDs); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
	}
	if body.SupplierID != "" {
		if err := middleware.ValidateEntityID(body.SupplierID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
	}

	middleware.IncrementAnalyses()
	a, err := r.analysisSvc.Run(req.Context(), appanalysis.RunAnalysisCommand{
		TenantID:     tenant,
		AnalysisType: strings.ToLower(middleware.SanitizeString(body.AnalysisType)),
		TenderID:     body.TenderID,
		SupplierIDs:  body.SupplierIDs,
		SupplierID:   body.SupplierID,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	resp := analyzeResponse{
		Success:     true,
		AnalysisID:  string(a.ID),
		RiskScore:   a.RiskScore,
		ArtifactURL: a.ArtifactURL,
		Results: analyzeResults{
			Score:    a.RiskScore,
			Patterns: []domain.Pattern{},
		},
	}
	if a.Result != nil {
		if a.Result.Patterns != nil {
			resp.Results.Patterns = a.Result.Patterns
		}
		resp.Results.GraphData = a.Result.Graph
		resp.Results.Warnings = a.Result.Warnings
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

// GET /v1/{tenant}/analyses/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.analysisSvc.Latest(req.Context(), tenant, limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/analyses?page=&page_size=
// With cursor_time (RFC3339) + cursor_id the handler switches to keyset
// pagination, cheaper on deep pages than offset.
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	if ct := req.URL.Query().Get("cursor_time"); ct != "" {
		cursorTime, err := time.Parse(time.RFC3339, ct)
		if err != nil {
			return fmt.Errorf("%w: invalid cursor_time", domain.ErrInvalidArgument)
		}
		list, err := r.analysisSvc.CursorList(req.Context(), tenant, cursorTime, req.URL.Query().Get("cursor_id"), middleware.ValidateLimit(size))
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(list)
	}

	result, err := r.analysisSvc.Paginate(req.Context(), tenant, page, size)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// GET /v1/{tenant}/analyses/{id}/errors?limit=20
func (r *Router) handleErrors(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	entries, err := r.analysisSvc.Errors(req.Context(), tenant, id, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(entries)
}

// GET /v1/{tenant}/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	a, err := r.analysisSvc.Get(req.Context(), tenant, domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.analysisSvc.Summary(req.Context(), tenant, days)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}

// POST /v1/{tenant}/ai/brief
// Body: {"analysis_id": "<id>"}
// The server fetches the stored analysis payload and writes a narrative brief.
func (r *Router) handleBrief(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		http.Error(w, "ai analyst not configured", http.StatusServiceUnavailable)
		return nil
	}
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		AnalysisID string `json:"analysis_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if body.AnalysisID == "" {
		return fmt.Errorf("%w: analysis_id is required", domain.ErrInvalidArgument)
	}
	if err := middleware.ValidateAnalysisID(body.AnalysisID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	a, err := r.analysisSvc.Get(req.Context(), tenant, domain.AnalysisID(body.AnalysisID))
	if err != nil {
		return err
	}
	if a == nil || a.Result == nil {
		return fmt.Errorf("%w: analysis %s has no stored payload", domain.ErrNotFound, body.AnalysisID)
	}
	payload, err := json.Marshal(a.Result)
	if err != nil {
		return err
	}

	brief, err := r.aiSvc.SummarizeAndStore(req.Context(), tenant, body.AnalysisID, string(payload))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(brief)
}

// GET /v1/{tenant}/ai/brief/latest?analysis_id=<id>
func (r *Router) handleBriefLatest(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		http.Error(w, "ai analyst not configured", http.StatusServiceUnavailable)
		return nil
	}
	tenant := chi.URLParam(req, "tenant")
	analysisID := req.URL.Query().Get("analysis_id")
	if err := middleware.ValidateAnalysisID(analysisID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	brief, err := r.aiSvc.LatestBrief(req.Context(), tenant, analysisID)
	if err != nil {
		return err
	}
	if brief == nil {
		return fmt.Errorf("%w: no brief for analysis %s", domain.ErrNotFound, analysisID)
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(brief)
}

// GET /v1/{tenant}/ai/brief?page=&page_size=
func (r *Router) handleBriefList(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		http.Error(w, "ai analyst not configured", http.StatusServiceUnavailable)
		return nil
	}
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.aiSvc.ListBriefs(req.Context(), tenant, page, size)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}
