// Package server exposes the analysis engines over a small JSON API.
package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/marktpuls/marktpuls/internal/analyzer"
	"github.com/marktpuls/marktpuls/internal/config"
	"github.com/marktpuls/marktpuls/internal/importer"
	"github.com/marktpuls/marktpuls/internal/influencer"
	"github.com/marktpuls/marktpuls/internal/outreach"
	"github.com/marktpuls/marktpuls/internal/risk"
	"github.com/marktpuls/marktpuls/internal/service"
	"github.com/marktpuls/marktpuls/internal/store"
)

// Server wires the engines into HTTP handlers.
type Server struct {
	config          *config.Config
	analysisService *service.Service
	analyzer        *analyzer.Analyzer
	evaluator       *influencer.Evaluator
	detector        *risk.Detector
	importer        *importer.CSVImporter
	store           *store.Store
}

// New creates a server around the given collaborators.
func New(cfg *config.Config, analysisService *service.Service, az *analyzer.Analyzer, evaluator *influencer.Evaluator, detector *risk.Detector, imp *importer.CSVImporter, st *store.Store) *Server {
	return &Server{
		config:          cfg,
		analysisService: analysisService,
		analyzer:        az,
		evaluator:       evaluator,
		detector:        detector,
		importer:        imp,
		store:           st,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	router.HandleFunc("/trigger", s.handleTrigger).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze/single", s.handleAnalyzeSingle).Methods("POST")
	api.HandleFunc("/analyze/batch", s.handleAnalyzeBatch).Methods("POST")
	api.HandleFunc("/influencer/evaluate", s.handleEvaluate).Methods("POST")
	api.HandleFunc("/influencer/rank", s.handleRank).Methods("POST")
	api.HandleFunc("/risk/detect", s.handleRiskDetect).Methods("POST")
	api.HandleFunc("/reviews/import", s.handleImport).Methods("POST")
	api.HandleFunc("/reviews/critical", s.handleCriticalReviews).Methods("GET")
	api.HandleFunc("/outreach/draft", s.handleOutreachDraft).Methods("POST")
	api.HandleFunc("/outreach/apology", s.handleApologyDraft).Methods("POST")

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.analysisService.GetMetrics()))
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := s.analysisService.RunAnalysis(); err != nil {
			logrus.Errorf("Manual analysis trigger failed: %v", err)
		}
	}()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Analysis triggered successfully"})
}

func (s *Server) handleAnalyzeSingle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	insight := s.analyzer.AnalyzeSingle(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, insight)
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts []string `json:"texts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := s.analyzer.AnalyzeBatch(r.Context(), req.Texts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var profile influencer.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.evaluator.Evaluate(&profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profiles []*influencer.Profile `json:"profiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Profiles) == 0 {
		writeError(w, http.StatusBadRequest, "profiles are required")
		return
	}

	results, failures := s.evaluator.EvaluateBatch(req.Profiles)
	failureMessages := make(map[string]string, len(failures))
	for username, err := range failures {
		failureMessages[username] = err.Error()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ranked":   influencer.Rank(results),
		"failures": failureMessages,
	})
}

func (s *Server) handleRiskDetect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	writeJSON(w, http.StatusOK, s.detector.Detect(req.Text, req.Rating))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content   string `json:"content"`
		Delimiter string `json:"delimiter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	delimiter := ','
	if req.Delimiter != "" {
		decoded, size := utf8.DecodeRuneInString(req.Delimiter)
		if decoded == utf8.RuneError || size != len(req.Delimiter) {
			writeError(w, http.StatusBadRequest, "delimiter must be a single character")
			return
		}
		delimiter = decoded
	}

	result := s.importer.Import(req.Content, delimiter)
	if saved, errs := s.store.SaveReviews(result.Reviews); len(errs) > 0 {
		logrus.Errorf("Import persisted %d reviews with %d errors", saved, len(errs))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCriticalReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.store.ListByRiskLevels(string(risk.LevelCritical), string(risk.LevelHigh))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews, "count": len(reviews)})
}

func (s *Server) handleOutreachDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tone        string           `json:"tone"`
		IncludeGDPR *bool            `json:"include_gdpr"`
		Context     outreach.Context `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tone := outreach.Tone(req.Tone)
	if req.Tone == "" {
		tone = outreach.Tone(s.config.OutreachTone)
	}
	includeGDPR := true
	if req.IncludeGDPR != nil {
		includeGDPR = *req.IncludeGDPR
	}
	if req.Context.BrandName == "" {
		req.Context.BrandName = s.config.BrandName
	}

	generator, err := outreach.NewGenerator(tone, includeGDPR, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft := generator.Generate(req.Context)
	check := outreach.PrivacyCheck(draft.Body, &req.Context, false)
	writeJSON(w, http.StatusOK, map[string]any{"draft": draft, "privacy_check": check})
}

func (s *Server) handleApologyDraft(w http.ResponseWriter, r *http.Request) {
	var req outreach.ApologyContext
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReviewContent == "" {
		writeError(w, http.StatusBadRequest, "review_content is required")
		return
	}

	generator := outreach.NewApologyGenerator(s.config.BrandName, s.config.ContactAddress,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	writeJSON(w, http.StatusOK, generator.Generate(req))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
