package main

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/config"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/dataset"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/export"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/session"
	"github.com/Aakash-Malhan/cltv-roi-dashboard/internal/simulator"
)

// dashboardServer owns the HTTP surface and the single session behind it.
// Each request runs to completion under the mutex, so there is never
// overlapping in-flight work on the session state.
type dashboardServer struct {
	cfg *config.Config

	mu      sync.Mutex
	session *session.Session
}

func newDashboardServer(cfg *config.Config) *dashboardServer {
	return &dashboardServer{cfg: cfg, session: session.New()}
}

func (s *dashboardServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/load", s.handleLoadUpload)
		r.Post("/load/default", s.handleLoadDefault)
		r.Get("/records", s.handleRecords)
		r.Get("/channels", s.handleChannels)
		r.Get("/stats", s.handleStats)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/export", s.handleExport)
	})

	return r
}

func (s *dashboardServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLoadUpload replaces the session state with an uploaded CSV or XLSX
// file. On any failure the previously loaded state stays visible.
func (s *dashboardServer) handleLoadUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	frame, err := parseUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.load(w, frame, header.Filename)
}

// handleLoadDefault loads the configured default dataset. A missing file
// is the fatal configuration error, reported without touching state.
func (s *dashboardServer) handleLoadDefault(w http.ResponseWriter, _ *http.Request) {
	path, err := s.cfg.ResolveDataset("")
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	frame, err := dataset.Load(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.load(w, frame, path)
}

func (s *dashboardServer) load(w http.ResponseWriter, frame *dataset.Frame, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Load(frame); err != nil {
		// Schema and parse failures abort the load; prior state stays.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	zap.L().Info("dataset loaded",
		zap.String("source", source),
		zap.Int("rows", s.session.Stats.Rows),
		zap.Int("channels", s.session.Stats.Channels),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "loaded",
		"session":  s.session.ID.String(),
		"rows":     s.session.Stats.Rows,
		"channels": s.session.Stats.Channels,
	})
}

func (s *dashboardServer) handleRecords(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Loaded() {
		writeError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Records)
}

func (s *dashboardServer) handleChannels(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Loaded() {
		writeError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Channels)
}

func (s *dashboardServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Loaded() {
		writeError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Stats)
}

// handleSimulate runs the reallocation projection. Parse failures and a
// missing report are recovered: the response is 200 with the inline
// message, a null result, and untouched state.
func (s *dashboardServer) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Allocations json.RawMessage `json:"allocations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The allocation arrives either as a JSON string blob or as a bare
	// object; both carry the same key -> weight mapping.
	blob := string(req.Allocations)
	var quoted string
	if json.Unmarshal(req.Allocations, &quoted) == nil {
		blob = quoted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	text, result, err := simulator.Simulate(s.session.Channels, blob)
	resp := map[string]any{
		"text":   text,
		"result": result, // nil on a recovered failure, encoded as null
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *dashboardServer) handleExport(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.Loaded() {
		writeError(w, http.StatusBadRequest, "no dataset loaded")
		return
	}

	enrichedPath, summaryPath := export.Paths(s.cfg.Export.Dir)
	if err := export.WriteEnriched(enrichedPath, s.session.Records); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := export.WriteSummary(summaryPath, s.session.Channels); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"customer_csv": enrichedPath,
		"channel_csv":  summaryPath,
	})
}

// parseUpload reads an uploaded table. XLSX uploads are spooled to a temp
// file because the workbook reader needs a seekable file.
func parseUpload(file io.Reader, filename string) (*dataset.Frame, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return dataset.ReadCSVFrom(file)
	}

	tmp, err := os.CreateTemp("", "upload-*.xlsx")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, err
	}
	return dataset.ReadXLSX(tmp.Name(), "")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
