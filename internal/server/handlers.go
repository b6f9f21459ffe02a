package server

import (
	"encoding/json"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: version.String(),
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// suggestHandler runs region suggestion on an uploaded page image.
func (s *Server) suggestHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxBytes := s.cfg.MaxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeError(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	if err != nil {
		s.writeError(w, "Unsupported or corrupt image", http.StatusBadRequest)
		return
	}

	start := time.Now()
	regions := s.suggester.Suggest(img)
	suggestDuration.Observe(time.Since(start).Seconds())
	suggestRegions.Observe(float64(len(regions)))

	s.writeJSON(w, http.StatusOK, SuggestResponse{
		Frame:   s.suggester.Frame(),
		Regions: regions,
		Count:   len(regions),
	})
}

// poolsHandler routes /pools/{exam} and /pools/{exam}/candidates.
func (s *Server) poolsHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/pools/")
	examID, sub, _ := strings.Cut(rest, "/")
	if examID == "" {
		s.writeError(w, "Exam identifier required", http.StatusBadRequest)
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		s.getPool(w, examID)
	case sub == "candidates" && r.Method == http.MethodPut:
		s.upsertCandidate(w, r, examID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getPool(w http.ResponseWriter, examID string) {
	pool, err := s.store.Load(examID)
	if errors.Is(err, exam.ErrPoolNotFound) {
		s.writeError(w, "Exam pool not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to load pool", "exam", examID, "error", err)
		s.writeError(w, "Failed to load pool", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, pool)
}

func (s *Server) upsertCandidate(w http.ResponseWriter, r *http.Request, examID string) {
	var cand exam.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		s.writeError(w, "Invalid candidate payload", http.StatusBadRequest)
		return
	}
	stored, err := s.store.Upsert(examID, cand)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	candidateUpserts.Inc()
	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, msg string, status int) {
	s.writeJSON(w, status, ErrorResponse{Error: msg, Code: status})
}
