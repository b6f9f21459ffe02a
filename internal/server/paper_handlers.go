package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/MeKo-Tech/paperforge/internal/allocator"
	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/pipeline"
)

// papersHandler generates a practice paper synchronously and returns the
// generation summary as JSON. Long runs should prefer /ws/papers, which
// streams progress.
func (s *Server) papersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req pipeline.PaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "Invalid paper request payload", http.StatusBadRequest)
		return
	}
	if req.Output == "" {
		req.Output = filepath.Join(s.paperCfg.OutputDir,
			"paper_"+time.Now().UTC().Format("20060102_150405")+".pdf")
	}
	if req.Total == 0 {
		req.Total = s.paperCfg.DefaultTotal
	}

	result, err := s.generatePaper(req, nil)
	if err != nil {
		s.writePaperError(w, err)
		return
	}
	papersGenerated.Inc()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) generatePaper(req pipeline.PaperRequest, progress pipeline.ProgressFunc) (*pipeline.PaperResult, error) {
	source, err := s.sources(req.Exam)
	if err != nil {
		return nil, err
	}
	gen := pipeline.NewGenerator(s.store, source)
	return gen.Generate(req, progress)
}

// writePaperError maps the allocator/store error taxonomy onto HTTP status
// codes with actionable payloads.
func (s *Server) writePaperError(w http.ResponseWriter, err error) {
	var shortfall *allocator.ShortfallError
	switch {
	case errors.Is(err, allocator.ErrInsufficientWeight):
		s.writeError(w, "All category weights are zero or negative; adjust the ratios", http.StatusUnprocessableEntity)
	case errors.As(err, &shortfall):
		s.writeError(w, shortfall.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, exam.ErrPoolNotFound):
		s.writeError(w, "Exam pool not found", http.StatusNotFound)
	default:
		slog.Error("paper generation failed", "error", err)
		s.writeError(w, "Paper generation failed", http.StatusInternalServerError)
	}
}
