package server

import (
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// SuggestResponse is returned by POST /suggest.
type SuggestResponse struct {
	Frame   utils.FrameSize `json:"frame"`
	Regions []utils.Rect    `json:"regions"`
	Count   int             `json:"count"`
}

// ErrorResponse is the common error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
