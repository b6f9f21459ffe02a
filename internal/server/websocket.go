package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MeKo-Tech/paperforge/internal/pipeline"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are the deployment proxy's job.
		return true
	},
}

// paperProgressMessage is streamed while a paper is generated.
type paperProgressMessage struct {
	Type   string                `json:"type"` // "progress", "completed", "error"
	Stage  string                `json:"stage,omitempty"`
	Done   int                   `json:"done,omitempty"`
	Total  int                   `json:"total,omitempty"`
	Result *pipeline.PaperResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// paperWebSocketHandler accepts one paper request per connection and streams
// generation progress back until completion.
func (s *Server) paperWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket connection", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	var req pipeline.PaperRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.sendWS(conn, paperProgressMessage{Type: "error", Error: "invalid paper request payload"})
		return
	}
	if req.Total == 0 {
		req.Total = s.paperCfg.DefaultTotal
	}
	if req.Output == "" {
		req.Output = filepath.Join(s.paperCfg.OutputDir,
			"paper_"+time.Now().UTC().Format("20060102_150405")+".pdf")
	}

	progress := func(stage string, done, total int) {
		s.sendWS(conn, paperProgressMessage{Type: "progress", Stage: stage, Done: done, Total: total})
	}

	result, err := s.generatePaper(req, progress)
	if err != nil {
		s.sendWS(conn, paperProgressMessage{Type: "error", Error: err.Error()})
		return
	}
	papersGenerated.Inc()
	s.sendWS(conn, paperProgressMessage{Type: "completed", Result: result})
}

func (s *Server) sendWS(conn *websocket.Conn, msg paperProgressMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to encode websocket message", "error", err)
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("websocket write failed", "error", err)
	}
}
