package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/moriq/kabuscan/internal/ranking"
	"github.com/moriq/kabuscan/pkg/logger"
)

// ScanHandler triggers universe rescans
// ⭐ SSOT: スキャン起動APIはこの構造体だけ
type ScanHandler struct {
	service *ranking.Service
	logger  *logger.Logger

	upgrader websocket.Upgrader
}

// NewScanHandler creates a new scan handler
func NewScanHandler(service *ranking.Service, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		service: service,
		logger:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// ローカルツールなのでオリジン制限なし
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// TriggerScan runs a rescan synchronously and returns the fresh ranking
// POST /api/scan
func (h *ScanHandler) TriggerScan(w http.ResponseWriter, r *http.Request) {
	ranked, started, err := h.service.Rescan(r.Context(), nil)
	if !started {
		respondError(w, http.StatusConflict, "A scan is already running")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Scan failed")
		respondError(w, http.StatusInternalServerError, "Scan failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scored": len(ranked),
	})
}

// scanProgressMessage is one WebSocket frame during a scan
type scanProgressMessage struct {
	Status string `json:"status"` // "scanning" | "done" | "error" | "busy"
	Done   int    `json:"done"`
	Total  int    `json:"total"`
	Scored int    `json:"scored,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ScanWithProgress runs a rescan and streams per-ticker progress
// GET /ws/scan (WebSocket)
func (h *ScanHandler) ScanWithProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Progress frames come from worker goroutines; serialize the writes
	frames := make(chan scanProgressMessage, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range frames {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.WithError(err).Debug("WebSocket write failed")
				return
			}
		}
	}()

	ranked, started, err := h.service.Rescan(r.Context(), func(done, total int) {
		select {
		case frames <- scanProgressMessage{Status: "scanning", Done: done, Total: total}:
		default: // a slow client drops frames, never blocks the scan
		}
	})

	final := scanProgressMessage{Status: "done", Scored: len(ranked)}
	switch {
	case !started:
		final = scanProgressMessage{Status: "busy"}
	case err != nil:
		final = scanProgressMessage{Status: "error", Error: err.Error()}
	}
	select {
	case frames <- final:
	case <-writerDone: // client went away mid-scan
	}
	close(frames)
	<-writerDone
}
