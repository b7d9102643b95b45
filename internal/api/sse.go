package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/monitoradlo/monitoradlo-go/internal/events"
)

// sseKeepAlive is how often an idle stream gets a comment line so proxies
// and the browser keep the connection open.
const sseKeepAlive = 25 * time.Second

// sseEvents streams editor state changes.
// The first event ("state") carries the current state; every later event is
// named after its cause ("config", "selection", "live", ...). The optional
// kinds query parameter (comma separated) limits which causes are sent.
func (h *Handlers) sseEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	wanted := parseKinds(r.URL.Query().Get("kinds"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	id := uuid.New().String()
	ch := h.events.Subscribe(id)
	defer h.events.Unsubscribe(id)

	s := &sseWriter{w: w, flusher: flusher}
	s.send("state", h.ctrl.State())

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if wanted != nil && !wanted[ev.Kind] {
				continue
			}
			s.send(ev.Kind, ev.State)
		case <-ticker.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

// parseKinds returns nil (everything) for an empty list.
func parseKinds(raw string) map[events.Kind]bool {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	kinds := make(map[events.Kind]bool)
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds[events.Kind(k)] = true
		}
	}
	return kinds
}

type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     uint64
}

// send writes one numbered event. Values that fail to encode are dropped.
func (s *sseWriter) send(kind events.Kind, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.seq++
	_, _ = fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, kind, data)
	s.flusher.Flush()
}
