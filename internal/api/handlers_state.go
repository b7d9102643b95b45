package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/monitoradlo/monitoradlo-go/internal/layout"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

const (
	defaultPNGWidth = 640
	maxPNGWidth     = 4096
)

func (h *Handlers) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.State())
}

func (h *Handlers) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Config())
}

func (h *Handlers) getLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"layout": h.ctrl.MonitorLayout()})
}

// getLayoutPNG renders the current profile's layout as a thumbnail.
func (h *Handlers) getLayoutPNG(w http.ResponseWriter, r *http.Request) {
	width := defaultPNGWidth
	if s := r.URL.Query().Get("width"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 32 || n > maxPNGWidth {
			writeError(w, models.ErrBadRequest("width must be between 32 and "+strconv.Itoa(maxPNGWidth)))
			return
		}
		width = n
	}

	state := h.ctrl.State()
	var buf bytes.Buffer
	opts := layout.RenderOptions{Width: width, Selected: state.Selection.OutputIndex}
	if err := layout.WritePNG(&buf, state.Layout, opts); err != nil {
		writeError(w, models.ErrInternal(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) setSelection(w http.ResponseWriter, r *http.Request) {
	var upd models.SelectionUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.SetSelection(upd))
}

func (h *Handlers) getLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"outputs": h.ctrl.LiveOutputs()})
}

func (h *Handlers) refreshLive(w http.ResponseWriter, r *http.Request) {
	outputs, appErr := h.ctrl.RefreshLive(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"outputs": outputs})
}

func (h *Handlers) preview(w http.ResponseWriter, r *http.Request) {
	connector := chi.URLParam(r, "connector")
	var req models.PreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if appErr := checkScale(req.Scale); appErr != nil {
		writeError(w, appErr)
		return
	}
	if appErr := h.ctrl.Preview(r.Context(), connector, req); appErr != nil {
		writeError(w, appErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
