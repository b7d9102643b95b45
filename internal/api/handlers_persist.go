package api

import (
	"net/http"
	"path/filepath"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

func (h *Handlers) save(w http.ResponseWriter, r *http.Request) {
	state, appErr := h.ctrl.Save(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// load discards unsaved edits and re-reads the configuration file.
func (h *Handlers) load(w http.ResponseWriter, r *http.Request) {
	state, appErr := h.ctrl.Load(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) getBackups(w http.ResponseWriter, r *http.Request) {
	if h.backups == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"backups": []string{}})
		return
	}
	files, err := h.backups.Backups()
	if err != nil {
		writeError(w, models.ErrInternal(err.Error()))
		return
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"backups": names})
}
