package api

import (
	"net/http"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// createOutput adds an entry to a profile, either from a criteria string or
// seeded from the live output on a connector.
func (h *Handlers) createOutput(w http.ResponseWriter, r *http.Request) {
	pid, err := h.profileParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.OutputCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	switch {
	case req.Connector != "":
		if !h.hasLive(req.Connector) {
			writeError(w, models.ErrNotFound("unknown connector "+req.Connector))
			return
		}
		writeJSON(w, http.StatusCreated, h.ctrl.AddOutputFromLive(pid, req.Connector))
	case req.Criteria != "":
		if appErr := checkName("criteria", req.Criteria); appErr != nil {
			writeError(w, appErr)
			return
		}
		writeJSON(w, http.StatusCreated, h.ctrl.AddOutput(pid, req.Criteria))
	default:
		writeError(w, models.ErrBadRequest("criteria or connector is required"))
	}
}

func (h *Handlers) hasLive(connector string) bool {
	for _, o := range h.ctrl.LiveOutputs() {
		if o.Connector == connector {
			return true
		}
	}
	return false
}

func (h *Handlers) setOutput(w http.ResponseWriter, r *http.Request) {
	pid, oid, err := h.outputParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var upd models.OutputUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if upd.Criteria != nil {
		if appErr := checkName("criteria", *upd.Criteria); appErr != nil {
			writeError(w, appErr)
			return
		}
	}
	if appErr := checkScale(upd.Scale); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.UpdateOutput(pid, oid, upd))
}

func (h *Handlers) setOutputPosition(w http.ResponseWriter, r *http.Request) {
	pid, oid, err := h.outputParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var pos models.Position
	if err := decodeJSON(r, &pos); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.UpdateOutputPosition(pid, oid, pos.X, pos.Y))
}

func (h *Handlers) deleteOutput(w http.ResponseWriter, r *http.Request) {
	pid, oid, err := h.outputParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.RemoveOutput(pid, oid))
}

func (h *Handlers) moveOutput(w http.ResponseWriter, r *http.Request) {
	pid, oid, err := h.outputParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.MoveOutput(pid, oid, req.To))
}
