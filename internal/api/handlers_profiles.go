package api

import (
	"net/http"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

func (h *Handlers) createProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if appErr := checkName("name", req.Name); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusCreated, h.ctrl.AddProfile(req.Name))
}

func (h *Handlers) setProfile(w http.ResponseWriter, r *http.Request) {
	pid, err := h.profileParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var upd models.ProfileUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if upd.Name == nil {
		writeJSON(w, http.StatusOK, h.ctrl.State())
		return
	}
	if appErr := checkName("name", *upd.Name); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.RenameProfile(pid, *upd.Name))
}

func (h *Handlers) deleteProfile(w http.ResponseWriter, r *http.Request) {
	pid, err := h.profileParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.RemoveProfile(pid))
}

func (h *Handlers) duplicateProfile(w http.ResponseWriter, r *http.Request) {
	pid, err := h.profileParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.ProfileCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if appErr := checkName("name", req.Name); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusCreated, h.ctrl.DuplicateProfile(pid, req.Name))
}

func (h *Handlers) moveProfile(w http.ResponseWriter, r *http.Request) {
	pid, err := h.profileParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.MoveProfile(pid, req.To))
}
