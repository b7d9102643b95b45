// Package api implements the HTTP REST API of the layout editor.
package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/monitoradlo/monitoradlo-go/internal/events"
	"github.com/monitoradlo/monitoradlo-go/internal/kanshi"
	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	ctrl    Controller
	events  EventBus
	backups BackupLister
}

// Controller is the interface the handlers use to read and edit the state.
type Controller interface {
	State() models.State
	Config() models.Configuration
	MonitorLayout() []models.ResolvedRect
	LiveOutputs() []models.LiveOutput

	AddProfile(name string) models.State
	RemoveProfile(idx int) models.State
	RenameProfile(idx int, name string) models.State
	DuplicateProfile(idx int, name string) models.State
	MoveProfile(from, to int) models.State

	AddOutput(profileIdx int, criteria string) models.State
	AddOutputFromLive(profileIdx int, connector string) models.State
	UpdateOutput(profileIdx, outputIdx int, upd models.OutputUpdate) models.State
	UpdateOutputPosition(profileIdx, outputIdx, x, y int) models.State
	RemoveOutput(profileIdx, outputIdx int) models.State
	MoveOutput(profileIdx, from, to int) models.State

	SetSelection(upd models.SelectionUpdate) models.State

	RefreshLive(ctx context.Context) ([]models.LiveOutput, *models.AppError)
	Preview(ctx context.Context, connector string, req models.PreviewRequest) *models.AppError
	Save(ctx context.Context) (models.State, *models.AppError)
	Load(ctx context.Context) (models.State, *models.AppError)
}

// EventBus is the interface for subscribing to state change events.
type EventBus interface {
	Subscribe(id string) <-chan events.Event
	Unsubscribe(id string)
}

// BackupLister lists configuration backups.
type BackupLister interface {
	Backups() ([]string, error)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an AppError as a JSON response.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if appErr, ok := err.(*models.AppError); ok {
		w.WriteHeader(appErr.Status)
		_ = json.NewEncoder(w).Encode(appErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.ErrInternal(err.Error()))
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.ErrBadRequest("invalid JSON: " + err.Error())
	}
	return nil
}

// intParam reads an integer path parameter by name.
func intParam(r *http.Request, name string) (int, error) {
	s := chi.URLParam(r, name)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, models.ErrBadRequest("invalid " + name + " parameter")
	}
	return n, nil
}

// profileParam reads {pid} and checks that it names a profile.
func (h *Handlers) profileParam(r *http.Request) (int, error) {
	pid, err := intParam(r, "pid")
	if err != nil {
		return 0, err
	}
	if cfg := h.ctrl.Config(); pid < 0 || pid >= len(cfg.Profiles) {
		return 0, models.ErrNotFound("profile not found")
	}
	return pid, nil
}

// outputParams reads {pid} and {oid} and checks that they name an entry.
func (h *Handlers) outputParams(r *http.Request) (int, int, error) {
	pid, err := intParam(r, "pid")
	if err != nil {
		return 0, 0, err
	}
	oid, err := intParam(r, "oid")
	if err != nil {
		return 0, 0, err
	}
	cfg := h.ctrl.Config()
	if cfg.Output(pid, oid) == nil {
		return 0, 0, models.ErrNotFound("output not found")
	}
	return pid, oid, nil
}

// Accepted output scales. niri clamps to the same range.
const (
	minScale = 0.1
	maxScale = 10
)

// checkName rejects a profile name or criteria the kanshi file cannot hold.
func checkName(field, s string) *models.AppError {
	if err := kanshi.ValidateName(s); err != nil {
		appErr := models.ErrBadRequest(field + " " + err.Error())
		appErr.Field = field
		return appErr
	}
	return nil
}

// checkScale rejects scales outside [minScale, maxScale]. nil is accepted.
func checkScale(scale *float64) *models.AppError {
	if scale == nil {
		return nil
	}
	if v := *scale; math.IsNaN(v) || v < minScale || v > maxScale {
		appErr := models.ErrBadRequest("scale must be between " +
			strconv.FormatFloat(minScale, 'f', -1, 64) + " and " + strconv.FormatFloat(maxScale, 'f', -1, 64))
		appErr.Field = "scale"
		return appErr
	}
	return nil
}
