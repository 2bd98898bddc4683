package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"polychat/backend/internal/interfaces"
	"polychat/backend/internal/model"
	"polychat/backend/internal/service"
)

// PresetHandler exposes the preset catalog and its moderation queue. Admin
// checks happen in the service.
type PresetHandler struct {
	service interfaces.PresetService
}

func NewPresetHandler(svc interfaces.PresetService) *PresetHandler {
	return &PresetHandler{service: svc}
}

// HandleListPresets godoc
// @Summary      Public presets
// @Tags         Presets
// @Produce      json
// @Success      200  {array}  model.PresetPrompt
// @Router       /presets [get]
func (h *PresetHandler) HandleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.service.ListPublic(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondPresets(w, presets)
}

// HandleListPending godoc
// @Summary      Presets awaiting moderation
// @Tags         Presets
// @Produce      json
// @Success      200  {array}   model.PresetPrompt
// @Failure      403  {object}  ErrorResponse
// @Router       /presets/pending [get]
func (h *PresetHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	presets, err := h.service.ListPending(r.Context(), identity(r))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondPresets(w, presets)
}

// HandleGetPreset godoc
// @Summary      Get a preset
// @Tags         Presets
// @Produce      json
// @Param        id   path      string  true  "Preset ID"
// @Success      200  {object}  model.PresetPrompt
// @Failure      404  {object}  ErrorResponse
// @Router       /presets/{id} [get]
func (h *PresetHandler) HandleGetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := h.service.Get(r.Context(), identity(r), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, preset)
}

// HandleCreatePreset godoc
// @Summary      Publish a preset (admin)
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        preset  body      service.PresetRequest  true  "Preset"
// @Success      201     {object}  model.PresetPrompt
// @Failure      403     {object}  ErrorResponse
// @Router       /presets [post]
func (h *PresetHandler) HandleCreatePreset(w http.ResponseWriter, r *http.Request) {
	var req service.PresetRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	preset, err := h.service.CreateAdmin(r.Context(), identity(r), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, preset)
}

// HandleSubmitPreset godoc
// @Summary      Submit a preset for review
// @Description  The preset is stored as pending whatever the body says.
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        preset  body      service.PresetRequest  true  "Preset"
// @Success      201     {object}  model.PresetPrompt
// @Router       /presets/user [post]
func (h *PresetHandler) HandleSubmitPreset(w http.ResponseWriter, r *http.Request) {
	var req service.PresetRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	preset, err := h.service.Submit(r.Context(), identity(r), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, preset)
}

// HandleUpdatePreset godoc
// @Summary      Edit a preset (admin)
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        id      path      string                 true  "Preset ID"
// @Param        preset  body      service.PresetRequest  true  "Preset"
// @Success      200     {object}  model.PresetPrompt
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /presets/{id} [put]
func (h *PresetHandler) HandleUpdatePreset(w http.ResponseWriter, r *http.Request) {
	var req service.PresetRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	preset, err := h.service.Update(r.Context(), identity(r), chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, preset)
}

// HandleDeletePreset godoc
// @Summary      Delete a preset (admin)
// @Tags         Presets
// @Param        id  path  string  true  "Preset ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /presets/{id} [delete]
func (h *PresetHandler) HandleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), identity(r), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetPresetStatus godoc
// @Summary      Approve or reject a pending preset (admin)
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Preset ID"
// @Param        status  body      service.PresetStatusRequest  true  "New status"
// @Success      200     {object}  model.PresetPrompt
// @Failure      409     {object}  ErrorResponse
// @Router       /presets/{id}/status [patch]
func (h *PresetHandler) HandleSetPresetStatus(w http.ResponseWriter, r *http.Request) {
	var req service.PresetStatusRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	preset, err := h.service.SetStatus(r.Context(), identity(r), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, preset)
}

func respondPresets(w http.ResponseWriter, presets []*model.PresetPrompt) {
	if presets == nil {
		presets = []*model.PresetPrompt{}
	}
	respondWithJSON(w, http.StatusOK, presets)
}
