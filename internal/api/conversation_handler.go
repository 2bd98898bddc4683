package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"polychat/backend/internal/interfaces"
	"polychat/backend/internal/model"
	"polychat/backend/internal/service"
)

// ConversationHandler serves the CRUD endpoints of stored conversations.
// Every route requires a session; ownership is enforced by the service.
type ConversationHandler struct {
	service interfaces.ConversationService
}

func NewConversationHandler(svc interfaces.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: svc}
}

// HandleListConversations godoc
// @Summary      List conversations
// @Description  Returns the caller's conversations, most recently updated first, without messages.
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}   model.Conversation
// @Failure      401  {object}  ErrorResponse
// @Router       /conversations [get]
func (h *ConversationHandler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.service.List(r.Context(), identity(r).UserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if convs == nil {
		convs = []*model.Conversation{}
	}
	respondWithJSON(w, http.StatusOK, convs)
}

// HandleCreateConversation godoc
// @Summary      Create a conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversation  body      service.CreateConversationRequest  true  "Model and settings"
// @Success      201           {object}  model.Conversation
// @Failure      400           {object}  ErrorResponse
// @Router       /conversations [post]
func (h *ConversationHandler) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req service.CreateConversationRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.service.Create(r.Context(), identity(r).UserID, req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conv)
}

// HandleGetConversation godoc
// @Summary      Get a conversation
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  model.Conversation
// @Failure      404  {object}  ErrorResponse
// @Router       /conversations/{id} [get]
func (h *ConversationHandler) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.service.Get(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// HandleUpdateConversation godoc
// @Summary      Rename a conversation or change its settings
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        id      path      string                             true  "Conversation ID"
// @Param        update  body      service.UpdateConversationRequest  true  "Title and/or settings"
// @Success      200     {object}  model.Conversation
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /conversations/{id} [patch]
func (h *ConversationHandler) HandleUpdateConversation(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateConversationRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.service.Update(r.Context(), identity(r).UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// HandleDeleteConversation godoc
// @Summary      Delete a conversation
// @Description  Succeeds whether or not the conversation exists or belongs to the caller.
// @Tags         Conversations
// @Param        id  path  string  true  "Conversation ID"
// @Success      204
// @Router       /conversations/{id} [delete]
func (h *ConversationHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), identity(r).UserID, chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetMessages godoc
// @Summary      List the messages of a conversation
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {array}   model.Message
// @Failure      404  {object}  ErrorResponse
// @Router       /conversations/{id}/messages [get]
func (h *ConversationHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.Messages(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	respondWithJSON(w, http.StatusOK, msgs)
}
