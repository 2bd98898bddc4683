package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"polychat/backend/internal/attachment"
	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/interfaces"
	"polychat/backend/internal/model"
	"polychat/backend/internal/service"
)

// ChatHandler serves the streaming chat endpoints.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleChat godoc
// @Summary      Stream a chat completion
// @Description  Accepts JSON or multipart/form-data (a `data` JSON field plus `files`). Request
// @Description  errors are returned as JSON before the stream starts; afterwards the response is a
// @Description  stream of `{content}` events ending with exactly one `{done}` or `{error, partial}`.
// @Tags         Chat
// @Accept       json,mpfd
// @Produce      text/event-stream
// @Param        request  body      service.ChatRequest  true  "Model, history and the current turn"
// @Success      200      {object}  model.StreamResponse  "Stream of events"
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	attachments, err := decodeChatPayload(w, r, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	turn, err := h.service.PrepareChat(r.Context(), identity(r).UserID, &req, attachments)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.stream(w, r, turn)
}

// HandleConversationMessage godoc
// @Summary      Continue a stored conversation
// @Description  Same payload and event stream as /chat, minus model, history and settings, which
// @Description  come from the conversation.
// @Tags         Chat
// @Accept       json,mpfd
// @Produce      text/event-stream
// @Param        id       path      string                               true  "Conversation ID"
// @Param        request  body      service.ConversationMessageRequest  true  "The current turn"
// @Success      200      {object}  model.StreamResponse  "Stream of events"
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /conversations/{id}/messages [post]
func (h *ChatHandler) HandleConversationMessage(w http.ResponseWriter, r *http.Request) {
	var req service.ConversationMessageRequest
	attachments, err := decodeChatPayload(w, r, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	turn, err := h.service.PrepareConversationTurn(r.Context(), identity(r).UserID, chi.URLParam(r, "id"), &req, attachments)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.stream(w, r, turn)
}

func (h *ChatHandler) stream(w http.ResponseWriter, r *http.Request, turn *service.Turn) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	streamChan := make(chan model.StreamResponse)
	go h.service.Stream(r.Context(), turn, streamChan)

	for chunk := range streamChan {
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Warn("Could not write to chat stream, client likely disconnected", "error", err)
			// Let the producer finish; it stops as soon as the request context ends.
			go func() {
				for range streamChan {
				}
			}()
			return
		}
	}
	slog.Debug("Finished streaming chat response")
}

// decodeChatPayload reads either a JSON body or a multipart form whose `data`
// field holds the JSON payload and whose `files` are converted into content
// parts. The payload is validated.
func decodeChatPayload(w http.ResponseWriter, r *http.Request, dst interface{}) ([]model.ContentPart, error) {
	r.Body = http.MaxBytesReader(w, r.Body, attachment.MaxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return nil, decodeJSON(r.Body, dst)
	}

	if err := r.ParseMultipartForm(attachment.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: upload exceeds %d bytes", app_errors.ErrValidation, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: invalid multipart form", app_errors.ErrValidation)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	data := r.FormValue("data")
	if data == "" {
		return nil, fmt.Errorf("%w: multipart field 'data' is required", app_errors.ErrValidation)
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return nil, fmt.Errorf("%w: field 'data' is not valid JSON", app_errors.ErrValidation)
	}
	if err := validateRequest(dst); err != nil {
		return nil, err
	}

	headers := r.MultipartForm.File["files"]
	files := make([]attachment.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open upload '%s': %w", fh.Filename, err)
		}
		body, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read upload '%s': %w", fh.Filename, err)
		}
		files = append(files, attachment.File{Name: fh.Filename, Data: body})
	}
	return attachment.ToContentParts(files)
}
