package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "polychat/backend/internal/errors"
	"polychat/backend/internal/llm"
	"polychat/backend/internal/metrics"
	"polychat/backend/internal/model"
	"polychat/backend/internal/repository"
	"polychat/backend/internal/search"
)

// searchNotice is streamed to the client (and stored) before each web search.
const searchNotice = "\n\n🔍 Searching the web: \"%s\"\n\n"

// ChatService relays chat completions from the vendors to the client and
// records finished turns in the user's conversation.
type ChatService struct {
	conversations repository.ConversationRepository
	providers     *llm.Registry
	searcher      search.Searcher
	metrics       *metrics.Recorder
}

// NewChatService wires the relay. searcher may be nil, which disables the
// web_search tool.
func NewChatService(conversations repository.ConversationRepository, providers *llm.Registry, searcher search.Searcher, recorder *metrics.Recorder) *ChatService {
	return &ChatService{
		conversations: conversations,
		providers:     providers,
		searcher:      searcher,
		metrics:       recorder,
	}
}

// Turn is a validated chat turn, ready to be streamed.
type Turn struct {
	userID         string
	conversationID string
	model          model.AIModel
	spec           llm.ModelSpec
	history        []model.Message
	settings       *model.ModelSettings
	userMessage    *model.Message
}

// PrepareChat validates a stateless chat request. attachments are the already
// converted uploaded files. When the request names a conversation, it must
// belong to userID.
func (s *ChatService) PrepareChat(ctx context.Context, userID string, req *ChatRequest, attachments []model.ContentPart) (*Turn, error) {
	spec, ok := llm.Lookup(req.Model)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported model '%s'", app_errors.ErrValidation, req.Model)
	}
	if req.ConversationID != "" {
		if _, err := s.conversations.GetConversation(ctx, req.ConversationID, userID); err != nil {
			return nil, translateNotFound(err, "conversation", req.ConversationID)
		}
	}

	userMessage, err := newUserMessage(req.Content, req.Images, attachments)
	if err != nil {
		return nil, err
	}
	return &Turn{
		userID:         userID,
		conversationID: req.ConversationID,
		model:          req.Model,
		spec:           spec,
		history:        req.Messages,
		settings:       req.Settings,
		userMessage:    userMessage,
	}, nil
}

// PrepareConversationTurn continues a stored conversation using its model,
// settings and message history.
func (s *ChatService) PrepareConversationTurn(ctx context.Context, userID, conversationID string, req *ConversationMessageRequest, attachments []model.ContentPart) (*Turn, error) {
	conv, err := s.conversations.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, translateNotFound(err, "conversation", conversationID)
	}
	spec, ok := llm.Lookup(conv.Model)
	if !ok {
		return nil, fmt.Errorf("%w: conversation uses unsupported model '%s'", app_errors.ErrValidation, conv.Model)
	}

	userMessage, err := newUserMessage(req.Content, req.Images, attachments)
	if err != nil {
		return nil, err
	}
	return &Turn{
		userID:         userID,
		conversationID: conv.ID,
		model:          conv.Model,
		spec:           spec,
		history:        conv.Messages,
		settings:       conv.Settings,
		userMessage:    userMessage,
	}, nil
}

func newUserMessage(content []model.ContentPart, images []string, attachments []model.ContentPart) (*model.Message, error) {
	parts := make([]model.ContentPart, 0, len(content)+len(images)+len(attachments))
	for _, p := range content {
		if p.Type == model.ContentText && p.Text == "" {
			continue
		}
		parts = append(parts, p)
	}
	for _, img := range images {
		if img != "" {
			parts = append(parts, model.ImagePart(img))
		}
	}
	parts = append(parts, attachments...)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: message content is required", app_errors.ErrValidation)
	}
	return &model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   parts,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Stream runs the turn and writes events to out, which it closes on return.
// Exactly one terminal event ({done} or {error}) ends the stream unless the
// client went away. The assistant message is stored only when the turn
// completed.
func (s *ChatService) Stream(ctx context.Context, turn *Turn, out chan<- model.StreamResponse) {
	defer close(out)

	finish := s.metrics.StartChat(string(turn.model))
	r := &relay{ctx: ctx, out: out}
	logger := slog.With("model", turn.model, "user_id", turn.userID, "conversation_id", turn.conversationID)

	fail := func(msg string, err error) {
		logger.Error("Chat turn failed", "error", err, "partial", r.delivered)
		if r.delivered {
			finish(metrics.OutcomePartial)
		} else {
			finish(metrics.OutcomeError)
		}
		r.send(model.StreamResponse{Error: msg, Partial: r.delivered})
	}

	provider, err := s.providers.Provider(turn.spec.Vendor)
	if err != nil {
		fail(err.Error(), err)
		return
	}

	if turn.conversationID != "" {
		if err := s.conversations.AppendMessage(ctx, turn.conversationID, turn.userID, turn.userMessage); err != nil {
			fail("Could not save message", err)
			return
		}
	}

	req := turn.spec.NewChatRequest(turn.settings)
	req.Messages = toProviderMessages(turn.history, turn.userMessage)
	if s.searcher != nil {
		req.Tools = []llm.Tool{llm.WebSearchTool}
	}

	toolCalls, err := s.round(ctx, provider, req, r)
	if err == nil && len(toolCalls) > 0 {
		req = s.runTools(ctx, req, toolCalls, r)
		if ctx.Err() == nil {
			_, err = s.round(ctx, provider, req, r)
		}
	}
	if ctx.Err() != nil {
		logger.Info("Client disconnected before the turn completed")
		finish(metrics.OutcomeError)
		return
	}
	if err != nil {
		fail(fmt.Sprintf("Failed to get response from %s", turn.spec.Vendor), err)
		return
	}

	if turn.conversationID != "" {
		m := turn.model
		assistant := &model.Message{
			ID:        uuid.NewString(),
			Role:      model.RoleAssistant,
			Content:   []model.ContentPart{model.TextPart(r.text.String())},
			Model:     &m,
			Timestamp: time.Now().UTC(),
		}
		if err := s.conversations.AppendMessage(ctx, turn.conversationID, turn.userID, assistant); err != nil {
			fail("Could not save assistant message", err)
			return
		}
	}

	finish(metrics.OutcomeSuccess)
	r.send(model.StreamResponse{Done: true})
}

// relay forwards deltas to the client and keeps the full text.
type relay struct {
	ctx       context.Context
	out       chan<- model.StreamResponse
	text      strings.Builder
	delivered bool
}

func (r *relay) send(resp model.StreamResponse) bool {
	select {
	case r.out <- resp:
		return true
	case <-r.ctx.Done():
		return false
	}
}

func (r *relay) content(delta string) bool {
	r.text.WriteString(delta)
	if !r.send(model.StreamResponse{Content: delta}) {
		return false
	}
	r.delivered = true
	return true
}

// round streams one completion and returns the tool calls it requested.
func (s *ChatService) round(ctx context.Context, provider llm.ChatProvider, req *llm.ChatRequest, r *relay) ([]llm.ToolCall, error) {
	roundCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan llm.StreamChunk)
	errCh := make(chan error, 1)
	go func() { errCh <- provider.StreamChat(roundCtx, req, ch) }()

	var calls []llm.ToolCall
	for chunk := range ch {
		calls = append(calls, chunk.ToolCalls...)
		if chunk.Content != "" && !r.content(chunk.Content) {
			// Client is gone; keep draining until the provider notices.
			cancel()
		}
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	return calls, nil
}

// runTools executes the requested tool calls and returns the follow-up
// request: the original messages plus the assistant's tool-call message and
// one tool message per call, with tools disabled.
func (s *ChatService) runTools(ctx context.Context, req *llm.ChatRequest, calls []llm.ToolCall, r *relay) *llm.ChatRequest {
	followUp := *req
	followUp.Tools = nil
	followUp.Messages = append(append([]llm.Message{}, req.Messages...), llm.Message{
		Role:      llm.RoleAssistant,
		ToolCalls: calls,
	})

	for _, call := range calls {
		output := s.runTool(ctx, call, r)
		followUp.Messages = append(followUp.Messages, llm.Message{
			Role:       llm.RoleTool,
			ToolCallID: call.ID,
			Name:       call.Name,
			Parts:      []llm.Part{{Text: output}},
		})
	}
	return &followUp
}

func (s *ChatService) runTool(ctx context.Context, call llm.ToolCall, r *relay) string {
	if call.Name != llm.WebSearchToolName || s.searcher == nil {
		s.metrics.RecordToolCall(call.Name, false)
		return toolError(fmt.Sprintf("unknown tool '%s'", call.Name))
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil || strings.TrimSpace(args.Query) == "" {
		s.metrics.RecordToolCall(call.Name, false)
		return toolError("invalid arguments: a non-empty 'query' is required")
	}

	r.content(fmt.Sprintf(searchNotice, args.Query))

	resp, err := s.searcher.Search(ctx, args.Query)
	if err != nil {
		slog.Warn("Web search failed", "query", args.Query, "error", err)
		s.metrics.RecordToolCall(call.Name, false)
		return toolError("search failed: " + err.Error())
	}
	s.metrics.RecordToolCall(call.Name, true)

	data, err := json.Marshal(resp)
	if err != nil {
		return toolError("could not encode search results")
	}
	return string(data)
}

func toolError(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return string(data)
}

// toProviderMessages maps stored history plus the current user message onto
// provider messages.
func toProviderMessages(history []model.Message, current *model.Message) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		if msg, ok := toProviderMessage(m); ok {
			out = append(out, msg)
		}
	}
	if msg, ok := toProviderMessage(*current); ok {
		out = append(out, msg)
	}
	return out
}

func toProviderMessage(m model.Message) (llm.Message, bool) {
	role := llm.RoleUser
	switch m.Role {
	case model.RoleUser:
	case model.RoleAssistant:
		role = llm.RoleAssistant
	default:
		return llm.Message{}, false
	}

	parts := make([]llm.Part, 0, len(m.Content))
	for _, p := range m.Content {
		switch p.Type {
		case model.ContentText:
			if p.Text != "" {
				parts = append(parts, llm.Part{Text: p.Text})
			}
		case model.ContentImage:
			if p.URL != "" {
				parts = append(parts, llm.Part{ImageURL: p.URL})
			}
		}
	}
	if len(parts) == 0 {
		return llm.Message{}, false
	}
	return llm.Message{Role: role, Parts: parts}, true
}
