package llm

import (
	"polychat/backend/internal/model"
)

type Vendor string

const (
	VendorOpenAI Vendor = "openai"
	VendorGemini Vendor = "gemini"
)

// ImageModel is the Gemini model used for image generation.
const ImageModel = "gemini-2.5-flash-image"

// ModelSpec describes how a user-facing model maps onto a vendor.
type ModelSpec struct {
	Vendor      Vendor
	VendorModel string
	// Sampling is false for models that reject temperature and top_p.
	Sampling bool
	// ReasoningEffort is true for models that accept a reasoning effort.
	ReasoningEffort bool
}

// The OpenAI entries leave Sampling off: the GPT-5 and o-series reasoning
// models reject any temperature or top_p other than the default of 1 with a
// 400 "unsupported_value" error.
var catalog = map[model.AIModel]ModelSpec{
	model.ModelGPT5:     {Vendor: VendorOpenAI, VendorModel: "gpt-5-2025-08-07"},
	model.ModelGPT5Mini: {Vendor: VendorOpenAI, VendorModel: "gpt-5-mini-2025-08-07"},
	model.ModelO3Mini:   {Vendor: VendorOpenAI, VendorModel: "o3-mini-2025-01-31", ReasoningEffort: true},
	model.ModelGemini:   {Vendor: VendorGemini, VendorModel: "gemini-2.5-pro", Sampling: true},
}

// Lookup returns the catalog entry for m.
func Lookup(m model.AIModel) (ModelSpec, bool) {
	spec, ok := catalog[m]
	return spec, ok
}

// NewChatRequest builds a request for this model with the given settings
// applied. Temperature and topP equal to 1 are treated as vendor defaults and
// omitted.
func (s ModelSpec) NewChatRequest(settings *model.ModelSettings) *ChatRequest {
	req := &ChatRequest{Model: s.VendorModel}
	if s.ReasoningEffort {
		req.ReasoningEffort = string(model.ReasoningMedium)
	}
	if settings == nil {
		return req
	}

	req.System = settings.SystemPrompt
	if s.Sampling {
		if settings.Temperature != nil && *settings.Temperature != 1 {
			t := *settings.Temperature
			req.Temperature = &t
		}
		if settings.TopP != nil && *settings.TopP != 1 {
			p := *settings.TopP
			req.TopP = &p
		}
	}
	if settings.MaxTokens != nil {
		n := *settings.MaxTokens
		req.MaxTokens = &n
	}
	if s.ReasoningEffort && settings.ReasoningEffort != "" {
		req.ReasoningEffort = string(settings.ReasoningEffort)
	}
	return req
}
