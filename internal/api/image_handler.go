package api

import (
	"net/http"

	"polychat/backend/internal/interfaces"
	"polychat/backend/internal/service"
)

type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type ImageHandler struct {
	service interfaces.ImageService
}

func NewImageHandler(svc interfaces.ImageService) *ImageHandler {
	return &ImageHandler{service: svc}
}

// HandleGenerateImage godoc
// @Summary      Generate an image
// @Description  Returns the generated image as a data URL. Nothing is stored.
// @Tags         Images
// @Accept       json
// @Produce      json
// @Param        request  body      service.GenerateImageRequest  true  "Prompt"
// @Success      200      {object}  ImageResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /generate-image [post]
func (h *ImageHandler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateImageRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	url, err := h.service.Generate(r.Context(), identity(r).UserID, req.Prompt)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ImageResponse{ImageURL: url})
}
