package inbound

import (
	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/scanner/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

// Classify scores a URL with the phishing model.
// @Summary Classify URL
// @Tags Scanner
// @Accept json
// @Produce json
// @Param request body ClassifyRequest true "URL to classify"
// @Success 200 {object} router.successResponse{data=ClassifyResponse}
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 503 {object} router.errorResponse "Classifier is unavailable"
// @Router /api/v1/scanner/classify [post]
func (h *HTTPEndpoint) Classify(r *router.Request) (any, error) {
	var req ClassifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Classify(r.Context(), usecase.ClassifyInput{URL: req.URL})
	if err != nil {
		return nil, err
	}

	return newClassifyResponse(out), nil
}
