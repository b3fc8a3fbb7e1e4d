package inbound

import "github.com/shandysiswandi/phishguard/internal/scanner/usecase"

type ClassifyRequest struct {
	URL string `json:"url"`
}

type ClassifyResponse struct {
	HasResult bool    `json:"has_result"`
	URL       string  `json:"url,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Verdict   string  `json:"verdict,omitempty"`
	Label     string  `json:"label,omitempty"`
}

func (c ClassifyResponse) Message() string {
	if !c.HasResult {
		return "Nothing to classify"
	}
	return c.Label
}

func newClassifyResponse(out *usecase.ClassifyOutput) ClassifyResponse {
	if !out.HasResult {
		return ClassifyResponse{}
	}

	return ClassifyResponse{
		HasResult: true,
		URL:       out.Result.URL,
		Score:     out.Result.Score,
		Verdict:   out.Result.Verdict.String(),
		Label:     out.Result.Verdict.Label(),
	}
}
