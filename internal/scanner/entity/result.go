package entity

// PhishingThreshold is the lowest score labelled phishing.
const PhishingThreshold = 0.5

type Verdict int8

const (
	VerdictSafe     Verdict = 0
	VerdictPhishing Verdict = 1
)

// VerdictFromScore labels a classifier score.
func VerdictFromScore(score float64) Verdict {
	if score >= PhishingThreshold {
		return VerdictPhishing
	}
	return VerdictSafe
}

func (v Verdict) String() string {
	if v == VerdictPhishing {
		return "phishing"
	}
	return "safe"
}

// Label is the human readable verdict.
func (v Verdict) Label() string {
	if v == VerdictPhishing {
		return "Phishing URL"
	}
	return "Safe URL"
}

// Result is one classification. It is never stored.
type Result struct {
	URL     string
	Score   float64
	Verdict Verdict
}
