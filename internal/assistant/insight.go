package assistant

import "strings"

// Insight is the fixed structure rendered by the assistant page.
type Insight struct {
	Summary           string   `json:"summary"`
	Seriousness       string   `json:"seriousness"`
	NextSteps         string   `json:"next_steps"`
	RedFlags          string   `json:"red_flags"`
	SelfCare          string   `json:"self_care"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// Seriousness tiers produced by Heuristic.
const (
	SeriousnessHigh     = "High"
	SeriousnessModerate = "Moderate"
	SeriousnessLow      = "Low to moderate"
	SeriousnessUnclear  = "Unclear"
)

var (
	highRiskTerms     = []string{"bleeding", "black", "rapidly growing", "irregular", "ulcer"}
	moderateRiskTerms = []string{"itch", "rash", "dry", "redness", "flaking"}
)

func defaultFollowUps() []string {
	return []string{
		"Where exactly is the affected area?",
		"When did it start and is it changing?",
		"Any known triggers or new products?",
	}
}

// Heuristic is the deterministic keyword-based insight used whenever no
// language model answer is available.
func Heuristic(symptoms, duration string) Insight {
	in := Insight{
		Summary:           "We could not interpret the input. Please add more detail.",
		Seriousness:       SeriousnessUnclear,
		NextSteps:         "Provide symptom location, onset, and any triggers.",
		RedFlags:          "Severe pain, rapid spreading, bleeding, or fever.",
		SelfCare:          "Keep the area clean and avoid known irritants.",
		FollowUpQuestions: defaultFollowUps(),
	}

	text := strings.ToLower(symptoms + " " + duration)
	switch {
	case containsAny(text, highRiskTerms):
		in.Seriousness = SeriousnessHigh
		in.Summary = "Symptoms suggest a potentially serious skin concern."
		in.NextSteps = "Seek dermatologist evaluation soon."
	case containsAny(text, moderateRiskTerms):
		in.Seriousness = SeriousnessModerate
		in.Summary = "Symptoms align with inflammatory or allergic skin conditions."
		in.NextSteps = "Consider gentle skincare and consult a clinician if persistent."
	case strings.TrimSpace(symptoms) != "":
		in.Seriousness = SeriousnessLow
		in.Summary = "Symptoms appear mild, but monitor for changes."
		in.NextSteps = "If worsening or persistent, consult a specialist."
	}
	return in
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
