// Package score implements the deterministic settlement-range heuristic used
// when no remote estimation webhook is configured or reachable.
package score

import (
	"math"

	"settlement-quiz/internal/quiz/answers"
	"settlement-quiz/internal/quiz/catalog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Source records where an estimate came from. It is internal bookkeeping for
// analytics and tests and never leaves the process in JSON.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// SettlementRange is the low/high band in whole currency units.
type SettlementRange struct {
	Low      int    `json:"low"`
	High     int    `json:"high"`
	Currency string `json:"currency"`
}

// Confidence is the scored confidence band.
type Confidence struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Estimate is the terminal output of a completed quiz submission.
type Estimate struct {
	CaseTier        string          `json:"caseTier"`
	SettlementRange SettlementRange `json:"settlementRange"`
	Confidence      Confidence      `json:"confidence"`
	ClientSummary   string          `json:"clientSummary"`
	Reasons         []string        `json:"reasons,omitempty"`
	MissingInfo     []string        `json:"missingInfo,omitempty"`
	NextSteps       []string        `json:"nextSteps,omitempty"`
	Disclaimer      string          `json:"disclaimer,omitempty"`

	Source Source `json:"-"`
}

// strongEvidence are the categories that materially strengthen a claim.
var strongEvidence = []string{
	"Emails / Slack / texts",
	"HR complaints or tickets",
	"Performance reviews",
}

const timingWithin30Days = "Within 30 days"

var compensationBase = map[string][2]float64{
	"$150k+":      {40000, 150000},
	"$100k–$150k": {30000, 100000},
	"$75k–$100k":  {20000, 75000},
	"$50k–$75k":   {15000, 50000},
}

// Score maps a completed answer set to a settlement-range estimate. The
// function is pure: identical answer sets produce identical estimates.
func Score(set answers.Set) *Estimate {
	low, high := 10000.0, 50000.0

	if base, ok := compensationBase[set.Scalar(catalog.QuestionAnnualCompensation)]; ok {
		low, high = base[0], base[1]
	}

	// Temporal proximity is the key retaliation signal, so it moves both bounds.
	timing := set.Scalar(catalog.QuestionTimingOfChange)
	switch timing {
	case timingWithin30Days:
		low *= 1.3
		high *= 1.3
	case "30–90 days":
		low *= 1.1
		high *= 1.1
	}

	// Larger employers settle higher; only the ceiling moves.
	switch set.Scalar(catalog.QuestionEmployerSize) {
	case "1,000+":
		high *= 1.4
	case "200–1,000":
		high *= 1.2
	case "Under 10":
		high *= 0.6
	}

	lowRounded := roundToThousand(low)
	highRounded := roundToThousand(high)

	hasStrongEvidence := intersects(set.Selection(catalog.QuestionEvidence), strongEvidence)
	tookProtectedAction := hasActionOtherThanNone(set.Selection(catalog.QuestionActionsTaken))
	within30 := timing == timingWithin30Days

	tier, confidence := classify(hasStrongEvidence, tookProtectedAction, within30)

	missingInfo := []string{}
	if !hasStrongEvidence {
		missingInfo = append(missingInfo, "Additional documentation would strengthen the case")
	}
	missingInfo = append(missingInfo,
		"Detailed timeline of events with specific dates",
		"Copies of relevant emails, HR complaints, and performance reviews",
	)

	return &Estimate{
		CaseTier: tier,
		SettlementRange: SettlementRange{
			Low:      lowRounded,
			High:     highRounded,
			Currency: "USD",
		},
		Confidence:    confidence,
		ClientSummary: buildSummary(hasStrongEvidence, tookProtectedAction, within30, lowRounded, highRounded),
		Reasons: []string{
			"Temporal proximity between protected activity and adverse action",
			"Quality and quantity of documentary evidence",
			"Annual compensation and income impact",
			"Employer size and resources",
			"State-specific employment law protections",
		},
		MissingInfo: missingInfo,
		NextSteps: []string{
			"Preserve all evidence immediately (emails, texts, documents)",
			"Create a detailed timeline of events with specific dates",
			"Consult with an employment attorney in your state",
			"Avoid discussing the situation on social media",
			"Research your state's statute of limitations for employment claims",
		},
		Disclaimer: "This is an informational estimate based on common patterns in workplace disputes, not legal advice. Outcomes and values vary widely by facts, documentation, and timing, and this does not determine eligibility or predict results.",
		Source:     SourceFallback,
	}
}

func classify(hasStrongEvidence, tookProtectedAction, within30 bool) (string, Confidence) {
	switch {
	case hasStrongEvidence && tookProtectedAction && within30:
		return "A", Confidence{Label: "High", Score: 0.8}
	case !hasStrongEvidence || !tookProtectedAction:
		return "C", Confidence{Label: "Low", Score: 0.3}
	default:
		return "B", Confidence{Label: "Medium", Score: 0.5}
	}
}

func buildSummary(hasStrongEvidence, tookProtectedAction, within30 bool, low, high int) string {
	text := "Based on the information provided, this situation shows "

	if tookProtectedAction && within30 {
		text += "strong temporal proximity between protected activity and adverse action, which is a key indicator of potential retaliation. "
	} else {
		text += "some concerning elements, though the timeline and documentation could affect claim strength. "
	}

	if hasStrongEvidence {
		text += "The documented evidence you mentioned strengthens your position significantly. "
	} else {
		text += "Additional documentation would help establish a stronger case. "
	}

	text += "Cases like this in your compensation range typically settle between " +
		formatUSD(low) + " and " + formatUSD(high) +
		", though outcomes vary based on specific facts and jurisdiction."

	return text
}

// roundToThousand rounds to the nearest multiple of 1000, halves up.
func roundToThousand(v float64) int {
	return int(math.Floor(v/1000+0.5)) * 1000
}

func formatUSD(amount int) string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("$%d", amount)
}

func intersects(selection, targets []string) bool {
	for _, s := range selection {
		for _, t := range targets {
			if s == t {
				return true
			}
		}
	}
	return false
}

func hasActionOtherThanNone(selection []string) bool {
	for _, s := range selection {
		if s != catalog.NoneOfTheAbove {
			return true
		}
	}
	return false
}
