// Package catalog holds the static question list and the visibility rules
// that decide which questions a session sees.
package catalog

// QuestionType identifies the input shape a question expects.
type QuestionType string

const (
	TypeSingleChoice     QuestionType = "single_choice"
	TypeMultiChoice      QuestionType = "multi_choice"
	TypeShortText        QuestionType = "short_text"
	TypeLongText         QuestionType = "long_text"
	TypeDateOrRange      QuestionType = "date_or_range"
	TypeStatePicker      QuestionType = "state_picker"
	TypeDynamicDetailSet QuestionType = "dynamic_detail_set"
)

// Question is immutable and defined at process start.
type Question struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Help        string              `json:"help,omitempty"`
	Placeholder string              `json:"placeholder,omitempty"`
	Type        QuestionType        `json:"type"`
	Options     []string            `json:"options,omitempty"`
	Required    bool                `json:"required"`
	// ShowIf maps a prior question id to trigger values. Keys are OR-ed: the
	// question is eligible when any prior answer matches its trigger set.
	ShowIf map[string][]string `json:"showIf,omitempty"`
	// DetailSource names the multi-choice question whose selection drives a
	// dynamic_detail_set question.
	DetailSource string `json:"detailSource,omitempty"`
}

// Well-known question ids referenced by the validator and the scorer.
const (
	QuestionWhereState         = "where_state"
	QuestionWhatChanged        = "what_changed"
	QuestionTimingOfChange     = "timing_of_change"
	QuestionWhatCaused         = "what_caused"
	QuestionCauseDetails       = "cause_details"
	QuestionEvidence           = "evidence"
	QuestionActionsTaken       = "actions_taken"
	QuestionPersonalImpact     = "personal_impact"
	QuestionFinancialLosses    = "financial_losses"
	QuestionSimilarComplaints  = "similar_complaints"
	QuestionProtectedCategory  = "protected_categories"
	QuestionAnnualCompensation = "annual_compensation"
	QuestionCurrentStatus      = "current_status"
	QuestionEmployerSize       = "employer_size"
)

// Sentinel option meaning "no protected action was taken".
const NoneOfTheAbove = "None of the above"

var causeOptions = []string{
	"I was treated unfairly or differently than others",
	"I was punished after speaking up or complaining",
	"I experienced harassment or misconduct at work",
	"I requested medical leave or an accommodation",
	"I was pressured to do something illegal or unethical",
	"I'm not sure — it just didn't feel right",
}

// TimeframeOptions are the per-cause "when" choices in the detail records.
var TimeframeOptions = []string{
	"Last 30 days",
	"Within the last 3 months",
	"Within the last 6 months",
	"Within the last year",
	"More than a year ago",
	"More than 3 years ago",
}

// EvidenceOptions are the evidence categories, shared by the per-cause detail
// records and the standalone evidence question.
var EvidenceOptions = []string{
	"Emails / Slack / texts",
	"HR complaints or tickets",
	"Performance reviews",
	"Medical or accommodation paperwork",
	"Witnesses",
	"Employer admissions",
	"None yet",
}

// Questions is the catalog in presentation order.
var Questions = []Question{
	{
		ID:       QuestionWhereState,
		Title:    "What state did this happen in?",
		Help:     "State laws can affect outcomes.",
		Type:     TypeStatePicker,
		Required: true,
	},
	{
		ID:    QuestionWhatChanged,
		Title: "How did this situation end?",
		Help:  "Select the option that best fits",
		Type:  TypeSingleChoice,
		Options: []string{
			"I was fired or let go",
			"I resigned or felt forced to leave",
			"I was demoted or my pay was reduced",
			"I was written up, disciplined, or placed on a performance plan",
			"I'm still employed, but my job conditions worsened",
			"Nothing has happened yet",
		},
		Required: true,
	},
	{
		ID:    QuestionTimingOfChange,
		Title: "How soon after you raised the issue did things change?",
		Help:  "Timing between speaking up and what happened next matters.",
		Type:  TypeSingleChoice,
		Options: []string{
			"Within 30 days",
			"30–90 days",
			"3–6 months",
			"More than 6 months",
			"Not sure",
		},
		Required: true,
	},
	{
		ID:       QuestionWhatCaused,
		Title:    "What do you believe caused this?",
		Type:     TypeMultiChoice,
		Options:  causeOptions,
		Required: true,
	},
	{
		ID:           QuestionCauseDetails,
		Title:        "Tell us more about what happened",
		Type:         TypeDynamicDetailSet,
		Required:     true,
		ShowIf:       map[string][]string{QuestionWhatCaused: causeOptions},
		DetailSource: QuestionWhatCaused,
	},
	{
		ID:       QuestionEvidence,
		Title:    "What kind of evidence do you have?",
		Help:     "Select all that apply",
		Type:     TypeMultiChoice,
		Options:  EvidenceOptions,
		Required: true,
	},
	{
		ID:    QuestionActionsTaken,
		Title: "What actions have you taken so far?",
		Help:  "Select all that apply",
		Type:  TypeMultiChoice,
		Options: []string{
			"Filed HR complaint",
			"Reported to a manager or supervisor",
			"Filed with a government agency (EEOC, OSHA, etc.)",
			"Consulted a lawyer",
			"Kept my own written records",
			NoneOfTheAbove,
		},
		Required: true,
	},
	{
		ID:    QuestionPersonalImpact,
		Title: "What has been the impact on you personally?",
		Help:  "Select all that apply",
		Type:  TypeMultiChoice,
		Options: []string{
			"Lost my home or faced foreclosure",
			"Lost my car or other vehicle",
			"Struggled to pay bills or went into debt",
			"Experienced anxiety, depression, or other mental health issues",
			"Had to seek medical or therapeutic treatment",
			"Damaged relationships with family or friends",
			"Lost health insurance or benefits",
			"Had to relocate or move",
			NoneOfTheAbove,
		},
		Required: true,
	},
	{
		ID:    QuestionFinancialLosses,
		Title: "Did you lose any of these?",
		Help:  "Select all that apply",
		Type:  TypeMultiChoice,
		Options: []string{
			"Bonus / commission",
			"Stock options / equity",
			"401k matching or retirement contributions",
			"Medical or therapy costs (out of pocket)",
			"Legal fees or other expenses",
			"None",
		},
		Required: true,
	},
	{
		ID:       QuestionSimilarComplaints,
		Title:    "To your knowledge, has your employer had similar complaints before?",
		Type:     TypeSingleChoice,
		Options:  []string{"Yes", "No", "Not sure"},
		Required: true,
	},
	{
		ID:    QuestionProtectedCategory,
		Title: "Do any of these apply to you?",
		Help:  "Select all that apply",
		Type:  TypeMultiChoice,
		Options: []string{
			"I am over 40 years old",
			"I have a disability or medical condition",
			"I am pregnant or recently gave birth",
			"I practice a specific religion",
			"I am a military veteran",
			"I am a minority",
			"I reported safety violations or illegal activity (whistleblower)",
			NoneOfTheAbove,
		},
		Required: true,
	},
	{
		ID:    QuestionAnnualCompensation,
		Title: "How much were you making?",
		Type:  TypeSingleChoice,
		Options: []string{
			"Under $50k",
			"$50k–$75k",
			"$75k–$100k",
			"$100k–$150k",
			"$150k+",
		},
		Required: true,
	},
	{
		ID:    QuestionCurrentStatus,
		Title: "What's your current employment status?",
		Type:  TypeSingleChoice,
		Options: []string{
			"Still at current job",
			"Still unemployed",
			"New job, lower pay",
			"New job, similar pay",
			"New job, higher pay",
		},
		Required: true,
	},
	{
		ID:    QuestionEmployerSize,
		Title: "How many employees does the company have?",
		Help:  "Best guess is fine",
		Type:  TypeSingleChoice,
		Options: []string{
			"Under 10",
			"10–49",
			"50–199",
			"200–1,000",
			"1,000+",
		},
		Required: true,
	},
}

// Find returns the catalog question with the given id.
func Find(id string) (Question, bool) {
	for _, q := range Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// USStates backs the state_picker input.
var USStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}
