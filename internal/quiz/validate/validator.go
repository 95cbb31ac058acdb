// Package validate implements per-question completeness rules, including the
// cross-question rule for per-cause detail records.
package validate

import (
	"fmt"
	"strings"

	"settlement-quiz/internal/quiz/answers"
	"settlement-quiz/internal/quiz/catalog"
)

// Result reports whether a step input was accepted. Message is the inline
// error text when it was not.
type Result struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

func accepted() Result {
	return Result{Accepted: true}
}

func rejected(message string) Result {
	return Result{Accepted: false, Message: message}
}

const requiredMessage = "This field is required"

// Validate checks value against the question's completeness rules. The full
// answer set is passed in explicitly because a dynamic_detail_set question is
// validated against the cause list recorded by its companion multi-choice
// question; the validator never reads storage itself.
func Validate(q catalog.Question, value answers.Value, set answers.Set) Result {
	if !q.Required {
		return accepted()
	}

	switch q.Type {
	case catalog.TypeDynamicDetailSet:
		return validateDetails(q, value, set)

	case catalog.TypeMultiChoice:
		if value.Kind != answers.KindList || len(value.List) == 0 {
			return rejected(requiredMessage)
		}
		return accepted()

	default:
		// single_choice, short_text, long_text, date_or_range, state_picker
		if value.Kind != answers.KindScalar || strings.TrimSpace(value.Scalar) == "" {
			return rejected(requiredMessage)
		}
		return accepted()
	}
}

// validateDetails requires a complete record for every cause the companion
// question selected. The rejection names the first missing field of the first
// failing cause, in companion selection order.
func validateDetails(q catalog.Question, value answers.Value, set answers.Set) Result {
	causes := set.Selection(q.DetailSource)
	if len(causes) == 0 {
		// Nothing to detail; the question should not have been visible, but an
		// empty companion selection leaves nothing to reject.
		return accepted()
	}

	records := value.Details
	for _, cause := range causes {
		record := records[cause]

		if strings.TrimSpace(record.Example) == "" {
			return rejected(detailMessage(cause, "description"))
		}
		if record.When == "" {
			return rejected(detailMessage(cause, "timeframe"))
		}
		if len(record.Evidence) == 0 {
			return rejected(detailMessage(cause, "evidence type"))
		}
	}

	return accepted()
}

func detailMessage(cause, field string) string {
	return fmt.Sprintf("Please complete all fields: %q needs a %s", cause, field)
}
