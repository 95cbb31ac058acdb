package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settlement-quiz/internal/quiz/answers"
	"settlement-quiz/internal/quiz/catalog"
)

func TestValidateScalarQuestions(t *testing.T) {
	tests := []struct {
		name  string
		qtype catalog.QuestionType
		value answers.Value
		want  bool
	}{
		{"single choice filled", catalog.TypeSingleChoice, answers.String("Yes"), true},
		{"single choice blank", catalog.TypeSingleChoice, answers.String(""), false},
		{"single choice whitespace only", catalog.TypeSingleChoice, answers.String("   "), false},
		{"state picker filled", catalog.TypeStatePicker, answers.String("Ohio"), true},
		{"short text filled", catalog.TypeShortText, answers.String("a note"), true},
		{"long text blank", catalog.TypeLongText, answers.String(""), false},
		{"date or range filled", catalog.TypeDateOrRange, answers.String("Last 30 days"), true},
		{"wrong kind rejected", catalog.TypeSingleChoice, answers.List("Yes"), false},
		{"missing value rejected", catalog.TypeSingleChoice, answers.Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := catalog.Question{ID: "q", Type: tt.qtype, Required: true}
			result := Validate(q, tt.value, answers.Set{})
			assert.Equal(t, tt.want, result.Accepted)
			if !tt.want {
				assert.Equal(t, "This field is required", result.Message)
			}
		})
	}
}

func TestValidateMultiChoice(t *testing.T) {
	q := catalog.Question{ID: "q", Type: catalog.TypeMultiChoice, Required: true}

	assert.True(t, Validate(q, answers.List("a"), answers.Set{}).Accepted)
	assert.False(t, Validate(q, answers.List(), answers.Set{}).Accepted)
	assert.False(t, Validate(q, answers.String("a"), answers.Set{}).Accepted)
}

func TestValidateOptionalQuestionAcceptsAnything(t *testing.T) {
	q := catalog.Question{ID: "q", Type: catalog.TypeShortText, Required: false}
	assert.True(t, Validate(q, answers.Value{}, answers.Set{}).Accepted)
	assert.True(t, Validate(q, answers.String(""), answers.Set{}).Accepted)
}

func TestValidateDetailsRequiresEveryCause(t *testing.T) {
	q := catalog.Question{
		ID:           "details",
		Type:         catalog.TypeDynamicDetailSet,
		Required:     true,
		DetailSource: "causes",
	}
	set := answers.Set{"causes": answers.List("First cause", "Second cause")}

	complete := answers.CauseDetail{
		Example:  "what happened",
		When:     "Last 30 days",
		Evidence: []string{"Witnesses"},
	}

	t.Run("all records complete", func(t *testing.T) {
		value := answers.Details(map[string]answers.CauseDetail{
			"First cause":  complete,
			"Second cause": complete,
		})
		assert.True(t, Validate(q, value, set).Accepted)
	})

	t.Run("missing record names the first cause's description", func(t *testing.T) {
		value := answers.Details(map[string]answers.CauseDetail{})
		result := Validate(q, value, set)
		require.False(t, result.Accepted)
		assert.Equal(t, `Please complete all fields: "First cause" needs a description`, result.Message)
	})

	t.Run("rejection follows selection order, not map order", func(t *testing.T) {
		value := answers.Details(map[string]answers.CauseDetail{
			"Second cause": complete,
		})
		result := Validate(q, value, set)
		require.False(t, result.Accepted)
		assert.Contains(t, result.Message, `"First cause"`)
	})

	t.Run("blank example", func(t *testing.T) {
		value := answers.Details(map[string]answers.CauseDetail{
			"First cause":  {Example: "   ", When: "Last 30 days", Evidence: []string{"Witnesses"}},
			"Second cause": complete,
		})
		result := Validate(q, value, set)
		require.False(t, result.Accepted)
		assert.Equal(t, `Please complete all fields: "First cause" needs a description`, result.Message)
	})

	t.Run("missing timeframe reported after description", func(t *testing.T) {
		value := answers.Details(map[string]answers.CauseDetail{
			"First cause":  {Example: "what happened", Evidence: []string{"Witnesses"}},
			"Second cause": complete,
		})
		result := Validate(q, value, set)
		require.False(t, result.Accepted)
		assert.Equal(t, `Please complete all fields: "First cause" needs a timeframe`, result.Message)
	})

	t.Run("missing evidence reported last", func(t *testing.T) {
		value := answers.Details(map[string]answers.CauseDetail{
			"First cause":  {Example: "what happened", When: "Last 30 days"},
			"Second cause": complete,
		})
		result := Validate(q, value, set)
		require.False(t, result.Accepted)
		assert.Equal(t, `Please complete all fields: "First cause" needs a evidence type`, result.Message)
	})

	t.Run("first failing cause wins over later ones", func(t *testing.T) {
		value := answers.Details(map[string]answers.CauseDetail{
			"First cause":  {Example: "what happened", When: "Last 30 days"},
			"Second cause": {},
		})
		result := Validate(q, value, set)
		require.False(t, result.Accepted)
		assert.Contains(t, result.Message, `"First cause"`)
	})

	t.Run("empty companion selection leaves nothing to reject", func(t *testing.T) {
		result := Validate(q, answers.Details(nil), answers.Set{})
		assert.True(t, result.Accepted)
	})
}
