package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settlement-quiz/internal/quiz/answers"
)

func TestShouldShow(t *testing.T) {
	unconditional := Question{ID: "a", Type: TypeSingleChoice}
	scalarGated := Question{
		ID:     "b",
		Type:   TypeSingleChoice,
		ShowIf: map[string][]string{"a": {"yes", "maybe"}},
	}
	listGated := Question{
		ID:     "c",
		Type:   TypeSingleChoice,
		ShowIf: map[string][]string{"picks": {"x", "y"}},
	}
	multiKey := Question{
		ID:   "d",
		Type: TypeSingleChoice,
		ShowIf: map[string][]string{
			"a":     {"yes"},
			"picks": {"x"},
		},
	}

	tests := []struct {
		name     string
		question Question
		set      answers.Set
		want     bool
	}{
		{
			name:     "no rule is always shown",
			question: unconditional,
			set:      answers.Set{},
			want:     true,
		},
		{
			name:     "scalar trigger matches by equality",
			question: scalarGated,
			set:      answers.Set{"a": answers.String("maybe")},
			want:     true,
		},
		{
			name:     "scalar outside trigger set hides",
			question: scalarGated,
			set:      answers.Set{"a": answers.String("no")},
			want:     false,
		},
		{
			name:     "unanswered trigger key hides",
			question: scalarGated,
			set:      answers.Set{},
			want:     false,
		},
		{
			name:     "list trigger matches on intersection",
			question: listGated,
			set:      answers.Set{"picks": answers.List("z", "y")},
			want:     true,
		},
		{
			name:     "disjoint list hides",
			question: listGated,
			set:      answers.Set{"picks": answers.List("z")},
			want:     false,
		},
		{
			name:     "empty list hides",
			question: listGated,
			set:      answers.Set{"picks": answers.List()},
			want:     false,
		},
		{
			name:     "keys are OR-ed, second key alone suffices",
			question: multiKey,
			set: answers.Set{
				"a":     answers.String("no"),
				"picks": answers.List("x"),
			},
			want: true,
		},
		{
			name:     "keys are OR-ed, no key matching hides",
			question: multiKey,
			set: answers.Set{
				"a":     answers.String("no"),
				"picks": answers.List("y"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldShow(tt.question, tt.set))
		})
	}
}

func TestVisiblePreservesCatalogOrder(t *testing.T) {
	qs := []Question{
		{ID: "first"},
		{ID: "gated", ShowIf: map[string][]string{"first": {"go"}}},
		{ID: "last"},
	}

	hidden := Visible(qs, answers.Set{})
	require.Len(t, hidden, 2)
	assert.Equal(t, "first", hidden[0].ID)
	assert.Equal(t, "last", hidden[1].ID)

	shown := Visible(qs, answers.Set{"first": answers.String("go")})
	require.Len(t, shown, 3)
	assert.Equal(t, []string{"first", "gated", "last"}, []string{shown[0].ID, shown[1].ID, shown[2].ID})
}

func TestCauseDetailsVisibility(t *testing.T) {
	details, ok := Find(QuestionCauseDetails)
	require.True(t, ok)

	// Hidden until a cause is selected.
	assert.False(t, ShouldShow(details, answers.Set{}))

	set := answers.Set{
		QuestionWhatCaused: answers.List("I was punished after speaking up or complaining"),
	}
	assert.True(t, ShouldShow(details, set))
}

func TestFind(t *testing.T) {
	q, ok := Find(QuestionEmployerSize)
	require.True(t, ok)
	assert.Equal(t, TypeSingleChoice, q.Type)

	_, ok = Find("no_such_question")
	assert.False(t, ok)
}
