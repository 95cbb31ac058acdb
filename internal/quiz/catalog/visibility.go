package catalog

import "settlement-quiz/internal/quiz/answers"

// ShouldShow evaluates a question's visibility rule against the current answer
// set. A question with no rule is always shown. Rule keys are OR-ed: any one
// matching key is sufficient. A scalar prior answer matches by equality; a
// multi-selection matches when it intersects the trigger set.
func ShouldShow(q Question, set answers.Set) bool {
	if len(q.ShowIf) == 0 {
		return true
	}

	for key, triggers := range q.ShowIf {
		answer, ok := set[key]
		if !ok {
			continue
		}

		switch answer.Kind {
		case answers.KindScalar:
			if contains(triggers, answer.Scalar) {
				return true
			}
		case answers.KindList:
			for _, selected := range answer.List {
				if contains(triggers, selected) {
					return true
				}
			}
		}
	}

	return false
}

// Visible returns the ordered subset of the catalog that should be presented
// for the given answers. It is pure and cheap enough to recompute after every
// answer mutation; callers must not cache the result across mutations.
func Visible(questions []Question, set answers.Set) []Question {
	visible := make([]Question, 0, len(questions))
	for _, q := range questions {
		if ShouldShow(q, set) {
			visible = append(visible, q)
		}
	}
	return visible
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
