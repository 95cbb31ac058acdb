package estimate

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"settlement-quiz/internal/common/errors"
)

// estimateResponseSchema is the wire contract for the estimation webhook
// response, matching the Estimate shape.
const estimateResponseSchema = `{
	"type": "object",
	"required": ["caseTier", "settlementRange", "confidence", "clientSummary"],
	"properties": {
		"caseTier": {"type": "string"},
		"settlementRange": {
			"type": "object",
			"required": ["low", "high"],
			"properties": {
				"low": {"type": "number", "minimum": 0},
				"high": {"type": "number", "minimum": 0},
				"currency": {"type": "string"}
			}
		},
		"confidence": {
			"type": "object",
			"required": ["label", "score"],
			"properties": {
				"label": {"type": "string"},
				"score": {"type": "number", "minimum": 0, "maximum": 1}
			}
		},
		"clientSummary": {"type": "string"},
		"reasons": {"type": "array", "items": {"type": "string"}},
		"missingInfo": {"type": "array", "items": {"type": "string"}},
		"nextSteps": {"type": "array", "items": {"type": "string"}},
		"disclaimer": {"type": "string"}
	}
}`

var compiledSchema = gojsonschema.NewStringLoader(estimateResponseSchema)

// validateEstimatePayload checks a decoded webhook body against the estimate
// contract. A mismatch is reported as a retryable transport-class failure.
func validateEstimatePayload(payload []byte) error {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return errors.NewEstimateResponseInvalidError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return errors.NewEstimateResponseInvalidError(strings.Join(details, "; "))
	}
	return nil
}
