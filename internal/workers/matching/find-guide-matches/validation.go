// internal/workers/matching/find-guide-matches/validation.go
package findguidematches

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mridulmalani2/wandernest2-sub003/pkg/registry"
)

// inputSchema is the fallback used when the activity registry does not carry
// a schema for this task type.
var inputSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"city"},
	"properties": map[string]interface{}{
		"requestId":            map[string]interface{}{"type": "string"},
		"city":                 map[string]interface{}{"type": "string", "minLength": 1},
		"requestedDates":       map[string]interface{}{"type": "object"},
		"preferredTime":        map[string]interface{}{"type": "string"},
		"interests":            map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"preferredNationality": map[string]interface{}{"type": "string"},
		"preferredLanguages":   map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"preferredGender":      map[string]interface{}{"type": "string"},
	},
}

// LoadInputSchema prefers the registry's schema for this task type so the
// worker and the registry cannot drift apart silently.
func LoadInputSchema(reg *registry.ActivityRegistry) map[string]interface{} {
	if activity := reg.FindByTaskType(TaskType); activity != nil && len(activity.InputSchema) > 0 {
		return activity.InputSchema
	}
	return inputSchema
}

func validateInput(schemaMap map[string]interface{}, payload []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed: %v", errs)
	}

	return nil
}
