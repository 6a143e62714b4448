package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
)

func validEntry() map[string]interface{} {
	return map[string]interface{}{
		"field":   "name",
		"value":   "John Smith",
		"matcher": "jaro-winkler",
		"high":    1.0,
		"low":     0.1,
	}
}

func TestParseFieldMatchSpecs(t *testing.T) {
	params := map[string]interface{}{
		"matchers": []interface{}{validEntry()},
	}
	specs, err := ParseFieldMatchSpecs(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	spec := specs[0]
	if spec.FieldName != "name" || spec.ReferenceValue != "John Smith" || spec.MatcherName != "jaro-winkler" {
		t.Errorf("unexpected spec: %+v", spec)
	}
	if spec.High != 1.0 || spec.Low != 0.1 {
		t.Errorf("bounds = (%v, %v), want (1, 0.1)", spec.Low, spec.High)
	}
}

func TestParseFromJSON(t *testing.T) {
	body := `{"matchers": [
		{"field": "given", "value": "jane", "matcher": "levenshtein", "high": 1, "low": 0},
		{"field": "family", "value": "doe", "matcher": "dice", "high": 0.9, "low": 0.05}
	]}`
	var params map[string]interface{}
	if err := json.Unmarshal([]byte(body), &params); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	specs, err := ParseFieldMatchSpecs(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}
	if specs[1].High != 0.9 || specs[1].Low != 0.05 {
		t.Errorf("second spec bounds = (%v, %v), want (0.05, 0.9)", specs[1].Low, specs[1].High)
	}
}

func TestParseMissingProperties(t *testing.T) {
	for _, missing := range []string{"field", "value", "matcher", "high", "low"} {
		t.Run(missing, func(t *testing.T) {
			entry := validEntry()
			delete(entry, missing)
			params := map[string]interface{}{"matchers": []interface{}{entry}}
			_, err := ParseFieldMatchSpecs(params)
			var invalid *domain.InvalidConfigurationError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidConfigurationError, got %T: %v", err, err)
			}
			if invalid.Property != missing {
				t.Errorf("error names property %q, want %q", invalid.Property, missing)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Errorf("message %q does not name the missing property", err.Error())
			}
		})
	}
}

func TestParseMissingMatchersList(t *testing.T) {
	_, err := ParseFieldMatchSpecs(map[string]interface{}{})
	var invalid *domain.InvalidConfigurationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfigurationError, got %T: %v", err, err)
	}
	if invalid.Property != "matchers" {
		t.Errorf("error names property %q, want %q", invalid.Property, "matchers")
	}
}

func TestParseMalformedShapes(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{
			name:   "Matchers not a list",
			params: map[string]interface{}{"matchers": "nope"},
		},
		{
			name:   "Entry not an object",
			params: map[string]interface{}{"matchers": []interface{}{"nope"}},
		},
		{
			name: "Non-numeric bound",
			params: map[string]interface{}{"matchers": []interface{}{map[string]interface{}{
				"field": "f", "value": "v", "matcher": "dice", "high": "1.0", "low": 0.0,
			}}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFieldMatchSpecs(tc.params); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseStringifiesNonStringValues(t *testing.T) {
	entry := validEntry()
	entry["value"] = 42
	params := map[string]interface{}{"matchers": []interface{}{entry}}
	specs, err := ParseFieldMatchSpecs(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if specs[0].ReferenceValue != "42" {
		t.Errorf("ReferenceValue = %q, want %q", specs[0].ReferenceValue, "42")
	}
}
