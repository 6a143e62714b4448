// Package config converts the host's generic parameter map into field
// match specifications, failing fast on malformed entries so a bad query is
// rejected before any document is scored.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/baditaflorin/go_field_similarity/internal/core/domain"
)

// Parameter map keys recognized in a matcher configuration entry.
const (
	MatchersKey = "matchers"
	FieldKey    = "field"
	ValueKey    = "value"
	MatcherKey  = "matcher"
	HighKey     = "high"
	LowKey      = "low"
)

var requiredKeys = []string{FieldKey, ValueKey, MatcherKey, HighKey, LowKey}

// ParseFieldMatchSpecs extracts the "matchers" list from a generic
// parameter map and converts each entry into a domain.FieldMatchSpec. Every
// missing property raises its own domain.InvalidConfigurationError.
func ParseFieldMatchSpecs(params map[string]interface{}) ([]domain.FieldMatchSpec, error) {
	raw, ok := params[MatchersKey]
	if !ok {
		return nil, &domain.InvalidConfigurationError{Property: MatchersKey}
	}

	entries, err := toEntryList(raw)
	if err != nil {
		return nil, err
	}

	specs := make([]domain.FieldMatchSpec, 0, len(entries))
	for _, entry := range entries {
		spec, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseEntry(entry map[string]interface{}) (domain.FieldMatchSpec, error) {
	for _, key := range requiredKeys {
		if _, ok := entry[key]; !ok {
			return domain.FieldMatchSpec{}, &domain.InvalidConfigurationError{Property: key}
		}
	}

	high, err := toFloat(HighKey, entry[HighKey])
	if err != nil {
		return domain.FieldMatchSpec{}, err
	}
	low, err := toFloat(LowKey, entry[LowKey])
	if err != nil {
		return domain.FieldMatchSpec{}, err
	}

	return domain.FieldMatchSpec{
		FieldName:      stringify(entry[FieldKey]),
		ReferenceValue: stringify(entry[ValueKey]),
		MatcherName:    stringify(entry[MatcherKey]),
		High:           high,
		Low:            low,
	}, nil
}

// toEntryList accepts the decoding shapes a generic JSON parameter map can
// produce for the matchers list.
func toEntryList(raw interface{}) ([]map[string]interface{}, error) {
	switch list := raw.(type) {
	case []map[string]interface{}:
		return list, nil
	case []interface{}:
		entries := make([]map[string]interface{}, 0, len(list))
		for _, item := range list {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("invalid matcher configuration: [%s] entries must be objects, got %T", MatchersKey, item)
			}
			entries = append(entries, entry)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("invalid matcher configuration: [%s] must be a list, got %T", MatchersKey, raw)
	}
}

func toFloat(key string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid matcher configuration: [%s] must be numeric: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("invalid matcher configuration: [%s] must be numeric, got %T", key, v)
	}
}

// stringify mirrors the permissive conversion the host applies to field
// values: whatever the entry holds is used in its textual form.
func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
