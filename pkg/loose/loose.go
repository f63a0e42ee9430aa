// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

/*
Package loose provides fault-tolerant readers for loosely-typed JSON records.

The Guidora backend has grown several spellings for the same user field
(camelCase, snake_case, legacy names). This package reads a value from a
decoded map by trying an ordered list of candidate keys and coercing whatever
JSON type shows up into the requested Go type.

Do not use this package if distinguishing between malformed data and zero
values is important in your domain logic; use explicit decoding instead.
*/
package loose

import (
	"encoding/json"
	"strconv"
	"strings"
)

// String returns the first non-empty string value among the candidate keys.
// Numeric values are formatted; other types yield "".
func String(record map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

// Bool returns the first truthy-or-falsy value among the candidate keys.
// Accepted encodings: bool, "true"/"false"/"1"/"0" strings, and numbers
// (non-zero is true). Missing keys yield false.
func Bool(record map[string]any, keys ...string) bool {
	for _, key := range keys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case bool:
			return v
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return parsed
			}
		case float64:
			return v != 0
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f != 0
			}
		}
	}
	return false
}

// Int64 returns the first integer value among the candidate keys.
// JSON numbers arrive as float64 after a generic decode; strings are parsed.
// Missing or unparsable keys yield 0.
func Int64(record map[string]any, keys ...string) int64 {
	for _, key := range keys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return int64(v)
		case int64:
			return v
		case int:
			return int64(v)
		case json.Number:
			if parsed, err := v.Int64(); err == nil {
				return parsed
			}
		case string:
			if parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// Float64 returns the first floating-point value among the candidate keys.
// Missing or unparsable keys yield 0.
func Float64(record map[string]any, keys ...string) float64 {
	for _, key := range keys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v
		case json.Number:
			if parsed, err := v.Float64(); err == nil {
				return parsed
			}
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// Map returns the first nested object value among the candidate keys,
// or nil when none is present.
func Map(record map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if nested, ok := record[key].(map[string]any); ok {
			return nested
		}
	}
	return nil
}
