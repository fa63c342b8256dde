// Package projects adapts external project records into the shapes the
// quoting engine consumes. Source systems disagree on key naming (camelCase
// vs snake_case), so every read goes through an ordered list of candidate
// paths with first-available-wins semantics.
package projects

import (
	"strconv"
	"strings"
)

// Record is a raw project payload as returned by the project source.
type Record map[string]any

// String resolves the first non-empty string among the given paths. A path
// may traverse nested maps with dots, e.g. "requirements.contactName".
func (r Record) String(paths ...string) string {
	for _, path := range paths {
		switch v := r.resolve(path).(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Int resolves the first numeric value among the given paths. String values
// are parsed, since some sources serialise counts as text.
func (r Record) Int(paths ...string) int {
	for _, path := range paths {
		switch v := r.resolve(path).(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

// Bool resolves the first boolean among the given paths.
func (r Record) Bool(paths ...string) bool {
	for _, path := range paths {
		switch v := r.resolve(path).(type) {
		case bool:
			return v
		case string:
			if v == "true" || v == "yes" {
				return true
			}
			if v == "false" || v == "no" {
				return false
			}
		}
	}
	return false
}

// Map resolves the first nested object among the given paths.
func (r Record) Map(paths ...string) Record {
	for _, path := range paths {
		if m, ok := r.resolve(path).(map[string]any); ok {
			return Record(m)
		}
	}
	return nil
}

func (r Record) resolve(path string) any {
	var current any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}
