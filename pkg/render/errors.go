package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-heroform/pkg/hero"
)

// fieldAliases maps the spellings a hero API may use onto wire field names.
var fieldAliases = map[string]string{
	hero.FieldNickname:          hero.FieldNickname,
	hero.FieldRealName:          hero.FieldRealName,
	hero.FieldOriginDescription: hero.FieldOriginDescription,
	hero.FieldCatchPhrase:       hero.FieldCatchPhrase,
	hero.FieldSuperpowers:       hero.FieldSuperpowers,
	hero.FieldImages:            hero.FieldImages,
	"realname":                  hero.FieldRealName,
	"origindescription":         hero.FieldOriginDescription,
	"catchphrase":               hero.FieldCatchPhrase,
	"superpower":                hero.FieldSuperpowers,
	"image":                     hero.FieldImages,
}

// envelopeSegments are leading path segments that wrap the hero fields.
var envelopeSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
	"hero":       {},
}

// ErrorMapping splits a go-errors compatible payload into field-level and
// form-level messages keyed by hero field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises server error payloads (including JSON pointer
// paths such as "/body/superpowers/2") onto hero field names. Unknown paths
// are treated as form-level errors so messages are not lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, rawPath := range keys {
		normalizedMessages := normalizeMessages(payload[rawPath])
		if len(normalizedMessages) == 0 {
			continue
		}

		mapped, ok := fieldForPath(rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalizedMessages...)
			continue
		}
		mapping.Fields[mapped] = normalizeMessages(append(mapping.Fields[mapped], normalizedMessages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// FieldErrors flattens the field messages in form order.
func (m ErrorMapping) FieldErrors() hero.FieldErrors {
	var errs hero.FieldErrors
	order := append(append([]string(nil), hero.ScalarFields...), hero.FieldSuperpowers, hero.FieldImages)
	for _, field := range order {
		for _, message := range m.Fields[field] {
			errs.Add(field, message)
		}
	}
	return errs
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// fieldForPath resolves a remote error key such as "/body/superpowers/2",
// "$.data.attributes.realName" or "catch_phrase" to a hero field. Keys that
// address nothing on the form report false.
func fieldForPath(raw string) (string, bool) {
	segments := splitErrorPath(raw)
	for len(segments) > 0 {
		if _, wrapped := envelopeSegments[segments[0]]; !wrapped {
			break
		}
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "", false
	}
	field, ok := fieldAliases[segments[0]]
	return field, ok
}

// splitErrorPath lower-cases a JSON pointer, dotted or bracketed path and
// returns its segments.
func splitErrorPath(raw string) []string {
	path := strings.ToLower(strings.TrimSpace(raw))
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	parts := strings.FieldsFunc(path, func(r rune) bool {
		switch r {
		case '/', '.', '#', '$':
			return true
		}
		return false
	})
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(part), "-", "_")
	}
	return parts
}
