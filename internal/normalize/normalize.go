package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roadwatch/triage/internal/model"
)

// ErrInvalidPayload is the only failure mode of normalisation: the
// submitted payload was not a key-value object.
var ErrInvalidPayload = errors.New("incident payload must be an object")

// timestampLayouts are tried in order; the first successful parse wins.
// The fractional-second layout accepts any precision, including none.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalise converts an arbitrary decoded payload into the canonical
// incident record. Every field resolves through an explicit list of
// accepted alias keys; missing or malformed optional fields degrade to
// their documented defaults rather than failing. Aliases use loose
// presence semantics: empty strings, zero numbers, false, and empty
// collections all count as absent, matching what upstream report
// producers actually send.
func Normalise(payload any) (*model.Incident, error) {
	incident, ok := payload.(map[string]any)
	if !ok {
		return nil, ErrInvalidPayload
	}

	description := firstPresent(incident["description"], incident["message"])
	typeValue := firstPresent(incident["incidentType"], incident["type"], incident["category"])
	severityValue := firstPresent(incident["severity"], incident["incident_severity"], incident["level"])
	location := firstPresent(incident["location"], incident["road_name"], incident["road"])
	fullAddress := firstPresent(incident["fullAddress"], incident["address"], incident["place"], location)

	typ := strings.ToLower(strings.TrimSpace(stringify(typeValue)))
	if typ == "" {
		typ = "unknown"
	}
	severity := strings.ToLower(strings.TrimSpace(stringify(severityValue)))
	if severity == "" {
		severity = "medium"
	}

	photoURL := strings.TrimSpace(stringify(firstPresent(incident["photo_url"], incident["photoUrl"])))

	var createdAt *time.Time
	if raw := firstPresent(incident["createdAt"], incident["created_at"], incident["reported_at"]); raw != nil {
		createdAt = parseTimestamp(raw)
	}

	var reputation *float64
	repRaw := incident["reporter_reputation"]
	if !present(repRaw) {
		repRaw = incident["reporterReputation"]
	}
	if repRaw != nil {
		if value, ok := toFloat(repRaw); ok {
			reputation = &value
		}
	}

	return &model.Incident{
		Description:        strings.TrimSpace(stringify(description)),
		Type:               typ,
		Severity:           severity,
		Location:           strings.TrimSpace(stringify(location)),
		FullAddress:        strings.TrimSpace(stringify(fullAddress)),
		Tags:               parseTags(incident["tags"]),
		PhotoURL:           photoURL,
		CreatedAt:          createdAt,
		ReporterReputation: reputation,
	}, nil
}

// present implements the loose presence check used for alias fallback.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// firstPresent returns the first candidate that passes the presence check,
// or nil when every candidate is absent.
func firstPresent(values ...any) any {
	for _, v := range values {
		if present(v) {
			return v
		}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// parseTags accepts either a comma-delimited string or a list of values.
// Each piece is stringified, trimmed, and dropped if empty; order is
// preserved and duplicates are kept.
func parseTags(v any) []string {
	var pieces []string
	switch t := v.(type) {
	case string:
		pieces = strings.Split(t, ",")
	case []any:
		for _, item := range t {
			pieces = append(pieces, stringify(item))
		}
	case []string:
		pieces = t
	default:
		return nil
	}

	var tags []string
	for _, piece := range pieces {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// parseTimestamp accepts a ready time value, epoch seconds, or one of the
// known string layouts. Unparseable input yields nil, never an error.
func parseTimestamp(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		utc := t.UTC()
		return &utc
	case float64:
		sec := int64(t)
		nsec := int64((t - float64(sec)) * float64(time.Second))
		parsed := time.Unix(sec, nsec).UTC()
		return &parsed
	case int:
		parsed := time.Unix(int64(t), 0).UTC()
		return &parsed
	case int64:
		parsed := time.Unix(t, 0).UTC()
		return &parsed
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				utc := parsed.UTC()
				return &utc
			}
		}
	}
	return nil
}

// toFloat coerces numbers and numeric strings; anything else is treated
// as absent.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		value, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return value, true
	default:
		return 0, false
	}
}
