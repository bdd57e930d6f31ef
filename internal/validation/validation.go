package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Errors maps a field name to the list of violation messages collected for
// it. Validation never stops at the first problem: every field is checked
// and every message kept, so the client sees the complete picture at once.
type Errors map[string][]string

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Checks are the store lookups schemas run while validating. They execute in
// their own short-lived scope, separate from the request transaction, so a
// passing check is a best-effort pre-check; the database constraints remain
// the real guarantee.
type Checks interface {
	OrganisationNameExists(ctx context.Context, name string) (bool, error)
	OrganisationExists(ctx context.Context, id int) (bool, error)
	UserEmailExists(ctx context.Context, email string) (bool, error)
}

// BodySchema validates a raw request body. It returns the typed result, the
// accumulated field errors, or a non-nil error only when a store check
// itself failed.
type BodySchema func(ctx context.Context, body []byte) (any, Errors, error)

const (
	msgRequired     = "Missing data for required field."
	msgNotString    = "Not a valid string."
	msgNotInteger   = "Not a valid integer."
	msgNotEmail     = "Not a valid email address."
	msgUnknownField = "Unknown field"
	msgInvalidInput = "Invalid input type."
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// decodeBody parses the body into raw fields and rejects everything that is
// not a JSON object.
func decodeBody(body []byte) (map[string]json.RawMessage, Errors) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, Errors{"_schema": {msgInvalidInput}}
	}
	return raw, nil
}

// rejectUnknown adds an error for every input field not present in the
// declared set. Extra fields are a hard rejection, never silently dropped.
func rejectUnknown(raw map[string]json.RawMessage, errs Errors, declared ...string) {
	known := make(map[string]bool, len(declared))
	for _, name := range declared {
		known[name] = true
	}
	for name := range raw {
		if !known[name] {
			errs.add(name, msgUnknownField)
		}
	}
}

// stringField extracts a required string field, enforcing the length bound.
// The boolean reports whether a usable value was produced.
func stringField(raw map[string]json.RawMessage, errs Errors, name string, maxLen int) (string, bool) {
	val, present := raw[name]
	if !present {
		errs.add(name, msgRequired)
		return "", false
	}

	var s string
	if err := json.Unmarshal(val, &s); err != nil {
		errs.add(name, msgNotString)
		return "", false
	}
	// Length bounds count characters, matching the store's VARCHAR(n) columns
	if utf8.RuneCountInString(s) > maxLen {
		errs.add(name, fmt.Sprintf("Longer than maximum length %d.", maxLen))
		return "", false
	}
	return s, true
}

// intField extracts a required integer field. JSON numbers with a fractional
// part are rejected.
func intField(raw map[string]json.RawMessage, errs Errors, name string) (int, bool) {
	val, present := raw[name]
	if !present {
		errs.add(name, msgRequired)
		return 0, false
	}

	var n int
	if err := json.Unmarshal(val, &n); err != nil {
		errs.add(name, msgNotInteger)
		return 0, false
	}
	return n, true
}

// oneOf enforces membership in a closed value set
func oneOf(errs Errors, name string, value int, allowed []int) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	errs.add(name, fmt.Sprintf("Must be one of: %s.", joinInts(allowed)))
	return false
}

func joinInts(values []int) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", v)
	}
	return out
}
