package llm

import (
	"encoding/json"
	"errors"

	"github.com/abhisek/mathgen/internal/schema"
)

// validateResponse checks structured output against the request schema and
// reports a mismatch as a KindInvalid *Error.
func validateResponse(s *Schema, raw json.RawMessage) error {
	err := s.Validate(raw)
	if err == nil {
		return nil
	}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return &Error{Kind: KindInvalid, Content: verr.Content, Err: verr.Err}
	}
	return &Error{Kind: KindInvalid, Content: raw, Err: err}
}
