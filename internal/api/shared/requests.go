package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MaxRequestBodyBytes bounds JSON request bodies. Generation requests carry
// up to 15000 characters of source text. A character outside the BMP written
// as an escaped surrogate pair ("\ud83d\ude00") takes 12 bytes, so the
// largest valid text needs about 180 KB.
const MaxRequestBodyBytes = 1 << 18

// ErrInvalidJSON is returned by DecodeJSON for unreadable bodies.
var ErrInvalidJSON = errors.New("invalid JSON request body")

// Global validator instance for reuse. It also knows "notblank", which
// rejects whitespace-only strings.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields, trailing data
// and bodies larger than MaxRequestBodyBytes are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}
