package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds request bodies, deck text included.
const MaxBodyBytes = 4 << 20

// ErrEmptyBody is returned when a request that needs a body has none.
var ErrEmptyBody = errors.New("request body is empty")

// Global validator instance for reuse. Field names in errors are the JSON
// names clients send.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields are rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// ReadText reads a plain text request body.
func ReadText(r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) == 0 {
		return "", ErrEmptyBody
	}
	return string(body), nil
}

// ValidateRequest runs the struct tag validation on v, then v's own Validate
// method when it has one.
func ValidateRequest(v any) error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return nil
}
