package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/matchboard/backend/internal/domain"
)

// matchItemRequest is one element of the /save-match body. Pointers let
// "required" tell a missing field from an empty string or zero confidence.
type matchItemRequest struct {
	Product    *string  `json:"product" validate:"required"`
	Code       *string  `json:"code" validate:"required"`
	Link       *string  `json:"link" validate:"required"`
	Confidence *float64 `json:"confidence" validate:"required"`
}

func (r matchItemRequest) toDomain() domain.Match {
	return domain.Match{
		Product:    *r.Product,
		Code:       *r.Code,
		Link:       *r.Link,
		Confidence: *r.Confidence,
	}
}

// validationError describes why a request body was rejected
type validationError struct {
	Message string
	Field   string
	Index   int // -1 when the offending element is unknown
}

func (e *validationError) body() gin.H {
	body := gin.H{"error": e.Message}
	if e.Field != "" {
		body["field"] = e.Field
	}
	if e.Index >= 0 {
		body["index"] = e.Index
	}
	return body
}

var matchValidator = newMatchValidator()

// newMatchValidator reports fields by their JSON names
func newMatchValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeMatchItems reads and validates the whole list before anything is
// converted, so a bad element rejects the request.
func decodeMatchItems(c *gin.Context) ([]domain.Match, *validationError) {
	var items []matchItemRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		return nil, bindError(err)
	}
	if items == nil {
		return nil, &validationError{Message: "request body must be a JSON array of matches", Index: -1}
	}

	for i := range items {
		if err := matchValidator.Struct(&items[i]); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				field := fieldErrs[0].Field()
				return nil, &validationError{
					Message: fmt.Sprintf("item %d: field %q is required", i, field),
					Field:   field,
					Index:   i,
				}
			}
			return nil, &validationError{Message: fmt.Sprintf("item %d: %v", i, err), Index: i}
		}
	}

	matches := make([]domain.Match, 0, len(items))
	for _, item := range items {
		matches = append(matches, item.toDomain())
	}
	return matches, nil
}

// bindError turns a JSON decoding failure into a client-facing message
func bindError(err error) *validationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			if typeErr.Type != nil && typeErr.Type.Kind() == reflect.Struct {
				return &validationError{Message: "each match must be a JSON object", Index: -1}
			}
			return &validationError{Message: "request body must be a JSON array of matches", Index: -1}
		}
		return &validationError{
			Message: fmt.Sprintf("field %q must be %s, got %s", typeErr.Field, jsonTypeName(typeErr.Type), typeErr.Value),
			Field:   typeErr.Field,
			Index:   -1,
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &validationError{Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), Index: -1}
	}

	return &validationError{Message: fmt.Sprintf("invalid request body: %v", err), Index: -1}
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return t.String()
	}
}
