package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidParams = errors.New("invalid parameters")
	ErrNotFound      = errors.New("document not found")
	ErrTooLarge      = errors.New("document too large")
)

// ErrorField names one rejected request field.
type ErrorField struct {
	FieldName    string `json:"field"`
	ErrorMessage string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []ErrorField `json:"fields,omitempty"`
}

func jsonError(w http.ResponseWriter, msg string, code int, fields ...ErrorField) {
	writeJSON(w, code, ErrorResponse{Error: msg, Fields: fields})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ExtractErrorFields converts validator errors into response fields.
func ExtractErrorFields(err error) []ErrorField {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]ErrorField, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, ErrorField{FieldName: fe.Field(), ErrorMessage: validationMessage(fe.Tag())})
	}
	return fields
}

// fieldErrors is ExtractErrorFields for a single validated variable, which
// the validator reports without a field name.
func fieldErrors(name string, err error) []ErrorField {
	fields := ExtractErrorFields(err)
	for i := range fields {
		fields[i].FieldName = name
	}
	return fields
}

func validationMessage(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "max":
		return "value is too long"
	case "uuid":
		return "invalid UUID format"
	default:
		return "invalid value"
	}
}
