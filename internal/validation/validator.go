// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/clickstream/internal/filters"
)

// ErrorCode is the API error code for every validation failure.
const ErrorCode = "VALIDATION_ERROR"

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is a single field failure.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the JSON name of the field that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "64" for "max=64").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the value that failed validation.
func (e *ValidationError) Value() any {
	return e.value
}

func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError collects the field failures of one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field failures.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for i := range ve.errors {
		messages = append(messages, ve.errors[i].Error())
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError to avoid an import cycle.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the failures into the VALIDATION_ERROR response shape.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{Code: ErrorCode, Message: "Validation failed"}
	}

	if len(ve.errors) == 1 {
		err := ve.errors[0]
		return &APIError{
			Code:    ErrorCode,
			Message: err.message,
			Details: map[string]any{
				"field": err.field,
				"tag":   err.tag,
				"value": err.value,
			},
		}
	}

	fields := make([]map[string]any, len(ve.errors))
	messages := make([]string, 0, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]any{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
		messages = append(messages, err.message)
	}

	return &APIError{
		Code:    ErrorCode,
		Message: strings.Join(messages, "; "),
		Details: map[string]any{"fields": fields},
	}
}

// GetValidator returns the singleton validator. Field names in errors are
// taken from json tags, and three dashboard tags are registered:
//
//	filter_name     one of the eight filters or a UI alias
//	filter_scope    all, kpi or graph
//	weekend_choice  all, weekday or weekend
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister("filter_name", func(fl validator.FieldLevel) bool {
			_, err := filters.ParseName(fl.Field().String())
			return err == nil
		})
		mustRegister("filter_scope", func(fl validator.FieldLevel) bool {
			_, err := filters.ParseScope(fl.Field().String())
			return err == nil
		})
		mustRegister("weekend_choice", func(fl validator.FieldLevel) bool {
			_, err := filters.ParseWeekend(fl.Field().String())
			return err == nil
		})
	})

	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// ValidateStruct validates s with the singleton validator. It returns nil
// when s is valid.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldPath(fieldErr),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// fieldPath drops the top-level struct name from the namespace, so a failure
// inside a slice reads "filters[2].scope" rather than just "scope".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":       "%s is required",
	"filter_name":    "%s must be one of: month, visitor_type, weekend, browser, os, region, traffic_type, page_type",
	"filter_scope":   "%s must be one of: all, kpi, graph",
	"weekend_choice": "%s must be one of: all, weekday, weekend",
	"unique":         "%s must not repeat a filter",
	"numeric":        "%s must be a numeric id",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fieldPath(fe)
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max with type-specific wording.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	var unit string
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	}

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
