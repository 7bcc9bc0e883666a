package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

var ErrValidation = errors.New("validation error")

// ValidationError carries a message per offending field, keyed by the
// field's JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation error: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return model.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		return model.Priority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("paymentstatus", func(fl validator.FieldLevel) bool {
		return model.PaymentStatus(fl.Field().String()).Valid()
	})
	return v
}

// checkStruct runs the struct tags of s and converts failures into a
// *ValidationError.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldPath(fe)
		if _, seen := fields[name]; !seen {
			fields[name] = describe(fe)
		}
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the root struct name from the namespace, so nested fields
// read as "payment.status" and slice elements as "attachments[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

var tagMessages = map[string]string{
	"required":      "is required",
	"uuid":          "must be a valid id",
	"uri":           "must be a valid URL",
	"min":           "must not be empty",
	"taskstatus":    "must be one of Assigned, Pending, In Progress, Review, Completed",
	"taskpriority":  "must be one of Low, Medium, High, Critical",
	"paymentstatus": "must be one of Pending, Completed",
}

func describeTag(tag string) string {
	if msg, ok := tagMessages[tag]; ok {
		return msg
	}
	return "is invalid"
}

func describe(fe validator.FieldError) string {
	if fe.Tag() == "gte" {
		return "must be at least " + fe.Param()
	}
	return describeTag(fe.Tag())
}

// checkID rejects identifiers that are not UUIDs before they reach the store.
func checkID(field, id string) error {
	if err := uuid.Validate(id); err != nil {
		return fieldError(field, describeTag("uuid"))
	}
	return nil
}
