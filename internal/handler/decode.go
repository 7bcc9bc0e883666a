package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/BuzzLyutic/taskflow-api/internal/service"
)

var errInvalidJSON = errors.New("invalid json")

var timeType = reflect.TypeOf(time.Time{})

// decodeBody fills dst, a pointer to a struct, from the JSON object in the
// request body. A body that is not a JSON object yields errInvalidJSON; a
// value of the wrong type or format yields a *service.ValidationError naming
// the field.
func decodeBody(r *http.Request, dst any) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return errInvalidJSON
	}

	v := reflect.ValueOf(dst).Elem()
	fields := make(map[string]string)
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		value, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, v.Field(i).Addr().Interface()); err != nil {
			fields[name] = "must be " + expected(f.Type)
		}
	}

	if len(fields) > 0 {
		return &service.ValidationError{Fields: fields}
	}
	return nil
}

func expected(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return "an RFC 3339 date"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int64, reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice:
		return "a list"
	case reflect.Struct:
		return "an object"
	}
	return "valid"
}
