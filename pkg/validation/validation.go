package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	v *validator.Validate

	// Phone: digits with optional leading plus, spaces, dashes, dots, parentheses.
	rePhone = regexp.MustCompile(`^\+?[0-9 ()./-]{6,20}$`)
)

// DateLayouts are the accepted spellings of a calendar date on the wire.
var DateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseDate parses s with the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func init() {
	v = validator.New()

	// Use JSON tag as the field name in error output
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Custom: calendar date (YYYY-MM-DD or RFC3339)
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" { // let required/omitempty decide
			return true
		}
		_, err := ParseDate(val)
		return err == nil
	})

	// Custom: string with at least one non-space character
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Custom: phone number
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" {
			return true
		}
		return rePhone.MatchString(val)
	})
}

// Validate returns map[field][]messages, or nil when s is valid.
func Validate(s any) (map[string][]string, error) {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		out := make(map[string][]string)
		for _, e := range ve {
			field := e.Field() // already mapped from json tag

			switch e.Tag() {
			case "required", "required_without":
				out[field] = append(out[field], "This field is required")

			case "notblank":
				out[field] = append(out[field], "This field cannot be blank")

			case "email":
				out[field] = append(out[field], "Invalid email format")

			case "url":
				out[field] = append(out[field], "Invalid URL")

			case "min":
				switch e.Kind() {
				case reflect.String:
					out[field] = append(out[field], fmt.Sprintf("Must be at least %s characters", e.Param()))
				case reflect.Slice:
					out[field] = append(out[field], fmt.Sprintf("Must contain at least %s items", e.Param()))
				default:
					out[field] = append(out[field], fmt.Sprintf("Must be at least %s", e.Param()))
				}

			case "max":
				if e.Kind() == reflect.String {
					out[field] = append(out[field], fmt.Sprintf("Must be at most %s characters", e.Param()))
				} else {
					out[field] = append(out[field], fmt.Sprintf("Must be at most %s", e.Param()))
				}

			case "oneof":
				out[field] = append(out[field], fmt.Sprintf("Must be one of: %s", e.Param()))

			case "gte":
				out[field] = append(out[field], fmt.Sprintf("Must be greater than or equal to %s", e.Param()))

			case "gt":
				out[field] = append(out[field], fmt.Sprintf("Must be greater than %s", e.Param()))

			case "isodate":
				out[field] = append(out[field], "Invalid date (use YYYY-MM-DD)")

			case "phone":
				out[field] = append(out[field], "Invalid phone number")

			default:
				// Fallback to original error text if we missed a tag
				out[field] = append(out[field], e.Error())
			}
		}
		return out, nil
	}
	return nil, nil
}
