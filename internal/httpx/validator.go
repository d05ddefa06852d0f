package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var validate *validator.Validate

func init() {
	jsoniter.RegisterTypeDecoderFunc("int", decodeInt)

	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct reports one detail per failed field, named by its JSON key.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []ErrorDetail{{Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{
			Field:   field,
			Message: message,
		})
	}
	return details
}

// decodeInt accepts JSON numbers with no fractional part and numeric
// strings such as "101". Anything else is a decode error.
func decodeInt(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var raw string
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.Skip()
		return
	case jsoniter.NumberValue:
		raw = string(iter.ReadNumber())
	case jsoniter.StringValue:
		raw = strings.TrimSpace(iter.ReadString())
	default:
		iter.ReportError("decode int", "expected a number or a numeric string")
		return
	}

	n, err := parseInt(raw)
	if err != nil {
		iter.ReportError("decode int", err.Error())
		return
	}
	*(*int)(ptr) = n
}

func parseInt(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return int(f), nil
}

// DecodeAndValidate reads a JSON body into dst and runs struct validation.
// The body must hold exactly one JSON value. On failure it writes a 422
// response (413 when the size limit is hit) and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return false
		}
		JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body", nil)
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body is required", nil)
		return false
	}
	// Unmarshal rejects bytes left after the first value.
	if err := json.Unmarshal(body, dst); err != nil {
		JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body", nil)
		return false
	}

	if details := ValidateStruct(dst); len(details) > 0 {
		JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return false
	}
	return true
}
