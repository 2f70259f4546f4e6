package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в сообщениях — имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Message: msg})
}

// decodeJSON читает тело запроса с ограничением размера. При allowEmpty
// пустое тело допустимо и оставляет v без изменений.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := render.DecodeJSON(r.Body, v)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// validationMessage собирает человекочитаемое сообщение из ошибок валидатора.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s is not a valid email", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
