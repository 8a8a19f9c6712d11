package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var (
	// ErrEmptyBody тело запроса отсутствует
	ErrEmptyBody = errors.New("request body is empty")

	// ErrInvalidTime значение времени не удалось разобрать
	ErrInvalidTime = errors.New("invalid time value")
)

// Форматы времени без смещения читаются в часовом поясе сервиса
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Строка не пустая после обрезки пробелов
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}

// DecodeAndValidate декодирует тело и проверяет теги validate
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

// ValidateStruct проверяет теги validate и собирает понятное сообщение
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}

// PathInt64 читает числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// ParseTime RFC3339 или локальное время без смещения в loc
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTime
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

// QueryBool читает булев query параметр, пустое значение дает def
func QueryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

// QueryInt64List разбирает список вида "1,2,3"
func QueryInt64List(r *http.Request, name string) ([]int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	result := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, nil
}
