package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError отвечает статусом по таксономии доменных ошибок
// Сообщение валидации и вместимости отдается как есть, остальное обобщается
func RespondDomainError(w http.ResponseWriter, err error) {
	status := StatusFor(err)

	var validationErr *domain.ValidationError
	var capacityErr *domain.CapacityExceededError

	switch {
	case errors.As(err, &validationErr):
		RespondJSON(w, status, ErrorResponse{Error: validationErr.Message, Fields: validationErr.Fields})
	case errors.As(err, &capacityErr):
		RespondError(w, status, capacityErr.Error())
	case status == http.StatusInternalServerError:
		RespondInternalError(w)
	default:
		RespondError(w, status, err.Error())
	}
}

// StatusFor HTTP статус для ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAlreadyStarted),
		errors.Is(err, domain.ErrAlreadyCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Outcome метка результата операции для метрик
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrAlreadyStarted):
		return "already_started"
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return "already_cancelled"
	default:
		return "error"
	}
}
