package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatcher/internal/dto"
	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
}

// StatusFromError сопоставляет вид ошибки HTTP статусу.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrNotAssignedToDriver),
		errors.Is(err, entities.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrInvalidQuantity),
		errors.Is(err, entities.ErrInvalidItem),
		errors.Is(err, entities.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func JSON(w http.ResponseWriter, log handlerLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response",
			logger.NewField("error", err),
		)
	}
}

// Error пишет ошибку в теле ответа. Текст внутренних ошибок
// клиенту не отдается, только в лог.
func Error(w http.ResponseWriter, log handlerLogger, err error) {
	status := StatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			logger.NewField("error", err),
		)
		message = http.StatusText(status)
	}
	JSON(w, log, status, dto.Error{Message: message})
}

func BadRequest(w http.ResponseWriter, log handlerLogger, message string) {
	JSON(w, log, http.StatusBadRequest, dto.Error{Message: message})
}
