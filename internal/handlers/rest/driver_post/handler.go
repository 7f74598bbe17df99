package driver_post

import (
	"encoding/json"
	"net/http"

	"dispatcher/internal/dto"
	"dispatcher/internal/entities"
	"dispatcher/internal/handlers/rest/response"
	"dispatcher/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "driver_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP регистрирует курьера. Повторная регистрация с тем же id
// возвращает существующего курьера.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.DriverCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	driver, err := h.service.OnboardDriver(r.Context(), entities.DriverModify{
		ID:   request.ID,
		Name: request.Name,
	})
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.NewDriver(driver))
}
