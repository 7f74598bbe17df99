package drivers_get

import (
	"net/http"

	"dispatcher/internal/dto"
	"dispatcher/internal/handlers/rest/response"
	"dispatcher/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "drivers_get"),
	)

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.service.ListDrivers(r.Context())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	driversDTO := make([]dto.Driver, 0, len(drivers))
	for i := range drivers {
		driversDTO = append(driversDTO, dto.NewDriver(&drivers[i]))
	}

	response.JSON(w, h.log, http.StatusOK, driversDTO)
}
