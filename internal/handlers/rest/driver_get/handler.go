package driver_get

import (
	"net/http"

	"dispatcher/internal/dto"
	"dispatcher/internal/handlers/rest/response"
	"dispatcher/pkg/logger"

	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "driver_get"),
	)

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["id"]

	driver, err := h.service.GetDriver(r.Context(), driverID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.NewDriver(driver))
}
