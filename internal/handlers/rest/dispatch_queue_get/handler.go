package dispatch_queue_get

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
		logger.NewField("handler", "dispatch_queue_get"),
	)

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

// ServeHTTP отдает id заказов, ждущих курьера, в порядке очереди.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pending := h.service.PendingOrders(r.Context())

	response.JSON(w, h.log, http.StatusOK, dto.DispatchQueue{
		OrderIDs: pending,
		Length:   len(pending),
	})
}
