package orders_get

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
		logger.NewField("handler", "orders_get"),
	)

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	ordersDTO := make([]dto.Order, 0, len(orders))
	for i := range orders {
		ordersDTO = append(ordersDTO, dto.NewOrder(&orders[i]))
	}

	response.JSON(w, h.log, http.StatusOK, ordersDTO)
}
