package order_post

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
		logger.NewField("handler", "order_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP создает заказ. В ответе заказ уже может быть назначен,
// если свободный курьер нашелся сразу.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.OrderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), entities.OrderModify{
		CustomerID: request.CustomerID,
		ItemID:     request.ItemID,
		Quantity:   request.Quantity,
	})
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.NewOrder(order))
}
