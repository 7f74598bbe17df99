package order_complete_post

import (
	"encoding/json"
	"net/http"

	"dispatcher/internal/dto"
	"dispatcher/internal/handlers/rest/response"
	"dispatcher/pkg/logger"

	"github.com/AlekSi/pointer"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "order_complete_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP закрывает доставку, курьер сразу получает следующий заказ из очереди.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var request dto.OrderDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	order, err := h.service.CompleteOrder(r.Context(), orderID, pointer.Get(request.DriverID))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.NewOrder(order))
}
