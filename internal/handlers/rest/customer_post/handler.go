package customer_post

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
		logger.NewField("handler", "customer_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.CustomerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	customer, err := h.service.OnboardCustomer(r.Context(), entities.CustomerModify{
		ID:   request.ID,
		Name: request.Name,
	})
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.NewCustomer(customer))
}
