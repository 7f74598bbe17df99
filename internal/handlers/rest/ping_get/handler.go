package ping_get

import (
	"net/http"
	"time"

	"dispatcher/internal/dto"
	"dispatcher/internal/handlers/rest/response"
)

// Handler отвечает pong и временем работы процесса.
type Handler struct {
	log       handlerLogger
	clock     Clock
	startedAt time.Time
}

func New(log handlerLogger, clock Clock) *Handler {
	return &Handler{
		log:       log,
		clock:     clock,
		startedAt: clock.Now(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	uptime := h.clock.Now().Sub(h.startedAt)
	response.JSON(w, h.log, http.StatusOK, dto.PingResponse{
		Message:       "pong",
		UptimeSeconds: int64(uptime / time.Second),
	})
}
