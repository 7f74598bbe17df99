package rate_limiter

import (
	"net/http"
	"strconv"

	"dispatcher/internal/dto"
	"dispatcher/internal/handlers/rest/response"
	"dispatcher/internal/pkg/middlewares"
	"dispatcher/pkg/logger"
)

// Middleware отклоняет запросы сверх лимита с 429.
// qps попадает только в заголовок ответа, сам лимит считает limiter.
func Middleware(log handlerLogger, qps int, limiter Limiter) func(http.Handler) http.Handler {
	limit := strconv.Itoa(qps)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := middlewares.RouteTemplate(r)

			if limiter.Allow() {
				Decisions.WithLabelValues(r.Method, route, decisionAllowed).Inc()
				next.ServeHTTP(w, r)
				return
			}

			Decisions.WithLabelValues(r.Method, route, decisionRejected).Inc()
			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			)

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("Retry-After", "1")
			response.JSON(w, log, http.StatusTooManyRequests, dto.Error{Message: "rate limit exceeded, try again later"})
		})
	}
}
