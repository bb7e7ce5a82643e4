package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/logger"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils/response"
)

type DebugHandler struct{}

func NewDebugHandler() *DebugHandler {
	return &DebugHandler{}
}

// LoggerTest godoc
//	@Summary		Emit one log line per level
//	@Description	Writes a debug, http, info, warn, error and fatal line. Lines below the configured level are dropped. Nothing exits.
//	@Tags			Debug
//	@Produce		json
//	@Success		200	{object}	response.APIResponse	"Levels emitted"
//	@Router			/debug/loggertest [get]
func (h *DebugHandler) LoggerTest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()
		l := middleware.LoggerFromContext(ctx)

		l.DebugContext(ctx, "loggertest: debug")
		logger.HTTP(ctx, l, "loggertest: http")
		l.InfoContext(ctx, "loggertest: info")
		l.WarnContext(ctx, "loggertest: warn")
		l.ErrorContext(ctx, "loggertest: error")
		logger.Fatal(ctx, l, "loggertest: fatal")

		response.Success(w, http.StatusOK, map[string][]string{
			"levels": {"DEBUG", "HTTP", "INFO", "WARN", "ERROR", "FATAL"},
		})
	}
}
