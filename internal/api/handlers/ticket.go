package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	service "github.com/aaravmahajanofficial/cart-checkout-service/internal/services"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils/response"
)

type TicketHandler struct {
	ticketService service.TicketService
}

func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// GetTicket godoc
//	@Summary		Get a ticket by ID
//	@Description	Returns the receipt issued by a finalized purchase.
//	@Tags			Tickets
//	@Produce		json
//	@Param			tid	path		string					true	"Ticket ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Ticket			"Ticket"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid ticket ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Ticket not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/tickets/{tid} [get]
func (h *TicketHandler) GetTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		ticketID := r.PathValue("tid")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("ticketId", ticketID))

		ticket, err := h.ticketService.GetTicket(r.Context(), ticketID)
		if err != nil {
			logger.Warn("Failed to get ticket", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, ticket)
	}
}
