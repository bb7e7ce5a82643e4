package main

import (
	"net/http"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/handlers"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
)

type routeHandlers struct {
	cart    *handlers.CartHandler
	product *handlers.ProductHandler
	ticket  *handlers.TicketHandler
	debug   *handlers.DebugHandler
}

// registerRoutes mounts the API. Catalogue writes, ticket reads and checkout require a bearer token.
func registerRoutes(mux *http.ServeMux, h routeHandlers, auth *middleware.AuthMiddleware) {

	// Carts
	mux.HandleFunc("POST /api/v1/carts", h.cart.CreateCart())
	mux.HandleFunc("GET /api/v1/carts", h.cart.ListCarts())
	mux.HandleFunc("GET /api/v1/carts/{cid}", h.cart.GetCart())
	mux.HandleFunc("PUT /api/v1/carts/{cid}", h.cart.UpdateCartProducts())
	mux.HandleFunc("DELETE /api/v1/carts/{cid}", h.cart.EmptyCart())
	mux.HandleFunc("DELETE /api/v1/carts/{cid}/delete", h.cart.DeleteCart())
	mux.HandleFunc("POST /api/v1/carts/{cid}/products/{pid}", h.cart.AddToCart())
	mux.HandleFunc("PUT /api/v1/carts/{cid}/products/{pid}", h.cart.UpdateProductQuantity())
	mux.HandleFunc("DELETE /api/v1/carts/{cid}/products/{pid}", h.cart.DeleteProductFromCart())
	mux.HandleFunc("POST /api/v1/carts/{cid}/purchase", auth.Authenticate(h.cart.FinalizePurchase()))

	// Products
	mux.HandleFunc("POST /api/v1/products", auth.Authenticate(h.product.CreateProduct()))
	mux.HandleFunc("GET /api/v1/products", h.product.ListProducts())
	mux.HandleFunc("GET /api/v1/products/{pid}", h.product.GetProduct())
	mux.HandleFunc("PUT /api/v1/products/{pid}", auth.Authenticate(h.product.UpdateProduct()))

	// Tickets
	mux.HandleFunc("GET /api/v1/tickets/{tid}", auth.Authenticate(h.ticket.GetTicket()))

	mux.HandleFunc("GET /api/v1/debug/loggertest", h.debug.LoggerTest())
}
