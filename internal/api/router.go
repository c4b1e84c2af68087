// Package api exposes the service over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/example/ec-commerce/internal/api/middleware"
	"github.com/example/ec-commerce/internal/auth"
)

func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, jwtService *auth.JWTService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandlers.Signup)
		r.Post("/auth/login", authHandlers.Login)
		r.Post("/auth/logout", authHandlers.Logout)

		r.Get("/products", handlers.GetProducts)
		r.Get("/products/top", handlers.GetTopProducts)
		r.Get("/products/{productID}", handlers.GetProduct)
		r.Post("/products", handlers.CreateProduct)

		r.Get("/coupons/{couponID}", handlers.GetCoupon)

		// Everything below needs an authenticated account.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtService))

			r.Get("/auth/me", authHandlers.Me)

			r.Get("/cart", handlers.GetCart)
			r.Post("/cart/items", handlers.AddToCart)
			r.Put("/cart/items/{itemID}", handlers.UpdateCartItem)
			r.Delete("/cart/items/{itemID}", handlers.RemoveFromCart)

			r.Post("/orders", handlers.CreateOrder)
			r.Get("/orders", handlers.GetOrders)
			r.Get("/orders/{orderID}", handlers.GetOrder)
			r.Post("/orders/{orderID}/cancel", handlers.CancelOrder)

			r.Post("/coupons/{couponID}/issue", handlers.IssueCoupon)
			r.Get("/me/coupons", handlers.GetMyCoupons)

			r.Get("/balance", handlers.GetBalance)
			r.Post("/balance/charge", handlers.ChargeBalance)
			r.Post("/payments", handlers.ExecutePayment)
		})
	})

	return r
}
