package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lodgewise/homestay-backend/internal/auth"
	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/handler"
)

func Setup(h *handler.Handler, issuer *auth.TokenIssuer, uploadDir string, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", healthCheck)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", h.Register)
		api.Post("/auth/login", h.Login)

		// Public catalogue; a valid token enriches view tracking.
		api.Group(func(pub chi.Router) {
			pub.Use(auth.Optional(issuer))
			pub.Get("/properties", h.ListProperties)
			pub.Get("/properties/search", h.SearchProperties)
			pub.Get("/properties/popular", h.PopularProperties)
			pub.Get("/properties/top-rated", h.TopRatedProperties)
			pub.Get("/properties/{propertyID}", h.GetProperty)
			pub.Get("/properties/{propertyID}/availability", h.PropertyAvailability)
		})

		api.Group(func(priv chi.Router) {
			priv.Use(auth.Require(issuer))

			priv.Get("/recommendations", h.GetRecommendations)
			priv.Get("/recommendations/collaborative", h.GetCollaborativeRecommendations)
			priv.Get("/recommendations/content-based", h.GetContentBasedRecommendations)

			priv.Post("/properties/{propertyID}/favorite", h.FavoriteProperty)
			priv.Post("/properties/{propertyID}/review", h.ReviewProperty)

			priv.Post("/orders", h.CreateOrder)
			priv.Get("/orders", h.ListOrders)
			priv.Get("/orders/{orderID}", h.GetOrder)
			priv.Get("/orders/number/{orderNumber}", h.GetOrderByNumber)
			priv.Put("/orders/{orderID}/status", h.UpdateOrderStatus)
			priv.Post("/orders/{orderID}/cancel", h.CancelOrder)

			priv.Group(func(ll chi.Router) {
				ll.Use(auth.RequireRole(domain.RoleLandlord, domain.RoleAdmin))
				ll.Post("/properties", h.CreateProperty)
				ll.Put("/properties/{propertyID}", h.UpdateProperty)
				ll.Delete("/properties/{propertyID}", h.DeleteProperty)
				ll.Post("/properties/{propertyID}/images", h.UploadPropertyImages)
				ll.Get("/landlord/properties", h.LandlordProperties)
				ll.Get("/landlord/occupancy", h.LandlordOccupancy)
			})

			priv.Group(func(adm chi.Router) {
				adm.Use(auth.RequireRole(domain.RoleAdmin))
				adm.Get("/admin/users", h.AdminListUsers)
				adm.Put("/admin/users/{userID}/enabled", h.AdminSetUserEnabled)
				adm.Get("/admin/stats", h.AdminStats)
				adm.Get("/admin/recommendations/batch", h.AdminBatchRecommendations)
			})
		})
	})

	return r
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
