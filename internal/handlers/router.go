package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TEJ12356788/atmosphere/internal/auth"
	"github.com/TEJ12356788/atmosphere/internal/middleware"
	"github.com/TEJ12356788/atmosphere/internal/service"
	"github.com/TEJ12356788/atmosphere/internal/ws"
)

type Deps struct {
	Service        *service.Service
	Signer         *auth.Signer
	Hub            *ws.Hub
	AllowedOrigins []string
}

// NewRouter wires every API route. CORS, logging and panic recovery wrap the
// router itself so they also apply to unmatched routes and preflights.
func NewRouter(d Deps) http.Handler {
	authHandler := &AuthHandler{Service: d.Service, Signer: d.Signer}
	circleHandler := &CircleHandler{Service: d.Service}
	eventHandler := &EventHandler{Service: d.Service}
	mediaHandler := &MediaHandler{Service: d.Service}
	promotionHandler := &PromotionHandler{Service: d.Service}
	notificationHandler := &NotificationHandler{Service: d.Service}
	reportHandler := &ReportHandler{Service: d.Service}

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/signup/business", authHandler.SignupBusiness).Methods("POST")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/events/upcoming", eventHandler.Upcoming).Methods("GET")
	r.HandleFunc("/circles/{id}/events", circleHandler.Events).Methods("GET")
	r.HandleFunc("/promotions/active", promotionHandler.Active).Methods("GET")

	// Endpoints requiring a session
	api := r.NewRoute().Subrouter()
	api.Use(middleware.AuthMiddleware(d.Signer))
	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/circles", circleHandler.Mine).Methods("GET")
	api.HandleFunc("/circles", circleHandler.Create).Methods("POST")
	api.HandleFunc("/circles/discover", circleHandler.Discover).Methods("GET")
	api.HandleFunc("/circles/{id}/join", circleHandler.Join).Methods("POST")
	api.HandleFunc("/circles/{id}/leave", circleHandler.Leave).Methods("POST")
	api.HandleFunc("/events", eventHandler.Create).Methods("POST")
	api.HandleFunc("/events/attending", eventHandler.Attending).Methods("GET")
	api.HandleFunc("/events/{id}/rsvp", eventHandler.RSVP).Methods("POST")
	api.HandleFunc("/media", mediaHandler.Mine).Methods("GET")
	api.HandleFunc("/media", mediaHandler.Upload).Methods("POST")
	api.HandleFunc("/promotions", promotionHandler.Create).Methods("POST")
	api.HandleFunc("/promotions/{id}/claim", promotionHandler.Claim).Methods("POST")
	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods("POST")
	api.HandleFunc("/reports", reportHandler.Create).Methods("POST")

	// WebSocket Endpoint
	if d.Hub != nil {
		api.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session(w, r)
			if !ok {
				return
			}
			ws.ServeWs(d.Hub, w, r, sess.UserID)
		})
	}

	var h http.Handler = r
	h = middleware.CORSMiddleware(d.AllowedOrigins)(h)
	h = middleware.LoggingMiddleware(h)
	h = middleware.RecoverMiddleware(h)
	return h
}
