package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/middleware"
)

// NewRouter wires the full REST surface. Shared between the server binary
// and the handler tests so both exercise the same routes.
func NewRouter(
	auth *AuthHandlers,
	videos *VideoHandlers,
	comments *CommentHandlers,
	reports *ReportHandlers,
	filters *FilterHandlers,
	checkouts *CheckoutHandlers,
	sessions *middleware.SessionMiddleware,
	logger *logrus.Logger,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.LoggingMiddleware(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "OPTIONS")

	api := router.PathPrefix("/api/v1").Subrouter()

	required := sessions.RequireAuth
	optional := sessions.OptionalAuth

	api.HandleFunc("/auth/request-otp", auth.RequestOTP).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/verify-otp", auth.VerifyOTP).Methods("POST", "OPTIONS")
	api.Handle("/auth/me", required(http.HandlerFunc(auth.Me))).Methods("GET")
	api.HandleFunc("/auth/logout", auth.Logout).Methods("POST", "OPTIONS")

	api.Handle("/feed", optional(http.HandlerFunc(videos.GetFeed))).Methods("GET")
	api.Handle("/videos", required(http.HandlerFunc(videos.CreateVideo))).Methods("POST")
	api.Handle("/videos/{id}", optional(http.HandlerFunc(videos.GetVideo))).Methods("GET")
	api.Handle("/videos/{id}/like", required(http.HandlerFunc(videos.LikeVideo))).Methods("POST")
	api.Handle("/videos/{id}/like", required(http.HandlerFunc(videos.UnlikeVideo))).Methods("DELETE")
	api.Handle("/videos/{id}/share", required(http.HandlerFunc(videos.ShareVideo))).Methods("POST")

	api.Handle("/videos/{id}/comments", optional(http.HandlerFunc(comments.ListComments))).Methods("GET")
	api.Handle("/videos/{id}/comments", required(http.HandlerFunc(comments.CreateComment))).Methods("POST")
	api.Handle("/comments/{id}", required(http.HandlerFunc(comments.DeleteComment))).Methods("DELETE")

	api.Handle("/videos/{id}/report", required(http.HandlerFunc(reports.CreateReport))).Methods("POST")

	api.Handle("/hashtags/trending", http.HandlerFunc(videos.TrendingHashtags)).Methods("GET")
	api.Handle("/hashtags/{tag}/videos", optional(http.HandlerFunc(videos.HashtagVideos))).Methods("GET")

	api.HandleFunc("/filters", filters.ListFilters).Methods("GET")

	api.Handle("/checkout", required(http.HandlerFunc(checkouts.CreateCheckout))).Methods("POST")
	api.Handle("/checkout/{id}", required(http.HandlerFunc(checkouts.GetCheckout))).Methods("GET")

	return router
}
