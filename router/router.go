package router

import (
	"database/sql"
	"net/http"

	artifactHandler "artifactvault/internal/artifact"
	artifactRepo "artifactvault/internal/artifact/repository"
	artifactService "artifactvault/internal/artifact/service"
	authHandler "artifactvault/internal/auth"
	likeHandler "artifactvault/internal/like"
	likeRepo "artifactvault/internal/like/repository"
	likeService "artifactvault/internal/like/service"
	"artifactvault/middleware"
	"artifactvault/socket"

	"github.com/go-chi/chi/v5"
)

func Setup(db *sql.DB, hub *socket.Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	artifacts := artifactHandler.NewArtifactHandler(
		artifactService.NewArtifactService(artifactRepo.NewArtifactRepository(db), hub))
	likes := likeHandler.NewLikeHandler(
		likeService.NewLikeService(likeRepo.NewLikeRepository(db), hub))
	auth := authHandler.NewAuthHandler()

	// Liveness
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("server is running"))
	})

	// Public artifact routes
	r.Get("/all-artifacts", artifacts.ListAll)
	r.Get("/all-artifacts/{id}", artifacts.GetByID)
	r.Post("/add-artifacts", artifacts.Create)

	// Owner-scoped routes, gated by the token cookie
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)
		r.Get("/my-artifacts", artifacts.MyArtifacts)
		r.Patch("/update-artifact/{id}", artifacts.Update)
		r.Delete("/delete-artifact/{id}", artifacts.Delete)
	})

	// Likes
	r.Get("/artifacts/{id}/like-status", likes.Status)
	r.Patch("/artifacts/{id}/like", likes.Toggle)
	r.Get("/users/{userId}/liked-artifacts", likes.LikedArtifacts)

	// Session
	r.Post("/jwt", auth.Login)
	r.Post("/logout", auth.Logout)
	r.Get("/logout", auth.Logout)
	r.Get("/debug-check-token", auth.DebugCheckToken)

	// Activity feed
	r.Get("/events", func(w http.ResponseWriter, req *http.Request) {
		socket.ServeWs(hub, w, req)
	})

	return r
}
