package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ligaregional/league-system/handlers"
	"github.com/ligaregional/league-system/middleware"
)

// SetupRoutes mounts every endpoint on the router. Mutating routes sit
// behind JWT authentication plus the admin role gate; reads are public.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	clubHandler *handlers.ClubHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	fixtureHandler *handlers.FixtureHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Get("/auth/me", authHandler.Me)
	})

	router.Route("/clubs", func(r chi.Router) {
		r.Get("/", clubHandler.ListClubs)
		r.Get("/{clubID}", clubHandler.GetClub)
		r.Get("/{clubID}/players", clubHandler.ListClubPlayers)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.RequireAdmin)
			r.Post("/", clubHandler.CreateClub)
			r.Put("/{clubID}", clubHandler.UpdateClub)
			r.Delete("/{clubID}", clubHandler.DeleteClub)
			r.Post("/{clubID}/crest", clubHandler.UploadCrest)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetPlayer)
		r.Get("/{playerID}/transfers", playerHandler.ListTransfers)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.RequireAdmin)
			r.Post("/", playerHandler.CreatePlayer)
			r.Put("/{playerID}", playerHandler.UpdatePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
			r.Post("/{playerID}/photo", playerHandler.UploadPhoto)
			r.Post("/{playerID}/transfers", playerHandler.TransferPlayer)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatches)
		r.Get("/{matchID}", matchHandler.GetMatch)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.RequireAdmin)
			r.Put("/{matchID}/result", matchHandler.RecordResult)
			r.Put("/{matchID}/suspension", matchHandler.SuspendMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
		})
	})

	router.Route("/fixture", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.RequireAdmin)
		r.Post("/preview", fixtureHandler.PreviewFixture)
		r.Post("/commit", fixtureHandler.CommitFixture)
	})

	router.Get("/standings", standingsHandler.GetStandings)

	router.Get("/ws/divisions/{division}", webSocketHandler.ServeWs)
}
