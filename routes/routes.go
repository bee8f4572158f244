package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/college-cricket/docs"
	"github.com/Dosada05/college-cricket/handlers"
	"github.com/Dosada05/college-cricket/middleware"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Team        *handlers.TeamHandler
	Player      *handlers.PlayerHandler
	Tournament  *handlers.TournamentHandler
	Roster      *handlers.RosterHandler
	Match       *handlers.MatchHandler
	Fixture     *handlers.FixtureHandler
	Leaderboard *handlers.LeaderboardHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

// SetupRoutes mounts the API under /api/v1. Reads are public; every mutation
// needs a valid token.
func SetupRoutes(router chi.Router, jwtSecret []byte, allowedOrigins []string, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})
		r.With(middleware.RequireAuth).Get("/me", h.Auth.Me)

		r.Get("/dashboard", h.Dashboard.Dashboard)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.ListTeams)
			r.Get("/{teamID}", h.Team.GetTeamByID)
			r.Get("/{teamID}/players", h.Team.ListTeamPlayers)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Team.CreateTeam)
				r.Put("/{teamID}", h.Team.UpdateTeam)
				r.Delete("/{teamID}", h.Team.DeleteTeam)
				r.Put("/{teamID}/logo", h.Team.UploadTeamLogo)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.ListPlayers)
			r.Get("/{playerID}", h.Player.GetPlayerByID)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Player.CreatePlayer)
				r.Put("/{playerID}", h.Player.UpdatePlayer)
				r.Delete("/{playerID}", h.Player.DeletePlayer)
				r.Put("/{playerID}/image", h.Player.UploadPlayerImage)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListTournaments)
			r.Get("/{tournamentID}", h.Tournament.GetTournamentByID)
			r.Get("/{tournamentID}/standings", h.Tournament.GetStandings)
			r.Get("/{tournamentID}/matches", h.Match.ListTournamentMatches)
			r.Get("/{tournamentID}/teams", h.Roster.GetRoster)
			r.Get("/{tournamentID}/teams/available", h.Roster.ListAvailableTeams)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Tournament.CreateTournament)
				r.Put("/{tournamentID}", h.Tournament.UpdateTournament)
				r.Delete("/{tournamentID}", h.Tournament.DeleteTournament)
				r.Post("/{tournamentID}/teams", h.Roster.AddTeams)
				r.Post("/{tournamentID}/fixtures", h.Fixture.GenerateFixtures)
				r.Delete("/{tournamentID}/teams/{teamID}", h.Roster.RemoveTeam)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Match.ListMatches)
			r.Get("/{matchID}", h.Match.GetMatchByID)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Match.CreateMatch)
				r.Put("/{matchID}", h.Match.UpdateMatch)
				r.Delete("/{matchID}", h.Match.DeleteMatch)
			})
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", h.Leaderboard.Rank)
			r.Get("/batsmen", h.Leaderboard.TopBatsmen)
			r.Get("/bowlers", h.Leaderboard.TopBowlers)
			r.Get("/teams", h.Leaderboard.TopTeams)
		})

		r.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
	})
}
