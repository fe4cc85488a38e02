package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/power-play/docs"
	"github.com/Dosada05/power-play/handlers"
	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/middleware"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Profile     *handlers.ProfileHandler
	Club        *handlers.ClubHandler
	Rink        *handlers.RinkHandler
	Match       *handlers.MatchHandler
	Participant *handlers.ParticipantHandler
	Point       *handlers.PointHandler
	Chat        *handlers.ChatHandler
	WebSocket   *handlers.WebSocketHandler
	Push        *handlers.PushHandler
	Admin       *handlers.AdminHandler
	Meta        *handlers.MetaHandler
}

type Options struct {
	JWTSecret      []byte
	Profiles       middleware.ProfileLookup
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.StripQueryToken)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Accept-Language", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Language"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(i18n.Middleware)

	authenticate := middleware.Authenticate(opts.JWTSecret, opts.Profiles)

	router.Get("/healthz", h.Meta.Health)
	router.Get("/sw.js", h.Push.ServiceWorker)
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// Websocket живёт вне таймаута: соединение долгое.
	router.With(middleware.AuthenticateWS(opts.JWTSecret, opts.Profiles), middleware.RequireOnboarded).
		Get("/ws/chat/{roomID}", h.WebSocket.ServeChat)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Get("/i18n/messages", h.Meta.Messages)
		r.Post("/i18n/lang", h.Meta.SetLanguage)
		r.Get("/push/vapid-public-key", h.Push.VAPIDPublicKey)

		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/rinks", h.Rink.ListRinks)
		r.Get("/rinks/{rinkID}", h.Rink.GetRink)

		// Аутентифицированные маршруты, доступные до онбординга.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Put("/auth/password", h.Auth.ChangePassword)
			r.Get("/me", h.Profile.GetMe)
			r.Patch("/me", h.Profile.UpdateMe)
			r.Delete("/me", h.Profile.DeleteMe)
			r.Post("/me/onboarding", h.Profile.CompleteOnboarding)
			r.Post("/me/avatar", h.Profile.UploadAvatar)

			r.Post("/push/subscriptions", h.Push.Subscribe)
			r.Delete("/push/subscriptions", h.Push.Unsubscribe)
		})

		// Остальные функции требуют заполненного профиля.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireOnboarded)

			r.Get("/users/{userID}", h.Profile.GetPublic)
			r.Get("/me/clubs", h.Club.ListMyClubs)
			r.Get("/me/participations", h.Participant.ListMine)

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", h.Match.ListMatches)
				r.Post("/", h.Match.CreateMatch)
				r.Route("/{matchID}", func(r chi.Router) {
					r.Get("/", h.Match.GetMatch)
					r.Patch("/", h.Match.UpdateMatch)
					r.Post("/cancel", h.Match.CancelMatch)
					r.Post("/close", h.Match.CloseMatch)
					r.Get("/participants", h.Participant.ListByMatch)
					r.Post("/participants", h.Participant.Join)
				})
			})
			r.Delete("/participants/{participantID}", h.Participant.Cancel)

			r.Route("/clubs", func(r chi.Router) {
				r.Get("/", h.Club.ListClubs)
				r.Post("/", h.Club.CreateClub)
				r.Route("/{clubID}", func(r chi.Router) {
					r.Get("/", h.Club.GetClub)
					r.Put("/", h.Club.UpdateClub)
					r.Post("/logo", h.Club.UploadLogo)
					r.Post("/apply", h.Club.Apply)
					r.Get("/members", h.Club.ListMembers)
					r.Delete("/members/me", h.Club.Leave)
					r.Put("/members/{userID}", h.Club.ReviewMember)
				})
			})

			r.Route("/points", func(r chi.Router) {
				r.Post("/charges", h.Point.RequestCharge)
				r.Get("/charges", h.Point.ListMyCharges)
				r.Get("/transactions", h.Point.ListMyTransactions)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Get("/unread", h.Chat.UnreadCount)
				r.Get("/rooms", h.Chat.ListRooms)
				r.Post("/rooms", h.Chat.OpenRoom)
				r.Get("/rooms/{roomID}/messages", h.Chat.ListMessages)
				r.Post("/rooms/{roomID}/messages", h.Chat.SendMessage)
				r.Post("/rooms/{roomID}/read", h.Chat.MarkRead)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)

			r.Get("/dashboard", h.Admin.Dashboard)
			r.Get("/audit", h.Admin.ListAuditLogs)
			r.Get("/users", h.Admin.ListUsers)
			r.Delete("/users/{userID}", h.Admin.DeleteUser)
			r.Get("/charges", h.Point.ListCharges)
			r.Post("/charges/{chargeID}/confirm", h.Point.ConfirmCharge)
			r.Post("/charges/{chargeID}/reject", h.Point.RejectCharge)
			r.Put("/participants/{participantID}", h.Participant.SetStatus)

			r.Post("/rinks", h.Rink.CreateRink)
			r.Put("/rinks/{rinkID}", h.Rink.UpdateRink)
			r.Delete("/rinks/{rinkID}", h.Rink.DeleteRink)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperuser)
				r.Put("/users/{userID}/role", h.Admin.SetRole)
				r.Post("/users/{userID}/points", h.Point.AdjustPoints)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
