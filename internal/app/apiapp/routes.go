package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/David-1512/LearnHub/internal/config"
	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	feedsvc "github.com/David-1512/LearnHub/internal/services/feed"
	likessvc "github.com/David-1512/LearnHub/internal/services/likes"
	matchessvc "github.com/David-1512/LearnHub/internal/services/matches"
	mediasvc "github.com/David-1512/LearnHub/internal/services/media"
	passessvc "github.com/David-1512/LearnHub/internal/services/passes"
	profilessvc "github.com/David-1512/LearnHub/internal/services/profiles"
	ratesvc "github.com/David-1512/LearnHub/internal/services/rate"
	swipessvc "github.com/David-1512/LearnHub/internal/services/swipes"
	userssvc "github.com/David-1512/LearnHub/internal/services/users"
	"github.com/David-1512/LearnHub/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	UserService    *userssvc.Service
	ProfileService *profilessvc.Service
	LikeService    *likessvc.Service
	PassService    *passessvc.Service
	MatchService   *matchessvc.Service
	FeedService    *feedsvc.Service
	SwipeService   *swipessvc.Service
	MediaService   *mediasvc.Service
	LoginLimiter   *ratesvc.LoginLimiter
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.UserService, deps.LoginLimiter)
	usersHandler := handlers.NewUsersHandler(deps.UserService)
	profilesHandler := handlers.NewProfilesHandler(deps.ProfileService)
	likesHandler := handlers.NewLikesHandler(deps.LikeService)
	passesHandler := handlers.NewPassesHandler(deps.PassService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	feedHandler := handlers.NewFeedHandler(deps.FeedService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	optionalAuthMW := OptionalAuthMiddleware(deps.AuthService)
	studentMW := RequireRole(enums.RoleStudent, enums.RoleAdmin)
	tutorMW := RequireRole(enums.RoleTutor, enums.RoleAdmin)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			// Logout takes beacon requests: valid token or not, it's a 200.
			r.With(optionalAuthMW).Post("/logout", authHandler.Logout)
			r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
		})

		r.With(authMW).Get("/tutors", profilesHandler.ListTutors)
		r.With(authMW).Get("/tutors/{id}", profilesHandler.GetTutor)
		r.With(optionalAuthMW, tutorMW).Put("/tutors/{id}/subjects", profilesHandler.ReplaceSubjects)
		r.With(authMW).Get("/students", profilesHandler.ListStudents)
		r.With(authMW).Get("/students/{id}", profilesHandler.GetStudent)
		r.With(optionalAuthMW, studentMW).Put("/students/{id}/interests", profilesHandler.ReplaceInterests)

		r.With(authMW).Get("/users/{id}", usersHandler.Get)
		r.With(authMW).Patch("/users/{id}", usersHandler.Patch)

		// Student-facing surfaces carry the route guard: anonymous callers
		// bounce to the login page with the original path preserved, callers
		// holding the wrong role bounce to the root.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMW, studentMW)
			r.Get("/likes", likesHandler.List)
			r.Post("/likes", likesHandler.Create)
			r.Delete("/likes/{id}", likesHandler.Delete)
			r.Get("/passes", passesHandler.List)
			r.Post("/passes", passesHandler.Create)
			r.Delete("/passes/{id}", passesHandler.Delete)
			r.Get("/matches", matchesHandler.List)
			r.Delete("/matches/{likeId}", matchesHandler.Withdraw)
			r.Get("/feed", feedHandler.Get)
			r.Post("/feed/reset", feedHandler.Reset)
			r.Post("/swipe", swipeHandler.Swipe)
		})

		r.With(authMW).Post("/media/avatar", mediaHandler.UploadAvatar)
		r.With(authMW).Get("/media/avatar", mediaHandler.GetAvatar)
	})
}
