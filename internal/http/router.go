package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mrlokans/homelibrary/internal/demo"
)

// NewRouter creates the HTTP handler with all endpoints.
// The gin engine is wrapped in a CORS handler so preflight requests are
// answered before routing.
func NewRouter(cfg RouterConfig) http.Handler {
	registerValidators()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(demo.NewMiddleware(cfg.DemoMode).Handler())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	booksController := NewBooksController(cfg.Books)
	journalsController := NewJournalsController(cfg.Journals)
	ratingsController := NewRatingsController(cfg.Ratings)
	statusesController := NewStatusesController(cfg.Statuses)

	books := router.Group("/books")
	{
		books.GET("", booksController.List)
		books.POST("", booksController.Create)
		books.GET("/:id", booksController.Get)
		books.PUT("/:id", booksController.Update)
		books.DELETE("/:id", booksController.Delete)

		books.GET("/:id/journals", journalsController.ListForBook)
		books.POST("/:id/journals", journalsController.Create)
		books.PUT("/:id/journals/:journal_id", journalsController.Update)

		books.GET("/:id/ratings", ratingsController.Get)
		books.POST("/:id/ratings", ratingsController.Upsert)
		books.DELETE("/:id/ratings", ratingsController.Delete)

		books.GET("/:id/status", statusesController.Get)
		books.POST("/:id/status", statusesController.Upsert)
		books.DELETE("/:id/status", statusesController.Delete)
	}

	router.GET("/journals", journalsController.ListAll)
	router.GET("/journals/:id", journalsController.Get)

	registerLabelRoutes(router.Group("/tags"), NewLabelsController(cfg.Tags))
	registerLabelRoutes(router.Group("/genres"), NewLabelsController(cfg.Genres))

	usersController := NewUsersController(cfg.Users)
	users := router.Group("/users")
	{
		users.GET("", usersController.List)
		users.POST("", usersController.Create)
		users.POST("/select", usersController.Select)
		users.PUT("/:id", usersController.Update)
	}

	listsController := NewListsController(cfg.Lists)
	lists := router.Group("/lists")
	{
		lists.GET("", listsController.List)
		lists.POST("", listsController.Create)
		lists.GET("/:id", listsController.Get)
		lists.PUT("/:id", listsController.Update)
		lists.DELETE("/:id", listsController.Delete)
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", HeaderCurrentUser, HeaderRequestID},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	})(router)
}

func registerLabelRoutes(group *gin.RouterGroup, controller *LabelsController) {
	group.GET("", controller.List)
	group.POST("", controller.Create)
	group.GET("/:id", controller.Get)
	group.PUT("/:id", controller.Update)
	group.DELETE("/:id", controller.Delete)
}
