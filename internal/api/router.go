package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Deepender31/artwork-backend/docs"
	"github.com/Deepender31/artwork-backend/internal/api/handler"
	"github.com/Deepender31/artwork-backend/internal/api/middleware"
	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

const defaultBodyLimit = "6M"

// Dependencies carries everything NewRouter wires into the routes.
type Dependencies struct {
	Auth     ports.AuthService
	Artworks ports.ArtworkService
	Comments ports.CommentService
	Orders   ports.OrderService
	Query    ports.GalleryQueryService

	// HealthChecks maps a dependency name to its readiness probe.
	HealthChecks map[string]handler.Check

	JWTSecret   string
	CORSOrigins []string
	// BodyLimit caps request bodies, e.g. "6M". It must leave room for the
	// largest accepted upload plus the multipart overhead.
	BodyLimit string
	// UploadsDir is served under /uploads when images are stored on disk.
	UploadsDir string

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddleware("artgallery"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	artworkHandler := handler.NewArtworkHandler(deps.Artworks, deps.Query)
	commentHandler := handler.NewCommentHandler(deps.Comments)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	userHandler := handler.NewUserHandler(deps.Query)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	requireAuth := middleware.Auth(deps.JWTSecret)
	requireArtist := middleware.RBAC(string(domain.RoleArtist))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Artwork routes ---
	artworks := e.Group("/artwork")
	artworks.GET("", artworkHandler.List)
	artworks.GET("/category", artworkHandler.ListByCategory)
	artworks.GET("/most-liked", artworkHandler.MostLiked)
	artworks.GET("/artist/:artistId", artworkHandler.ListByArtist)
	artworks.GET("/liked/:userId", artworkHandler.ListLikedBy)
	artworks.GET("/:id", artworkHandler.Get)
	artworks.POST("", artworkHandler.Create, requireAuth, requireArtist)
	artworks.PUT("/:id", artworkHandler.Update, requireAuth)
	artworks.DELETE("/:id", artworkHandler.Delete, requireAuth)
	artworks.POST("/:id/like", artworkHandler.Like, requireAuth)
	artworks.POST("/:id/unlike", artworkHandler.Unlike, requireAuth)
	artworks.POST("/:id/comment", commentHandler.Add, requireAuth)
	artworks.DELETE("/:id/comments/:commentId", commentHandler.Delete, requireAuth)

	// --- Order routes ---
	orders := e.Group("/orders")
	orders.POST("/create", orderHandler.Create, requireAuth)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus, requireAuth)
	orders.GET("/user/:userId", orderHandler.ListByBuyer)
	orders.GET("/artist/:artistId", orderHandler.ListByArtist)

	// --- User routes ---
	e.GET("/user", userHandler.ListArtists)
	e.GET("/user/:userId", userHandler.Profile)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if deps.UploadsDir != "" {
		e.Static("/uploads", deps.UploadsDir)
	}

	return e
}
