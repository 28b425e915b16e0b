package main

import (
	"net/http"
	"os"

	"conduit-api/config"
	"conduit-api/handlers"
	"conduit-api/middleware"
	"conduit-api/repositories"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	// Initialize database
	db := config.InitDB(log)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, profileRepo)
	articleService := services.NewArticleService(articleRepo, tagRepo, profileRepo)
	tagService := services.NewTagService(tagRepo, articleRepo)
	profileService := services.NewProfileService(profileRepo, articleRepo)
	commentService := services.NewCommentService(commentRepo, articleRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	tagHandler := handlers.NewTagHandler(tagService)
	profileHandler := handlers.NewProfileHandler(profileService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthMiddleware(), authHandler.Logout)
		}

		// Current account
		user := v1.Group("/user")
		user.Use(middleware.AuthMiddleware())
		{
			user.GET("", authHandler.GetCurrentUser)
			user.PUT("", authHandler.UpdateUser)
		}

		// Profiles
		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:username", middleware.OptionalAuthMiddleware(), profileHandler.GetProfile)
			profiles.POST("/:username/follow", middleware.AuthMiddleware(), profileHandler.Follow)
			profiles.DELETE("/:username/follow", middleware.AuthMiddleware(), profileHandler.Unfollow)
		}

		// Articles
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/feed", middleware.AuthMiddleware(), articleHandler.GetFeed)
			articles.GET("/:slug", articleHandler.GetArticle)
			articles.GET("/:slug/comments", commentHandler.GetComments)

			protected := articles.Group("")
			protected.Use(middleware.AuthMiddleware())
			{
				protected.POST("", articleHandler.CreateArticle)
				protected.PUT("/:slug", articleHandler.UpdateArticle)
				protected.DELETE("/:slug", articleHandler.DeleteArticle)
				protected.POST("/:slug/tags", tagHandler.AddTag)
				protected.DELETE("/:slug/tags", tagHandler.RemoveTag)
				protected.POST("/:slug/favorite", profileHandler.Favorite)
				protected.DELETE("/:slug/favorite", profileHandler.Unfavorite)
				protected.POST("/:slug/comments", commentHandler.CreateComment)
				protected.DELETE("/:slug/comments/:id", commentHandler.DeleteComment)
			}
		}

		// Tag catalog (public)
		v1.GET("/tags", tagHandler.GetTags)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("Server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
