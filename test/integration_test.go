package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"conduit-api/handlers"
	"conduit-api/middleware"
	"conduit-api/models"
	"conduit-api/repositories"
	"conduit-api/services"
)

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	token  string
	userID uint
}

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

func (suite *IntegrationTestSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", "test-secret")

	dsn := "host=localhost port=5432 user=myuser password=mypassword dbname=conduit_test_db sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		suite.T().Fatal("Failed to connect to test database:", err)
	}

	suite.db = db

	if err := RunSQLFile(db, "../migration/init.sql"); err != nil {
		suite.T().Fatal("Failed to run migrations:", err)
	}

	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	userRepo := repositories.NewUserRepository(suite.db)
	profileRepo := repositories.NewProfileRepository(suite.db)
	articleRepo := repositories.NewArticleRepository(suite.db)
	tagRepo := repositories.NewTagRepository(suite.db)
	commentRepo := repositories.NewCommentRepository(suite.db)

	authService := services.NewAuthService(userRepo, profileRepo)
	articleService := services.NewArticleService(articleRepo, tagRepo, profileRepo)
	tagService := services.NewTagService(tagRepo, articleRepo)
	profileService := services.NewProfileService(profileRepo, articleRepo)
	commentService := services.NewCommentService(commentRepo, articleRepo)

	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	tagHandler := handlers.NewTagHandler(tagService)
	profileHandler := handlers.NewProfileHandler(profileService)
	commentHandler := handlers.NewCommentHandler(commentService)

	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthMiddleware(), authHandler.Logout)
		}

		user := v1.Group("/user")
		user.Use(middleware.AuthMiddleware())
		{
			user.GET("", authHandler.GetCurrentUser)
			user.PUT("", authHandler.UpdateUser)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:username", middleware.OptionalAuthMiddleware(), profileHandler.GetProfile)
			profiles.POST("/:username/follow", middleware.AuthMiddleware(), profileHandler.Follow)
			profiles.DELETE("/:username/follow", middleware.AuthMiddleware(), profileHandler.Unfollow)
		}

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

		v1.GET("/tags", tagHandler.GetTags)
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	suite.db.Exec("DROP TABLE IF EXISTS profile_favorites")
	suite.db.Exec("DROP TABLE IF EXISTS profile_follows")
	suite.db.Exec("DROP TABLE IF EXISTS article_tags")
	suite.db.Exec("DROP TABLE IF EXISTS comments")
	suite.db.Exec("DROP TABLE IF EXISTS tags")
	suite.db.Exec("DROP TABLE IF EXISTS articles")
	suite.db.Exec("DROP TABLE IF EXISTS profiles")
	suite.db.Exec("DROP TABLE IF EXISTS users")
}

func (suite *IntegrationTestSuite) SetupTest() {
	suite.db.Exec("TRUNCATE TABLE profile_favorites RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE profile_follows RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE article_tags RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE comments RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE tags RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE articles RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE profiles RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE users RESTART IDENTITY CASCADE")

	suite.token, suite.userID = suite.registerUser("testuser", "test@example.com")
}

func (suite *IntegrationTestSuite) registerUser(username, email string) (string, uint) {
	payload := models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password123",
	}

	w := suite.doJSON("POST", "/api/v1/auth/register", "", payload)
	suite.Equal(http.StatusOK, w.Code)

	var response models.AuthResponse
	suite.decodeData(w, &response)

	return response.Token, response.User.ID
}

func (suite *IntegrationTestSuite) doJSON(method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decodeData(w *httptest.ResponseRecorder, out interface{}) {
	var env envelope
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &env))
	suite.NoError(json.Unmarshal(env.Data, out))
}

func (suite *IntegrationTestSuite) createArticle(token, title string, tags []string) models.Article {
	payload := models.CreateArticleRequest{
		Title:       title,
		Description: "a short description",
		Body:        "the article body",
		Tags:        tags,
	}

	w := suite.doJSON("POST", "/api/v1/articles", token, payload)
	suite.Equal(http.StatusCreated, w.Code)

	var article models.Article
	suite.decodeData(w, &article)
	return article
}

func (suite *IntegrationTestSuite) TestAuthFlow() {
	loginPayload := models.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	}

	w := suite.doJSON("POST", "/api/v1/auth/login", "", loginPayload)
	suite.Equal(http.StatusOK, w.Code)

	var response models.AuthResponse
	suite.decodeData(w, &response)

	suite.NotEmpty(response.Token)
	suite.Equal("testuser", response.User.Username)

	// Wrong password is a 401, not a 400.
	loginPayload.Password = "wrong-password"
	w = suite.doJSON("POST", "/api/v1/auth/login", "", loginPayload)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestCurrentUserAndSettings() {
	w := suite.doJSON("GET", "/api/v1/user", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var user models.User
	suite.decodeData(w, &user)
	suite.Equal("testuser", user.Username)

	update := models.UpdateUserRequest{
		Bio:   "I write things",
		Image: "https://example.com/avatar.png",
	}
	w = suite.doJSON("PUT", "/api/v1/user", suite.token, update)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON("GET", "/api/v1/profiles/testuser", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var profile models.ProfileResponse
	suite.decodeData(w, &profile)
	suite.Equal("I write things", profile.Bio)
	suite.False(profile.Following)
}

func (suite *IntegrationTestSuite) TestCreateArticleAssignsStableSlug() {
	article := suite.createArticle(suite.token, "Hello, World!", nil)

	suite.True(strings.HasPrefix(article.Slug, "hello-world-"))
	suite.LessOrEqual(len(article.Slug), 255)

	// The suffix is a canonical 128-bit token.
	_, err := uuid.Parse(strings.TrimPrefix(article.Slug, "hello-world-"))
	suite.NoError(err)

	// Editing the title must not move the URL.
	update := models.UpdateArticleRequest{Title: "A Brand New Title"}
	w := suite.doJSON("PUT", "/api/v1/articles/"+article.Slug, suite.token, update)
	suite.Equal(http.StatusOK, w.Code)

	var updated models.Article
	suite.decodeData(w, &updated)
	suite.Equal(article.Slug, updated.Slug)
	suite.Equal("A Brand New Title", updated.Title)

	w = suite.doJSON("GET", "/api/v1/articles/"+article.Slug, "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestTagAddIsKeyBased() {
	article := suite.createArticle(suite.token, "Tagged Article", nil)

	w := suite.doJSON("POST", "/api/v1/articles/"+article.Slug+"/tags", suite.token, models.TagRequest{Name: "Web Dev"})
	suite.Equal(http.StatusOK, w.Code)

	// A key-equivalent text hits the same record, association stays single.
	w = suite.doJSON("POST", "/api/v1/articles/"+article.Slug+"/tags", suite.token, models.TagRequest{Name: "web dev"})
	suite.Equal(http.StatusOK, w.Code)

	var tagged models.Article
	suite.decodeData(w, &tagged)
	suite.Len(tagged.Tags, 1)
	suite.Equal("Web Dev", tagged.Tags[0].Name)
	suite.Equal("web-dev", tagged.Tags[0].Slug)

	var tagCount int64
	suite.db.Model(&models.Tag{}).Count(&tagCount)
	suite.Equal(int64(1), tagCount)
}

func (suite *IntegrationTestSuite) TestTagRemoveIsExactTextBased() {
	article := suite.createArticle(suite.token, "Tagged Article", []string{"Web Dev"})

	// Removal matches the stored display text verbatim, so a case
	// variation is not found even though the keys match.
	w := suite.doJSON("DELETE", "/api/v1/articles/"+article.Slug+"/tags", suite.token, models.TagRequest{Name: "web dev"})
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.doJSON("DELETE", "/api/v1/articles/"+article.Slug+"/tags", suite.token, models.TagRequest{Name: "Web Dev"})
	suite.Equal(http.StatusOK, w.Code)

	var untagged models.Article
	suite.decodeData(w, &untagged)
	suite.Empty(untagged.Tags)

	// The tag record survives as an orphan.
	var tagCount int64
	suite.db.Model(&models.Tag{}).Count(&tagCount)
	suite.Equal(int64(1), tagCount)
}

func (suite *IntegrationTestSuite) TestFollowUnfollow() {
	otherToken, _ := suite.registerUser("author", "author@example.com")

	w := suite.doJSON("POST", "/api/v1/profiles/author/follow", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var profile models.ProfileResponse
	suite.decodeData(w, &profile)
	suite.True(profile.Following)

	// Re-following leaves exactly one edge.
	w = suite.doJSON("POST", "/api/v1/profiles/author/follow", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var edgeCount int64
	suite.db.Model(&models.Follow{}).Count(&edgeCount)
	suite.Equal(int64(1), edgeCount)

	// The edge is directed: the target does not follow back.
	w = suite.doJSON("GET", "/api/v1/profiles/testuser", otherToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decodeData(w, &profile)
	suite.False(profile.Following)

	w = suite.doJSON("DELETE", "/api/v1/profiles/author/follow", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decodeData(w, &profile)
	suite.False(profile.Following)

	suite.db.Model(&models.Follow{}).Count(&edgeCount)
	suite.Equal(int64(0), edgeCount)
}

func (suite *IntegrationTestSuite) TestFavoriteUnfavorite() {
	article := suite.createArticle(suite.token, "Favorite Me", nil)

	w := suite.doJSON("POST", "/api/v1/articles/"+article.Slug+"/favorite", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var favorited models.Article
	suite.decodeData(w, &favorited)
	suite.Equal(int64(1), favorited.FavoritesCount)

	// Favoriting twice is a no-op.
	w = suite.doJSON("POST", "/api/v1/articles/"+article.Slug+"/favorite", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decodeData(w, &favorited)
	suite.Equal(int64(1), favorited.FavoritesCount)

	w = suite.doJSON("DELETE", "/api/v1/articles/"+article.Slug+"/favorite", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decodeData(w, &favorited)
	suite.Equal(int64(0), favorited.FavoritesCount)
}

func (suite *IntegrationTestSuite) TestFeedShowsFollowedAuthors() {
	authorToken, _ := suite.registerUser("author", "author@example.com")
	suite.createArticle(authorToken, "From the Author", nil)
	suite.createArticle(suite.token, "My Own Article", nil)

	// Empty before following anyone.
	w := suite.doJSON("GET", "/api/v1/articles/feed", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var feed struct {
		Articles []models.Article `json:"articles"`
	}
	suite.decodeData(w, &feed)
	suite.Empty(feed.Articles)

	w = suite.doJSON("POST", "/api/v1/profiles/author/follow", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON("GET", "/api/v1/articles/feed", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decodeData(w, &feed)
	suite.Len(feed.Articles, 1)
	suite.Equal("From the Author", feed.Articles[0].Title)
}

func (suite *IntegrationTestSuite) TestCommentLifecycle() {
	article := suite.createArticle(suite.token, "Commented Article", nil)

	w := suite.doJSON("POST", "/api/v1/articles/"+article.Slug+"/comments", suite.token, models.CreateCommentRequest{Body: "Nice one"})
	suite.Equal(http.StatusCreated, w.Code)

	var comment models.Comment
	suite.decodeData(w, &comment)
	suite.Equal("Nice one", comment.Body)
	suite.Equal(suite.userID, comment.AuthorID)

	w = suite.doJSON("GET", "/api/v1/articles/"+article.Slug+"/comments", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var comments []models.Comment
	suite.decodeData(w, &comments)
	suite.Len(comments, 1)

	w = suite.doJSON("DELETE", fmt.Sprintf("/api/v1/articles/%s/comments/%d", article.Slug, comment.ID), suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON("GET", "/api/v1/articles/"+article.Slug+"/comments", "", nil)
	suite.decodeData(w, &comments)
	suite.Empty(comments)
}

func (suite *IntegrationTestSuite) TestDeleteArticleCascades() {
	article := suite.createArticle(suite.token, "Doomed Article", []string{"golang"})

	w := suite.doJSON("POST", "/api/v1/articles/"+article.Slug+"/comments", suite.token, models.CreateCommentRequest{Body: "So long"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.doJSON("POST", "/api/v1/articles/"+article.Slug+"/favorite", suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON("DELETE", "/api/v1/articles/"+article.Slug, suite.token, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON("GET", "/api/v1/articles/"+article.Slug, "", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	var commentCount, favoriteCount int64
	suite.db.Model(&models.Comment{}).Where("article_id = ?", article.ID).Count(&commentCount)
	suite.db.Model(&models.Favorite{}).Where("article_id = ?", article.ID).Count(&favoriteCount)
	suite.Equal(int64(0), commentCount)
	suite.Equal(int64(0), favoriteCount)
}

func (suite *IntegrationTestSuite) TestNonOwnerMutationIsSilentlyDenied() {
	article := suite.createArticle(suite.token, "Protected Article", nil)

	intruderToken, _ := suite.registerUser("intruder", "intruder@example.com")

	// No error body, just a redirect back to the read view.
	w := suite.doJSON("DELETE", "/api/v1/articles/"+article.Slug, intruderToken, nil)
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/api/v1/articles/"+article.Slug, w.Header().Get("Location"))

	update := models.UpdateArticleRequest{Title: "Hijacked"}
	w = suite.doJSON("PUT", "/api/v1/articles/"+article.Slug, intruderToken, update)
	suite.Equal(http.StatusSeeOther, w.Code)

	// The article is untouched.
	w = suite.doJSON("GET", "/api/v1/articles/"+article.Slug, "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var unchanged models.Article
	suite.decodeData(w, &unchanged)
	suite.Equal("Protected Article", unchanged.Title)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func RunSQLFile(db *gorm.DB, filepath string) error {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return err
	}
	return db.Exec(string(content)).Error
}
