package models

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateUserRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

type CreateArticleRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description"`
	Body        string   `json:"body" binding:"required"`
	Tags        []string `json:"tags"`
}

type UpdateArticleRequest struct {
	Title       string `json:"title" binding:"omitempty,min=1,max=255"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

type TagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type ProfileResponse struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

type ArticleListParams struct {
	Tag       string `form:"tag"`
	Author    string `form:"author"`
	Favorited string `form:"favorited"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
}
