package controllers

import (
	"errors"
	"net/http"

	"github.com/GradLink/gradlink_backend/internal/config"
	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserController 認証とアカウントに関するコントローラー
type UserController struct {
	authService    services.AuthService
	profileService services.ProfileService
	config         *config.Config
}

// NewUserController UserControllerを作成
func NewUserController(authService services.AuthService, profileService services.ProfileService, cfg *config.Config) *UserController {
	return &UserController{
		authService:    authService,
		profileService: profileService,
		config:         cfg,
	}
}

// SignupRequest ユーザー登録リクエスト
type SignupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// Signup ユーザー登録
func (c *UserController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	_, err := c.authService.Signup(ctx.Request.Context(), req.FullName, req.Phone, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailOrPhoneTaken) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "ユーザー登録が完了しました",
	})
}

// Login ログイン。成功時はセッションCookieを設定する
func (c *UserController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, expiry, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
		return
	}

	// HTTP-only Cookieとしてトークンを設定
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie("token", token, int(expiry.Seconds()), "/", "", c.config.IsProduction(), true)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ログインしました",
		"user":    user.Summary(),
	})
}

// GetUser 認証ミドルウェアが解決した現在のユーザーを返す
func (c *UserController) GetUser(ctx *gin.Context) {
	u, exists := ctx.Get("user")
	user, ok := u.(*models.User)
	if !exists || !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "認証されていません"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "認証済みです",
		"user":    user.Summary(),
	})
}

// Logout セッションCookieを削除する（冪等）
func (c *UserController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie("token", "", -1, "/", "", c.config.IsProduction(), true)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ログアウトしました",
	})
}

// UpdateProfileImage プロフィール画像を更新
func (c *UserController) UpdateProfileImage(ctx *gin.Context) {
	userID := ctx.PostForm("userId")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "userIdは必須です"})
		return
	}

	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "画像ファイルは必須です"})
		return
	}
	defer file.Close()

	user, err := c.profileService.UpdateProfileImage(ctx.Request.Context(), userID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		case errors.Is(err, services.ErrFileTooLarge), errors.Is(err, services.ErrInvalidFileType):
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "プロフィール画像を更新しました",
		"user":    user,
	})
}
