package middlewares

import (
	"errors"
	"net/http"

	"github.com/GradLink/gradlink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 認証ミドルウェア。セッションCookieのトークンを検証する
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Cookieからトークンを取得
		token, err := ctx.Cookie("token")
		if err != nil || token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "認証されていません"})
			ctx.Abort()
			return
		}

		// ユーザーを取得
		user, err := authService.GetUserFromToken(ctx.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			} else {
				ctx.JSON(http.StatusUnauthorized, gin.H{"message": services.ErrInvalidToken.Error()})
			}
			ctx.Abort()
			return
		}

		// ユーザーをコンテキストに保存
		ctx.Set("user", user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware オプショナル認証ミドルウェア（Cookieがない場合もエラーを返さない）
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie("token")
		if err != nil || token == "" {
			ctx.Next()
			return
		}

		user, err := authService.GetUserFromToken(ctx.Request.Context(), token)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}
