package controllers

import (
	"errors"
	"net/http"

	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ProfileController プロフィールに関するコントローラー
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController ProfileControllerを作成
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// ProfileDataRequest プロフィール取得リクエスト
type ProfileDataRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// UpdateProfileRequest プロフィール更新リクエスト。
// userId以外のフィールドは任意で、空値は「変更なし」として扱う
type UpdateProfileRequest struct {
	UserID string `json:"userId" binding:"required"`
	models.ProfileUpdate
}

// GetProfileData プロフィールと投稿数を取得
func (c *ProfileController) GetProfileData(ctx *gin.Context) {
	var req ProfileDataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "userIdは必須です"})
		return
	}

	user, postCount, err := c.profileService.GetProfile(ctx.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"user":      user,
		"postCount": postCount,
	})
}

// UpdateProfile プロフィールを部分更新
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "userIdは必須です"})
		return
	}

	user, err := c.profileService.UpdateProfile(ctx.Request.Context(), req.UserID, req.ProfileUpdate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBioTooLong):
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "サーバーエラーが発生しました"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "プロフィールを更新しました",
		"user":    user,
	})
}
