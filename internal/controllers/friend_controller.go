package controllers

import (
	"net/http"
	"strings"

	"github.com/GradLink/gradlink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// FriendController ユーザー発見に関するコントローラー
type FriendController struct {
	friendService services.FriendService
}

// NewFriendController FriendControllerを作成
func NewFriendController(friendService services.FriendService) *FriendController {
	return &FriendController{
		friendService: friendService,
	}
}

// RandomUsers ランダムに最大10人のユーザーを取得
func (c *FriendController) RandomUsers(ctx *gin.Context) {
	users, err := c.friendService.RandomUsers(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

// SearchByName 名前の部分一致でユーザーを検索
func (c *FriendController) SearchByName(ctx *gin.Context) {
	name := ctx.Query("name")
	if strings.TrimSpace(name) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nameクエリは必須です"})
		return
	}

	users, err := c.friendService.SearchByName(ctx.Request.Context(), name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}
