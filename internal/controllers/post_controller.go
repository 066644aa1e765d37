package controllers

import (
	"errors"
	"net/http"

	"github.com/GradLink/gradlink_backend/internal/config"
	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PostController フィードと投稿に関するコントローラー
type PostController struct {
	postService    services.PostService
	commentService services.CommentService
	media          services.MediaService
	config         *config.Config
}

// NewPostController PostControllerを作成
func NewPostController(postService services.PostService, commentService services.CommentService, media services.MediaService, cfg *config.Config) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
		media:          media,
		config:         cfg,
	}
}

// FeedRequest フィード取得リクエスト（閲覧者は任意）
type FeedRequest struct {
	UserID string `json:"userId"`
}

// LikeRequest いいね設定リクエスト
type LikeRequest struct {
	UserID string `json:"userId" binding:"required"`
	PostID string `json:"postId" binding:"required"`
	Like   *bool  `json:"like" binding:"required"`
}

// AddCommentRequest コメント追加リクエスト
type AddCommentRequest struct {
	UserID  string `json:"userId" binding:"required"`
	PostID  string `json:"postId" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// AddPost 新しい投稿を作成（画像・動画はmultipartで受け取る）
func (c *PostController) AddPost(ctx *gin.Context) {
	text := ctx.PostForm("text")
	userID := ctx.PostForm("userId")
	if text == "" || userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "textとuserIdは必須です"})
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "マルチパートフォームの解析に失敗しました"})
		return
	}

	imageFiles := form.File["images"]
	videoFiles := form.File["videos"]
	if len(imageFiles) > c.config.Storage.MaxImagesPerPost || len(videoFiles) > c.config.Storage.MaxVideosPerPost {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": services.ErrTooManyFiles.Error()})
		return
	}

	images := []string{}
	for _, header := range imageFiles {
		file, err := header.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "ファイルを開けません"})
			return
		}
		name, err := c.media.SavePostImage(file, header)
		file.Close()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		images = append(images, name)
	}

	videos := []string{}
	for _, header := range videoFiles {
		file, err := header.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "ファイルを開けません"})
			return
		}
		name, err := c.media.SavePostVideo(file, header)
		file.Close()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		videos = append(videos, name)
	}

	post, err := c.postService.AddPost(ctx.Request.Context(), userID, text, images, videos)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContentTooLong):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "投稿を作成しました",
		"post":    post,
	})
}

// Feed 最新の投稿を取得
func (c *PostController) Feed(ctx *gin.Context) {
	var req FeedRequest
	_ = ctx.ShouldBindJSON(&req)

	feed, err := c.postService.Feed(ctx.Request.Context(), c.viewerID(ctx, req.UserID))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
		return
	}

	ctx.JSON(http.StatusOK, feed)
}

// MoreFeed カーソル投稿より古い投稿を取得
func (c *PostController) MoreFeed(ctx *gin.Context) {
	lastPostID := ctx.Query("lastPostId")
	if lastPostID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lastPostIdは必須です"})
		return
	}

	var req FeedRequest
	_ = ctx.ShouldBindJSON(&req)

	feed, err := c.postService.MoreFeed(ctx.Request.Context(), c.viewerID(ctx, req.UserID), lastPostID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
		return
	}

	ctx.JSON(http.StatusOK, feed)
}

// Like いいねの状態を設定
func (c *PostController) Like(ctx *gin.Context) {
	var req LikeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "userId、postId、likeは必須です"})
		return
	}

	liked, totalLikes, err := c.postService.SetLike(ctx.Request.Context(), req.UserID, req.PostID, *req.Like)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUserID):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPostNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
		}
		return
	}

	message := "いいねしました"
	if !*req.Like {
		message = "いいねを解除しました"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     message,
		"likedByUser": liked,
		"totalLikes":  totalLikes,
	})
}

// AddComment コメントを追加し、更新後のコメント一覧を新しい順で返す
func (c *PostController) AddComment(ctx *gin.Context) {
	var req AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "userId、postId、commentは必須です"})
		return
	}

	comments, err := c.commentService.AddComment(ctx.Request.Context(), req.UserID, req.PostID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyComment), errors.Is(err, services.ErrInvalidUserID):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPostNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "サーバーエラーが発生しました"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "コメントを追加しました",
		"comments": comments,
	})
}

// viewerID 閲覧者IDを決定する。リクエストで指定がなければ
// 認証済みユーザー（オプショナル認証）を使う
func (c *PostController) viewerID(ctx *gin.Context, requested string) string {
	if requested != "" {
		return requested
	}
	if u, exists := ctx.Get("user"); exists {
		if user, ok := u.(*models.User); ok {
			return user.ID.Hex()
		}
	}
	return ""
}
