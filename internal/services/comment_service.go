package services

import (
	"context"
	"strings"
	"time"

	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService コメントに関するサービスインターフェース
type CommentService interface {
	AddComment(ctx context.Context, userID, postID, text string) ([]models.CommentView, error)
}

// commentService CommentServiceの実装
type commentService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewCommentService CommentServiceを作成
func NewCommentService(postRepo repository.PostRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// AddComment コメントを追記し、更新後のコメント一覧を新しい順で返す
func (s *commentService) AddComment(ctx context.Context, userID, postID, text string) ([]models.CommentView, error) {
	// コンテンツのバリデーション
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	comment := models.Comment{
		User:      uid,
		Comment:   text,
		CreatedAt: time.Now(),
	}

	post, err := s.postRepo.PushComment(ctx, postID, comment)
	if err != nil {
		return nil, ErrPostNotFound
	}

	// コメントユーザーを展開
	idSet := make(map[primitive.ObjectID]struct{})
	for _, c := range post.Comments {
		idSet[c.User] = struct{}{}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return commentViews(post.Comments, users), nil
}
