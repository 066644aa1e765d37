package services

import (
	"context"
	"unicode/utf8"

	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// feedLimit 1ページあたりの投稿数
const feedLimit = 10

// maxContentLength 投稿本文の最大文字数
const maxContentLength = 1000

// PostService フィードと投稿に関するサービスインターフェース
type PostService interface {
	AddPost(ctx context.Context, authorID, text string, images, videos []string) (*models.Post, error)
	Feed(ctx context.Context, viewerID string) ([]models.FeedPost, error)
	MoreFeed(ctx context.Context, viewerID, lastPostID string) ([]models.FeedPost, error)
	SetLike(ctx context.Context, userID, postID string, like bool) (bool, int, error)
}

// postService PostServiceの実装
type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService PostServiceを作成
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// AddPost 新しい投稿を作成
func (s *postService) AddPost(ctx context.Context, authorID, text string, images, videos []string) (*models.Post, error) {
	if utf8.RuneCountInString(text) > maxContentLength {
		return nil, ErrContentTooLong
	}

	// 作者が存在するか確認
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	post := &models.Post{
		Author:  author.ID,
		Content: text,
		Images:  images,
		Videos:  videos,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Feed 最新の投稿を新しい順に取得
func (s *postService) Feed(ctx context.Context, viewerID string) ([]models.FeedPost, error) {
	posts, err := s.postRepo.ListRecent(ctx, feedLimit)
	if err != nil {
		return nil, err
	}

	return s.buildFeed(ctx, posts, viewerID)
}

// MoreFeed カーソル投稿より古い投稿を取得（作成時刻キーのカーソルページネーション）
func (s *postService) MoreFeed(ctx context.Context, viewerID, lastPostID string) ([]models.FeedPost, error) {
	lastPost, err := s.postRepo.FindByID(ctx, lastPostID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	posts, err := s.postRepo.ListOlderThan(ctx, lastPost.CreatedAt, lastPost.ID, feedLimit)
	if err != nil {
		return nil, err
	}

	return s.buildFeed(ctx, posts, viewerID)
}

// SetLike いいねの状態を設定する。すでに目的の状態であれば何もしない（冪等）。
// 最終的ないいね状態と合計数を返す
func (s *postService) SetLike(ctx context.Context, userID, postID string, like bool) (bool, int, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, 0, ErrInvalidUserID
	}

	var post *models.Post
	if like {
		post, err = s.postRepo.AddLike(ctx, postID, uid)
	} else {
		post, err = s.postRepo.RemoveLike(ctx, postID, uid)
	}
	if err != nil {
		return false, 0, ErrPostNotFound
	}

	return post.HasLiked(uid), len(post.Likes), nil
}

// buildFeed 投稿の作者とコメントユーザーを展開し、閲覧者のいいね状態を付与する
func (s *postService) buildFeed(ctx context.Context, posts []models.Post, viewerID string) ([]models.FeedPost, error) {
	// 展開が必要なユーザーIDを収集
	idSet := make(map[primitive.ObjectID]struct{})
	for _, post := range posts {
		idSet[post.Author] = struct{}{}
		for _, c := range post.Comments {
			idSet[c.User] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 閲覧者ID（未ログインまたは不正な場合はいいね判定なし）
	viewer, viewerErr := primitive.ObjectIDFromHex(viewerID)
	hasViewer := viewerID != "" && viewerErr == nil

	feed := make([]models.FeedPost, 0, len(posts))
	for _, post := range posts {
		item := models.FeedPost{
			ID:         post.ID,
			Author:     users[post.Author],
			Content:    post.Content,
			Images:     post.Images,
			Videos:     post.Videos,
			Likes:      post.Likes,
			Comments:   commentViews(post.Comments, users),
			CreatedAt:  post.CreatedAt,
			TotalLikes: len(post.Likes),
		}
		if hasViewer {
			item.LikedByUser = post.HasLiked(viewer)
		}
		feed = append(feed, item)
	}

	return feed, nil
}

// commentViews コメントを新しい順に並べ、ユーザー情報を展開する
func commentViews(comments []models.Comment, users map[primitive.ObjectID]*models.User) []models.CommentView {
	views := make([]models.CommentView, 0, len(comments))
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		view := models.CommentView{
			Comment:   c.Comment,
			CreatedAt: c.CreatedAt,
		}
		if u, ok := users[c.User]; ok {
			view.User = &models.CommentAuthor{
				ID:           u.ID,
				Name:         u.Name,
				Email:        u.Email,
				ProfileImage: u.ProfileImage,
			}
		}
		views = append(views, view)
	}
	return views
}
