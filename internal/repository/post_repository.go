package repository

import (
	"context"
	"time"

	"github.com/GradLink/gradlink_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository 投稿に関するデータベース操作を行うインターフェース
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]models.Post, error)
	ListOlderThan(ctx context.Context, createdAt time.Time, cursorID primitive.ObjectID, limit int) ([]models.Post, error)
	AddLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error)
	RemoveLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error)
	PushComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error)
	CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)
}

// postRepository PostRepositoryの実装
type postRepository struct {
	col *mongo.Collection
}

// NewPostRepository PostRepositoryを作成
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{col: db.Collection("posts")}
}

// feedSort 新しい順。createdAtが同時刻の場合は_idで順序を固定する
var feedSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// Create 新しい投稿を作成
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.CreatedAt = time.Now()
	if post.Images == nil {
		post.Images = []string{}
	}
	if post.Videos == nil {
		post.Videos = []string{}
	}
	post.Likes = []primitive.ObjectID{}
	post.Comments = []models.Comment{}

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID IDで投稿を検索
func (r *postRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var post models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListRecent 最新の投稿を取得
func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	opts := options.Find().SetSort(feedSort).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListOlderThan カーソル投稿より古い投稿を取得。
// 作成時刻が同一の投稿は_idの降順で続きから返す
func (r *postRepository) ListOlderThan(ctx context.Context, createdAt time.Time, cursorID primitive.ObjectID, limit int) ([]models.Post, error) {
	filter := bson.M{"$or": []bson.M{
		{"createdAt": bson.M{"$lt": createdAt}},
		{"createdAt": createdAt, "_id": bson.M{"$lt": cursorID}},
	}}
	opts := options.Find().SetSort(feedSort).SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AddLike いいねを追加し、更新後の投稿を返す。
// $addToSetにより同一ユーザーの重複は発生しない（冪等）
func (r *postRepository) AddLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error) {
	return r.updateLikes(ctx, postID, bson.M{"$addToSet": bson.M{"likes": userID}})
}

// RemoveLike いいねを削除し、更新後の投稿を返す（冪等）
func (r *postRepository) RemoveLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error) {
	return r.updateLikes(ctx, postID, bson.M{"$pull": bson.M{"likes": userID}})
}

func (r *postRepository) updateLikes(ctx context.Context, postID string, update bson.M) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// PushComment コメントを追記し、更新後の投稿を返す
func (r *postRepository) PushComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$push": bson.M{"comments": comment}}
	var post models.Post
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CountByAuthor ユーザーの投稿数を取得
func (r *postRepository) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"author": authorID})
}
