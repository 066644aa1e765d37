package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/GradLink/gradlink_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository ユーザーに関するデータベース操作を行うインターフェース
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error)
	FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	UpdateFields(ctx context.Context, id string, updates bson.M) (*models.User, error)
	Sample(ctx context.Context, size int) ([]models.PublicUser, error)
	SearchByName(ctx context.Context, name string) ([]models.PublicUser, error)
}

// userRepository UserRepositoryの実装
type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository UserRepositoryを作成
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection("users")}
}

// publicProjection 公開フィールドのみの射影
var publicProjection = bson.M{
	"name":         1,
	"email":        1,
	"profileImage": 1,
	"department":   1,
	"currentJob":   1,
	"location":     1,
}

// Create 新しいユーザーを作成
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID IDでユーザーを検索
func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail メールアドレスでユーザーを検索
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrPhone メールアドレスまたは電話番号でユーザーを検索（重複チェック用）
func (r *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	filter := bson.M{"$or": []bson.M{{"email": email}, {"phone": phone}}}
	var user models.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindManyByIDs 複数IDでユーザーをまとめて取得（フィードの展開用）
func (r *userRepository) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	result := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = &users[i]
	}
	return result, nil
}

// UpdateFields 指定されたフィールドのみを更新し、更新後のユーザーを返す
func (r *userRepository) UpdateFields(ctx context.Context, id string, updates bson.M) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": updates}, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Sample ランダムにユーザーを抽出
func (r *userRepository) Sample(ctx context.Context, size int) ([]models.PublicUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": size}}},
		{{Key: "$project", Value: publicProjection}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.PublicUser{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchByName 名前の部分一致でユーザーを検索（大文字小文字を区別しない）
func (r *userRepository) SearchByName(ctx context.Context, name string) ([]models.PublicUser, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}}
	opts := options.Find().SetProjection(publicProjection)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.PublicUser{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
