package services

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/GradLink/gradlink_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeUserRepo テスト用のインメモリUserRepository
type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	user, ok := r.users[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email || user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	result := make(map[primitive.ObjectID]*models.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			copied := *user
			result[id] = &copied
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id string, updates bson.M) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	user, ok := r.users[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for key, value := range updates {
		switch key {
		case "bio":
			user.Bio = value.(string)
		case "skills":
			user.Skills = value.([]string)
		case "currentJob":
			user.CurrentJob = value.(string)
		case "company":
			user.Company = value.(string)
		case "location":
			user.Location = value.(string)
		case "school":
			user.School = value.(string)
		case "department":
			user.Department = value.(string)
		case "graduationYear":
			user.GraduationYear = value.(int)
		case "phone":
			user.Phone = value.(string)
		case "profileImage":
			user.ProfileImage = value.(string)
		}
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Sample(ctx context.Context, size int) ([]models.PublicUser, error) {
	users := []models.PublicUser{}
	for _, user := range r.users {
		if len(users) >= size {
			break
		}
		users = append(users, publicView(user))
	}
	return users, nil
}

func (r *fakeUserRepo) SearchByName(ctx context.Context, name string) ([]models.PublicUser, error) {
	users := []models.PublicUser{}
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Name), strings.ToLower(name)) {
			users = append(users, publicView(user))
		}
	}
	return users, nil
}

func publicView(user *models.User) models.PublicUser {
	return models.PublicUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		Department:   user.Department,
		CurrentJob:   user.CurrentJob,
		Location:     user.Location,
	}
}

// fakePostRepo テスト用のインメモリPostRepository
type fakePostRepo struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*models.Post)}
}

// seed 投稿を直接登録する（作成時刻を制御するため）
func (r *fakePostRepo) seed(post *models.Post) {
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.ID] = post
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Images == nil {
		post.Images = []string{}
	}
	if post.Videos == nil {
		post.Videos = []string{}
	}
	post.Likes = []primitive.ObjectID{}
	post.Comments = []models.Comment{}
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	post, ok := r.posts[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *post
	return &copied, nil
}

// sorted 新しい順（createdAt降順、_id降順）に並べた全投稿
func (r *fakePostRepo) sorted() []*models.Post {
	posts := make([]*models.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return bytes.Compare(posts[i].ID[:], posts[j].ID[:]) > 0
	})
	return posts
}

func (r *fakePostRepo) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	result := []models.Post{}
	for _, post := range r.sorted() {
		if len(result) >= limit {
			break
		}
		result = append(result, *post)
	}
	return result, nil
}

func (r *fakePostRepo) ListOlderThan(ctx context.Context, createdAt time.Time, cursorID primitive.ObjectID, limit int) ([]models.Post, error) {
	result := []models.Post{}
	for _, post := range r.sorted() {
		if len(result) >= limit {
			break
		}
		older := post.CreatedAt.Before(createdAt) ||
			(post.CreatedAt.Equal(createdAt) && bytes.Compare(post.ID[:], cursorID[:]) < 0)
		if older {
			result = append(result, *post)
		}
	}
	return result, nil
}

func (r *fakePostRepo) AddLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	post, ok := r.posts[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if !post.HasLiked(userID) {
		post.Likes = append(post.Likes, userID)
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) RemoveLike(ctx context.Context, postID string, userID primitive.ObjectID) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	post, ok := r.posts[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	likes := post.Likes[:0]
	for _, id := range post.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	post.Likes = likes
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) PushComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	post, ok := r.posts[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	post.Comments = append(post.Comments, comment)
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	var count int64
	for _, post := range r.posts {
		if post.Author == authorID {
			count++
		}
	}
	return count, nil
}
