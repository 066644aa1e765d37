package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 投稿モデル。いいねとコメントは投稿ドキュメントに埋め込む
type Post struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Author    primitive.ObjectID   `json:"author" bson:"author"`
	Content   string               `json:"content" bson:"content"`
	Images    []string             `json:"images" bson:"images"`
	Videos    []string             `json:"videos" bson:"videos"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}

// Comment 投稿に埋め込まれるコメント。作成後の編集・削除はない
type Comment struct {
	User      primitive.ObjectID `json:"user" bson:"user"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// HasLiked ユーザーがいいね済みか確認
func (p *Post) HasLiked(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentView コメント表示用（ユーザー情報を展開済み）
type CommentView struct {
	User      *CommentAuthor `json:"user,omitempty"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"createdAt"`
}

// FeedPost フィード表示用の投稿（作者・コメントユーザーを展開済み）
type FeedPost struct {
	ID          primitive.ObjectID   `json:"id"`
	Author      *User                `json:"author"`
	Content     string               `json:"content"`
	Images      []string             `json:"images"`
	Videos      []string             `json:"videos"`
	Likes       []primitive.ObjectID `json:"likes"`
	Comments    []CommentView        `json:"comments"`
	CreatedAt   time.Time            `json:"createdAt"`
	LikedByUser bool                 `json:"likedByUser"`
	TotalLikes  int                  `json:"totalLikes"`
}
