package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User ユーザーモデル
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"-" bson:"password"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	ProfileImage   string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills         []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	CurrentJob     string             `json:"currentJob,omitempty" bson:"currentJob,omitempty"`
	Company        string             `json:"company,omitempty" bson:"company,omitempty"`
	Location       string             `json:"location,omitempty" bson:"location,omitempty"`
	School         string             `json:"school,omitempty" bson:"school,omitempty"`
	Department     string             `json:"department,omitempty" bson:"department,omitempty"`
	GraduationYear int                `json:"graduationYear,omitempty" bson:"graduationYear,omitempty"`
	IsVerified     bool               `json:"isVerified" bson:"isVerified"`
	IsAdmin        bool               `json:"isAdmin" bson:"isAdmin"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// UserSummary 認証レスポンス用のユーザー要約（パスワードなどは含めない）
type UserSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Phone string             `json:"phone"`
	Email string             `json:"email"`
}

// Summary 認証レスポンス用の要約を作成
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Phone: u.Phone,
		Email: u.Email,
	}
}

// PublicUser ユーザー検索・おすすめ表示用の公開フィールド
type PublicUser struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	ProfileImage string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Department   string             `json:"department,omitempty" bson:"department,omitempty"`
	CurrentJob   string             `json:"currentJob,omitempty" bson:"currentJob,omitempty"`
	Location     string             `json:"location,omitempty" bson:"location,omitempty"`
}

// CommentAuthor コメント表示用のユーザー情報
type CommentAuthor struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

// ProfileUpdate プロフィール更新の入力。
// 空文字・未指定のフィールドは「変更なし」として扱う（空値での上書きは不可）。
type ProfileUpdate struct {
	Bio            string   `json:"bio"`
	Skills         []string `json:"skills"`
	CurrentJob     string   `json:"currentJob"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	School         string   `json:"school"`
	Department     string   `json:"department"`
	GraduationYear *int     `json:"graduationYear"`
	Phone          string   `json:"phone"`
}
