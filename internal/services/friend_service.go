package services

import (
	"context"
	"strings"

	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/repository"
)

// randomUserCount おすすめユーザーの最大件数
const randomUserCount = 10

// FriendService ユーザー発見に関するサービスインターフェース
type FriendService interface {
	RandomUsers(ctx context.Context) ([]models.PublicUser, error)
	SearchByName(ctx context.Context, name string) ([]models.PublicUser, error)
}

// friendService FriendServiceの実装
type friendService struct {
	userRepo repository.UserRepository
}

// NewFriendService FriendServiceを作成
func NewFriendService(userRepo repository.UserRepository) FriendService {
	return &friendService{userRepo: userRepo}
}

// RandomUsers ランダムに最大10人のユーザーを取得
func (s *friendService) RandomUsers(ctx context.Context) ([]models.PublicUser, error) {
	return s.userRepo.Sample(ctx, randomUserCount)
}

// SearchByName 名前の部分一致でユーザーを検索（大文字小文字を区別しない）
func (s *friendService) SearchByName(ctx context.Context, name string) ([]models.PublicUser, error) {
	return s.userRepo.SearchByName(ctx, strings.TrimSpace(name))
}
