package services

import (
	"context"
	"mime/multipart"
	"unicode/utf8"

	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileService プロフィールに関するサービスインターフェース
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, int64, error)
	UpdateProfile(ctx context.Context, userID string, input models.ProfileUpdate) (*models.User, error)
	UpdateProfileImage(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error)
}

// profileService ProfileServiceの実装
type profileService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	media    MediaService
}

// maxBioLength 自己紹介の最大文字数
const maxBioLength = 500

// NewProfileService ProfileServiceを作成
func NewProfileService(userRepo repository.UserRepository, postRepo repository.PostRepository, media MediaService) ProfileService {
	return &profileService{
		userRepo: userRepo,
		postRepo: postRepo,
		media:    media,
	}
}

// GetProfile プロフィールと投稿数を取得
func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.User, int64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, ErrUserNotFound
	}

	postCount, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, 0, err
	}

	return user, postCount, nil
}

// UpdateProfile プロフィールを部分更新する。
// 空文字・未指定のフィールドは変更しない（空値でのクリアはできない）。
// skillsは配列で渡された場合のみ更新する
func (s *profileService) UpdateProfile(ctx context.Context, userID string, input models.ProfileUpdate) (*models.User, error) {
	updates := bson.M{}

	if input.Bio != "" {
		if utf8.RuneCountInString(input.Bio) > maxBioLength {
			return nil, ErrBioTooLong
		}
		updates["bio"] = input.Bio
	}
	if input.Skills != nil {
		updates["skills"] = input.Skills
	}
	if input.CurrentJob != "" {
		updates["currentJob"] = input.CurrentJob
	}
	if input.Company != "" {
		updates["company"] = input.Company
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.School != "" {
		updates["school"] = input.School
	}
	if input.Department != "" {
		updates["department"] = input.Department
	}
	if input.GraduationYear != nil {
		updates["graduationYear"] = *input.GraduationYear
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}

	// 更新対象がない場合は現在の状態をそのまま返す
	if len(updates) == 0 {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		return user, nil
	}

	user, err := s.userRepo.UpdateFields(ctx, userID, updates)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// UpdateProfileImage プロフィール画像を保存し、ファイル名を書き込む。
// 差し替え前の画像は削除する
func (s *profileService) UpdateProfileImage(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	// ユーザーが存在するか確認
	current, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	fileName, err := s.media.SaveProfileImage(file, header)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateFields(ctx, userID, bson.M{"profileImage": fileName})
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 旧画像の削除に失敗しても更新自体は成立している
	if current.ProfileImage != "" && current.ProfileImage != fileName {
		_ = s.media.RemoveProfileImage(current.ProfileImage)
	}

	return user, nil
}
