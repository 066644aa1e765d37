package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/GradLink/gradlink_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUser(repo *fakeUserRepo, name, email string) *models.User {
	user := &models.User{
		Name:  name,
		Email: email,
		Bio:   "初期の自己紹介",
	}
	_ = repo.Create(context.Background(), user)
	return user
}

func TestUpdateProfileSparseMerge(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo()
	svc := NewProfileService(userRepo, postRepo, nil)

	user := seedUser(userRepo, "山田太郎", "taro@example.com")

	// 空文字は「変更なし」
	updated, err := svc.UpdateProfile(ctx, user.ID.Hex(), models.ProfileUpdate{Bio: ""})
	if err != nil {
		t.Fatalf("更新に失敗しました: %v", err)
	}
	if updated.Bio != "初期の自己紹介" {
		t.Errorf("空文字でbioが変更されてはいけません: %q", updated.Bio)
	}

	// 非空の値は書き込まれる
	updated, err = svc.UpdateProfile(ctx, user.ID.Hex(), models.ProfileUpdate{Bio: "新しい自己紹介"})
	if err != nil {
		t.Fatalf("更新に失敗しました: %v", err)
	}
	if updated.Bio != "新しい自己紹介" {
		t.Errorf("bioが更新されていません: %q", updated.Bio)
	}

	// 他のフィールドは変更されない
	if updated.Name != "山田太郎" || updated.Email != "taro@example.com" {
		t.Error("更新対象外のフィールドが変更されています")
	}
}

func TestUpdateProfileSkillsAndYear(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	svc := NewProfileService(userRepo, newFakePostRepo(), nil)

	user := seedUser(userRepo, "山田太郎", "taro@example.com")

	year := 2020
	updated, err := svc.UpdateProfile(ctx, user.ID.Hex(), models.ProfileUpdate{
		Skills:         []string{"Go", "MongoDB"},
		GraduationYear: &year,
	})
	if err != nil {
		t.Fatalf("更新に失敗しました: %v", err)
	}
	if !reflect.DeepEqual(updated.Skills, []string{"Go", "MongoDB"}) {
		t.Errorf("skillsが更新されていません: %v", updated.Skills)
	}
	if updated.GraduationYear != 2020 {
		t.Errorf("graduationYearが更新されていません: %d", updated.GraduationYear)
	}

	// skills未指定（nil）は変更なし
	updated, err = svc.UpdateProfile(ctx, user.ID.Hex(), models.ProfileUpdate{Bio: "x"})
	if err != nil {
		t.Fatalf("更新に失敗しました: %v", err)
	}
	if !reflect.DeepEqual(updated.Skills, []string{"Go", "MongoDB"}) {
		t.Errorf("skills未指定で変更されてはいけません: %v", updated.Skills)
	}
}

func TestUpdateProfileNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeUserRepo(), newFakePostRepo(), nil)

	if _, err := svc.UpdateProfile(ctx, primitive.NewObjectID().Hex(), models.ProfileUpdate{Bio: "x"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("存在しないユーザーでErrUserNotFoundが返るべきですが: %v", err)
	}
}

func TestGetProfileWithPostCount(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo()
	svc := NewProfileService(userRepo, postRepo, nil)

	user := seedUser(userRepo, "山田太郎", "taro@example.com")
	other := seedUser(userRepo, "他の人", "other@example.com")

	postRepo.seed(&models.Post{ID: primitive.NewObjectID(), Author: user.ID, Content: "1"})
	postRepo.seed(&models.Post{ID: primitive.NewObjectID(), Author: user.ID, Content: "2"})
	postRepo.seed(&models.Post{ID: primitive.NewObjectID(), Author: other.ID, Content: "3"})

	got, postCount, err := svc.GetProfile(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("プロフィール取得に失敗しました: %v", err)
	}
	if got.Email != "taro@example.com" {
		t.Errorf("ユーザーが一致しません: %s", got.Email)
	}
	if postCount != 2 {
		t.Errorf("投稿数は2のはずですが: %d", postCount)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeUserRepo(), newFakePostRepo(), nil)

	if _, _, err := svc.GetProfile(ctx, "invalid-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("不正なIDでErrUserNotFoundが返るべきですが: %v", err)
	}
}

func TestUpdateProfileBioTooLong(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	svc := NewProfileService(userRepo, newFakePostRepo(), nil)

	user := seedUser(userRepo, "山田太郎", "taro@example.com")

	long := strings.Repeat("あ", 501)
	if _, err := svc.UpdateProfile(ctx, user.ID.Hex(), models.ProfileUpdate{Bio: long}); !errors.Is(err, ErrBioTooLong) {
		t.Errorf("500文字を超える自己紹介でErrBioTooLongが返るべきですが: %v", err)
	}

	got, err := svc.UpdateProfile(ctx, user.ID.Hex(), models.ProfileUpdate{Bio: strings.Repeat("あ", 500)})
	if err != nil {
		t.Fatalf("500文字の自己紹介は許可されるべきですが: %v", err)
	}
	if utf8.RuneCountInString(got.Bio) != 500 {
		t.Errorf("自己紹介が更新されていません")
	}
}

func TestUpdateProfileImageReplacesOld(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	cfg := mediaConfig(t)
	svc := NewProfileService(userRepo, newFakePostRepo(), NewMediaService(cfg, nil))

	user := seedUser(userRepo, "山田太郎", "taro@example.com")

	file, header := newUpload("first.png", "image/png", []byte("first"))
	updated, err := svc.UpdateProfileImage(ctx, user.ID.Hex(), file, header)
	if err != nil {
		t.Fatalf("画像更新に失敗しました: %v", err)
	}
	first := updated.ProfileImage
	if first == "" {
		t.Fatal("profileImageが設定されていません")
	}

	// 差し替えで古い画像は削除される
	file2, header2 := newUpload("second.png", "image/png", []byte("second"))
	updated, err = svc.UpdateProfileImage(ctx, user.ID.Hex(), file2, header2)
	if err != nil {
		t.Fatalf("画像更新に失敗しました: %v", err)
	}
	if updated.ProfileImage == first {
		t.Fatal("profileImageが差し替えられていません")
	}
	if _, err := os.Stat(filepath.Join(cfg.Storage.UploadDir, first)); !os.IsNotExist(err) {
		t.Error("古い画像が削除されていません")
	}
	if _, err := os.Stat(filepath.Join(cfg.Storage.UploadDir, updated.ProfileImage)); err != nil {
		t.Errorf("新しい画像が存在しません: %v", err)
	}
}

func TestUpdateProfileImageRejectsOversize(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	cfg := mediaConfig(t)
	svc := NewProfileService(userRepo, newFakePostRepo(), NewMediaService(cfg, nil))

	user := seedUser(userRepo, "山田太郎", "taro@example.com")

	file, header := newUpload("big.png", "image/png", []byte("x"))
	header.Size = cfg.Storage.MaxProfileImgSize + 1
	if _, err := svc.UpdateProfileImage(ctx, user.ID.Hex(), file, header); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("上限超過でErrFileTooLargeが返るべきですが: %v", err)
	}

	// 失敗時はprofileImageが変わらない
	got, err := userRepo.FindByID(ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("ユーザー取得に失敗しました: %v", err)
	}
	if got.ProfileImage != "" {
		t.Errorf("profileImageが変更されています: %s", got.ProfileImage)
	}
}
