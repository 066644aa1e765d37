package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	"github.com/GradLink/gradlink_backend/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService Cloudinaryとの連携を管理するサービス
type CloudinaryService interface {
	UploadImage(file multipart.File, fileName string) (string, error)
	DeleteImage(publicID string) error
}

// cloudinaryService CloudinaryServiceの実装
type cloudinaryService struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

// NewCloudinaryService CloudinaryServiceを作成
func NewCloudinaryService(cfg *config.Config) (CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, err
	}

	return &cloudinaryService{
		cld: cld,
		cfg: cfg,
	}, nil
}

// UploadImage 画像をアップロードし、公開URLを返す
func (s *cloudinaryService) UploadImage(file multipart.File, fileName string) (string, error) {
	// ファイルデータを読み込み
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", fmt.Errorf("ファイルの読み込みに失敗しました: %v", err)
	}

	uploadParams := uploader.UploadParams{
		Folder:       s.cfg.Cloudinary.Folder,
		PublicID:     fileName,
		ResourceType: "image",
	}

	result, err := s.cld.Upload.Upload(context.Background(), buf, uploadParams)
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %v", err)
	}

	return result.SecureURL, nil
}

// DeleteImage 画像を削除
func (s *cloudinaryService) DeleteImage(publicID string) error {
	if publicID == "" {
		return nil
	}

	_, err := s.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("Cloudinaryからの削除に失敗しました: %v", err)
	}

	return nil
}
