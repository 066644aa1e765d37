package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/GradLink/gradlink_backend/internal/config"
	"github.com/GradLink/gradlink_backend/internal/utils"
)

// MediaService アップロードされたメディアの保存を行うサービスインターフェース。
// サイズとMIMEタイプの制限はここで強制する
type MediaService interface {
	SaveProfileImage(file multipart.File, header *multipart.FileHeader) (string, error)
	SavePostImage(file multipart.File, header *multipart.FileHeader) (string, error)
	SavePostVideo(file multipart.File, header *multipart.FileHeader) (string, error)
	RemoveProfileImage(ref string) error
}

// mediaService MediaServiceの実装。ローカルディスクに保存し、
// Cloudinaryが有効な場合はプロフィール画像のみそちらへアップロードする
type mediaService struct {
	config     *config.Config
	cloudinary CloudinaryService
}

// NewMediaService MediaServiceを作成
func NewMediaService(cfg *config.Config, cloudinary CloudinaryService) MediaService {
	// アップロードディレクトリを作成
	_ = os.MkdirAll(cfg.Storage.UploadDir, 0755)

	return &mediaService{
		config:     cfg,
		cloudinary: cloudinary,
	}
}

// SaveProfileImage プロフィール画像を保存
func (s *mediaService) SaveProfileImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := s.validate(header, s.config.Storage.MaxProfileImgSize, "image/"); err != nil {
		return "", err
	}

	fileName := utils.UniqueFileName(header.Filename)

	// Cloudinaryが有効な場合はそちらに保存し、URLを返す
	if s.cloudinary != nil {
		return s.cloudinary.UploadImage(file, strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	}

	return s.saveLocal(file, fileName)
}

// SavePostImage 投稿画像を保存
func (s *mediaService) SavePostImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := s.validate(header, s.config.Storage.MaxUploadSize, "image/"); err != nil {
		return "", err
	}
	return s.saveLocal(file, utils.UniqueFileName(header.Filename))
}

// SavePostVideo 投稿動画を保存
func (s *mediaService) SavePostVideo(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := s.validate(header, s.config.Storage.MaxUploadSize, "video/"); err != nil {
		return "", err
	}
	return s.saveLocal(file, utils.UniqueFileName(header.Filename))
}

// RemoveProfileImage 差し替えで使われなくなったプロフィール画像を削除する。
// refはローカルのファイル名、またはCloudinaryのURL
func (s *mediaService) RemoveProfileImage(ref string) error {
	if ref == "" {
		return nil
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if s.cloudinary == nil {
			return nil
		}
		// URL末尾のファイル名からpublicIDを復元する
		base := path.Base(ref)
		publicID := strings.TrimSuffix(base, path.Ext(base))
		if s.config.Cloudinary.Folder != "" {
			publicID = s.config.Cloudinary.Folder + "/" + publicID
		}
		return s.cloudinary.DeleteImage(publicID)
	}

	return os.Remove(filepath.Join(s.config.Storage.UploadDir, ref))
}

// validate サイズとMIMEタイプを確認
func (s *mediaService) validate(header *multipart.FileHeader, maxSize int64, mimePrefix string) error {
	if header.Size > maxSize {
		return ErrFileTooLarge
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), mimePrefix) {
		return ErrInvalidFileType
	}
	return nil
}

// saveLocal ファイルをアップロードディレクトリに保存し、ファイル名を返す
func (s *mediaService) saveLocal(file multipart.File, fileName string) (string, error) {
	filePath := filepath.Join(s.config.Storage.UploadDir, fileName)

	dest, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("ファイルの作成に失敗しました: %v", err)
	}
	defer dest.Close()

	// シーク位置をリセット
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ファイルのシークに失敗しました: %v", err)
	}

	if _, err := io.Copy(dest, file); err != nil {
		return "", fmt.Errorf("ファイルのコピーに失敗しました: %v", err)
	}

	return fileName, nil
}
