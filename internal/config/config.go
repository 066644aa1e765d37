package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション設定
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Storage    StorageConfig
	Cloudinary CloudinaryConfig
	Env        string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig データベース設定 (MongoDB)
type DatabaseConfig struct {
	URI    string
	DBName string
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret        string
	TokenExpiry      time.Duration // 通常ログインの有効期限
	RememberMeExpiry time.Duration // rememberMe指定時の有効期限
}

// StorageConfig ストレージ設定
type StorageConfig struct {
	UploadDir         string
	MaxUploadSize     int64 // 投稿メディアの最大サイズ
	MaxProfileImgSize int64 // プロフィール画像の最大サイズ
	MaxImagesPerPost  int
	MaxVideosPerPost  int
}

// CloudinaryConfig Cloudinary設定（無効の場合はローカル保存のみ）
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Enabled   bool
}

// Load 環境変数から設定をロード
func Load() (*Config, error) {
	// .env ファイルをロード (存在すれば)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 10)) * time.Second,
		},
		Database: DatabaseConfig{
			URI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			DBName: getEnv("MONGO_DB", "gradLink"),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET_KEY", "your-secret-key"),
			TokenExpiry:      time.Duration(getEnvAsInt("TOKEN_EXPIRY_HOURS", 2)) * time.Hour,
			RememberMeExpiry: time.Duration(getEnvAsInt("REMEMBER_ME_EXPIRY_DAYS", 90)) * 24 * time.Hour,
		},
		Storage: StorageConfig{
			UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
			MaxUploadSize:     int64(getEnvAsInt("MAX_UPLOAD_SIZE", 20)) * 1024 * 1024, // MB to Bytes
			MaxProfileImgSize: int64(getEnvAsInt("MAX_PROFILE_IMG_SIZE", 5)) * 1024 * 1024,
			MaxImagesPerPost:  getEnvAsInt("MAX_IMAGES_PER_POST", 3),
			MaxVideosPerPost:  getEnvAsInt("MAX_VIDEOS_PER_POST", 3),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "gradlink"),
			Enabled:   getEnvAsBool("CLOUDINARY_ENABLED", false),
		},
		Env: getEnv("ENV", "development"),
	}

	return config, nil
}

// IsProduction 本番環境かどうか
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv 環境変数を取得、存在しない場合はデフォルト値を返す
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool 環境変数をboolとして取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
