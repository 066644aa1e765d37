package services

import (
	"context"
	"time"

	"github.com/GradLink/gradlink_backend/internal/config"
	"github.com/GradLink/gradlink_backend/internal/models"
	"github.com/GradLink/gradlink_backend/internal/repository"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	Signup(ctx context.Context, fullName, phone, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, string, time.Duration, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error)
}

// authService AuthServiceの実装
type authService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		config:   cfg,
	}
}

// Claims JWTのペイロード
type Claims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

// Signup ユーザー登録。メールアドレス・電話番号の重複を確認し、
// パスワードはハッシュ化して保存する
func (s *authService) Signup(ctx context.Context, fullName, phone, email, password string) (*models.User, error) {
	// メールアドレスまたは電話番号が既に使用されているか確認
	existingUser, err := s.userRepo.FindByEmailOrPhone(ctx, email, phone)
	if err == nil && existingUser != nil {
		return nil, ErrEmailOrPhoneTaken
	}

	// パスワードをハッシュ化
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 新しいユーザーを作成
	user := &models.User{
		Name:     fullName,
		Phone:    phone,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login ログイン。成功時はユーザー、トークン、Cookieの有効期間を返す
func (s *authService) Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, string, time.Duration, error) {
	// ユーザーを検索
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", 0, ErrInvalidCredentials
	}

	// パスワードを検証
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", 0, ErrInvalidCredentials
	}

	// 有効期間を決定（通常2時間、rememberMeで90日）
	expiry := s.config.Auth.TokenExpiry
	if rememberMe {
		expiry = s.config.Auth.RememberMeExpiry
	}

	// JWTトークンを生成
	token, err := s.generateToken(user.ID.Hex(), expiry)
	if err != nil {
		return nil, "", 0, err
	}

	return user, token, expiry, nil
}

// ValidateToken トークンを検証
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	// トークンを解析
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetUserFromToken トークンからユーザーを取得
func (s *authService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// generateToken JWTトークンを生成
func (s *authService) generateToken(userID string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(expiry).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
