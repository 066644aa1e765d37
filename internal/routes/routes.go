package routes

import (
	"log"

	"github.com/GradLink/gradlink_backend/internal/config"
	"github.com/GradLink/gradlink_backend/internal/controllers"
	"github.com/GradLink/gradlink_backend/internal/middlewares"
	"github.com/GradLink/gradlink_backend/internal/repository"
	"github.com/GradLink/gradlink_backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *mongo.Database) *gin.Engine {
	// Ginルーターを作成
	r := gin.Default()

	// ミドルウェアを設定
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware())

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	// Cloudinaryサービスを作成（有効な場合のみ）
	var cloudinaryService services.CloudinaryService
	if cfg.Cloudinary.Enabled {
		var err error
		cloudinaryService, err = services.NewCloudinaryService(cfg)
		if err != nil {
			log.Fatalf("Cloudinaryサービスの初期化に失敗しました: %v", err)
		}
	}

	// サービスを作成
	mediaService := services.NewMediaService(cfg, cloudinaryService)
	authService := services.NewAuthService(userRepo, cfg)
	profileService := services.NewProfileService(userRepo, postRepo, mediaService)
	postService := services.NewPostService(postRepo, userRepo)
	commentService := services.NewCommentService(postRepo, userRepo)
	friendService := services.NewFriendService(userRepo)

	// コントローラーを作成
	userController := controllers.NewUserController(authService, profileService, cfg)
	profileController := controllers.NewProfileController(profileService)
	postController := controllers.NewPostController(postService, commentService, mediaService, cfg)
	friendController := controllers.NewFriendController(friendService)
	healthController := controllers.NewHealthController()

	// 認証ミドルウェア（必須認証とフィードの閲覧者判定用）
	authMiddleware := middlewares.AuthMiddleware(authService)
	optionalAuthMiddleware := middlewares.OptionalAuthMiddleware(authService)

	// ヘルスチェックルート（認証不要）
	r.GET("/health", healthController.Check)

	// アップロードされたメディアを静的配信
	r.Static("/uploads", cfg.Storage.UploadDir)

	// ユーザールート
	user := r.Group("/user")
	{
		user.POST("/signup", userController.Signup)
		user.POST("/login", userController.Login)
		user.GET("/getUser", authMiddleware, userController.GetUser)
		user.GET("/logout", userController.Logout)
		user.POST("/updateProfileImage", userController.UpdateProfileImage)
	}

	// プロフィールルート
	profile := r.Group("/profile")
	{
		profile.POST("/getProfileData", profileController.GetProfileData)
		profile.POST("/updateProfile", profileController.UpdateProfile)
	}

	// 投稿ルート
	post := r.Group("/post")
	{
		post.POST("/addPost", postController.AddPost)
		post.POST("/feed", optionalAuthMiddleware, postController.Feed)
		post.POST("/moreFeed", optionalAuthMiddleware, postController.MoreFeed)
		post.POST("/like", postController.Like)
		post.POST("/addComment", postController.AddComment)
	}

	// フレンドルート
	friend := r.Group("/friend")
	{
		friend.GET("/randomUsers", friendController.RandomUsers)
		friend.GET("/searchByName", friendController.SearchByName)
	}

	return r
}
