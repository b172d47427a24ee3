package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"user_backend/internal/app/router"
	usersadapters "user_backend/internal/feature/users/adapters"
	usershandler "user_backend/internal/feature/users/transport/handler"
	usersusecase "user_backend/internal/feature/users/usecase"
	"user_backend/internal/platform/cache"
	"user_backend/internal/platform/crypto"
	"user_backend/internal/platform/db"
	platformredis "user_backend/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// db
	gormDB := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// パスワード暗号化キー（PASSWORD_KEY未設定時はエフェメラルキーにフォールバック）
	key, err := crypto.LoadKeyFromEnv()
	if err != nil {
		log.Fatalf("failed to load password key: %v", err)
	}
	cipher, err := crypto.NewPasswordCipher(key)
	if err != nil {
		log.Fatalf("failed to initialize password cipher: %v", err)
	}

	// Repository
	userRepo := usersadapters.NewUserMySQL(gormDB)

	// Redisキャッシュでラップ
	cachedUserRepo := cache.NewCachingUserRepository(rdb, 5*time.Minute, userRepo, "users")

	// Usecase
	userUC := usersusecase.NewUserUsecase(cachedUserRepo, cipher)

	// Handler
	userH := usershandler.NewUserHandler(userUC)

	// ルータ生成
	router := router.NewRouter(userH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
