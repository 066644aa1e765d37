package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InitDB データベース接続を初期化
func InitDB(cfg *Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("データベースに接続中: %s/%s", cfg.Database.URI, cfg.Database.DBName)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, err
	}

	// 接続テスト
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("データベース接続テストに失敗: %v", err)
	}

	db := client.Database(cfg.Database.DBName)

	// email のユニークインデックスを作成
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("インデックスの作成に失敗: %v", err)
	}

	log.Println("データベース接続に成功しました")

	return db, nil
}
