// internal/repository/mongo.go
package repository

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongo はMongoDBクライアントを生成し、接続を確認します。
// DB接続と同様、シングルトンにせず呼び出し側がClose相当 (Disconnect) を管理する。
func NewMongo(mongoURL string, appLogger *slog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(mongoURL).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		appLogger.Error("Failed to connect to MongoDB", slog.Any("error", err))
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		appLogger.Error("Error pinging MongoDB", slog.Any("error", err))
		client.Disconnect(context.Background())
		return nil, err
	}

	appLogger.Info("MongoDB connection established")
	return client, nil
}
