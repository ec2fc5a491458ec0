package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"freelancehub/internal/config"
	"freelancehub/internal/db"
	"freelancehub/internal/flash"
	"freelancehub/internal/models"
	"freelancehub/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Review{},
		&models.Message{},
	); err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	app := server.New(server.Deps{
		DB:    gdb,
		Cfg:   cfg,
		Flash: flash.NewRedisStore(rdb, 30*time.Minute),
	})

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
