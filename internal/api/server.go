package api

import (
	"context"
	"log"

	"autoservice/internal/app/category"
	"autoservice/internal/app/config"
	"autoservice/internal/app/dsn"
	"autoservice/internal/app/handler"
	"autoservice/internal/app/middleware"
	"autoservice/internal/app/notify"
	"autoservice/internal/app/redis"
	"autoservice/internal/app/repository"
	"autoservice/internal/app/service"
	"autoservice/internal/app/telegram"
	"autoservice/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func StartServer() {
	log.Println("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ошибка конфигурации: %v", err)
	}

	categories := category.NewTable(cfg.Topics)
	if err := categories.Validate(); err != nil {
		logrus.Fatalf("ошибка таблицы категорий: %v", err)
	}

	var store service.Store
	switch cfg.Storage {
	case "memory":
		logrus.Warn("хранилище в памяти: данные будут потеряны при рестарте")
		store = repository.NewMemStore()
	default:
		repo, err := repository.New(dsn.FromEnv())
		if err != nil {
			logrus.Fatalf("ошибка инициализации репозитория: %v", err)
		}
		store = repo
	}

	tg := telegram.NewClient(cfg.Telegram.BotToken)

	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			// без Redis только теряем дедупликацию повторных вебхуков
			logrus.Errorf("redis недоступен, дедупликация вебхука выключена: %v", err)
			redisClient = nil
		}
	}

	dispatcher := notify.NewDispatcher(tg, cfg.Telegram.ManagerChatID, cfg.Lifecycle.AllowReopen)
	lifecycle := service.NewLifecycle(store, categories, dispatcher, cfg.Lifecycle)
	auth := middleware.NewAuthMiddleware(cfg.Telegram.BotToken, cfg.Auth)
	h := handler.NewHandler(lifecycle, tg, redisClient, cfg)

	if cfg.Telegram.WebhookURL != "" {
		if err := tg.SetWebhook(cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
			logrus.Errorf("не удалось зарегистрировать вебхук: %v", err)
		}
	}

	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Content-Type", middleware.InitDataHeader}
	router.Use(cors.New(corsCfg))

	app := pkg.NewApp(cfg, router, h, auth)
	app.RunApp()

	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Println("Server down")
}
