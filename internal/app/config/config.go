package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"autoservice/internal/app/category"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	// postgres или memory
	Storage string

	Telegram  TelegramConfig
	Auth      AuthConfig
	Lifecycle LifecycleConfig
	Redis     RedisConfig
	Topics    category.Topics
}

type TelegramConfig struct {
	BotToken string
	// id супергруппы менеджеров (-100...)
	ManagerChatID int64
	// если задан, при старте регистрируется вебхук
	WebhookURL string
	// секрет для проверки X-Telegram-Bot-Api-Secret-Token
	WebhookSecret string
}

type AuthConfig struct {
	// проверять подпись initData на клиентских эндпоинтах
	RequireInitData bool
	// окно свежести подписи initData
	InitDataTTL time.Duration
}

type LifecycleConfig struct {
	// разрешить возврат заявки из терминального статуса в работу
	AllowReopen bool
	// начисление бонусов при переводе заявки в done
	BonusOnDone int
	// максимум заявок в выдаче "мои заявки"
	ListLimit int
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

const (
	envBotToken      = "BOT_TOKEN"
	envManagerChatID = "MANAGER_CHAT_ID"
	envWebhookURL    = "WEBHOOK_URL"
	envWebhookSecret = "WEBHOOK_SECRET"

	envThreadWash   = "THREAD_WASH"
	envThreadTO     = "THREAD_TO"
	envThreadDetail = "THREAD_DETAIL"
	envThreadBody   = "THREAD_BODY"
	envThreadTuning = "THREAD_TUNING"

	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Storage == "" {
		cfg.Storage = "postgres"
	}
	if cfg.Auth.InitDataTTL == 0 {
		cfg.Auth.InitDataTTL = 7 * 24 * time.Hour
	}
	if cfg.Lifecycle.BonusOnDone == 0 {
		cfg.Lifecycle.BonusOnDone = 100
	}
	if cfg.Lifecycle.ListLimit == 0 {
		cfg.Lifecycle.ListLimit = 50
	}

	// секреты и внешние идентификаторы только из окружения
	cfg.Telegram.BotToken = os.Getenv(envBotToken)
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("missing env %s", envBotToken)
	}
	cfg.Telegram.ManagerChatID, err = strconv.ParseInt(os.Getenv(envManagerChatID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be int value: %w", envManagerChatID, err)
	}
	cfg.Telegram.WebhookURL = os.Getenv(envWebhookURL)
	cfg.Telegram.WebhookSecret = os.Getenv(envWebhookSecret)

	// номера топиков: дефолтная нумерация, поверх — окружение
	cfg.Topics = category.DefaultTopics()
	if err = overrideTopic(&cfg.Topics.Wash, envThreadWash); err != nil {
		return nil, err
	}
	if err = overrideTopic(&cfg.Topics.Service, envThreadTO); err != nil {
		return nil, err
	}
	if err = overrideTopic(&cfg.Topics.Detailing, envThreadDetail); err != nil {
		return nil, err
	}
	if err = overrideTopic(&cfg.Topics.Body, envThreadBody); err != nil {
		return nil, err
	}
	if err = overrideTopic(&cfg.Topics.Tuning, envThreadTuning); err != nil {
		return nil, err
	}

	// Redis не обязателен: без него отключается дедупликация вебхука
	if os.Getenv(envRedisHost) != "" {
		cfg.Redis.Host = os.Getenv(envRedisHost)
		cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
		if err != nil {
			return nil, fmt.Errorf("redis port must be int value: %w", err)
		}
		cfg.Redis.Password = os.Getenv(envRedisPass)
		cfg.Redis.User = os.Getenv(envRedisUser)
		cfg.Redis.DialTimeout = 10 * time.Second
		cfg.Redis.ReadTimeout = 10 * time.Second
	}

	log.Info("config parsed")

	return cfg, nil
}

// overrideTopic заменяет номер топика значением из окружения, если оно задано.
// Нечисловое значение — ошибка конфигурации, падаем при старте.
func overrideTopic(dst *int, env string) error {
	raw := os.Getenv(env)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be int value: %w", env, err)
	}
	*dst = v
	return nil
}
