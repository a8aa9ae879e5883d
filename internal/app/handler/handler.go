package handler

import (
	"errors"
	"net/http"

	"autoservice/internal/app/category"
	"autoservice/internal/app/config"
	"autoservice/internal/app/dto"
	"autoservice/internal/app/middleware"
	"autoservice/internal/app/redis"
	"autoservice/internal/app/repository"
	"autoservice/internal/app/service"
	"autoservice/internal/app/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Lifecycle *service.Lifecycle
	Telegram  *telegram.Client
	// nil, если Redis не настроен — дедупликация вебхука выключена
	Redis  *redis.Client
	Config *config.Config
}

func NewHandler(lifecycle *service.Lifecycle, tg *telegram.Client, redisClient *redis.Client, cfg *config.Config) *Handler {
	return &Handler{
		Lifecycle: lifecycle,
		Telegram:  tg,
		Redis:     redisClient,
		Config:    cfg,
	}
}

// Регистрация маршрутов
func (h *Handler) RegisterRoutes(router *gin.Engine, auth *middleware.AuthMiddleware) {
	router.GET("/", h.Health)

	api := router.Group("/api")
	api.GET("/health", h.Health)

	// клиентские эндпоинты мини-аппы
	client := api.Group("", auth.WithInitData())
	{
		client.POST("/request", h.SubmitRequest)
		client.POST("/my-requests", h.MyRequests)

		garage := client.Group("/garage")
		{
			garage.GET("", h.GetGarage)
			garage.POST("/add", h.AddCar)
			garage.POST("/set-active", h.SetActiveCar)
			garage.POST("/delete", h.DeleteCar)
		}

		client.GET("/bonus/balance", h.BonusBalance)
	}

	// вебхук Bot API: нажатия inline-кнопок менеджерами
	router.POST("/webhook/telegram", h.TelegramWebhook)
}

// Централизованная обработка ошибок: мапим ошибки бизнес-логики
// на HTTP-коды, тело всегда {ok:false, error}
func (h *Handler) errorResponse(ctx *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, category.ErrUnknown):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, repository.ErrStatusConflict):
		code = http.StatusConflict
	}

	if code == http.StatusInternalServerError {
		logrus.Error(err.Error())
	}
	ctx.JSON(code, dto.ErrorResponse{OK: false, Error: err.Error()})
}

func (h *Handler) badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: message})
}

// Health проверяет работоспособность сервиса
// @Summary Проверка работоспособности
// @Tags Health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /api/health [get]
func (h *Handler) Health(ctx *gin.Context) {
	ctx.String(http.StatusOK, "ok")
}
