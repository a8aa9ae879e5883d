package handler

import (
	"errors"
	"net/http"

	"autoservice/internal/app/ds"
	"autoservice/internal/app/dto"
	"autoservice/internal/app/middleware"
	"autoservice/internal/app/service"

	"github.com/gin-gonic/gin"
)

var errUnauthorized = errors.New("пользователь не аутентифицирован")

// currentUser определяет пользователя запроса: сначала проверенный
// initData из контекста, иначе tgUser из тела — но только если
// проверка подписи выключена конфигурацией.
func (h *Handler) currentUser(ctx *gin.Context, bodyUser *ds.TgUser) (ds.TgUser, error) {
	if user, ok := middleware.UserFromContext(ctx); ok {
		return user, nil
	}
	if !h.Config.Auth.RequireInitData && bodyUser != nil && bodyUser.ID != 0 {
		return *bodyUser, nil
	}
	return ds.TgUser{}, errUnauthorized
}

func (h *Handler) unauthorized(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{OK: false, Error: errUnauthorized.Error()})
}

// SubmitRequest создаёт заявку на обслуживание
// @Summary Создание заявки
// @Description Валидирует поля, определяет топик по категории, сохраняет заявку и уведомляет менеджеров
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Поля заявки"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/request [post]
func (h *Handler) SubmitRequest(ctx *gin.Context) {
	var req dto.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.badRequest(ctx, "Missing fields: category, carModel, description are required")
		return
	}

	user, err := h.currentUser(ctx, req.TgUser)
	if err != nil {
		h.unauthorized(ctx)
		return
	}

	created, err := h.Lifecycle.Submit(service.SubmitInput{
		Category:    req.Category,
		CarClass:    req.CarClass,
		CarModel:    req.CarModel,
		Description: req.Description,
		CarID:       req.CarID,
		User:        user,
	})
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SubmitResponse{OK: true, ID: created.ID})
}

// MyRequests возвращает заявки пользователя
// @Summary Мои заявки
// @Description Последние заявки пользователя, свежие первыми
// @Tags Requests
// @Accept json
// @Produce json
// @Success 200 {object} dto.MyRequestsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/my-requests [post]
func (h *Handler) MyRequests(ctx *gin.Context) {
	var req dto.MyRequestsRequest
	// тело может быть пустым: пользователь берётся из initData
	_ = ctx.ShouldBindJSON(&req)

	user, err := h.currentUser(ctx, req.TgUser)
	if err != nil {
		h.unauthorized(ctx)
		return
	}

	requests, err := h.Lifecycle.ListMyRequests(user.ID)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	items := make([]dto.RequestItem, len(requests))
	for i, r := range requests {
		items[i] = dto.NewRequestItem(r)
	}

	ctx.JSON(http.StatusOK, dto.MyRequestsResponse{OK: true, Items: items})
}
