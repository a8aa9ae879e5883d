package handler

import (
	"net/http"

	"autoservice/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// GetGarage возвращает машины пользователя с отметкой активной
// @Summary Гараж пользователя
// @Tags Garage
// @Produce json
// @Success 200 {object} dto.GarageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/garage [get]
func (h *Handler) GetGarage(ctx *gin.Context) {
	user, err := h.currentUser(ctx, nil)
	if err != nil {
		h.unauthorized(ctx)
		return
	}

	cars, activeID, err := h.Lifecycle.Garage(user.ID)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	items := make([]dto.GarageCarItem, len(cars))
	for i, car := range cars {
		items[i] = dto.GarageCarItem{
			ID:       car.ID,
			Title:    car.Title,
			CarClass: car.CarClass,
			Plate:    car.Plate,
			Active:   activeID != nil && *activeID == car.ID,
		}
	}

	ctx.JSON(http.StatusOK, dto.GarageResponse{OK: true, Items: items})
}

// AddCar добавляет машину в гараж
// @Summary Добавление машины
// @Tags Garage
// @Accept json
// @Produce json
// @Param request body dto.AddCarRequest true "Данные машины"
// @Success 200 {object} dto.AddCarResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/garage/add [post]
func (h *Handler) AddCar(ctx *gin.Context) {
	var req dto.AddCarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.badRequest(ctx, "Missing fields: title is required")
		return
	}

	user, err := h.currentUser(ctx, req.TgUser)
	if err != nil {
		h.unauthorized(ctx)
		return
	}

	car, err := h.Lifecycle.AddCar(user.ID, req.Title, req.CarClass, req.Plate)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AddCarResponse{OK: true, ID: car.ID})
}

// SetActiveCar назначает активную машину
// @Summary Выбор активной машины
// @Tags Garage
// @Accept json
// @Produce json
// @Param request body dto.CarIDRequest true "ID машины"
// @Success 200 {object} dto.OKResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/garage/set-active [post]
func (h *Handler) SetActiveCar(ctx *gin.Context) {
	var req dto.CarIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.badRequest(ctx, "Missing fields: carId is required")
		return
	}

	user, err := h.currentUser(ctx, req.TgUser)
	if err != nil {
		h.unauthorized(ctx)
		return
	}

	if err := h.Lifecycle.SetActiveCar(user.ID, req.CarID); err != nil {
		h.errorResponse(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// DeleteCar удаляет машину из гаража
// @Summary Удаление машины
// @Tags Garage
// @Accept json
// @Produce json
// @Param request body dto.CarIDRequest true "ID машины"
// @Success 200 {object} dto.OKResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/garage/delete [post]
func (h *Handler) DeleteCar(ctx *gin.Context) {
	var req dto.CarIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.badRequest(ctx, "Missing fields: carId is required")
		return
	}

	user, err := h.currentUser(ctx, req.TgUser)
	if err != nil {
		h.unauthorized(ctx)
		return
	}

	if err := h.Lifecycle.DeleteCar(user.ID, req.CarID); err != nil {
		h.errorResponse(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// BonusBalance возвращает баланс бонусов пользователя
// @Summary Баланс бонусов
// @Tags Bonus
// @Produce json
// @Success 200 {object} dto.BonusBalanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/bonus/balance [get]
func (h *Handler) BonusBalance(ctx *gin.Context) {
	user, err := h.currentUser(ctx, nil)
	if err != nil {
		h.unauthorized(ctx)
		return
	}

	balance, err := h.Lifecycle.BonusBalance(user.ID)
	if err != nil {
		h.errorResponse(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BonusBalanceResponse{OK: true, Balance: balance})
}
