package dto

import (
	"time"

	"autoservice/internal/app/ds"
)

// ============ Общие структуры ============

// Формат ответов мини-аппе: {ok:true, ...} либо {ok:false, error}
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ============ Заявки ============

type SubmitRequest struct {
	Category    string `json:"category" binding:"required"`
	CarClass    string `json:"carClass"`
	CarModel    string `json:"carModel" binding:"required"`
	Description string `json:"description" binding:"required"`
	// id машины из гаража (необязательно)
	CarID string `json:"car"`
	// пользователь из тела — только для режима без проверки initData
	TgUser *ds.TgUser `json:"tgUser"`
}

type SubmitResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// RequestItem — проекция заявки для клиента, без служебных полей
type RequestItem struct {
	ID            string    `json:"id"`
	CategoryKey   string    `json:"categoryKey"`
	CategoryLabel string    `json:"categoryLabel"`
	CarClass      string    `json:"carClass,omitempty"`
	CarModel      string    `json:"carModel"`
	CarTitle      string    `json:"carTitle,omitempty"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewRequestItem(req ds.ServiceRequest) RequestItem {
	return RequestItem{
		ID:            req.ID,
		CategoryKey:   req.CategoryKey,
		CategoryLabel: req.CategoryLabel,
		CarClass:      req.CarClass,
		CarModel:      req.CarModel,
		CarTitle:      req.CarTitle,
		Description:   req.Description,
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
	}
}

type MyRequestsRequest struct {
	TgUser *ds.TgUser `json:"tgUser"`
}

type MyRequestsResponse struct {
	OK    bool          `json:"ok"`
	Items []RequestItem `json:"items"`
}

// ============ Гараж ============

type AddCarRequest struct {
	Title    string     `json:"title" binding:"required"`
	CarClass string     `json:"carClass"`
	Plate    string     `json:"plate"`
	TgUser   *ds.TgUser `json:"tgUser"`
}

type CarIDRequest struct {
	CarID  string     `json:"carId" binding:"required"`
	TgUser *ds.TgUser `json:"tgUser"`
}

type GarageCarItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	CarClass string `json:"carClass,omitempty"`
	Plate    string `json:"plate,omitempty"`
	Active   bool   `json:"active"`
}

type GarageResponse struct {
	OK    bool            `json:"ok"`
	Items []GarageCarItem `json:"items"`
}

type AddCarResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

// ============ Бонусы ============

type BonusBalanceResponse struct {
	OK      bool `json:"ok"`
	Balance int  `json:"balance"`
}
