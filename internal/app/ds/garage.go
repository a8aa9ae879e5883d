package ds

import "time"

// Таблица машин в гараже пользователя
type GarageCar struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	Title     string    `gorm:"type:varchar(100);not null"`
	CarClass  string    `gorm:"type:varchar(50)"`
	Plate     string    `gorm:"type:varchar(20)"`
	CreatedAt time.Time `gorm:"not null"`
}

// Профиль гаража: одна строка на пользователя, хранит активную машину.
// ActiveCarID либо null, либо ссылается на машину этого же пользователя.
type GarageProfile struct {
	UserID      int64   `gorm:"primaryKey"`
	ActiveCarID *string `gorm:"type:varchar(36);default:null"`
}
