package ds

import "time"

// Таблица начислений бонусов (append-only).
// Уникальность (user_id, request_id, reason) гарантирует, что повторная
// обработка одного события не начислит бонус дважды.
type BonusEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_bonus_once,priority:1"`
	RequestID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_bonus_once,priority:2"`
	Reason    string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_bonus_once,priority:3"`
	Delta     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
