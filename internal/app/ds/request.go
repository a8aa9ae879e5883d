package ds

import (
	"strconv"
	"time"
)

// Таблица заявок на обслуживание
type ServiceRequest struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	UserID        int64  `gorm:"not null;index"` // Telegram ID клиента
	CategoryKey   string `gorm:"type:varchar(30);not null"`
	CategoryLabel string `gorm:"type:varchar(100);not null"`
	CarClass      string `gorm:"type:varchar(50)"`
	CarModel      string `gorm:"type:varchar(100);not null"`
	Description   string `gorm:"type:text;not null"`
	// Ссылка на машину из гаража (если заявка подана с выбранной машиной)
	CarTitle string `gorm:"type:varchar(100)"`
	CarPlate string `gorm:"type:varchar(20)"`

	Status Status `gorm:"type:varchar(20);not null"`
	// Строка клиента для сообщения менеджерам, фиксируется при создании
	ClientLine string `gorm:"type:varchar(200)"`
	// ID сообщения в топике супергруппы (для edit-in-place)
	TopicMessageID int `gorm:"default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TgUser — данные пользователя Telegram из initData или тела запроса
type TgUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// ClientLine собирает строку клиента с цепочкой фолбэков:
// имя, @username, id; отсутствующие части заменяются прочерком.
func (u TgUser) ClientLine() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = "—"
	}

	username := "—"
	if u.Username != "" {
		username = "@" + u.Username
	}

	id := "—"
	if u.ID != 0 {
		id = strconv.FormatInt(u.ID, 10)
	}

	return name + " | " + username + " | id " + id
}
