package repository

import (
	"errors"
	"time"

	"autoservice/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с заявками

func (r *Repository) CreateRequest(req *ds.ServiceRequest) error {
	return r.db.Create(req).Error
}

func (r *Repository) GetRequest(id string) (*ds.ServiceRequest, error) {
	var req ds.ServiceRequest
	err := r.db.First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus атомарно переводит заявку из статуса from в to.
// Условный UPDATE вместо read-modify-write: при гонке двух менеджеров
// ровно один апдейт проходит, проигравший получает ErrStatusConflict
// и актуальную запись для повторного чтения.
func (r *Repository) UpdateRequestStatus(id string, from, to ds.Status) (*ds.ServiceRequest, error) {
	result := r.db.Model(&ds.ServiceRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	req, err := r.GetRequest(id)
	if err != nil {
		return nil, err
	}

	if result.RowsAffected == 0 {
		return req, ErrStatusConflict
	}
	return req, nil
}

// SetTopicMessageID запоминает id сообщения в топике для edit-in-place
func (r *Repository) SetTopicMessageID(id string, messageID int) error {
	result := r.db.Model(&ds.ServiceRequest{}).
		Where("id = ?", id).
		Update("topic_message_id", messageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRequestsByUser возвращает заявки пользователя,
// свежие первыми, не больше limit
func (r *Repository) ListRequestsByUser(userID int64, limit int) ([]ds.ServiceRequest, error) {
	var requests []ds.ServiceRequest
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
