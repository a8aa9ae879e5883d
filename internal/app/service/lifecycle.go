package service

import (
	"fmt"
	"strings"
	"time"

	"autoservice/internal/app/ds"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SubmitInput — поля заявки из мини-аппы
type SubmitInput struct {
	Category    string
	CarClass    string
	CarModel    string
	Description string
	// опциональная ссылка на машину из гаража
	CarID string

	User ds.TgUser
}

// Submit валидирует и сохраняет заявку, затем отправляет уведомление
// менеджерам. Запись коммитится до любых исходящих вызовов: упавшее
// уведомление логируется, но заявка остаётся и видна в "моих заявках".
func (l *Lifecycle) Submit(in SubmitInput) (*ds.ServiceRequest, error) {
	carModel := strings.TrimSpace(in.CarModel)
	description := strings.TrimSpace(in.Description)
	if carModel == "" || description == "" {
		return nil, fmt.Errorf("%w: carModel, description", ErrValidation)
	}

	cat, err := l.categories.Resolve(in.Category)
	if err != nil {
		return nil, err
	}

	req := &ds.ServiceRequest{
		ID:            uuid.NewString(),
		UserID:        in.User.ID,
		CategoryKey:   cat.Key,
		CategoryLabel: cat.Label,
		CarClass:      strings.TrimSpace(in.CarClass),
		CarModel:      carModel,
		Description:   description,
		Status:        ds.StatusNew,
		ClientLine:    in.User.ClientLine(),
	}

	if in.CarID != "" {
		car, err := l.store.GetCar(in.CarID)
		if err != nil {
			return nil, err
		}
		if car.UserID != in.User.ID {
			return nil, ErrForbidden
		}
		req.CarTitle = car.Title
		req.CarPlate = car.Plate
	}

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := l.store.CreateRequest(req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// уведомление менеджерам не блокирует ответ клиенту
	go l.dispatchStaffNotification(req, cat.TopicID)

	return req, nil
}

func (l *Lifecycle) dispatchStaffNotification(req *ds.ServiceRequest, topicID int) {
	messageID, err := l.notifier.NotifyStaff(req, topicID)
	if err != nil {
		logrus.Errorf("staff notification failed for request %s: %v", req.ID, err)
		return
	}
	if err := l.store.SetTopicMessageID(req.ID, messageID); err != nil {
		logrus.Errorf("save topic message id for request %s: %v", req.ID, err)
	}
}

// Transition переводит заявку в новый статус по действию менеджера.
// Переход проверяется по графу статусов, обновление атомарное:
// при гонке двух менеджеров проигравший получает конфликт
// и актуальное состояние. Side effects (бонус, правка сообщения,
// уведомление клиента) выполняются после коммита.
func (l *Lifecycle) Transition(requestID string, newStatus ds.Status) (*ds.ServiceRequest, error) {
	req, err := l.store.GetRequest(requestID)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransition(newStatus, l.cfg.AllowReopen) {
		return req, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, newStatus)
	}

	updated, err := l.store.UpdateRequestStatus(requestID, req.Status, newStatus)
	if err != nil {
		return updated, err
	}

	if newStatus == ds.StatusDone {
		l.creditDoneBonus(updated)
	}

	go l.dispatchStatusNotifications(updated)

	return updated, nil
}

// creditDoneBonus начисляет бонус за выполненную заявку. Идемпотентность
// обеспечивает хранилище: повторный done (reopen, ретрай вебхука)
// не начислит второй раз.
func (l *Lifecycle) creditDoneBonus(req *ds.ServiceRequest) {
	if l.cfg.BonusOnDone <= 0 || req.UserID == 0 {
		return
	}
	credited, err := l.store.CreditBonusOnce(&ds.BonusEntry{
		UserID:    req.UserID,
		RequestID: req.ID,
		Reason:    "request_done",
		Delta:     l.cfg.BonusOnDone,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logrus.Errorf("bonus credit failed for request %s: %v", req.ID, err)
		return
	}
	if credited {
		logrus.Infof("credited %d bonus to user %d for request %s", l.cfg.BonusOnDone, req.UserID, req.ID)
	}
}

func (l *Lifecycle) dispatchStatusNotifications(req *ds.ServiceRequest) {
	// правка сообщения в топике; сбой не критичен
	if err := l.notifier.EditStaffMessage(req); err != nil {
		logrus.Warnf("edit staff message for request %s: %v", req.ID, err)
	}

	delivery := l.notifier.NotifyClient(req)
	if !delivery.Delivered {
		logrus.Infof("client notification for request %s suppressed: %s", req.ID, delivery.Reason)
	}
}

// ListMyRequests возвращает заявки пользователя, свежие первыми
func (l *Lifecycle) ListMyRequests(userID int64) ([]ds.ServiceRequest, error) {
	return l.store.ListRequestsByUser(userID, l.cfg.ListLimit)
}

// GetRequest достаёт одну заявку (для обработчика вебхука)
func (l *Lifecycle) GetRequest(id string) (*ds.ServiceRequest, error) {
	return l.store.GetRequest(id)
}
