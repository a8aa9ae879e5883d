package notify

import (
	"autoservice/internal/app/ds"
	"autoservice/internal/app/telegram"

	"github.com/sirupsen/logrus"
)

// Delivery — результат best-effort уведомления клиента.
// Подавленная доставка не ошибка для вызывающего, но причина
// логируется, чтобы молчаливые сбои были видны в эксплуатации.
type Delivery struct {
	Delivered bool
	Reason    string
}

func Delivered() Delivery {
	return Delivery{Delivered: true}
}

func Suppressed(reason string) Delivery {
	return Delivery{Reason: reason}
}

// Dispatcher отправляет уведомления через Bot API: заявки в топики
// супергруппы менеджеров, смену статуса — клиенту в личку.
type Dispatcher struct {
	client        *telegram.Client
	managerChatID int64
	allowReopen   bool
}

func NewDispatcher(client *telegram.Client, managerChatID int64, allowReopen bool) *Dispatcher {
	return &Dispatcher{
		client:        client,
		managerChatID: managerChatID,
		allowReopen:   allowReopen,
	}
}

// NotifyStaff постит заявку в топик её категории и возвращает id
// сообщения для последующего edit-in-place
func (d *Dispatcher) NotifyStaff(req *ds.ServiceRequest, topicID int) (int, error) {
	text := FormatStaffMessage(req)
	keyboard := StatusKeyboard(req, d.allowReopen)
	return d.client.SendMessage(d.managerChatID, topicID, text, keyboard)
}

// EditStaffMessage обновляет сообщение в топике после смены статуса.
// Если id сообщения не сохранился, просто выходим: править нечего.
func (d *Dispatcher) EditStaffMessage(req *ds.ServiceRequest) error {
	if req.TopicMessageID == 0 {
		return nil
	}
	text := FormatStaffMessage(req)
	keyboard := StatusKeyboard(req, d.allowReopen)
	return d.client.EditMessageText(d.managerChatID, req.TopicMessageID, text, keyboard)
}

// NotifyClient сообщает клиенту новый статус. Best-effort: если клиент
// не открывал диалог с ботом, Bot API вернёт ошибку — подавляем.
func (d *Dispatcher) NotifyClient(req *ds.ServiceRequest) Delivery {
	if req.UserID == 0 {
		return Suppressed("client id unknown")
	}
	_, err := d.client.SendMessage(req.UserID, 0, FormatClientStatusMessage(req), nil)
	if err != nil {
		logrus.Warnf("client notification suppressed for request %s: %v", req.ID, err)
		return Suppressed(err.Error())
	}
	return Delivered()
}
