package service

import (
	"errors"

	"autoservice/internal/app/category"
	"autoservice/internal/app/config"
	"autoservice/internal/app/ds"
	"autoservice/internal/app/notify"
)

// Ошибки уровня бизнес-логики. Хендлеры мапят их на HTTP-коды (см. §7 README)
var (
	ErrValidation        = errors.New("не заполнены обязательные поля")
	ErrInvalidTransition = errors.New("недопустимый переход статуса")
	ErrForbidden         = errors.New("доступ к чужому ресурсу запрещён")
)

// Store — контракт хранилища. Lifecycle работает одинаково поверх
// Postgres (repository.Repository) и памяти (repository.MemStore).
type Store interface {
	CreateRequest(req *ds.ServiceRequest) error
	GetRequest(id string) (*ds.ServiceRequest, error)
	// атомарный перевод статуса from -> to
	UpdateRequestStatus(id string, from, to ds.Status) (*ds.ServiceRequest, error)
	SetTopicMessageID(id string, messageID int) error
	ListRequestsByUser(userID int64, limit int) ([]ds.ServiceRequest, error)

	AddCar(car *ds.GarageCar) error
	GetCar(id string) (*ds.GarageCar, error)
	ListCars(userID int64) ([]ds.GarageCar, error)
	DeleteCar(id string) error
	SetActiveCar(userID int64, carID *string) error
	GetActiveCarID(userID int64) (*string, error)

	CreditBonusOnce(entry *ds.BonusEntry) (bool, error)
	BonusBalance(userID int64) (int, error)
}

// Notifier — абстракция исходящих уведомлений. Контроллер не знает
// про Bot API: в тестах сюда подставляется заглушка.
type Notifier interface {
	NotifyStaff(req *ds.ServiceRequest, topicID int) (int, error)
	EditStaffMessage(req *ds.ServiceRequest) error
	NotifyClient(req *ds.ServiceRequest) notify.Delivery
}

// Lifecycle — контроллер жизненного цикла заявок: создание, переходы
// статусов, гараж и бонусный счёт
type Lifecycle struct {
	store      Store
	categories *category.Table
	notifier   Notifier
	cfg        config.LifecycleConfig
}

func NewLifecycle(store Store, categories *category.Table, notifier Notifier, cfg config.LifecycleConfig) *Lifecycle {
	return &Lifecycle{
		store:      store,
		categories: categories,
		notifier:   notifier,
		cfg:        cfg,
	}
}
