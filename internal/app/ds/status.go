package ds

import "fmt"

// Status — статус заявки. Жизненный цикл:
// new -> inwork -> done | canceled
type Status string

const (
	StatusNew      Status = "new"
	StatusInWork   Status = "inwork"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

// ParseStatus проверяет строковое значение статуса
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInWork, StatusDone, StatusCanceled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// IsTerminal — из done и canceled переходов больше нет
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// CanTransition проверяет допустимость перехода по графу статусов.
// allowReopen разрешает возврат терминальной заявки в работу
// (политика для корректировок, по умолчанию выключена).
func (s Status) CanTransition(to Status, allowReopen bool) bool {
	switch s {
	case StatusNew:
		return to == StatusInWork || to == StatusCanceled
	case StatusInWork:
		return to == StatusDone || to == StatusCanceled
	case StatusDone, StatusCanceled:
		return allowReopen && to == StatusInWork
	}
	return false
}

// Label — подпись статуса для сообщений клиенту и в топик
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "Новая"
	case StatusInWork:
		return "В работе"
	case StatusDone:
		return "Выполнена"
	case StatusCanceled:
		return "Отменена"
	}
	return string(s)
}
