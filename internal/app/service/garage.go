package service

import (
	"fmt"
	"strings"
	"time"

	"autoservice/internal/app/ds"

	"github.com/google/uuid"
)

// Операции с гаражом. Все методы работают от имени аутентифицированного
// пользователя: чужие машины недоступны.

// AddCar добавляет машину. Если это единственная машина пользователя,
// она сразу становится активной.
func (l *Lifecycle) AddCar(userID int64, title, carClass, plate string) (*ds.GarageCar, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title", ErrValidation)
	}

	car := &ds.GarageCar{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CarClass:  strings.TrimSpace(carClass),
		Plate:     strings.TrimSpace(plate),
		CreatedAt: time.Now(),
	}
	if err := l.store.AddCar(car); err != nil {
		return nil, err
	}

	cars, err := l.store.ListCars(userID)
	if err != nil {
		return nil, err
	}
	if len(cars) == 1 {
		if err := l.store.SetActiveCar(userID, &car.ID); err != nil {
			return nil, err
		}
	}

	return car, nil
}

// SetActiveCar назначает активную машину. Машина должна принадлежать
// вызывающему, иначе Forbidden.
func (l *Lifecycle) SetActiveCar(userID int64, carID string) error {
	car, err := l.store.GetCar(carID)
	if err != nil {
		return err
	}
	if car.UserID != userID {
		return ErrForbidden
	}
	return l.store.SetActiveCar(userID, &carID)
}

// DeleteCar удаляет машину владельца. Если удалена активная,
// активной становится самая свежая из оставшихся, либо null.
func (l *Lifecycle) DeleteCar(userID int64, carID string) error {
	car, err := l.store.GetCar(carID)
	if err != nil {
		return err
	}
	if car.UserID != userID {
		return ErrForbidden
	}

	if err := l.store.DeleteCar(carID); err != nil {
		return err
	}

	activeID, err := l.store.GetActiveCarID(userID)
	if err != nil {
		return err
	}
	if activeID == nil || *activeID != carID {
		return nil
	}

	remaining, err := l.store.ListCars(userID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return l.store.SetActiveCar(userID, nil)
	}
	return l.store.SetActiveCar(userID, &remaining[0].ID)
}

// Garage возвращает машины пользователя и id активной
func (l *Lifecycle) Garage(userID int64) ([]ds.GarageCar, *string, error) {
	cars, err := l.store.ListCars(userID)
	if err != nil {
		return nil, nil, err
	}
	activeID, err := l.store.GetActiveCarID(userID)
	if err != nil {
		return nil, nil, err
	}
	return cars, activeID, nil
}

// BonusBalance — текущий баланс бонусов пользователя
func (l *Lifecycle) BonusBalance(userID int64) (int, error) {
	return l.store.BonusBalance(userID)
}
