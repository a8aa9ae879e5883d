package repository

import (
	"errors"
	"fmt"

	"autoservice/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Ошибки хранилища. Слой хендлеров переводит их в HTTP-коды.
var (
	ErrNotFound = errors.New("запись не найдена")
	// Условное обновление статуса не прошло: заявку уже перевели
	// в другой статус параллельным действием
	ErrStatusConflict = errors.New("статус заявки уже изменён")
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.ServiceRequest{},
		&ds.GarageCar{},
		&ds.GarageProfile{},
		&ds.BonusEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}
