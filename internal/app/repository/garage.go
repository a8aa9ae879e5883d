package repository

import (
	"errors"

	"autoservice/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для гаража пользователя

func (r *Repository) AddCar(car *ds.GarageCar) error {
	return r.db.Create(car).Error
}

func (r *Repository) GetCar(id string) (*ds.GarageCar, error) {
	var car ds.GarageCar
	err := r.db.First(&car, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// ListCars возвращает машины пользователя, свежие первыми
func (r *Repository) ListCars(userID int64) ([]ds.GarageCar, error) {
	var cars []ds.GarageCar
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *Repository) DeleteCar(id string) error {
	result := r.db.Delete(&ds.GarageCar{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActiveCar записывает активную машину пользователя (nil — сброс).
// Upsert по user_id: профиль создаётся при первом обращении.
func (r *Repository) SetActiveCar(userID int64, carID *string) error {
	profile := ds.GarageProfile{UserID: userID, ActiveCarID: carID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"active_car_id"}),
	}).Create(&profile).Error
}

func (r *Repository) GetActiveCarID(userID int64) (*string, error) {
	var profile ds.GarageProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile.ActiveCarID, nil
}
