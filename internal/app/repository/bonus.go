package repository

import (
	"autoservice/internal/app/ds"

	"gorm.io/gorm/clause"
)

// Методы для бонусного счёта

// CreditBonusOnce добавляет запись начисления. Уникальный индекс
// (user_id, request_id, reason) делает повторный вызов no-op:
// ON CONFLICT DO NOTHING, возвращаем false без ошибки.
func (r *Repository) CreditBonusOnce(entry *ds.BonusEntry) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// BonusBalance — баланс пользователя как сумма всех его начислений
func (r *Repository) BonusBalance(userID int64) (int, error) {
	var balance int64
	err := r.db.Model(&ds.BonusEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return int(balance), nil
}
