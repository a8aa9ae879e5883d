package category

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown — категория не распознана, заявка отклоняется с 400
var ErrUnknown = errors.New("категория не распознана")

// Category — одна строка таблицы маршрутизации: ключ категории,
// отображаемая подпись, топик супергруппы и набор ключевых слов
type Category struct {
	Key      string
	Label    string
	TopicID  int
	Keywords []string
}

// Topics — номера топиков форума по категориям. Задаются через окружение,
// значения по умолчанию соответствуют нумерации супергруппы сервиса.
type Topics struct {
	Wash      int
	Service   int
	Detailing int
	Body      int
	Tuning    int
}

// DefaultTopics возвращает нумерацию топиков по умолчанию
func DefaultTopics() Topics {
	return Topics{Wash: 2, Service: 4, Detailing: 6, Body: 8, Tuning: 10}
}

// Table — упорядоченный список категорий. Порядок объявления важен:
// при пересечении ключевых слов выигрывает более ранняя категория,
// поэтому категория с общим словом "ремонт" объявлена последней.
type Table struct {
	categories []Category
}

// NewTable строит таблицу маршрутизации для заданных топиков
func NewTable(t Topics) *Table {
	return &Table{categories: []Category{
		{
			Key:      "wash",
			Label:    "Мойка/шиномонтаж",
			TopicID:  t.Wash,
			Keywords: []string{"мойк", "мойка", "шиномонтаж", "шин", "wash", "tire"},
		},
		{
			Key:      "detailing",
			Label:    "Детейлинг",
			TopicID:  t.Detailing,
			Keywords: []string{"детейлинг", "детейл", "полировк", "detail"},
		},
		{
			Key:      "body",
			Label:    "Кузовной ремонт",
			TopicID:  t.Body,
			Keywords: []string{"кузов", "body", "покраск"},
		},
		{
			Key:      "tuning",
			Label:    "Тюнинг",
			TopicID:  t.Tuning,
			Keywords: []string{"тюнинг", "tuning", "чип"},
		},
		{
			Key:      "service",
			Label:    "ТО/Ремонт",
			TopicID:  t.Service,
			Keywords: []string{"то/ремонт", "техобслуживание", "ремонт", "service", "repair"},
		},
	}}
}

// Validate проверяет таблицу при старте: топики должны быть заданы,
// ключи не должны повторяться. Падаем сразу, а не на первой заявке.
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.categories))
	for _, c := range t.categories {
		if c.TopicID <= 0 {
			return fmt.Errorf("категория %s: не задан номер топика", c.Key)
		}
		if seen[c.Key] {
			return fmt.Errorf("категория %s объявлена дважды", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// Resolve сопоставляет вход с категорией. Принимает либо ключ,
// либо свободный текст (подпись, ключевые слова в любом написании).
func (t *Table) Resolve(input string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(input))
	if norm == "" {
		return Category{}, ErrUnknown
	}

	// Точное совпадение ключа или подписи
	for _, c := range t.categories {
		if norm == c.Key || norm == strings.ToLower(c.Label) {
			return c, nil
		}
	}

	// Поиск по ключевым словам, в порядке объявления
	for _, c := range t.categories {
		for _, kw := range c.Keywords {
			if strings.Contains(norm, kw) {
				return c, nil
			}
		}
	}

	return Category{}, ErrUnknown
}

// ByKey возвращает категорию по её нормализованному ключу
func (t *Table) ByKey(key string) (Category, error) {
	for _, c := range t.categories {
		if c.Key == key {
			return c, nil
		}
	}
	return Category{}, ErrUnknown
}

// Categories возвращает таблицу в порядке объявления
func (t *Table) Categories() []Category {
	return t.categories
}
