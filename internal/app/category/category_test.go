package category

import (
	"errors"
	"testing"
)

func TestResolveKeyAndLabelAgree(t *testing.T) {
	table := NewTable(DefaultTopics())

	// Ключ, подпись и ключевые слова должны вести в один и тот же топик
	for _, c := range table.Categories() {
		byKey, err := table.Resolve(c.Key)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", c.Key, err)
		}
		byLabel, err := table.Resolve(c.Label)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", c.Label, err)
		}
		if byKey.TopicID != byLabel.TopicID {
			t.Errorf("%s: topic by key %d != topic by label %d", c.Key, byKey.TopicID, byLabel.TopicID)
		}
		for _, kw := range c.Keywords {
			got, err := table.Resolve(kw)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", kw, err)
			}
			if got.TopicID != byKey.TopicID && got.Key != c.Key {
				// Пересечение ключевых слов допустимо, но только в пользу
				// более ранней категории
				t.Errorf("keyword %q of %s resolved to later category %s", kw, c.Key, got.Key)
			}
		}
	}
}

func TestResolveVariants(t *testing.T) {
	table := NewTable(DefaultTopics())

	tests := []struct {
		input string
		key   string
	}{
		{"ТО/Ремонт", "service"},
		{"то/ремонт", "service"},
		{"  Нужен ремонт двигателя ", "service"},
		{"Мойка/шиномонтаж", "wash"},
		{"шиномонтаж", "wash"},
		{"Детейлинг", "detailing"},
		{"полировка кузова", "detailing"}, // детейлинг объявлен раньше кузовного
		{"Кузовной ремонт", "body"},
		{"покраска бампера", "body"},
		{"Тюнинг", "tuning"},
		{"чип-тюнинг", "tuning"},
		{"wash", "wash"},
		{"tuning", "tuning"},
	}

	for _, tt := range tests {
		got, err := table.Resolve(tt.input)
		if err != nil {
			t.Errorf("Resolve(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got.Key != tt.key {
			t.Errorf("Resolve(%q) = %s, want %s", tt.input, got.Key, tt.key)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	table := NewTable(DefaultTopics())

	for _, input := range []string{"", "   ", "эвакуатор", "страховка"} {
		if _, err := table.Resolve(input); !errors.Is(err, ErrUnknown) {
			t.Errorf("Resolve(%q): want ErrUnknown, got %v", input, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := NewTable(DefaultTopics()).Validate(); err != nil {
		t.Errorf("default table must validate: %v", err)
	}

	bad := NewTable(Topics{Wash: 2, Service: 0, Detailing: 6, Body: 8, Tuning: 10})
	if err := bad.Validate(); err == nil {
		t.Error("table with unset topic id must not validate")
	}
}
