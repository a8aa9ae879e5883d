package notify

import (
	"strings"
	"testing"
	"time"

	"autoservice/internal/app/ds"
)

func sampleRequest() *ds.ServiceRequest {
	return &ds.ServiceRequest{
		ID:            "a1b2c3",
		UserID:        42,
		CategoryKey:   "service",
		CategoryLabel: "ТО/Ремонт",
		CarClass:      "Бизнес",
		CarModel:      "BMW 5",
		Description:   "замена масла",
		Status:        ds.StatusNew,
		ClientLine:    "Иван | @ivan | id 42",
		CreatedAt:     time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC),
	}
}

func TestEscape(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a & b", "a &amp; b"},
		{"<b>жирный</b>", "&lt;b&gt;жирный&lt;/b&gt;"},
		{"обычный текст", "обычный текст"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatStaffMessageOrder(t *testing.T) {
	msg := FormatStaffMessage(sampleRequest())

	// Фиксированный порядок полей
	fields := []string{"Категория:", "Статус:", "Класс:", "Марка/модель:", "Описание:", "Клиент:", "Заявка:", "Создана:"}
	pos := -1
	for _, f := range fields {
		i := strings.Index(msg, f)
		if i < 0 {
			t.Fatalf("field %q missing in message:\n%s", f, msg)
		}
		if i < pos {
			t.Errorf("field %q out of order", f)
		}
		pos = i
	}
}

func TestFormatStaffMessageEscapesUserText(t *testing.T) {
	req := sampleRequest()
	req.Description = "<script>alert(1)</script> & ещё"

	msg := FormatStaffMessage(req)
	if strings.Contains(msg, "<script>") {
		t.Error("user text must be escaped")
	}
	if !strings.Contains(msg, "&lt;script&gt;") || !strings.Contains(msg, "&amp; ещё") {
		t.Errorf("escaped content missing:\n%s", msg)
	}
}

func TestFormatStaffMessageOptionalFields(t *testing.T) {
	req := sampleRequest()
	req.CarClass = ""
	req.CarTitle = ""
	msg := FormatStaffMessage(req)
	if strings.Contains(msg, "Класс:") || strings.Contains(msg, "Из гаража:") {
		t.Error("empty optional fields must be omitted")
	}

	req.CarTitle = "BMW 520d"
	req.CarPlate = "А123ВС77"
	msg = FormatStaffMessage(req)
	if !strings.Contains(msg, "BMW 520d (А123ВС77)") {
		t.Errorf("garage car reference missing:\n%s", msg)
	}
}

func TestStatusKeyboard(t *testing.T) {
	req := sampleRequest()

	kb := StatusKeyboard(req, false)
	if kb == nil || len(kb.InlineKeyboard) != 1 {
		t.Fatal("keyboard for new request expected")
	}
	var datas []string
	for _, btn := range kb.InlineKeyboard[0] {
		datas = append(datas, btn.CallbackData)
	}
	want := []string{"action:a1b2c3:inwork", "action:a1b2c3:canceled"}
	if len(datas) != len(want) {
		t.Fatalf("buttons = %v, want %v", datas, want)
	}
	for i := range want {
		if datas[i] != want[i] {
			t.Errorf("button %d = %q, want %q", i, datas[i], want[i])
		}
	}

	// Терминальная заявка без reopen — кнопок нет
	req.Status = ds.StatusDone
	if kb = StatusKeyboard(req, false); kb != nil {
		t.Error("terminal request must have no keyboard")
	}
	// С reopen — одна кнопка возврата в работу
	if kb = StatusKeyboard(req, true); kb == nil || len(kb.InlineKeyboard[0]) != 1 {
		t.Error("reopen keyboard must offer exactly inwork")
	}
}

func TestDeliveryResults(t *testing.T) {
	if d := Delivered(); !d.Delivered || d.Reason != "" {
		t.Error("Delivered() malformed")
	}
	if d := Suppressed("no chat"); d.Delivered || d.Reason != "no chat" {
		t.Error("Suppressed() malformed")
	}
}
