package notify

import (
	"fmt"
	"strings"

	"autoservice/internal/app/ds"
	"autoservice/internal/app/telegram"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape экранирует пользовательский текст для HTML-разметки Telegram,
// чтобы содержимое заявки не ломало структуру сообщения
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// FormatStaffMessage рендерит заявку в сообщение для топика менеджеров.
// Порядок полей фиксированный: категория, статус, машина, описание,
// клиент, номер заявки, время — менеджеры сканируют сообщения глазами.
func FormatStaffMessage(req *ds.ServiceRequest) string {
	var b strings.Builder

	b.WriteString("<b>Заявка на обслуживание</b>\n")
	fmt.Fprintf(&b, "<b>Категория:</b> %s\n", Escape(req.CategoryLabel))
	fmt.Fprintf(&b, "<b>Статус:</b> %s\n", req.Status.Label())
	if req.CarClass != "" {
		fmt.Fprintf(&b, "<b>Класс:</b> %s\n", Escape(req.CarClass))
	}
	fmt.Fprintf(&b, "<b>Марка/модель:</b> %s\n", Escape(req.CarModel))
	if req.CarTitle != "" {
		car := req.CarTitle
		if req.CarPlate != "" {
			car += " (" + req.CarPlate + ")"
		}
		fmt.Fprintf(&b, "<b>Из гаража:</b> %s\n", Escape(car))
	}
	fmt.Fprintf(&b, "<b>Описание:</b> %s\n", Escape(req.Description))
	b.WriteString("\n")
	fmt.Fprintf(&b, "<b>Клиент:</b> %s\n", Escape(req.ClientLine))
	fmt.Fprintf(&b, "<b>Заявка:</b> %s\n", req.ID)
	fmt.Fprintf(&b, "<b>Создана:</b> %s", req.CreatedAt.Format("02.01.2006 15:04"))

	return b.String()
}

// FormatClientStatusMessage — уведомление клиенту о смене статуса
func FormatClientStatusMessage(req *ds.ServiceRequest) string {
	return fmt.Sprintf(
		"Статус вашей заявки «%s» изменён: <b>%s</b>",
		Escape(req.CategoryLabel),
		req.Status.Label(),
	)
}

// StatusKeyboard строит inline-кнопки доступных переходов.
// callback_data: action:<id заявки>:<новый статус>
func StatusKeyboard(req *ds.ServiceRequest, allowReopen bool) *telegram.InlineKeyboardMarkup {
	var row []telegram.InlineKeyboardButton
	for _, next := range nextStatuses(req.Status, allowReopen) {
		row = append(row, telegram.InlineKeyboardButton{
			Text:         actionLabel(next),
			CallbackData: fmt.Sprintf("action:%s:%s", req.ID, next),
		})
	}
	if len(row) == 0 {
		return nil
	}
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{row},
	}
}

func nextStatuses(from ds.Status, allowReopen bool) []ds.Status {
	var out []ds.Status
	for _, to := range []ds.Status{ds.StatusInWork, ds.StatusDone, ds.StatusCanceled} {
		if from.CanTransition(to, allowReopen) {
			out = append(out, to)
		}
	}
	return out
}

func actionLabel(s ds.Status) string {
	switch s {
	case ds.StatusInWork:
		return "▶ В работу"
	case ds.StatusDone:
		return "✅ Выполнена"
	case ds.StatusCanceled:
		return "✖ Отменить"
	}
	return s.Label()
}
