package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"autoservice/internal/app/ds"
	"autoservice/internal/app/repository"
	"autoservice/internal/app/service"
	"autoservice/internal/app/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// окно, в котором повторная доставка callback считается дубликатом
const callbackDedupTTL = 24 * time.Hour

// TelegramWebhook принимает обновления Bot API. Интересуют только
// нажатия inline-кнопок менеджерами: callback_data вида
// action:<id заявки>:<новый статус>. Всегда отвечаем 200, иначе
// Telegram будет повторять доставку; ретраи и так отфильтрует
// дедупликация по id callback query.
func (h *Handler) TelegramWebhook(ctx *gin.Context) {
	if secret := h.Config.Telegram.WebhookSecret; secret != "" {
		if ctx.GetHeader("X-Telegram-Bot-Api-Secret-Token") != secret {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
	}

	var update telegram.Update
	if err := ctx.ShouldBindJSON(&update); err != nil {
		logrus.Warnf("webhook: bad update payload: %v", err)
		ctx.Status(http.StatusOK)
		return
	}

	cq := update.CallbackQuery
	if cq == nil || !strings.HasPrefix(cq.Data, "action:") {
		ctx.Status(http.StatusOK)
		return
	}

	if h.Redis != nil {
		first, err := h.Redis.FirstDelivery(ctx.Request.Context(), cq.ID, callbackDedupTTL)
		if err != nil {
			logrus.Warnf("webhook: dedup check failed: %v", err)
		} else if !first {
			logrus.Infof("webhook: duplicate callback %s skipped", cq.ID)
			ctx.Status(http.StatusOK)
			return
		}
	}

	h.handleStatusAction(cq)
	ctx.Status(http.StatusOK)
}

func (h *Handler) handleStatusAction(cq *telegram.CallbackQuery) {
	parts := strings.Split(cq.Data, ":")
	if len(parts) != 3 {
		h.answerCallback(cq.ID, "Некорректное действие")
		return
	}
	requestID := parts[1]

	newStatus, err := ds.ParseStatus(parts[2])
	if err != nil {
		h.answerCallback(cq.ID, "Некорректный статус")
		return
	}

	updated, err := h.Lifecycle.Transition(requestID, newStatus)
	switch {
	case err == nil:
		h.answerCallback(cq.ID, "Статус: "+updated.Status.Label())
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, repository.ErrStatusConflict):
		// проигравший гонку менеджер видит победивший статус
		h.answerCallback(cq.ID, "Уже в статусе: "+updated.Status.Label())
	case errors.Is(err, repository.ErrNotFound):
		h.answerCallback(cq.ID, "Заявка не найдена")
	default:
		logrus.Errorf("webhook: transition %s failed: %v", cq.Data, err)
		h.answerCallback(cq.ID, "Ошибка, попробуйте ещё раз")
	}
}

func (h *Handler) answerCallback(callbackID, text string) {
	if h.Telegram == nil {
		return
	}
	if err := h.Telegram.AnswerCallbackQuery(callbackID, text); err != nil {
		logrus.Warnf("webhook: answer callback: %v", err)
	}
}
