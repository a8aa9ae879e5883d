package middleware

import (
	"net/http"

	"autoservice/internal/app/config"
	"autoservice/internal/app/ds"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const (
	// заголовок с подписанным initData из Telegram.WebApp
	InitDataHeader = "X-Telegram-Init-Data"
	contextUserKey = "tgUser"
)

type AuthMiddleware struct {
	botToken string
	cfg      config.AuthConfig
}

func NewAuthMiddleware(botToken string, cfg config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{
		botToken: botToken,
		cfg:      cfg,
	}
}

// WithInitData проверяет подпись initData и кладёт пользователя
// в контекст. Подпись пересчитывается от токена бота; устаревшая
// (старше окна свежести) или невалидная — 401 до любых мутаций.
// При выключенном RequireInitData запрос без заголовка пропускается,
// хендлер берёт пользователя из тела (ранний вариант мини-аппы).
func (am *AuthMiddleware) WithInitData() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(InitDataHeader)
		if raw == "" {
			if am.cfg.RequireInitData {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"ok":    false,
					"error": "missing init data",
				})
				return
			}
			c.Next()
			return
		}

		if err := initdata.Validate(raw, am.botToken, am.cfg.InitDataTTL); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "init data rejected: " + err.Error(),
			})
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil || parsed.User.ID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "init data has no user",
			})
			return
		}

		c.Set(contextUserKey, ds.TgUser{
			ID:        parsed.User.ID,
			FirstName: parsed.User.FirstName,
			LastName:  parsed.User.LastName,
			Username:  parsed.User.Username,
		})
		c.Next()
	}
}

// UserFromContext достаёт проверенного пользователя из контекста
func UserFromContext(c *gin.Context) (ds.TgUser, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return ds.TgUser{}, false
	}
	user, ok := v.(ds.TgUser)
	return user, ok
}
