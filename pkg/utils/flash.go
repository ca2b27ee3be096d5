package utils

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"

	FlashSessionName = "ogef_flash"
	flashNowKey      = "flash.now"
)

type FlashMessage struct {
	Category string
	Message  string
}

func init() {
	// securecookie кодирует значения сессии через gob
	gob.Register(FlashMessage{})
}

// Flasher хранит сообщения между редиректом и следующей страницей в сессии
// gorilla/sessions (cookie, подписанная SECRET_KEY).
type Flasher struct {
	store *sessions.CookieStore
}

func NewFlasher(secret string) *Flasher {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return &Flasher{store: store}
}

// Middleware кладёт хранилище сессий в контекст запроса.
func (f *Flasher) Middleware() echo.MiddlewareFunc {
	return session.Middleware(f.store)
}

// Add кладёт сообщение в сессию для следующего запроса (после редиректа).
func (f *Flasher) Add(c echo.Context, category, message string) error {
	sess, err := session.Get(FlashSessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(FlashMessage{Category: category, Message: message})
	return sess.Save(c.Request(), c.Response())
}

// Now показывает сообщение в текущем ответе, сессия не трогается.
func (f *Flasher) Now(c echo.Context, category, message string) {
	now, _ := c.Get(flashNowKey).([]FlashMessage)
	c.Set(flashNowKey, append(now, FlashMessage{Category: category, Message: message}))
}

// Consume возвращает сообщения из сессии и текущего запроса. Прочитанные
// сообщения из сессии удаляются.
func (f *Flasher) Consume(c echo.Context) []FlashMessage {
	var messages []FlashMessage

	// Подделанная или устаревшая cookie даёт новую пустую сессию вместе с ошибкой.
	if sess, _ := session.Get(FlashSessionName, c); sess != nil {
		if flashes := sess.Flashes(); len(flashes) > 0 {
			for _, v := range flashes {
				if m, ok := v.(FlashMessage); ok {
					messages = append(messages, m)
				}
			}
			_ = sess.Save(c.Request(), c.Response())
		}
	}

	if now, ok := c.Get(flashNowKey).([]FlashMessage); ok {
		messages = append(messages, now...)
	}
	return messages
}
