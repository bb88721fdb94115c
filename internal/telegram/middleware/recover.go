// Package middleware holds the shared tele middlewares: panic recovery,
// receipt logging, per-user rate limiting, and owner-only access.
package middleware

import (
	"log/slog"
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/logger"
)

// Recover catches panics in handlers and keeps the bot running.
func Recover(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(nil, "tg", "tg.panic",
					slog.Any("err", r),
					slog.String("payload", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
