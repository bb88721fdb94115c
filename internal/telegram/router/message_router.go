package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/srchub/structbot/internal/telegram"
	"github.com/srchub/structbot/internal/telegram/middleware"
)

// Dialogue is the minimal interface the text router needs from the
// conversation layer: whether a user is mid-dialogue and how to feed the
// message into it.
type Dialogue interface {
	InProgress(userID int64) bool
	HandleText(c tele.Context) error
}

// TextRoute builds the handler for plain text updates. Active dialogues win
// over command lookup, which wins over the registry's text fallback.
func TextRoute(dlg Dialogue, reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if dlg != nil && c.Sender() != nil && dlg.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "dialogue", start, func() error {
				return dlg.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		logHandlerSummary(c, "unknown_text", start, nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.Recover(middleware.Logging(handler)),
	}
}
