package router

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/logger"
	tg "github.com/srchub/structbot/internal/telegram"
	"github.com/srchub/structbot/internal/telegram/middleware"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	OwnerID       int64
	OnOwnerReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	ownerOpts := middleware.OwnerOptions{
		OwnerID:  opts.OwnerID,
		OnReject: opts.OnOwnerReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for name, def := range reg.Commands() {
		cmdName := name
		inner := def.Handler
		h := func(c tele.Context) error {
			return handleWithSummary(c, normalizeHandlerName(cmdName), time.Now(), func() error {
				return inner(c)
			})
		}
		h = middleware.Logging(h)
		h = middleware.Recover(h)
		if def.OwnerOnly {
			h = middleware.OwnerOnly(ownerOpts)(h)
		}
		routes = append(routes, tg.Route{Endpoint: cmdName, Handler: h})
	}

	logger.Info(nil, "tg.wire", "wire.complete",
		slog.Int("count", len(reg.Commands())),
	)

	return routes
}
