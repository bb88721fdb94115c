// Package bot implements the dialogue dispatcher: commands, callbacks, and
// text routing on top of the session, flow, and storage layers.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/config"
	"github.com/srchub/structbot/internal/logger"
	"github.com/srchub/structbot/internal/session"
	"github.com/srchub/structbot/internal/storage"
	tg "github.com/srchub/structbot/internal/telegram"
	"github.com/srchub/structbot/internal/telegram/helpers"
)

const storeTimeout = 5 * time.Second

// Handlers binds the bot's update handling to its collaborators. The session
// manager is injected so tests can exercise dispatch against an isolated
// instance.
type Handlers struct {
	bot      *tele.Bot
	store    *storage.Store
	sessions *session.Manager
	gate     *Gate
	cfg      *config.Config
}

// New constructs the handler set.
func New(b *tele.Bot, store *storage.Store, sessions *session.Manager, gate *Gate, cfg *config.Config) *Handlers {
	return &Handlers{bot: b, store: store, sessions: sessions, gate: gate, cfg: cfg}
}

// Sessions exposes the session manager for the text router.
func (h *Handlers) Sessions() *session.Manager {
	return h.sessions
}

// InProgress reports whether the identity has an active dialogue.
func (h *Handlers) InProgress(userID int64) bool {
	return h.sessions.InProgress(userID)
}

// Register wires all commands and callbacks into the registry.
func (h *Handlers) Register(reg *tg.Registry) error {
	if err := reg.RegisterCommand("/start", tg.Command{
		Handler:     h.handleStart,
		Description: "Show your profile and the main menu",
	}); err != nil {
		return err
	}
	if err := reg.RegisterCommand("/ownercmd", tg.Command{
		Handler:     h.handleOwnerStats,
		Description: "Owner statistics",
		OwnerOnly:   true,
		Hidden:      true,
	}); err != nil {
		return err
	}

	callbacks := map[string]tele.HandlerFunc{
		cbJoinedCheck:     h.handleJoinedCheck,
		cbSimpleStructure: h.handleSimpleStructure,
		cbSimpleSingle:    h.flowEntry(cbSimpleSingle),
		cbSimpleMulti:     h.flowEntry(cbSimpleMulti),
		cbHookStructure:   h.flowEntry(cbHookStructure),
		cbSettings:        h.handleSettings,
		cbViewSaved:       h.handleViewSaved,
		cbDeleteStruct:    h.handleDeleteStruct,
		cbBotInfo:         h.handleBotInfo,
		cbStructPatch:     h.structKindChoice(cbStructPatch),
		cbStructMemory:    h.structKindChoice(cbStructMemory),
		cbSaveStruct:      h.handleSaveStruct,
		cbBackToProfile:   h.handleBackToProfile,
		cbNoop:            h.handleNoop,
		cbOwnerUsers:      h.handleOwnerUsers,
	}
	for _, lib := range libraryKeys() {
		callbacks["lib_"+lib] = h.libraryChoice(lib)
	}
	for key, fn := range callbacks {
		if err := reg.RegisterCallback(key, fn); err != nil {
			return err
		}
	}

	reg.SetTextFallback(h.handleFallbackText)
	return nil
}

// HandleText feeds a plain text update into the active dialogue. The text
// router calls this only when InProgress reported true.
func (h *Handlers) HandleText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	h.touchUser(c)
	return h.sessions.Do(sender.ID, func() error {
		return h.advanceWithText(c, sender.ID, c.Text())
	})
}

// handleFallbackText covers text outside any dialogue: owner shortcuts and
// the generic hint.
func (h *Handlers) handleFallbackText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	h.touchUser(c)

	text := strings.TrimSpace(c.Text())
	if h.isOwner(sender.ID) && text != "" && text != "0" && isDigits(text) {
		return h.handleOwnerListUsers(c, text)
	}
	return helpers.SendText(c, textUnknownHint)
}

func (h *Handlers) isOwner(userID int64) bool {
	return h.cfg != nil && h.cfg.Telegram.OwnerID != 0 && userID == h.cfg.Telegram.OwnerID
}

// touchUser upserts the sender's profile row. Failures are logged and do not
// interrupt the dialogue.
func (h *Handlers) touchUser(c tele.Context) {
	sender := c.Sender()
	if sender == nil {
		return
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()
	if err := h.store.UpsertUser(ctx, sender.ID, sender.Username, fullName(sender)); err != nil {
		logger.Warn(ctx, "bot", "user.upsert_failed",
			slog.Int64("user_id", sender.ID),
			slog.String("err", err.Error()),
		)
	}
}

func (h *Handlers) storeContext(c tele.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(helpers.BuildContext(c), storeTimeout)
}

func fullName(u *tele.User) string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
