package bot

import (
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/logger"
)

// channelName adapts a public @handle to the Recipient interface so it can
// be passed to chat member lookups without resolving the numeric chat id.
type channelName string

func (c channelName) Recipient() string { return string(c) }

// Gate checks whether an identity may use the bot by verifying membership in
// the configured channel. An empty channel disables the gate.
type Gate struct {
	bot     *tele.Bot
	channel string
}

// NewGate builds a membership gate for the given channel handle.
func NewGate(bot *tele.Bot, channel string) *Gate {
	return &Gate{bot: bot, channel: strings.TrimSpace(channel)}
}

// Enabled reports whether a channel is configured.
func (g *Gate) Enabled() bool {
	return g != nil && g.channel != ""
}

// Channel returns the configured @handle.
func (g *Gate) Channel() string {
	if g == nil {
		return ""
	}
	return g.channel
}

// IsMember reports whether the user belongs to the gating channel. Lookup
// failures count as not a member, so a misconfigured gate blocks rather
// than silently opening the bot.
func (g *Gate) IsMember(userID int64) bool {
	if !g.Enabled() {
		return true
	}
	member, err := g.bot.ChatMemberOf(channelName(g.channel), &tele.User{ID: userID})
	if err != nil {
		logger.Warn(nil, "bot", "gate.check_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return false
	}
	switch member.Role {
	case tele.Member, tele.Creator, tele.Administrator:
		return true
	}
	return false
}
