package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/model"
	"github.com/srchub/structbot/internal/telegram/format"
	"github.com/srchub/structbot/internal/telegram/helpers"
)

const ownerUsersPreview = 7

// handleOwnerStats shows aggregate totals to the owner. Access is enforced
// by the command router's owner-only wrapper.
func (h *Handlers) handleOwnerStats(c tele.Context) error {
	ctx, cancel := h.storeContext(c)
	defer cancel()

	totalUsers, err := h.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	totalSnippets, err := h.store.CountSnippets(ctx)
	if err != nil {
		return err
	}
	dayAgo := time.Now().Add(-24 * time.Hour).Unix()
	daily, err := h.store.CountUsersSince(ctx, dayAgo)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"🤖 Hi My Leader 👋\n\n📉 Total User : %d\n📉 Daily User : %d\n📉 Total Struct : %d",
		totalUsers, daily, totalSnippets,
	)
	return helpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: ownerKeyboard()})
}

// handleOwnerUsers lists the most recent users behind the Check Users
// button.
func (h *Handlers) handleOwnerUsers(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || !h.isOwner(sender.ID) {
		return c.Respond(&tele.CallbackResponse{Text: textNotAllowed})
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()

	total, err := h.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	users, err := h.store.ListRecentUsers(ctx, ownerUsersPreview)
	if err != nil {
		return err
	}

	// Replace the stats message in place; names come from users, so escape.
	text := fmt.Sprintf("👤 Total User Profile : %d\n\n%s", total, userLines(users))
	return helpers.EditOrSendHTML(c, format.EscapeHTML(text))
}

// handleOwnerListUsers handles the owner's bare-number shortcut: list the N
// most recent users.
func (h *Handlers) handleOwnerListUsers(c tele.Context, raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()
	users, err := h.store.ListRecentUsers(ctx, n)
	if err != nil {
		return err
	}

	return helpers.SendText(c, "👤 Total User Profile:\n\n"+userLines(users))
}

func userLines(users []model.User) string {
	lines := make([]string, 0, len(users))
	for i, u := range users {
		lines = append(lines, fmt.Sprintf("👤 %d : %s", i+1, u.DisplayLabel()))
	}
	return strings.Join(lines, "\n")
}
