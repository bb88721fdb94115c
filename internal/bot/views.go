package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/logger"
	"github.com/srchub/structbot/internal/storage"
	"github.com/srchub/structbot/internal/telegram/callbacks"
	"github.com/srchub/structbot/internal/telegram/format"
	"github.com/srchub/structbot/internal/telegram/helpers"
)

// handleStart greets the user, enforcing the channel gate first.
func (h *Handlers) handleStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	h.touchUser(c)

	if !h.gate.IsMember(sender.ID) {
		return helpers.SendText(c, textJoinFirst, &tele.SendOptions{ReplyMarkup: joinKeyboard(h.gate.Channel())})
	}
	return h.sendProfilePage(c)
}

// handleJoinedCheck re-checks membership after the user claims to have
// joined.
func (h *Handlers) handleJoinedCheck(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	if !h.gate.IsMember(sender.ID) {
		return c.Respond(&tele.CallbackResponse{Text: textNotJoinedYet, ShowAlert: true})
	}
	_ = c.Edit(textJoinedThanks)
	return h.sendProfilePage(c)
}

// sendProfilePage shows the profile card with the user's photo when one is
// available.
func (h *Handlers) sendProfilePage(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	username := "—"
	if sender.Username != "" {
		username = "@" + sender.Username
	}
	text := fmt.Sprintf(
		"👤 Nick name : %s\n👤 Username : %s\n👤 ID : %d\n"+
			"----------------------------------------\n"+
			"Channel : %s\n",
		fullName(sender), username, sender.ID, h.gate.Channel(),
	)

	kb := profileKeyboard()
	if photo := h.profilePhoto(sender); photo != nil {
		photo.Caption = text
		return c.Send(photo, &tele.SendOptions{ReplyMarkup: kb})
	}
	return helpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: kb})
}

// profilePhoto returns the user's first profile photo, or nil when there is
// none or the lookup fails.
func (h *Handlers) profilePhoto(user *tele.User) *tele.Photo {
	photos, err := h.bot.ProfilePhotosOf(user)
	if err != nil {
		logger.Debug(nil, "bot", "profile.photo_failed",
			slog.Int64("user_id", user.ID),
			slog.String("err", err.Error()),
		)
		return nil
	}
	if len(photos) == 0 {
		return nil
	}
	return &photos[0]
}

// handleSettings shows the per-user usage summary.
func (h *Handlers) handleSettings(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	h.touchUser(c)

	ctx, cancel := h.storeContext(c)
	defer cancel()

	var (
		structCount int64
		since       = "—"
	)
	if u, err := h.store.GetUser(ctx, sender.ID); err == nil {
		structCount = u.StructuresCount
		if u.FirstSeen > 0 {
			since = time.Unix(u.FirstSeen, 0).Format("2006-01-02")
		}
	}
	snippets, err := h.store.ListSnippets(ctx, sender.ID)
	if err != nil {
		logger.Warn(ctx, "bot", "settings.list_failed",
			slog.String("err", err.Error()),
		)
	}

	text := fmt.Sprintf(
		"👤 Your Settings\n\nTotal generated structures: %d\nUsing since: %s\n\nSaved Structures: %d",
		structCount, since, len(snippets),
	)
	return helpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: settingsKeyboard()})
}

// handleViewSaved sends each stored snippet as its own message with a
// Delete button.
func (h *Handlers) handleViewSaved(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	snippets, err := h.store.ListSnippets(ctx, sender.ID)
	if err != nil {
		return err
	}
	if len(snippets) == 0 {
		return helpers.SendText(c, textNoSaved)
	}
	for _, s := range snippets {
		created := time.Unix(s.CreatedAt, 0).Format("2006-01-02 15:04")
		body := format.Bold("🗂 Saved on "+created) + "\n\n" + format.Pre(s.Text)
		if err := helpers.SendHTML(c, body, deleteKeyboard(s.ID)); err != nil {
			return err
		}
	}
	return nil
}

// handleSaveStruct flips the kept flag. A pending payload targets the
// sender's most recent snippet.
func (h *Handlers) handleSaveStruct(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx, cancel := h.storeContext(c)
	defer cancel()

	payload := callbacks.CallbackPayload(c)
	var err error
	if payload == savePendingPayload || payload == "" {
		_, err = h.store.MarkLatestKept(ctx, sender.ID)
	} else {
		var id int64
		if id, err = callbacks.PayloadInt64(c); err == nil {
			err = h.store.MarkKept(ctx, id, sender.ID)
		}
	}
	if err != nil {
		logger.Warn(ctx, "bot", "snippet.save_failed",
			slog.String("payload", payload),
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: textSaveFailed})
	}

	_ = c.Respond(&tele.CallbackResponse{Text: textSavedOK})
	// Swap the Save button for the inert Saved marker.
	return c.Edit(saveKeyboard(0, true))
}

// handleDeleteStruct removes a snippet after an ownership check.
func (h *Handlers) handleDeleteStruct(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: textNotAllowed})
	}

	ctx, cancel := h.storeContext(c)
	defer cancel()
	if err := h.store.DeleteSnippet(ctx, id, sender.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: textNotAllowed})
		}
		return err
	}
	logger.Info(ctx, "bot", "snippet.deleted",
		slog.Int64("snippet_id", id),
	)
	return c.Respond(&tele.CallbackResponse{Text: textDeleted})
}

// handleBotInfo shows static bot information.
func (h *Handlers) handleBotInfo(c tele.Context) error {
	text := "🤖 Bot : Bypass Structure Maker Bot\n" +
		"👤 Founder : @XTHrlen\n" +
		"👤 Developer : @XTHrlen\n" +
		"🔎 Bot Created : Tue, 30 September\n" +
		"🎀 Telegram Channel : " + h.gate.Channel() + "\n" +
		"✨ Website : srchub.kesug.com"
	return helpers.SendText(c, text)
}

func (h *Handlers) handleBackToProfile(c tele.Context) error {
	return h.sendProfilePage(c)
}

func (h *Handlers) handleNoop(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{Text: textNoop})
}
