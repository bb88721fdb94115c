package bot

import (
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/flow"
	"github.com/srchub/structbot/internal/logger"
	"github.com/srchub/structbot/internal/telegram/format"
	"github.com/srchub/structbot/internal/telegram/helpers"
)

func libraryKeys() []string {
	libs := flow.Libraries()
	keys := make([]string, 0, len(libs))
	for _, lib := range libs {
		keys = append(keys, lib.Key)
	}
	return keys
}

func flowKindFor(key string) (flow.Kind, string) {
	switch key {
	case cbSimpleSingle:
		return flow.KindSingle, textSingleSelected
	case cbSimpleMulti:
		return flow.KindMulti, textMultiSelected
	default:
		return flow.KindHook, textHookSelected
	}
}

// flowEntry starts (or restarts) the selected dialogue for the sender.
func (h *Handlers) flowEntry(key string) tele.HandlerFunc {
	kind, intro := flowKindFor(key)
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		h.touchUser(c)
		return h.sessions.Do(sender.ID, func() error {
			h.sessions.Start(sender.ID, kind)
			logger.Info(helpers.BuildContext(c), "bot", "flow.entered",
				slog.String("flow", string(kind)),
			)
			return helpers.SendText(c, intro)
		})
	}
}

// advanceWithText feeds one text turn into the session. Caller holds the
// identity lock.
func (h *Handlers) advanceWithText(c tele.Context, userID int64, text string) error {
	st, ok := h.sessions.Get(userID)
	if !ok {
		return helpers.SendText(c, textSessionExpired)
	}

	next, out, err := flow.Advance(st, flow.Input{Kind: flow.InputText, Text: text})
	if err != nil {
		return h.flowError(c, userID, st, err)
	}
	h.sessions.Put(userID, next)
	return h.sendPrompt(c, out.Prompt)
}

// structKindChoice applies the PATCH_LIB / MemoryPatch selection.
func (h *Handlers) structKindChoice(key string) tele.HandlerFunc {
	kind := flow.StructLibraryPatch
	if key == cbStructMemory {
		kind = flow.StructMemoryPatch
	}
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		return h.sessions.Do(sender.ID, func() error {
			st, ok := h.sessions.Get(sender.ID)
			if !ok {
				return helpers.SendText(c, textSessionExpired)
			}
			next, out, err := flow.Advance(st, flow.Input{Kind: flow.InputStructKind, Struct: kind})
			if err != nil {
				return h.flowError(c, sender.ID, st, err)
			}
			h.sessions.Put(sender.ID, next)
			return h.sendPrompt(c, out.Prompt)
		})
	}
}

// libraryChoice applies the terminal library selection and, on success,
// renders and persists the snippet.
func (h *Handlers) libraryChoice(key string) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		lib, ok := flow.LibraryByKey(key)
		if !ok {
			return helpers.SendText(c, textSessionExpired)
		}
		return h.sessions.Do(sender.ID, func() error {
			st, found := h.sessions.Get(sender.ID)
			if !found {
				return helpers.SendText(c, textSessionExpired)
			}
			_, out, err := flow.Advance(st, flow.Input{Kind: flow.InputLibrary, Library: lib})
			if err != nil {
				return h.flowError(c, sender.ID, st, err)
			}
			h.sessions.Clear(sender.ID)
			return h.deliverCompletion(c, sender.ID, out.Done)
		})
	}
}

// deliverCompletion renders the finished flow, stores the snippet, and sends
// the result with a Save button.
func (h *Handlers) deliverCompletion(c tele.Context, userID int64, done *flow.Completion) error {
	if done == nil {
		return helpers.SendText(c, textSessionExpired)
	}
	text := done.Render()

	ctx, cancel := h.storeContext(c)
	defer cancel()
	id, err := h.store.RecordSnippet(ctx, userID, text)
	if err != nil {
		logger.Error(ctx, "bot", "snippet.record_failed",
			slog.String("flow", string(done.Flow)),
			slog.String("err", err.Error()),
		)
	} else {
		logger.Info(ctx, "bot", "snippet.generated",
			slog.String("flow", string(done.Flow)),
			slog.String("library", done.Library.File),
			slog.Int64("snippet_id", id),
			slog.Int("count", len(done.Offsets)),
		)
	}

	body, kb := completionReply(text, id, err)
	if kb == nil {
		return helpers.SendText(c, body)
	}
	return helpers.SendHTML(c, body, kb)
}

// completionReply builds the message for a finished flow. A failed record
// produces the retry notice with no Save button: an unpersisted snippet must
// never be saveable, or the button would target an older one.
func completionReply(text string, id int64, recordErr error) (string, *tele.ReplyMarkup) {
	if recordErr != nil {
		return textGenerateFailed, nil
	}
	return "✅ Generated Structure\n\n" + format.Pre(text), saveKeyboard(id, false)
}

// flowError maps ErrExpired onto the user-facing notice appropriate for the
// step that rejected the input.
func (h *Handlers) flowError(c tele.Context, userID int64, st flow.State, err error) error {
	if !errors.Is(err, flow.ErrExpired) {
		return err
	}
	// A terminal rejection with an empty offset set keeps the session alive
	// so the user can still supply offsets.
	if st.Step == flow.StepLibrary && len(st.Offsets) == 0 {
		if st.Flow == flow.KindMulti {
			return helpers.SendText(c, textOffsetsMissing)
		}
		return helpers.SendText(c, textOffsetMissing)
	}
	h.sessions.Clear(userID)
	return helpers.SendText(c, textSessionExpired)
}

func (h *Handlers) sendPrompt(c tele.Context, p flow.Prompt) error {
	switch p {
	case flow.PromptStructKind:
		return helpers.SendText(c, textStructKindChoice, &tele.SendOptions{ReplyMarkup: structKindKeyboard()})
	case flow.PromptParams:
		return helpers.SendText(c, textHookParams)
	case flow.PromptLibrary:
		return helpers.SendText(c, textLibraryChoice, &tele.SendOptions{ReplyMarkup: libraryKeyboard()})
	}
	return nil
}

// handleSimpleStructure shows the single/multi choice ahead of entering a
// flow.
func (h *Handlers) handleSimpleStructure(c tele.Context) error {
	h.touchUser(c)
	return helpers.SendText(c, textSimpleChoice, &tele.SendOptions{ReplyMarkup: simpleChoiceKeyboard()})
}
