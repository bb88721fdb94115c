package bot

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/srchub/structbot/internal/flow"
	"github.com/srchub/structbot/internal/telegram/keyboard"
)

// Callback keys. Dynamic keys carry their target in the payload.
const (
	cbJoinedCheck     = "joined_check"
	cbSimpleStructure = "simple_structure"
	cbSimpleSingle    = "simple_single"
	cbSimpleMulti     = "simple_multi"
	cbHookStructure   = "hook_structure"
	cbSettings        = "settings"
	cbViewSaved       = "view_saved"
	cbDeleteStruct    = "delstruct"
	cbBotInfo         = "bot_info"
	cbStructPatch     = "stype_patch"
	cbStructMemory    = "stype_memory"
	cbSaveStruct      = "save_struct"
	cbBackToProfile   = "back_to_profile"
	cbNoop            = "noop"
	cbOwnerUsers      = "owner_check_users"

	savePendingPayload = "pending"
)

// joinKeyboard offers the channel link and the recheck button.
func joinKeyboard(channel string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	joinURL := "https://t.me/" + strings.TrimPrefix(channel, "@")
	markup.InlineKeyboard = [][]tele.InlineButton{
		{{Text: "Join Channel ✅", URL: joinURL}},
		{*markup.Data("I've Joined — Continue", cbJoinedCheck).Inline()},
	}
	return markup
}

// profileKeyboard is the main menu shown under the profile page.
func profileKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "Simple Structure", Unique: cbSimpleStructure},
			{Text: "Hook Structure", Unique: cbHookStructure},
		},
		[]keyboard.InlineBtn{
			{Text: "Settings", Unique: cbSettings},
			{Text: "Bot Information", Unique: cbBotInfo},
		},
	)
}

func simpleChoiceKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "Single Offset", Unique: cbSimpleSingle},
		{Text: "Multi Offset", Unique: cbSimpleMulti},
	})
}

func structKindKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "PATCH LIB", Unique: cbStructPatch},
		{Text: "Memory Patch", Unique: cbStructMemory},
	})
}

// libraryKeyboard lists every known library, three buttons to a row.
func libraryKeyboard() *tele.ReplyMarkup {
	libs := flow.Libraries()
	btns := make([]keyboard.InlineBtn, 0, len(libs))
	for _, lib := range libs {
		btns = append(btns, keyboard.InlineBtn{Text: lib.Title, Unique: "lib_" + lib.Key})
	}
	return keyboard.InlineButtonsNPerRow(btns, 3)
}

// saveKeyboard offers Save for a fresh snippet or an inert Saved marker.
func saveKeyboard(snippetID int64, alreadySaved bool) *tele.ReplyMarkup {
	if alreadySaved {
		return keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "Saved ✅", Unique: cbNoop},
		})
	}
	payload := savePendingPayload
	if snippetID > 0 {
		payload = strconv.FormatInt(snippetID, 10)
	}
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Save ✅", Unique: cbSaveStruct, Data: payload},
	})
}

func settingsKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "View Saved Structures", Unique: cbViewSaved},
		{Text: "Back", Unique: cbBackToProfile},
	})
}

func deleteKeyboard(snippetID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Delete", Unique: cbDeleteStruct, Data: strconv.FormatInt(snippetID, 10)},
	})
}

func ownerKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "Check Users", Unique: cbOwnerUsers},
		{Text: "Back", Unique: cbBackToProfile},
	})
}
