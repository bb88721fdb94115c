package bot

// Message texts shown to users. Kept together so the copy is easy to review
// and translate.
const (
	textJoinFirst = "👋 Welcome!\n\n" +
		"Before using the bot, please join our channel.\n" +
		"Tap the button below, join the channel and then press \"I've Joined — Continue\"."

	textJoinedThanks = "Thanks — you joined! Here's your profile."
	textNotJoinedYet = "You haven't joined the channel yet — please join first."

	textSimpleChoice = "✨ Single Offset For Only 1 Offset\n" +
		"✨ Multi Offset For Multiple Offsets\n\n" +
		"🤖 Choice Option:"

	textSingleSelected = "✨ Single Offset selected.\n\nSend the offset now (e.g. 0xc23fa50):"
	textMultiSelected  = "✨ Multi Offset selected.\n\n" +
		"Send all offsets separated by newline. Example:\n0xCA9C6F0\n0xc23fa50\n0xY825FS0"
	textHookSelected = "⭐ Hook Structure selected.\n\nSend the offset now (e.g. 0xc23fa50):"

	textStructKindChoice = "🎀 Patch Lib Like This (PATCH_LIB)\n" +
		"🎀 Memory Patch like This (MemoryPatch)\n\n" +
		"🤖 Choice Option :"

	textLibraryChoice = "💫 UE4 - ( libUE4.so )\n" +
		"💫 Anogs - ( libanogs.so )\n" +
		"💫 Anort - ( libanort.so )\n\n" +
		"🤖 Choice Option :"

	textHookParams = "⭐ Send connect params separated by comma (example: connect1,connect2):"

	textSessionExpired = "Session expired — start again."
	textGenerateFailed = "Something went wrong — please try again."
	textOffsetMissing  = "Offset missing. Send the offset first."
	textOffsetsMissing = "Offsets missing. Send the offsets first."

	textNoSaved     = "No saved structures yet."
	textSavedOK     = "Saved to your account."
	textSaveFailed  = "Failed to save."
	textDeleted     = "Deleted."
	textNotAllowed  = "Not allowed."
	textNoop        = "No action."
	textUnknownHint = "Use /start to begin or tap the menu. If owner, send /ownercmd."
)
