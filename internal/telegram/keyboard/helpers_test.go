package keyboard

import "testing"

func btns(names ...string) []InlineBtn {
	out := make([]InlineBtn, 0, len(names))
	for _, n := range names {
		out = append(out, InlineBtn{Text: n, Unique: n})
	}
	return out
}

func TestInlineButtonsOnePerRow(t *testing.T) {
	kb := InlineButtons(btns("a", "b"))
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(kb.InlineKeyboard))
	}
	if len(kb.InlineKeyboard[0]) != 1 || kb.InlineKeyboard[0][0].Text != "a" {
		t.Errorf("first row = %+v", kb.InlineKeyboard[0])
	}
}

func TestInlineButtonsNPerRow(t *testing.T) {
	kb := InlineButtonsNPerRow(btns("a", "b", "c", "d", "e"), 3)
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(kb.InlineKeyboard))
	}
	if got := len(kb.InlineKeyboard[0]); got != 3 {
		t.Errorf("first row = %d buttons, want 3", got)
	}
	if got := len(kb.InlineKeyboard[1]); got != 2 {
		t.Errorf("second row = %d buttons, want 2", got)
	}
	if kb.InlineKeyboard[1][1].Text != "e" {
		t.Errorf("last button = %+v", kb.InlineKeyboard[1][1])
	}
}

func TestInlineButtonsNPerRowDegenerate(t *testing.T) {
	kb := InlineButtonsNPerRow(btns("a", "b"), 0)
	if len(kb.InlineKeyboard) != 2 {
		t.Errorf("rows = %d, want one per button", len(kb.InlineKeyboard))
	}
}
