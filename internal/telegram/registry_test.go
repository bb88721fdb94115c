package telegram

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterCommand("/start", Command{Handler: noop, Description: "start"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.RegisterCommand("/start", Command{Handler: noop, Description: "dup"}); err == nil {
		t.Error("duplicate registration must fail")
	}
	if err := r.RegisterCommand("start", Command{Handler: noop, Description: "x"}); err == nil {
		t.Error("missing slash prefix must fail")
	}
	if err := r.RegisterCommand("/bad", Command{Description: "no handler"}); err == nil {
		t.Error("nil handler must fail")
	}

	if _, _, ok := r.LookupCommand("start"); !ok {
		t.Error("lookup without slash should resolve")
	}
	if _, _, ok := r.LookupCommand("/missing"); ok {
		t.Error("unknown command should not resolve")
	}
}

func TestRegistryListCommandsFiltersHidden(t *testing.T) {
	r := NewRegistry()
	_ = r.RegisterCommand("/start", Command{Handler: noop, Description: "start"})
	_ = r.RegisterCommand("/ownercmd", Command{Handler: noop, Description: "stats", OwnerOnly: true})

	visible := r.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Errorf("visible = %+v, want only /start", visible)
	}
	all := r.ListCommands(false)
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}
}

func TestRegistryCallbacks(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCallback("save_struct", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.RegisterCallback("save_struct", noop); err == nil {
		t.Error("duplicate callback must fail")
	}
	if _, ok := r.GetCallback("save_struct"); !ok {
		t.Error("registered callback not found")
	}
	if _, ok := r.GetCallback("other"); ok {
		t.Error("unknown callback should not resolve")
	}
	keys := r.ListCallbacks()
	if len(keys) != 1 || keys[0] != "save_struct" {
		t.Errorf("keys = %v", keys)
	}
}
