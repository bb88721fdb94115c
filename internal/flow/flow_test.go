package flow

import (
	"errors"
	"reflect"
	"testing"
)

func mustAdvance(t *testing.T, st State, in Input) (State, Output) {
	t.Helper()
	next, out, err := Advance(st, in)
	if err != nil {
		t.Fatalf("Advance(%+v) failed: %v", in, err)
	}
	return next, out
}

func libUE4(t *testing.T) Library {
	t.Helper()
	lib, ok := LibraryByKey("ue4")
	if !ok {
		t.Fatal("ue4 library missing from closed set")
	}
	return lib
}

func TestSingleOffsetFlowToCompletion(t *testing.T) {
	st := New(KindSingle)

	st, out := mustAdvance(t, st, Input{Kind: InputText, Text: "0xc23fa50"})
	if out.Prompt != PromptStructKind {
		t.Fatalf("after offset: prompt = %v, want PromptStructKind", out.Prompt)
	}

	st, out = mustAdvance(t, st, Input{Kind: InputStructKind, Struct: StructLibraryPatch})
	if out.Prompt != PromptLibrary {
		t.Fatalf("after struct kind: prompt = %v, want PromptLibrary", out.Prompt)
	}

	_, out = mustAdvance(t, st, Input{Kind: InputLibrary, Library: libUE4(t)})
	if out.Done == nil {
		t.Fatal("terminal transition did not complete the flow")
	}
	got := out.Done.Render()
	want := `PATCH_LIB("libUE4.so", 0xc23fa50, "00 20 70 47");`
	if got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestSingleOffsetTakesFirstToken(t *testing.T) {
	st := New(KindSingle)
	st, _ = mustAdvance(t, st, Input{Kind: InputText, Text: "  0xABC trailing junk"})
	if !reflect.DeepEqual(st.Offsets, []string{"0xABC"}) {
		t.Errorf("offsets = %v, want [0xABC]", st.Offsets)
	}
}

func TestMultiOffsetSplitsLines(t *testing.T) {
	st := New(KindMulti)
	st, out := mustAdvance(t, st, Input{Kind: InputText, Text: "0xCA9C6F0\n\n  0xc23fa50  \n0xY825FS0"})
	if out.Prompt != PromptStructKind {
		t.Fatalf("prompt = %v, want PromptStructKind", out.Prompt)
	}
	want := []string{"0xCA9C6F0", "0xc23fa50", "0xY825FS0"}
	if !reflect.DeepEqual(st.Offsets, want) {
		t.Errorf("offsets = %v, want %v", st.Offsets, want)
	}

	st, _ = mustAdvance(t, st, Input{Kind: InputStructKind, Struct: StructMemoryPatch})
	_, out = mustAdvance(t, st, Input{Kind: InputLibrary, Library: libUE4(t)})
	if out.Done == nil {
		t.Fatal("multi flow did not complete")
	}
	if got := len(SplitLines(out.Done.Render())); got != 3 {
		t.Errorf("rendered %d lines, want 3", got)
	}
}

func TestMultiOffsetAcceptsEmptyAtStepOne(t *testing.T) {
	st := New(KindMulti)
	st, _, err := Advance(st, Input{Kind: InputText, Text: "   \n  "})
	if err != nil {
		t.Fatalf("empty line set rejected at step 1: %v", err)
	}
	if st.Step != StepStructKind {
		t.Fatalf("step = %d, want %d", st.Step, StepStructKind)
	}

	// The terminal transition refuses to render with zero offsets.
	st, _, _ = Advance(st, Input{Kind: InputStructKind, Struct: StructLibraryPatch})
	_, _, err = Advance(st, Input{Kind: InputLibrary, Library: libUE4(t)})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("terminal with zero offsets: err = %v, want ErrExpired", err)
	}
}

func TestHookFlowEmptyParams(t *testing.T) {
	lib, ok := LibraryByKey("anogs")
	if !ok {
		t.Fatal("anogs library missing from closed set")
	}

	st := New(KindHook)
	st, out := mustAdvance(t, st, Input{Kind: InputText, Text: "0xABC"})
	if out.Prompt != PromptParams {
		t.Fatalf("after offset: prompt = %v, want PromptParams", out.Prompt)
	}

	st, out = mustAdvance(t, st, Input{Kind: InputText, Text: ""})
	if out.Prompt != PromptLibrary {
		t.Fatalf("after params: prompt = %v, want PromptLibrary", out.Prompt)
	}
	if len(st.Params) != 0 {
		t.Fatalf("params = %v, want empty", st.Params)
	}

	_, out = mustAdvance(t, st, Input{Kind: InputLibrary, Library: lib})
	if out.Done == nil {
		t.Fatal("hook flow did not complete")
	}
	got := out.Done.Render()
	want := `HOOK_LIB("libanogs.so", 0xABC, );`
	if got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestHookFlowParamsTrimmed(t *testing.T) {
	st := New(KindHook)
	st, _ = mustAdvance(t, st, Input{Kind: InputText, Text: "0x1"})
	st, _ = mustAdvance(t, st, Input{Kind: InputText, Text: " connect1 , ,connect2, "})
	if !reflect.DeepEqual(st.Params, []string{"connect1", "connect2"}) {
		t.Errorf("params = %v, want [connect1 connect2]", st.Params)
	}
}

func TestTerminalWithoutSessionExpires(t *testing.T) {
	_, _, err := Advance(State{}, Input{Kind: InputLibrary, Library: libUE4(t)})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestStructKindOutOfOrderExpires(t *testing.T) {
	st := New(KindSingle) // still awaiting the offset
	_, _, err := Advance(st, Input{Kind: InputStructKind, Struct: StructLibraryPatch})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestStructKindRejectedForHook(t *testing.T) {
	st := New(KindHook)
	st, _ = mustAdvance(t, st, Input{Kind: InputText, Text: "0x1"})
	_, _, err := Advance(st, Input{Kind: InputStructKind, Struct: StructMemoryPatch})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestEmptyOffsetRejected(t *testing.T) {
	st := New(KindSingle)
	_, _, err := Advance(st, Input{Kind: InputText, Text: "   "})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestLibraryByKeyUnknown(t *testing.T) {
	if _, ok := LibraryByKey("frida"); ok {
		t.Error("unknown library key resolved")
	}
}
