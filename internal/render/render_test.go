package render

import (
	"strings"
	"testing"
)

func TestLibraryPatchOnePerOffset(t *testing.T) {
	offsets := []string{"0xCA9C6F0", "0xc23fa50", "0xY825FS0"}
	out := LibraryPatch("libUE4.so", offsets, "")

	lines := strings.Split(out, "\n")
	if len(lines) != len(offsets) {
		t.Fatalf("got %d lines, want %d", len(lines), len(offsets))
	}
	for i, off := range offsets {
		if !strings.Contains(lines[i], off) {
			t.Errorf("line %d = %q, want offset %q embedded verbatim", i, lines[i], off)
		}
		if !strings.Contains(lines[i], `"libUE4.so"`) {
			t.Errorf("line %d = %q, missing library name", i, lines[i])
		}
	}
	if lines[0] != `PATCH_LIB("libUE4.so", 0xCA9C6F0, "00 20 70 47");` {
		t.Errorf("unexpected first line: %q", lines[0])
	}
}

func TestLibraryPatchSingleOffset(t *testing.T) {
	out := LibraryPatch("libUE4.so", []string{"0xc23fa50"}, "")
	want := `PATCH_LIB("libUE4.so", 0xc23fa50, "00 20 70 47");`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestMemoryPatchOnePerOffset(t *testing.T) {
	offsets := []string{"0x1", "0x2"}
	out := MemoryPatch("libanort.so", offsets, "")

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	want := `MemoryPatch::createWithHex("libanort.so",0x1, "73 6F 6E 52 65").Modify();`
	if lines[0] != want {
		t.Errorf("got %q, want %q", lines[0], want)
	}
}

func TestMemoryPatchCustomBytes(t *testing.T) {
	out := MemoryPatch("libanogs.so", []string{"0xA"}, "01 02")
	if !strings.Contains(out, `"01 02"`) {
		t.Errorf("custom byte pattern not embedded: %q", out)
	}
}

func TestHookWithParams(t *testing.T) {
	out := Hook("libanogs.so", "0xABC", []string{"a", "b"})
	want := `HOOK_LIB("libanogs.so", 0xABC, a, b);`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestHookEmptyParams(t *testing.T) {
	out := Hook("libanogs.so", "0xABC", nil)
	want := `HOOK_LIB("libanogs.so", 0xABC, );`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
