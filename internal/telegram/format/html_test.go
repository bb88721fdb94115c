package format

import "testing"

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`PATCH_LIB("libUE4.so", 0x1, "<00>");`)
	want := `PATCH_LIB("libUE4.so", 0x1, "&lt;00&gt;");`
	if got != want {
		t.Errorf("EscapeHTML = %q, want %q", got, want)
	}
}

func TestPre(t *testing.T) {
	got := Pre("a & b")
	if got != "<pre>a &amp; b</pre>" {
		t.Errorf("Pre = %q", got)
	}
}

func TestBold(t *testing.T) {
	got := Bold("Saved on <now>")
	if got != "<b>Saved on &lt;now&gt;</b>" {
		t.Errorf("Bold = %q", got)
	}
}
