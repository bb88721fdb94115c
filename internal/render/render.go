// Package render produces structure snippet text from collected flow inputs.
//
// The renderer is a text templater, not a validator: offsets and parameters
// are embedded verbatim, never parsed or range-checked. The only rejection
// the flow layer performs is emptiness.
package render

import (
	"fmt"
	"strings"
)

const (
	// PatchLibBytes is the default byte pattern for PATCH_LIB lines.
	PatchLibBytes = "00 20 70 47"
	// MemoryPatchBytes is the default byte pattern for MemoryPatch lines.
	MemoryPatchBytes = "73 6F 6E 52 65"
)

// LibraryPatch emits one PATCH_LIB line per offset, order preserved.
// An empty hexBytes selects the default byte pattern.
func LibraryPatch(library string, offsets []string, hexBytes string) string {
	if hexBytes == "" {
		hexBytes = PatchLibBytes
	}
	lines := make([]string, 0, len(offsets))
	for _, off := range offsets {
		lines = append(lines, fmt.Sprintf(`PATCH_LIB("%s", %s, "%s");`, library, off, hexBytes))
	}
	return strings.Join(lines, "\n")
}

// MemoryPatch emits one MemoryPatch::createWithHex line per offset, order
// preserved. The template spacing matches the established output format.
func MemoryPatch(library string, offsets []string, hexBytes string) string {
	if hexBytes == "" {
		hexBytes = MemoryPatchBytes
	}
	lines := make([]string, 0, len(offsets))
	for _, off := range offsets {
		lines = append(lines, fmt.Sprintf(`MemoryPatch::createWithHex("%s",%s, "%s").Modify();`, library, off, hexBytes))
	}
	return strings.Join(lines, "\n")
}

// Hook emits a single HOOK_LIB line. An empty parameter list renders an
// empty parameter segment, not an error.
func Hook(library, offset string, params []string) string {
	return fmt.Sprintf(`HOOK_LIB("%s", %s, %s);`, library, offset, strings.Join(params, ", "))
}
