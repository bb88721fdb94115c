// Package flow implements the conversational state machine that collects
// multi-turn input for structure generation.
//
// The machine is pure: Advance maps (state, input) to (state, output) without
// touching storage or the transport. The bot layer owns sessions, renders
// completed flows, and persists the result.
package flow

import (
	"errors"
	"strings"

	"github.com/srchub/structbot/internal/render"
)

// Kind identifies one of the multi-step dialogues.
type Kind string

const (
	// KindSingle collects exactly one offset.
	KindSingle Kind = "single"
	// KindMulti collects newline-separated offsets.
	KindMulti Kind = "multi"
	// KindHook collects one offset plus a parameter list.
	KindHook Kind = "hook"
)

// StructKind selects the output template for the simple flows.
type StructKind string

const (
	// StructLibraryPatch renders PATCH_LIB lines.
	StructLibraryPatch StructKind = "patch_lib"
	// StructMemoryPatch renders MemoryPatch lines.
	StructMemoryPatch StructKind = "memory_patch"
)

// Step indices within a flow. Steps are strictly ordered; there is no
// branching back and no skipping.
const (
	StepOffset     = 1 // awaiting offset text (all flows)
	StepParams     = 2 // awaiting parameter text (hook only)
	StepStructKind = 2 // awaiting structure kind choice (simple flows)
	StepLibrary    = 3 // awaiting library choice (terminal)
)

// State is the tagged session value for one identity: the active flow kind,
// the current step index, and the inputs accumulated so far.
type State struct {
	Flow    Kind
	Step    int
	Offsets []string
	Params  []string
	Struct  StructKind
	Library Library
}

// New returns the initial state for a freshly entered flow.
func New(kind Kind) State {
	return State{Flow: kind, Step: StepOffset}
}

// InputKind tags the variants of Input.
type InputKind int

const (
	// InputText is free text directed at the awaited step.
	InputText InputKind = iota
	// InputStructKind is the structure-kind choice.
	InputStructKind
	// InputLibrary is the terminal library choice.
	InputLibrary
)

// Input is one user turn fed into the machine.
type Input struct {
	Kind    InputKind
	Text    string
	Struct  StructKind
	Library Library
}

// Prompt tells the caller what to ask the user next.
type Prompt int

const (
	// PromptNone means the flow produced no follow-up question.
	PromptNone Prompt = iota
	// PromptStructKind asks for PATCH_LIB vs MemoryPatch.
	PromptStructKind
	// PromptParams asks for the comma-separated parameter list.
	PromptParams
	// PromptLibrary asks for the library choice.
	PromptLibrary
)

// Completion carries everything needed to render the finished flow.
type Completion struct {
	Flow    Kind
	Struct  StructKind
	Library Library
	Offsets []string
	Params  []string
}

// Render produces the snippet text for a completed flow.
func (c Completion) Render() string {
	switch c.Flow {
	case KindHook:
		offset := ""
		if len(c.Offsets) > 0 {
			offset = c.Offsets[0]
		}
		return render.Hook(c.Library.File, offset, c.Params)
	default:
		if c.Struct == StructMemoryPatch {
			return render.MemoryPatch(c.Library.File, c.Offsets, "")
		}
		return render.LibraryPatch(c.Library.File, c.Offsets, "")
	}
}

// Output is the result of a successful transition: either a prompt for the
// next step or, on the terminal transition, a completion.
type Output struct {
	Prompt Prompt
	Done   *Completion
}

// ErrExpired reports a transition fired against an absent or structurally
// incomplete session. The caller replies with a notice and performs no
// rendering or persistence.
var ErrExpired = errors.New("flow: session expired")

// Advance applies one input to the state. On error the returned state is the
// input state unchanged.
func Advance(st State, in Input) (State, Output, error) {
	if st.Flow == "" {
		return st, Output{}, ErrExpired
	}
	switch in.Kind {
	case InputText:
		return advanceText(st, in.Text)
	case InputStructKind:
		return advanceStructKind(st, in.Struct)
	case InputLibrary:
		return advanceLibrary(st, in.Library)
	}
	return st, Output{}, ErrExpired
}

func advanceText(st State, text string) (State, Output, error) {
	switch {
	case st.Step == StepOffset && st.Flow != KindMulti:
		tok := FirstToken(text)
		if tok == "" {
			return st, Output{}, ErrExpired
		}
		st.Offsets = []string{tok}
		st.Step = StepParams // == StepStructKind for simple flows
		if st.Flow == KindHook {
			return st, Output{Prompt: PromptParams}, nil
		}
		return st, Output{Prompt: PromptStructKind}, nil

	case st.Step == StepOffset && st.Flow == KindMulti:
		// Zero, one, or many offsets are all accepted here; the terminal
		// transition rejects an empty set.
		st.Offsets = SplitLines(text)
		st.Step = StepStructKind
		return st, Output{Prompt: PromptStructKind}, nil

	case st.Step == StepParams && st.Flow == KindHook:
		// An entirely empty input yields an empty parameter list.
		st.Params = SplitParams(text)
		st.Step = StepLibrary
		return st, Output{Prompt: PromptLibrary}, nil
	}
	return st, Output{}, ErrExpired
}

func advanceStructKind(st State, kind StructKind) (State, Output, error) {
	if st.Flow == KindHook || st.Step != StepStructKind {
		return st, Output{}, ErrExpired
	}
	if kind != StructLibraryPatch && kind != StructMemoryPatch {
		return st, Output{}, ErrExpired
	}
	st.Struct = kind
	st.Step = StepLibrary
	return st, Output{Prompt: PromptLibrary}, nil
}

func advanceLibrary(st State, lib Library) (State, Output, error) {
	if st.Step != StepLibrary || lib.File == "" {
		return st, Output{}, ErrExpired
	}
	if len(st.Offsets) == 0 {
		return st, Output{}, ErrExpired
	}
	if st.Flow != KindHook && st.Struct == "" {
		return st, Output{}, ErrExpired
	}
	st.Library = lib
	done := Completion{
		Flow:    st.Flow,
		Struct:  st.Struct,
		Library: lib,
		Offsets: st.Offsets,
		Params:  st.Params,
	}
	return st, Output{Done: &done}, nil
}

// FirstToken returns the first whitespace-delimited token of text.
func FirstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// SplitLines returns the non-empty trimmed lines of text, order preserved.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// SplitParams splits comma-separated parameter tokens, trimming whitespace
// and dropping empty entries. Empty input yields an empty list.
func SplitParams(text string) []string {
	var out []string
	for _, p := range strings.Split(text, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
