package ipc

import "strings"

// ScopeType names a recognized criteria key inside a `[...]` scope prefix.
type ScopeType string

const (
	ScopeClass      ScopeType = "class"
	ScopeInstance   ScopeType = "instance"
	ScopeWindowRole ScopeType = "window_role"
	ScopeMachine    ScopeType = "machine"
	ScopeID         ScopeType = "id"
	ScopeTitle      ScopeType = "title"
	ScopeUrgent     ScopeType = "urgent"
	ScopeWorkspace  ScopeType = "workspace"
	ScopeAll        ScopeType = "all"
	ScopeFloating   ScopeType = "floating"
	ScopeTiling     ScopeType = "tiling"
)

var recognizedScopes = map[string]ScopeType{
	"class": ScopeClass, "instance": ScopeInstance, "window_role": ScopeWindowRole,
	"machine": ScopeMachine, "id": ScopeID, "title": ScopeTitle, "urgent": ScopeUrgent,
	"workspace": ScopeWorkspace, "all": ScopeAll, "floating": ScopeFloating, "tiling": ScopeTiling,
}

// CommandType names a recognized command verb.
type CommandType string

const (
	CmdExec            CommandType = "exec"
	CmdSplit           CommandType = "split"
	CmdLayout          CommandType = "layout"
	CmdFocus           CommandType = "focus"
	CmdMove            CommandType = "move"
	CmdSwap            CommandType = "swap"
	CmdSticky          CommandType = "sticky"
	CmdWorkspace       CommandType = "workspace"
	CmdMark            CommandType = "mark"
	CmdBorder          CommandType = "border"
	CmdReload          CommandType = "reload"
	CmdExit            CommandType = "exit"
	CmdScratchpad      CommandType = "scratchpad"
	CmdGaps            CommandType = "gaps"
	CmdInput           CommandType = "input"
	CmdResize          CommandType = "resize"
	CmdFullscreenAlias CommandType = "fullscreen"
	CmdFloating        CommandType = "floating"

	CmdTitleFormat          CommandType = "title_format"
	CmdTitleWindowIcon      CommandType = "title_window_icon"
	CmdShmLog               CommandType = "shm_log"
	CmdDebugLog             CommandType = "debug_log"
	CmdRestart              CommandType = "restart"
	CmdInvertScroll         CommandType = "invert_scroll"
	CmdSet                  CommandType = "set"
	CmdOutput               CommandType = "output"
	CmdAnimationDefinitions CommandType = "animation_definitions"
	CmdEnvironmentVariables CommandType = "environment_variables"
)

var recognizedCommands = map[string]CommandType{
	"exec": CmdExec, "split": CmdSplit, "layout": CmdLayout, "focus": CmdFocus,
	"move": CmdMove, "swap": CmdSwap, "sticky": CmdSticky, "workspace": CmdWorkspace,
	"mark": CmdMark, "border": CmdBorder, "reload": CmdReload, "exit": CmdExit,
	"scratchpad": CmdScratchpad, "gaps": CmdGaps, "input": CmdInput, "resize": CmdResize,
	"fullscreen": CmdFullscreenAlias, "floating": CmdFloating,
	"title_format": CmdTitleFormat, "title_window_icon": CmdTitleWindowIcon,
	"shm_log": CmdShmLog, "debug_log": CmdDebugLog, "restart": CmdRestart,
	"invert_scroll": CmdInvertScroll, "set": CmdSet, "output": CmdOutput,
	"animation_definitions": CmdAnimationDefinitions, "environment_variables": CmdEnvironmentVariables,
}

// ScopeCriterion is one `key=value` (or bare flag) entry of a `[...]` scope.
type ScopeCriterion struct {
	Type  ScopeType
	Value string
}

// ParsedCommand is one `;`-separated command: its verb, any leading
// `--option` flags, and its positional arguments.
type ParsedCommand struct {
	Type      CommandType
	Raw       string
	Options   []string
	Arguments []string
}

// ParseResult is the full output of parsing one command string.
type ParseResult struct {
	Scope    []ScopeCriterion
	Commands []ParsedCommand
}

// ParseError reports a malformed command string, including the rune offset
// where the parser gave up.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string { return e.Message }

type parserState int

const (
	stateRoot parserState = iota
	stateScopeKey
	stateScopeValue
	stateLiteral
	stateCommand
	stateOption
	stateArgument
)

// Parse runs the seven-state command-string machine: root, scope_key,
// scope_value, literal, command, option, argument. `[` opens a scope, `]`
// closes it, `=` separates a scope key from its value, `"` delimits a
// literal that preserves internal whitespace until the matching quote,
// `;` ends a command allowing another to follow, and space is the generic
// token delimiter.
func Parse(input string) (ParseResult, error) {
	var result ParseResult
	var cur ParsedCommand
	var tok strings.Builder
	var scopeKey string
	var literalReturnState parserState

	state := stateRoot
	flushArgOrOpt := func(asOption bool) {
		if tok.Len() == 0 {
			return
		}
		if asOption {
			cur.Options = append(cur.Options, tok.String())
		} else {
			cur.Arguments = append(cur.Arguments, tok.String())
		}
		tok.Reset()
	}
	flushCommand := func() {
		if cur.Type != "" || len(cur.Arguments) > 0 || len(cur.Options) > 0 {
			result.Commands = append(result.Commands, cur)
		}
		cur = ParsedCommand{}
	}
	flushVerb := func() bool {
		if tok.Len() == 0 {
			return true
		}
		verb := tok.String()
		tok.Reset()
		ct, ok := recognizedCommands[verb]
		if !ok {
			return false
		}
		cur.Type = ct
		cur.Raw = verb
		return true
	}

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case stateRoot:
			switch {
			case r == '[':
				state = stateScopeKey
			case r == ' ' || r == '\t':
				// skip
			case r == '"':
				literalReturnState = stateCommand
				state = stateLiteral
			default:
				tok.WriteRune(r)
				state = stateCommand
			}

		case stateScopeKey:
			switch r {
			case '=':
				scopeKey = tok.String()
				tok.Reset()
				state = stateScopeValue
			case ']':
				name := tok.String()
				tok.Reset()
				st, ok := recognizedScopes[name]
				if ok {
					result.Scope = append(result.Scope, ScopeCriterion{Type: st})
				}
				state = stateRoot
			case ' ', '\t':
				// skip
			default:
				tok.WriteRune(r)
			}

		case stateScopeValue:
			switch r {
			case '"':
				literalReturnState = stateScopeValue
				state = stateLiteral
			case ',', ']':
				st, ok := recognizedScopes[scopeKey]
				if ok {
					result.Scope = append(result.Scope, ScopeCriterion{Type: st, Value: tok.String()})
				}
				tok.Reset()
				if r == ']' {
					state = stateRoot
				} else {
					state = stateScopeKey
				}
			default:
				tok.WriteRune(r)
			}

		case stateLiteral:
			if r == '"' {
				state = literalReturnState
			} else {
				tok.WriteRune(r)
			}

		case stateCommand:
			switch {
			case r == '"':
				literalReturnState = stateCommand
				state = stateLiteral
			case r == ' ' || r == '\t':
				if !flushVerb() {
					return result, &ParseError{Offset: i, Message: "ipc: unrecognized command " + tok.String()}
				}
				state = stateArgument
			case r == ';':
				if !flushVerb() {
					return result, &ParseError{Offset: i, Message: "ipc: unrecognized command " + tok.String()}
				}
				flushCommand()
				state = stateRoot
			default:
				tok.WriteRune(r)
			}

		case stateOption, stateArgument:
			switch {
			case r == '"':
				literalReturnState = state
				state = stateLiteral
			case r == ' ' || r == '\t':
				isOpt := state == stateOption || strings.HasPrefix(tok.String(), "--")
				flushArgOrOpt(isOpt && strings.HasPrefix(tok.String(), "--"))
				state = stateArgument
			case r == ';':
				flushArgOrOpt(strings.HasPrefix(tok.String(), "--"))
				flushCommand()
				state = stateRoot
			default:
				tok.WriteRune(r)
			}
		}
	}

	switch state {
	case stateCommand:
		if tok.Len() > 0 && !flushVerb() {
			return result, &ParseError{Offset: len(runes), Message: "ipc: unrecognized command " + tok.String()}
		}
		flushCommand()
	case stateOption, stateArgument:
		flushArgOrOpt(strings.HasPrefix(tok.String(), "--"))
		flushCommand()
	case stateScopeKey, stateScopeValue:
		return result, &ParseError{Offset: len(runes), Message: "ipc: unterminated scope"}
	case stateLiteral:
		return result, &ParseError{Offset: len(runes), Message: "ipc: unterminated literal"}
	}

	return result, nil
}
