package cli

import "strings"

// ActionKind is what the user asked the registry to do.
type ActionKind int

const (
	ActionInvalid ActionKind = iota
	ActionLogin
	ActionRegister
)

func (k ActionKind) String() string {
	switch k {
	case ActionLogin:
		return "login"
	case ActionRegister:
		return "register"
	default:
		return "invalid"
	}
}

// Action is the parsed menu selection.
type Action struct {
	Kind   ActionKind
	Choice string // trimmed raw input
}

// ParseChoice maps a menu selection to an Action. It performs no I/O.
//
//	"1" -> login
//	"2" -> register
//	anything else -> invalid
func ParseChoice(s string) Action {
	choice := strings.TrimSpace(s)
	switch choice {
	case "1":
		return Action{Kind: ActionLogin, Choice: choice}
	case "2":
		return Action{Kind: ActionRegister, Choice: choice}
	default:
		return Action{Kind: ActionInvalid, Choice: choice}
	}
}
