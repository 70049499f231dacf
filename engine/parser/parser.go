// Package parser converts table commands into Intent structs.
// Intentionally dumb: no NLP, just word matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nathoo/tuberoulette/types"
)

// Verbs produced by Parse.
const (
	VerbUse   = "use"
	VerbShoot = "shoot"
	VerbDone  = "done"
	VerbHelp  = "help"
	VerbState = "state"
	VerbTrace = "trace"
	VerbQuit  = "quit"
)

// ErrUnrecognized is returned for input that cannot be a table command.
var ErrUnrecognized = errors.New("unrecognized command")

var verbAliases = map[string]string{
	"use":   VerbUse,
	"u":     VerbUse,
	"item":  VerbUse,
	"take":  VerbUse,
	"drink": VerbUse,
	"smoke": VerbUse,

	"shoot": VerbShoot,
	"fire":  VerbShoot,
	"aim":   VerbShoot,
	"pull":  VerbShoot,

	"done":    VerbDone,
	"no":      VerbDone,
	"none":    VerbDone,
	"skip":    VerbDone,
	"pass":    VerbDone,
	"cancel":  VerbDone,
	"nothing": VerbDone,
}

var metaCommands = map[string]string{
	"help":  VerbHelp,
	"h":     VerbHelp,
	"?":     VerbHelp,
	"state": VerbState,
	"board": VerbState,
	"trace": VerbTrace,
	"quit":  VerbQuit,
	"q":     VerbQuit,
	"exit":  VerbQuit,
}

var targetWords = map[string]string{
	"s":        types.TargetSelf.String(),
	"self":     types.TargetSelf.String(),
	"me":       types.TargetSelf.String(),
	"myself":   types.TargetSelf.String(),
	"d":        types.TargetOpponent.String(),
	"dealer":   types.TargetOpponent.String(),
	"o":        types.TargetOpponent.String(),
	"opponent": types.TargetOpponent.String(),
	"them":     types.TargetOpponent.String(),
	"him":      types.TargetOpponent.String(),
	"her":      types.TargetOpponent.String(),
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"at": true, "on": true,
}

// Parse converts a raw command string into an Intent.
//
//	""             -> empty intent (the caller decides what ENTER means)
//	"/help"        -> help, and the other meta commands
//	"2", "saw"     -> use <item>
//	"use hand saw" -> use "hand saw"
//	"s", "dealer"  -> shoot self / shoot opponent
//	"shoot me"     -> shoot self
//	"done"         -> done
func Parse(input string) (types.Intent, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return types.Intent{}, nil
	}

	if strings.HasPrefix(input, "/") {
		if verb, ok := metaCommands[strings.TrimPrefix(input, "/")]; ok {
			return types.Intent{Verb: verb}, nil
		}
		return types.Intent{}, errors.Wrapf(ErrUnrecognized, "%q", input)
	}

	words := strings.Fields(input)

	// Bare target word: "s", "dealer".
	if len(words) == 1 {
		if target, ok := targetWords[words[0]]; ok {
			return types.Intent{Verb: VerbShoot, Object: target}, nil
		}
		if _, err := strconv.Atoi(words[0]); err == nil {
			return types.Intent{Verb: VerbUse, Object: words[0]}, nil
		}
	}

	verb, ok := verbAliases[words[0]]
	if !ok {
		// Anything else is taken as an item name.
		object := strings.Join(stripFillers(words), " ")
		if object == "" {
			return types.Intent{}, errors.Wrapf(ErrUnrecognized, "%q", input)
		}
		return types.Intent{Verb: VerbUse, Object: object}, nil
	}
	rest := stripFillers(words[1:])

	switch verb {
	case VerbDone:
		return types.Intent{Verb: VerbDone}, nil
	case VerbShoot:
		if len(rest) == 0 {
			return types.Intent{Verb: VerbShoot}, nil
		}
		target, ok := targetWords[strings.Join(rest, " ")]
		if !ok {
			return types.Intent{}, errors.Wrapf(ErrUnrecognized, "shoot %q", strings.Join(rest, " "))
		}
		return types.Intent{Verb: VerbShoot, Object: target}, nil
	default:
		if len(rest) == 0 {
			// "smoke" and "drink" name their item.
			switch words[0] {
			case "smoke":
				return types.Intent{Verb: VerbUse, Object: "cigarette"}, nil
			case "drink":
				return types.Intent{Verb: VerbUse, Object: "beer"}, nil
			}
			return types.Intent{}, errors.Wrap(ErrUnrecognized, "use what?")
		}
		return types.Intent{Verb: VerbUse, Object: strings.Join(rest, " ")}, nil
	}
}

// Target converts a parsed shoot object back into a Target.
func Target(object string) (types.Target, bool) {
	switch object {
	case types.TargetSelf.String():
		return types.TargetSelf, true
	case types.TargetOpponent.String():
		return types.TargetOpponent, true
	}
	return types.TargetOpponent, false
}

func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}
