package domain

import (
	"fmt"
	"strings"

	apperrors "apnea/internal/platform/errors"
)

// Command names a user action a driver forwards to the runtime.
type Command string

const (
	CommandPause           Command = "pause"
	CommandResume          Command = "resume"
	CommandToggle          Command = "toggle"
	CommandSkip            Command = "skip"
	CommandConfirmStretch  Command = "confirm"
	CommandCompleteMaxHold Command = "maxhold"
	CommandEnd             Command = "end"
	CommandReset           Command = "reset"
)

var commandAliases = map[string]Command{
	"p":    CommandToggle,
	" ":    CommandToggle,
	"n":    CommandSkip,
	"next": CommandSkip,
	"c":    CommandConfirmStretch,
	"m":    CommandCompleteMaxHold,
	"done": CommandCompleteMaxHold,
	"e":    CommandEnd,
	"stop": CommandEnd,
	"r":    CommandReset,
}

// ParseCommand accepts full command names and single-key shortcuts.
func ParseCommand(s string) (Command, error) {
	if c, ok := commandAliases[s]; ok {
		return c, nil
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := commandAliases[s]; ok {
		return c, nil
	}
	switch c := Command(s); c {
	case CommandPause, CommandResume, CommandToggle, CommandSkip, CommandConfirmStretch, CommandCompleteMaxHold, CommandEnd, CommandReset:
		return c, nil
	}
	return "", fmt.Errorf("%w: command %q", apperrors.ErrInvalidInput, s)
}

// Apply runs c against the runtime.
func (r *Runtime) Apply(c Command) error {
	switch c {
	case CommandPause:
		return r.Pause()
	case CommandResume:
		return r.Resume()
	case CommandToggle:
		return r.TogglePause()
	case CommandSkip:
		return r.Skip()
	case CommandConfirmStretch:
		return r.ConfirmStretch()
	case CommandCompleteMaxHold:
		return r.CompleteMaxHold()
	case CommandEnd:
		return r.End()
	case CommandReset:
		r.Reset()
		return nil
	default:
		return fmt.Errorf("%w: command %q", apperrors.ErrInvalidInput, c)
	}
}
