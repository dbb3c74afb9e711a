package flagparse

import (
	"fmt"

	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/util"
)

// Command defines the command to execute.
type Command int

const (
	None Command = iota
	Chunks
	Extract
	Join
	Version
)

var commandToString = map[Command]string{
	None:    "none",
	Chunks:  "chunks",
	Extract: "extract",
	Join:    "join",
	Version: "version",
}

var stringToCommand map[string]Command

func init() {
	stringToCommand = util.InvertMap(commandToString)
}

func (c Command) String() string {
	if str, ok := commandToString[c]; ok {
		return str
	}
	return fmt.Sprintf("unknown_command(%d)", c)
}

// ParseCommand parses a command name. "none" is not accepted.
func ParseCommand(s string) (Command, error) {
	if command, ok := stringToCommand[s]; ok && command != None {
		return command, nil
	}
	return None, failure.New(failure.InvalidArgument, "invalid command: %q. Must be 'chunks', 'extract', 'join', or 'version'", s)
}
