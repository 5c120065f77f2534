// Package command maps user input to a form command.
package command

import "context"

type Command string

const (
	Cancel  Command = "cancel"
	Confirm Command = "confirm"
	Edit    Command = "edit"
)

type Parser interface {
	ParseCommand(ctx context.Context, input string) (Command, error)
}
