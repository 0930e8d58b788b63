package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Shell is the line-oriented menu loop over a Session
type Shell struct {
	session *Session
	in      *bufio.Scanner
	out     io.Writer
}

// NewShell creates a shell reading commands from in and writing to out
func NewShell(session *Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loads the figure and serves the menu until exit, end of input or
// context cancellation. Errors from individual actions are shown to the user
// and do not end the loop.
func (sh *Shell) Run(ctx context.Context) error {
	if err := sh.session.Load(); err != nil {
		sh.printf("Error: %v\n", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sh.showFigure()
		sh.printf("Options:\n")
		sh.printf("1. Edit figure\n")
		sh.printf("2. Save\n")
		sh.printf("r. Reload from file\n")
		sh.printf("3. Exit\n")
		sh.printf("> ")

		choice, ok := sh.readLine()
		if !ok {
			return sh.in.Err()
		}

		switch strings.ToLower(choice) {
		case "1":
			if !sh.edit() {
				return sh.in.Err()
			}
		case "2":
			if err := sh.session.Save(ctx); err != nil {
				sh.printf("Error: %v\n", err)
				continue
			}
			sh.printf("File saved.\n")
		case "r":
			if err := sh.session.Load(); err != nil {
				sh.printf("Error: %v\n", err)
				continue
			}
			sh.printf("Reloaded.\n")
		case "3", "q", "exit":
			if sh.session.Dirty() {
				sh.printf("Unsaved changes discarded.\n")
			}
			return nil
		default:
			sh.printf("Unknown option %q.\n", choice)
		}
	}
}

func (sh *Shell) showFigure() {
	fig, ok := sh.session.Figure()
	if !ok {
		sh.printf("No figure loaded from %s\n\n", sh.session.Path())
		return
	}
	sh.printf("%s\n", fig)
	if sh.session.Dirty() {
		sh.printf("(modified)\n")
	}
	sh.printf("\n")
}

// edit runs the edit sub-menu. It returns false when input ran out.
func (sh *Shell) edit() bool {
	if _, ok := sh.session.Figure(); !ok {
		sh.printf("Error: %v\n", ErrNotLoaded)
		return true
	}

	sh.printf("Edit figure:\n")
	sh.printf("1. Name\n")
	sh.printf("2. Width\n")
	sh.printf("3. Height\n")
	sh.printf("4. Back\n")
	sh.printf("> ")

	choice, ok := sh.readLine()
	if !ok {
		return false
	}

	switch choice {
	case "1":
		sh.printf("New name: ")
		name, ok := sh.readLine()
		if !ok {
			return false
		}
		if err := sh.session.SetName(name); err != nil {
			sh.printf("Error: %v\n", err)
		}
	case "2":
		return sh.promptDimension("width", sh.session.SetWidth)
	case "3":
		return sh.promptDimension("height", sh.session.SetHeight)
	case "4":
	default:
		sh.printf("Unknown option %q.\n", choice)
	}
	return true
}

// promptDimension re-prompts until set accepts the input or the user enters
// an empty line
func (sh *Shell) promptDimension(label string, set func(string) error) bool {
	for {
		sh.printf("New %s (empty to cancel): ", label)
		input, ok := sh.readLine()
		if !ok {
			return false
		}
		if input == "" {
			return true
		}

		err := set(input)
		if err == nil {
			return true
		}
		if !errors.Is(err, ErrNotInteger) {
			sh.printf("Error: %v\n", err)
			return true
		}
		sh.printf("Invalid input. The %s must be an integer.\n", label)
	}
}

func (sh *Shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}
