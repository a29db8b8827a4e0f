package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tock/internal/models"
)

// CommandName is one of the interactive session commands
type CommandName string

const (
	CmdStart  CommandName = "start"
	CmdStop   CommandName = "stop"
	CmdList   CommandName = "list"
	CmdStatus CommandName = "status"
	CmdExit   CommandName = "exit"
)

// Command is a parsed session command. Project and Task are names or IDs
// and only apply to start.
type Command struct {
	Name        CommandName
	Description string
	Project     string
	Task        string
}

// Result is the outcome of a dispatched command. SaveErr is set when the
// command succeeded but the following autosave did not.
type Result struct {
	Command Command
	Entry   *models.TimeEntry
	Entries []EntryLine
	Status  *Status
	Summary *Summary
	SaveErr error
}

// ParseCommand reads one input line. Keywords select a command; any other
// text starts a new entry with that text as description. In a start
// line, "@name" selects the project and "+name" the task.
// ok is false for a blank line.
func ParseCommand(line string) (cmd Command, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, false
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "stop":
		if len(fields) == 1 {
			return Command{Name: CmdStop}, true
		}
	case "list", "ls":
		if len(fields) == 1 {
			return Command{Name: CmdList}, true
		}
	case "status":
		if len(fields) == 1 {
			return Command{Name: CmdStatus}, true
		}
	case "exit", "quit":
		if len(fields) == 1 {
			return Command{Name: CmdExit}, true
		}
	case "start":
		fields = fields[1:]
	}

	cmd = Command{Name: CmdStart}
	var words []string
	for _, f := range fields {
		switch {
		case len(f) > 1 && f[0] == '@':
			cmd.Project = f[1:]
		case len(f) > 1 && f[0] == '+':
			cmd.Task = f[1:]
		default:
			words = append(words, f)
		}
	}
	cmd.Description = strings.Join(words, " ")
	return cmd, true
}

// Dispatch runs a command
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	res := Result{Command: cmd}

	switch cmd.Name {
	case CmdStart:
		if c.ws.Timer.IsRunning() {
			return res, models.ErrAlreadyRunning
		}
		refs, err := c.ResolveNames(cmd.Project, cmd.Task)
		if err != nil {
			return res, err
		}
		entry, err := c.StartTask(ctx, cmd.Description, refs)
		if err != nil {
			return res, err
		}
		res.Entry = &entry
		res.SaveErr = c.autosaveErr()

	case CmdStop:
		entry, err := c.Stop(ctx)
		if err != nil {
			return res, err
		}
		res.Entry = &entry
		res.SaveErr = c.autosaveErr()

	case CmdList:
		res.Entries = c.Lines(c.ListEntries(), nil)

	case CmdStatus:
		st := c.Status()
		res.Status = &st

	case CmdExit:
		summary, err := c.Exit(ctx)
		if summary == nil {
			return res, err
		}
		res.Summary = summary
		res.SaveErr = err

	default:
		return res, fmt.Errorf("%q: %w", cmd.Name, models.ErrUnknownCommand)
	}

	return res, nil
}

func (c *Controller) autosaveErr() error {
	if !c.autosave {
		return nil
	}
	return c.lastSaveErr
}
