// Package repl runs a line-based tracking session over any reader, for
// pipes, scripts and terminals without the full screen
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/cli/report"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/session"
)

const (
	prompt  = "tock> "
	welcome = "Welcome to the time tracker!"
	hint    = "Type a description to start tracking it, \"stop\" to stop it and \"exit\" to leave."
)

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Track time by typing commands, one per line",
		Long: `Read commands from stdin until "exit" or end of input:

  <text>       start a new entry described by <text> (@project +task allowed)
  start <text> same as above
  stop         stop the running entry
  list         list all entries
  status       show the running entry and its elapsed time
  exit         end the session and print the summary

End of input behaves like exit.

Examples:
  tock session
  printf 'write report @docs\nstop\nexit\n' | tock session
`,
		Args: cobra.NoArgs,
		RunE: RunSession,
	}

	cmd.Flags().Bool("json", false, "Print the summary as JSON")

	return cmd
}

// RunSession runs a line-based session on stdin until exit or end of input
func RunSession(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	r := &Runner{
		Session:  cliInstance.Session(),
		Location: cliInstance.App.Location(),
		Out:      os.Stdout,
		Prompt:   cli.IsTerminal(os.Stdin),
	}
	if formatter.JSON {
		r.Out = os.Stderr
	}
	summary, err := r.Run(ctx, os.Stdin)
	if summary == nil {
		return cli.Fail(formatter, err)
	}
	if printErr := report.PrintSummary(formatter, summary, r.Location, !cli.IsTerminal(os.Stdout)); printErr != nil {
		return printErr
	}
	if err != nil {
		return cli.Fail(formatter, err)
	}
	return nil
}

// Runner feeds input lines to a session controller and prints results.
// With Prompt set it talks to a person: a welcome banner first, a prompt
// before each line and the entries completed this session at the end.
type Runner struct {
	Session  *session.Controller
	Location *time.Location
	Out      io.Writer
	Prompt   bool

	completed []string
}

// Run reads commands until exit or end of input and returns the session
// summary. Command errors are printed and the session goes on. A save
// failure on exit comes back together with the summary. When the exit
// policy refuses to end at end of input, the summary is nil.
func (r *Runner) Run(ctx context.Context, in io.Reader) (*session.Summary, error) {
	scanner := bufio.NewScanner(in)
	if r.Prompt {
		fmt.Fprintf(r.Out, "%s\n%s\n", welcome, hint)
	}

	for {
		if r.Prompt {
			fmt.Fprint(r.Out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cmd, ok := session.ParseCommand(scanner.Text())
		if !ok {
			continue
		}

		res, err := r.Session.Dispatch(ctx, cmd)
		if err != nil {
			fmt.Fprintf(r.Out, "❌ Error: %v\n", err)
			continue
		}
		if res.SaveErr != nil {
			fmt.Fprintf(r.Out, "⚠ Warning: not saved: %v\n", res.SaveErr)
		}
		if res.Summary != nil {
			r.goodbye(res.Summary)
			return res.Summary, res.SaveErr
		}
		r.print(res)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if r.Prompt {
		fmt.Fprintln(r.Out)
	}

	res, err := r.Session.Dispatch(ctx, session.Command{Name: session.CmdExit})
	if err != nil {
		return nil, err
	}
	r.goodbye(res.Summary)
	return res.Summary, res.SaveErr
}

// goodbye lists the entries stopped during this session
func (r *Runner) goodbye(summary *session.Summary) {
	if summary != nil && summary.Stopped != nil {
		r.complete(*summary.Stopped, summary.GeneratedAt)
	}
	if !r.Prompt {
		return
	}
	fmt.Fprintln(r.Out, "\nTasks completed:")
	for _, line := range r.completed {
		fmt.Fprintln(r.Out, line)
	}
	fmt.Fprintln(r.Out, "\nGoodbye!")
}

func (r *Runner) complete(e models.TimeEntry, now time.Time) {
	r.completed = append(r.completed, fmt.Sprintf("%s: %s", orUntitled(e.Description), format.Clock(e.DurationAt(now))))
}

func (r *Runner) print(res session.Result) {
	now := r.Session.Workspace().Clock.Now()

	switch res.Command.Name {
	case session.CmdStart:
		fmt.Fprintf(r.Out, "▶ Started '%s' at %s (ID: %d)\n",
			orUntitled(res.Entry.Description), format.TimeOfDay(res.Entry.Start, r.Location), res.Entry.ID)

	case session.CmdStop:
		r.complete(*res.Entry, now)
		fmt.Fprintf(r.Out, "■ Stopped '%s' after %s\n",
			orUntitled(res.Entry.Description), format.Clock(res.Entry.DurationAt(now)))

	case session.CmdList:
		if len(res.Entries) == 0 {
			fmt.Fprintln(r.Out, "No entries found")
			return
		}
		for _, l := range res.Entries {
			state := format.Clock(l.Duration)
			if l.Running {
				state += " (running)"
			}
			fmt.Fprintf(r.Out, "%4d  %s  %-24s %s / %s  %s\n",
				l.ID, format.Stamp(l.Start, r.Location), orUntitled(l.Description), l.Project, l.Task, state)
		}

	case session.CmdStatus:
		if res.Status.Active == nil {
			fmt.Fprintln(r.Out, "Idle")
			return
		}
		fmt.Fprintf(r.Out, "Running '%s' for %s\n",
			orUntitled(res.Status.Active.Description), format.Clock(res.Status.Elapsed))
	}
}

func orUntitled(s string) string {
	if s == "" {
		return "(untitled)"
	}
	return s
}
