package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gumshoe-sql/gumshoe/internal/content"
	"github.com/gumshoe-sql/gumshoe/internal/engine"
	"github.com/gumshoe-sql/gumshoe/internal/progress"
	"github.com/gumshoe-sql/gumshoe/internal/tabular"
)

// Session drives one interactive play-through of a chapter. Input is a
// line stream: anything ending in ';' is learner SQL; bare words are
// session commands (hint, check, note, skip, quit).
//
// Learner SQL always executes through ExecuteIsolated, so however
// destructive the statement, the shared case database stays pristine for
// the reference query the checker runs next.
type Session struct {
	chapter  content.Chapter
	db       *sql.DB
	progress *progress.Store // nil when progress isn't persisted
	profile  progress.Profile
	logger   *slog.Logger

	in  *bufio.Scanner
	out io.Writer
}

// NewSession wires a session for one chapter. store may be nil.
func NewSession(ch content.Chapter, db *sql.DB, store *progress.Store, profile progress.Profile, logger *slog.Logger, in io.Reader, out io.Writer) *Session {
	return &Session{
		chapter:  ch,
		db:       db,
		progress: store,
		profile:  profile,
		logger:   logger,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run plays the chapter's steps in order. Returns nil when the learner
// finishes or quits; only infrastructure failures are errors.
func (s *Session) Run(ctx context.Context) error {
	if s.chapter.Intro != "" {
		fmt.Fprintln(s.out, strings.TrimSpace(s.chapter.Intro))
		fmt.Fprintln(s.out)
	}

	for i, step := range s.chapter.Steps {
		done, err := s.playStep(ctx, i, step)
		if err != nil {
			return err
		}
		if !done {
			return nil // learner quit
		}
	}

	titleColor.Fprintln(s.out, "That's the chapter. Nice work, gumshoe.")
	return nil
}

// playStep loops on one step until it passes, is skipped, or input ends.
// The bool result is false when the learner quit the session.
func (s *Session) playStep(ctx context.Context, index int, step content.Step) (bool, error) {
	titleColor.Fprintf(s.out, "== Step %d/%d: %s ==\n", index+1, len(s.chapter.Steps), step.Title)
	if step.Narrative != "" {
		fmt.Fprintln(s.out, strings.TrimSpace(step.Narrative))
	}
	fmt.Fprintln(s.out, strings.TrimSpace(step.Prompt))
	fmt.Fprintln(s.out)

	validator := step.Validator(s.logger)

	// lastResult is nil until the learner runs something; the checker
	// turns that into the run-your-query-first verdict.
	var lastResult *tabular.Result
	hintRung := 0
	var pending strings.Builder

	fmt.Fprint(s.out, promptString)
	for s.in.Scan() {
		line := s.in.Text()

		if pending.Len() == 0 {
			switch cmd, rest := splitCommand(line); cmd {
			case "":
				fmt.Fprint(s.out, promptString)
				continue
			case "hint":
				s.giveHint(step, &hintRung)
				fmt.Fprint(s.out, promptString)
				continue
			case "check":
				verdict := validator.Check(ctx, s.db, lastResult)
				renderVerdict(s.out, verdict)
				if verdict.OK {
					s.finishStep(ctx, step)
					return true, nil
				}
				fmt.Fprint(s.out, promptString)
				continue
			case "note":
				s.takeNote(ctx, rest)
				fmt.Fprint(s.out, promptString)
				continue
			case "skip":
				mutedColor.Fprintln(s.out, "Skipped. The case file stays open.")
				fmt.Fprintln(s.out)
				return true, nil
			case "quit", "exit":
				return false, nil
			}
		}

		// Accumulate SQL until a line ends with ';'.
		pending.WriteString(line)
		pending.WriteString("\n")
		if !strings.HasSuffix(strings.TrimSpace(line), ";") {
			fmt.Fprint(s.out, "  -> ")
			continue
		}

		query := strings.TrimSpace(pending.String())
		pending.Reset()

		result, err := engine.ExecuteIsolated(ctx, s.db, query)
		if err != nil {
			// The learner's own error, shown verbatim.
			renderQueryError(s.out, err)
			fmt.Fprint(s.out, promptString)
			continue
		}
		lastResult = &result
		renderResult(s.out, result)

		verdict := validator.Check(ctx, s.db, lastResult)
		renderVerdict(s.out, verdict)
		if verdict.OK {
			s.finishStep(ctx, step)
			return true, nil
		}
		fmt.Fprint(s.out, promptString)
	}
	if err := s.in.Err(); err != nil {
		return false, fmt.Errorf("read input: %w", err)
	}
	return false, nil // EOF
}

// giveHint reveals the next rung of the step's hint ladder.
func (s *Session) giveHint(step content.Step, rung *int) {
	if *rung >= len(step.Hints) {
		mutedColor.Fprintln(s.out, "No more hints for this step.")
		return
	}
	mutedColor.Fprintf(s.out, "hint: %s\n", step.Hints[*rung])
	*rung++
}

func (s *Session) takeNote(ctx context.Context, body string) {
	if s.progress == nil {
		mutedColor.Fprintln(s.out, "No notebook without a profile.")
		return
	}
	if err := s.progress.AddNote(ctx, s.profile.ID, body); err != nil {
		mutedColor.Fprintf(s.out, "couldn't save note: %v\n", err)
		return
	}
	mutedColor.Fprintln(s.out, "noted.")
}

func (s *Session) finishStep(ctx context.Context, step content.Step) {
	if step.Outro != "" {
		fmt.Fprintln(s.out, strings.TrimSpace(step.Outro))
	}
	fmt.Fprintln(s.out)

	if s.progress != nil {
		if err := s.progress.MarkSolved(ctx, s.profile.ID, s.chapter.ID, step.ID); err != nil {
			s.logger.Error("mark solved failed",
				"chapter", s.chapter.ID,
				"step", step.ID,
				"error", err,
			)
		}
	}
}

// splitCommand separates a command word from its argument. Returns empty
// command for blank lines; lines that are not commands return the line
// itself, which never matches a command name since commands are single
// known words.
func splitCommand(line string) (string, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", ""
	}
	word, rest, _ := strings.Cut(trimmed, " ")
	switch strings.ToLower(word) {
	case "hint", "check", "note", "skip", "quit", "exit":
		return strings.ToLower(word), strings.TrimSpace(rest)
	default:
		return line, ""
	}
}
