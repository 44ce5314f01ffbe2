package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gumshoe-sql/gumshoe/internal/casedb"
	"github.com/gumshoe-sql/gumshoe/internal/content"
	"github.com/gumshoe-sql/gumshoe/internal/progress"
)

func testChapter() content.Chapter {
	orderFree := false
	return content.Chapter{
		ID:    "testcase",
		Title: "Test Case",
		Intro: "A test begins.",
		Steps: []content.Step{
			{
				ID:           "one",
				Title:        "List incidents",
				Prompt:       "Pull every incident.",
				ReferenceSQL: "SELECT * FROM incidents",
				Hints:        []string{"try SELECT *", "the table is incidents"},
				Outro:        "First clue found.",
			},
			{
				ID:           "two",
				Title:        "Count sightings",
				Prompt:       "Count sightings per location.",
				ReferenceSQL: "SELECT location, COUNT(*) AS visits FROM sightings GROUP BY location",
				OrderMatters: &orderFree,
			},
		},
	}
}

func runSession(t *testing.T, script string, store *progress.Store, profile progress.Profile) string {
	t.Helper()
	color.NoColor = true

	cdb, err := casedb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var out bytes.Buffer
	s := NewSession(testChapter(), cdb.DB(), store, profile, logger, strings.NewReader(script), &out)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func newSessionStore(t *testing.T) (*progress.Store, progress.Profile) {
	t.Helper()

	store, err := progress.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	profile, err := store.EnsureProfile(context.Background(), "tester")
	require.NoError(t, err)
	return store, profile
}

func TestSession_SolveBothSteps(t *testing.T) {
	store, profile := newSessionStore(t)

	script := strings.Join([]string{
		"SELECT * FROM incidents;",
		"SELECT location, COUNT(*) AS visits FROM sightings GROUP BY location;",
	}, "\n") + "\n"

	out := runSession(t, script, store, profile)

	assert.Contains(t, out, "A test begins.")
	assert.Contains(t, out, "✔ correct")
	assert.Contains(t, out, "First clue found.")
	assert.Contains(t, out, "That's the chapter")

	ctx := context.Background()
	for _, step := range []string{"one", "two"} {
		solved, err := store.IsSolved(ctx, profile.ID, "testcase", step)
		require.NoError(t, err)
		assert.True(t, solved, "step %s", step)
	}
}

func TestSession_CheckBeforeRunning(t *testing.T) {
	out := runSession(t, "check\nquit\n", nil, progress.Profile{})

	assert.Contains(t, out, "run your query first")
}

func TestSession_HintLadder(t *testing.T) {
	out := runSession(t, "hint\nhint\nhint\nquit\n", nil, progress.Profile{})

	assert.Contains(t, out, "hint: try SELECT *")
	assert.Contains(t, out, "hint: the table is incidents")
	assert.Contains(t, out, "No more hints")
}

func TestSession_WrongQueryThenRight(t *testing.T) {
	script := strings.Join([]string{
		"SELECT description FROM incidents;", // wrong columns
		"SELECT * FROM incidents;",
		"quit",
	}, "\n") + "\n"

	out := runSession(t, script, nil, progress.Profile{})

	assert.Contains(t, out, "columns mismatch")
	assert.Contains(t, out, "✔ correct")
}

func TestSession_SQLErrorShownVerbatim(t *testing.T) {
	out := runSession(t, "SELECT nope FROM incidents;\nquit\n", nil, progress.Profile{})

	assert.Contains(t, out, "sql error:")
	assert.Contains(t, out, "nope")
}

func TestSession_MultilineSQL(t *testing.T) {
	script := strings.Join([]string{
		"SELECT *",
		"FROM incidents;",
		"quit",
	}, "\n") + "\n"

	out := runSession(t, script, nil, progress.Profile{})

	assert.Contains(t, out, "✔ correct")
}

func TestSession_DestructiveQueryDoesNotBreakStep(t *testing.T) {
	script := strings.Join([]string{
		"DROP TABLE incidents;",
		"SELECT * FROM incidents;",
		"quit",
	}, "\n") + "\n"

	out := runSession(t, script, nil, progress.Profile{})

	assert.NotContains(t, out, "internal validation error")
	assert.Contains(t, out, "✔ correct", "the world survives a dropped table")
}

func TestSession_SkipAdvances(t *testing.T) {
	store, profile := newSessionStore(t)

	out := runSession(t, "skip\nskip\n", store, profile)
	assert.Contains(t, out, "That's the chapter")

	solved, err := store.IsSolved(context.Background(), profile.ID, "testcase", "one")
	require.NoError(t, err)
	assert.False(t, solved, "skipping is not solving")
}

func TestSession_NoteGoesToNotebook(t *testing.T) {
	store, profile := newSessionStore(t)

	runSession(t, "note the porter was in a hurry\nquit\n", store, profile)

	notes, err := store.Notes(context.Background(), profile.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "the porter was in a hurry", notes[0].Body)
}

func TestSession_EOFEndsQuietly(t *testing.T) {
	out := runSession(t, "", nil, progress.Profile{})
	assert.Contains(t, out, "Step 1/2")
	assert.NotContains(t, out, "That's the chapter")
}
