// Package content holds the authored tutorial material: chapters of steps,
// each with narrative text, a prompt, an escalating hint ladder, and the
// canonical reference SQL that defines the correct answer.
//
// Chapters are authored as YAML and embedded in the binary. A CUE schema
// (schema.cue) plus reference-query execution against a fresh case
// database gives authors a vet step that catches the one class of runtime
// failure that is never the learner's fault: a broken reference query.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gumshoe-sql/gumshoe/internal/engine"
)

//go:embed chapters/*.yaml
var chapterFS embed.FS

// Chapter is one case: an intro, a sequence of steps, and a closing beat.
type Chapter struct {
	// ID uniquely identifies the chapter (lowercase, hyphenated).
	ID string `yaml:"id"`

	// Title is the case name shown in listings.
	Title string `yaml:"title"`

	// Intro is the narrative overlay shown before the first step.
	Intro string `yaml:"intro,omitempty"`

	// Steps are played in order; a step unlocks when the previous passes.
	Steps []Step `yaml:"steps"`
}

// Step is a single challenge bound to one reference query.
type Step struct {
	// ID uniquely identifies the step within its chapter.
	ID string `yaml:"id"`

	// Title is the step name shown in listings and prompts.
	Title string `yaml:"title"`

	// Narrative is shown before the prompt.
	Narrative string `yaml:"narrative,omitempty"`

	// Prompt tells the learner what result to produce.
	Prompt string `yaml:"prompt"`

	// ReferenceSQL is the canonical correct query. It defines the right
	// answer and is never shown to the learner.
	ReferenceSQL string `yaml:"reference_sql"`

	// OrderMatters selects the comparison policy. Unset means true: most
	// steps require an explicit ORDER BY, and positional comparison
	// checks shape and ordering in one mechanism.
	OrderMatters *bool `yaml:"order_matters,omitempty"`

	// Hints is the escalating hint ladder. The verdict's own hint seeds
	// the first rung; these are revealed one per request after it.
	Hints []string `yaml:"hints,omitempty"`

	// Outro is shown after the step passes.
	Outro string `yaml:"outro,omitempty"`
}

// EnforceOrder resolves the step's ordering policy (default true).
func (s Step) EnforceOrder() bool {
	return s.OrderMatters == nil || *s.OrderMatters
}

// Validator binds the step's reference query and policy into the checker
// the session invokes.
func (s Step) Validator(logger *slog.Logger) *engine.StepValidator {
	return engine.NewStepValidator(
		s.ReferenceSQL,
		engine.WithEnforceOrder(s.EnforceOrder()),
		engine.WithLogger(logger),
	)
}

// Load parses all embedded chapters, sorted by ID.
func Load() ([]Chapter, error) {
	return loadFS(chapterFS, "chapters")
}

func loadFS(fsys fs.FS, dir string) ([]Chapter, error) {
	entries, err := fs.Glob(fsys, dir+"/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	sort.Strings(entries)

	chapters := make([]Chapter, 0, len(entries))
	seen := map[string]string{}
	for _, name := range entries {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var ch Chapter
		if err := yaml.Unmarshal(data, &ch); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if prev, dup := seen[ch.ID]; dup {
			return nil, fmt.Errorf("duplicate chapter id %q in %s (already defined in %s)", ch.ID, name, prev)
		}
		seen[ch.ID] = name
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

// Find returns the chapter with the given ID.
func Find(chapters []Chapter, id string) (Chapter, bool) {
	for _, ch := range chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Chapter{}, false
}
