package content

import (
	"context"
	_ "embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/gumshoe-sql/gumshoe/internal/casedb"
	"github.com/gumshoe-sql/gumshoe/internal/engine"
)

//go:embed schema.cue
var schemaCUE string

// Issue is one authoring defect found by Vet. Issues are reported to the
// content author; nothing here ever reaches a learner.
type Issue struct {
	File    string
	Step    string // empty for file- or chapter-level issues
	Message string
}

// String renders the issue for the vet report.
func (i Issue) String() string {
	if i.Step != "" {
		return fmt.Sprintf("%s: step %q: %s", i.File, i.Step, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.File, i.Message)
}

// VetEmbedded vets the chapters shipped in the binary.
func VetEmbedded(ctx context.Context) ([]Issue, error) {
	return VetFS(ctx, chapterFS, "chapters")
}

// VetFS vets every chapter YAML under dir. Two phases per file: the CUE
// schema first (shape, required fields, id patterns), then every
// reference query executed against a fresh seeded case database. All
// issues are collected; vetting never fails fast on the first defect.
func VetFS(ctx context.Context, fsys fs.FS, dir string) ([]Issue, error) {
	pattern := dir + "/*.yaml"
	if dir == "." {
		pattern = "*.yaml"
	}
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no chapter files under %s", dir)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	cdb, err := casedb.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("open case database for vetting: %w", err)
	}
	defer cdb.Close()

	var issues []Issue
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		if schemaIssues := vetSchema(schema, name, data); len(schemaIssues) > 0 {
			issues = append(issues, schemaIssues...)
			continue // a malformed file is not worth executing
		}

		var ch Chapter
		if err := yaml.Unmarshal(data, &ch); err != nil {
			issues = append(issues, Issue{File: name, Message: fmt.Sprintf("parse: %v", err)})
			continue
		}
		issues = append(issues, vetChapter(ctx, cdb, name, ch)...)
	}
	return issues, nil
}

// compileSchema builds the embedded #Chapter definition.
func compileSchema() (cue.Value, error) {
	cctx := cuecontext.New()
	schema := cctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile schema.cue: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Chapter"))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("lookup #Chapter: %w", err)
	}
	return def, nil
}

// vetSchema unifies one chapter file with the #Chapter definition and
// reports every constraint violation.
func vetSchema(schema cue.Value, name string, data []byte) []Issue {
	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return []Issue{{File: name, Message: fmt.Sprintf("yaml: %v", err)}}
	}

	value := schema.Context().BuildFile(file)
	if err := value.Err(); err != nil {
		return []Issue{{File: name, Message: cueDetails(err)}}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var issues []Issue
		for _, e := range cueerrors.Errors(err) {
			issues = append(issues, Issue{File: name, Message: e.Error()})
		}
		return issues
	}
	return nil
}

// vetChapter checks cross-field rules the schema cannot express and runs
// every reference query. References run isolated so a mutating reference
// (itself a defect) cannot taint the shared vetting database.
func vetChapter(ctx context.Context, cdb *casedb.CaseDB, name string, ch Chapter) []Issue {
	var issues []Issue

	seen := map[string]bool{}
	for _, step := range ch.Steps {
		if seen[step.ID] {
			issues = append(issues, Issue{File: name, Step: step.ID, Message: "duplicate step id"})
			continue
		}
		seen[step.ID] = true

		result, err := engine.ExecuteIsolated(ctx, cdb.DB(), step.ReferenceSQL)
		if err != nil {
			issues = append(issues, Issue{
				File:    name,
				Step:    step.ID,
				Message: fmt.Sprintf("reference query failed: %v", err),
			})
			continue
		}
		if len(result.Columns) == 0 {
			issues = append(issues, Issue{
				File:    name,
				Step:    step.ID,
				Message: "reference query produces no result set; the reference must be a SELECT",
			})
		}
	}
	return issues
}

// cueDetails flattens a CUE error chain into one readable line.
func cueDetails(err error) string {
	return strings.TrimSpace(cueerrors.Details(err, nil))
}
