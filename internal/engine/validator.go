package engine

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/gumshoe-sql/gumshoe/internal/tabular"
)

// StepValidator binds one reference SQL string and a Policy into a
// reusable checker for a single tutorial step. Step content supplies just
// the right answer and gets a ready-made Check.
type StepValidator struct {
	referenceSQL string
	policy       Policy
	logger       *slog.Logger
}

// ValidatorOption configures a StepValidator.
type ValidatorOption func(*StepValidator)

// WithPolicy overrides the default order-enforcing policy.
func WithPolicy(p Policy) ValidatorOption {
	return func(v *StepValidator) { v.policy = p }
}

// WithEnforceOrder toggles only the ordering half of the policy.
func WithEnforceOrder(enforce bool) ValidatorOption {
	return func(v *StepValidator) { v.policy.EnforceOrder = enforce }
}

// WithLogger sets the operator-facing logger for authoring defects.
func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(v *StepValidator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewStepValidator builds a validator around a reference query. The
// default policy enforces row order with default normalization.
func NewStepValidator(referenceSQL string, opts ...ValidatorOption) *StepValidator {
	v := &StepValidator{
		referenceSQL: referenceSQL,
		policy:       DefaultPolicy(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ReferenceSQL returns the bound reference query. Never show this to the
// learner; it exists for authoring tools (content vetting).
func (v *StepValidator) ReferenceSQL() string {
	return v.referenceSQL
}

// Check computes the reference result on the given handle and compares the
// learner's result against it. user is nil when the learner has not run
// anything yet.
//
// The reference must always be valid against the seeded schema, so a
// failing reference execution is an authoring bug: it is logged for the
// content author and downgraded to a generic internal-error verdict - the
// learner is never shown an error about a query they did not write.
func (v *StepValidator) Check(ctx context.Context, db *sql.DB, user *tabular.Result) Verdict {
	reference, err := Execute(ctx, db, v.referenceSQL)
	if err != nil {
		v.logger.Error("reference query failed",
			"sql", v.referenceSQL,
			"error", err,
		)
		return Fail(CategoryInternal)
	}

	return Compare(user, reference, v.policy)
}

// Bind returns Check as a standalone function, for callers that want a
// plain closure rather than the validator itself.
func (v *StepValidator) Bind() func(context.Context, *sql.DB, *tabular.Result) Verdict {
	return v.Check
}
