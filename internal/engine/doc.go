// Package engine is the answer-validation engine: it runs SQL against the
// seeded case database, canonicalizes the output, and decides whether a
// learner's result is equivalent to a step's reference result.
//
// # Components
//
//   - Executor (Execute, ExecuteIsolated): runs one SQL string and
//     normalizes the first result set into a tabular.Result. Learner SQL
//     goes through ExecuteIsolated, which wraps execution in a transaction
//     that is always rolled back, so an arbitrary (possibly destructive)
//     statement can never taint the shared handle the reference query is
//     about to use.
//   - Comparator (Compare): structural and semantic equivalence between two
//     results under a Policy, with one enumerated failure category per
//     verdict. Data mismatches are verdicts, never errors.
//   - StepValidator: closes over one reference SQL string and a Policy,
//     giving step content a ready-made Check function. A failing reference
//     query is an authoring bug: it is logged for the operator and
//     downgraded to a generic internal-error verdict, never shown raw to
//     the learner.
//
// Execution is synchronous and single-threaded from the engine's point of
// view: one check action, one control-flow path, no background work.
package engine
