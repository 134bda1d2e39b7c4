// Package engine runs workflow definitions step by step. Execution is
// strictly sequential and fail-fast: the first step that fails terminates the
// run, and a cancelled publish terminates it without marking the run as
// failed. The engine owns run identity, per-step records, and logbook output;
// the steps themselves own all tool invocations.
package engine
