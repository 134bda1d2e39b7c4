// Package build owns the only step that mutates the project tree. It clears
// dist/, build/, and any *.egg-info debris so every run starts from the same
// state, then hands the project to `python -m build` to regenerate the wheel
// and sdist. The clean is idempotent; running the step twice in a row
// produces the same output directory as a single fresh run.
package build
