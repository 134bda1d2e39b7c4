// Package preflight documents the workflow entry gate. The step refuses to
// run anywhere that is not a Python project root: both marker files
// (pyproject.toml and setup.py) must exist in the working directory before a
// single external tool is spawned. Once the directory qualifies, the step
// probes the two required tools (the build backend and twine) with minimal
// version invocations and reports the exact pip command that installs
// whichever one is missing. Every failure here is fatal to the whole
// workflow; nothing downstream can recover from a wrong directory or an
// absent tool.
package preflight
