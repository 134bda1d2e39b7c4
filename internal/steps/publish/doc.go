// Package publish holds the only step with an irreversible side effect. It
// shows the operator exactly what a run is about to upload, waits for a
// single-keystroke confirmation, and only then hands the artifact set to
// twine. Declining is a terminal cancellation, not a failure: the process
// exits zero and prints the manual upload command for later. A successful
// upload leaves a receipt document under .wheelhouse/receipts recording the
// file names and sha256 digests that went to the index.
package publish
