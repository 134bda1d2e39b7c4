// Package importprobe verifies that the installed distribution actually
// exposes the package's primary symbol. A failure here means the wheel was
// built and installed cleanly but its contents are wrong (broken package
// data, a bad packages directive, a renamed module), so the message points at
// packaging metadata rather than the build tooling.
package importprobe
