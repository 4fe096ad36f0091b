// Package driver defines the boundary to the browser-automation
// driver: the command interface the assertion core issues checks
// through, and the Message shape answers come back in.
//
// Every command carries the check's positional arguments followed by
// a correlation identifier; the driver echoes that identifier in its
// answer so the core can match the two on a shared, unfiltered
// stream. Expected values never cross this boundary; comparison is
// always local.
//
// The package also ships Replay, a scripted driver that answers from
// canned values. It powers offline runs and deterministic tests.
package driver
