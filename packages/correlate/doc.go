// Package correlate matches asynchronous driver answers to the
// checks that asked for them.
//
// Every check gets a fresh identifier at declaration time. Answers
// come back on one shared stream, so a listener only acts on the
// message carrying both its semantic key and its identifier:
//   - Registry mints identifiers and builds one-shot listeners that
//     evaluate the check's comparator and report the outcome.
//   - Router holds listeners keyed by identifier and removes each
//     one the moment it consumes a message, so a listener fires at
//     most once and the table cannot grow without bound.
//   - Counters accumulates resolved-comparison totals for the run.
//   - ProceededSet guards comparator attachments against double
//     firing, keyed by (identifier, operator name).
//
// Messages that match no listener are logged and dropped. A check
// whose answer never arrives simply stays pending; nothing times it
// out here.
package correlate
