// Package download orchestrates a full run: resolving the source
// reference, normalizing and matching every item, and fetching the
// matched tracks through a bounded worker pool.
//
// # Pipeline
//
// Each source item moves through the stages independently:
//
//	queued -> normalizing -> matching -> skip check -> fetching -> done
//
// A failure in one item never affects the others; every item ends in
// exactly one terminal outcome and the run report always accounts for
// every item.
//
// # Skip and claim semantics
//
// The Ledger snapshots the output directory once at run start and then
// arbitrates destination file names between concurrent workers: a name
// already on disk is skipped, and when two items in the same run resolve
// to the same destination only the first claimant fetches.
//
// # Cancellation
//
// Cancel stops the run gracefully. Items that have not reached the fetch
// stage finish as cancelled; in-flight fetches run to completion so no
// truncated files are left behind. Cancelling the context passed to Run
// aborts fetches too.
package download
