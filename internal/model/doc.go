// Package model defines the core data structures used throughout mploader.
//
// # SourceItem
//
// SourceItem represents one playlist entry (or single video) to be resolved:
//
//	item := model.SourceItem{RawTitle: "Song [Official Video]", Uploader: "Artist", SourceID: "abc", SequenceIndex: 0}
//
// # MatchCandidate
//
// MatchCandidate is one catalog search result considered for selection.
// Optional fields (Year, DurationSeconds, ArtworkURL) are zero-valued when
// the catalog did not report them.
//
// # TrackOutcome and RunSummary
//
// Every SourceItem yields exactly one TrackOutcome; the orchestrator
// aggregates them into a RunSummary ordered by SequenceIndex:
//
//	summary := model.NewRunSummary(outcomes)
//	fmt.Printf("%d downloaded, %d failed\n", summary.Downloaded, summary.Failed)
//
// # Destination naming
//
// DestinationFileName computes the deterministic "{title} - {artist}.mp3"
// filename with filesystem-unsafe characters replaced, so repeated runs map
// the same match to the same file.
package model
