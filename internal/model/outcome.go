package model

import "sort"

// OutcomeKind classifies the terminal result of processing one SourceItem.
type OutcomeKind int

const (
	// OutcomeDownloaded means the track was fetched, converted, tagged and
	// moved to its final destination.
	OutcomeDownloaded OutcomeKind = iota

	// OutcomeSkipped means the destination already existed (or another
	// in-flight task claimed the same destination first).
	OutcomeSkipped

	// OutcomeFailed means a collaborator failed; ErrorKind says which.
	OutcomeFailed

	// OutcomeCancelled means shutdown was requested before the item
	// reached the fetch stage.
	OutcomeCancelled
)

// String returns the lower-case name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrorKind identifies which collaborator (or policy) caused a failure.
type ErrorKind string

const (
	// ErrKindNoMatch: the catalog returned no acceptable candidate.
	ErrKindNoMatch ErrorKind = "no_match"

	// ErrKindStream: the audio stream could not be retrieved.
	ErrKindStream ErrorKind = "stream"

	// ErrKindTranscode: conversion to the target bitrate failed.
	ErrKindTranscode ErrorKind = "transcode"

	// ErrKindTagWrite: embedding metadata into the output file failed.
	ErrKindTagWrite ErrorKind = "tag_write"
)

// TrackOutcome is the terminal result for one SourceItem.
//
// Exactly one TrackOutcome is written per item, by the worker that
// processed it.
type TrackOutcome struct {
	// Item is the source item this outcome belongs to.
	Item SourceItem

	// Kind is the terminal classification.
	Kind OutcomeKind

	// DestinationPath is set for OutcomeDownloaded, and for OutcomeSkipped
	// when the skip was decided against a concrete destination.
	DestinationPath string

	// Reason is a short human-readable explanation for skips.
	Reason string

	// ErrorKind and Message describe failures (OutcomeFailed only).
	ErrorKind ErrorKind
	Message   string
}

// Downloaded builds a success outcome for item.
func Downloaded(item SourceItem, dest string) TrackOutcome {
	return TrackOutcome{Item: item, Kind: OutcomeDownloaded, DestinationPath: dest}
}

// Skipped builds a skip outcome for item.
func Skipped(item SourceItem, dest, reason string) TrackOutcome {
	return TrackOutcome{Item: item, Kind: OutcomeSkipped, DestinationPath: dest, Reason: reason}
}

// Failed builds a failure outcome for item.
func Failed(item SourceItem, kind ErrorKind, message string) TrackOutcome {
	return TrackOutcome{Item: item, Kind: OutcomeFailed, ErrorKind: kind, Message: message}
}

// Cancelled builds a cancellation outcome for item.
func Cancelled(item SourceItem) TrackOutcome {
	return TrackOutcome{Item: item, Kind: OutcomeCancelled}
}

// RunSummary aggregates the outcomes of a full run.
//
// Outcomes are ordered by the items' SequenceIndex, not by completion
// order, so reports are reproducible regardless of worker scheduling.
type RunSummary struct {
	Outcomes []TrackOutcome

	Total      int
	Downloaded int
	Skipped    int
	Failed     int
	Cancelled  int
}

// NewRunSummary sorts outcomes into sequence order and tallies counts.
func NewRunSummary(outcomes []TrackOutcome) RunSummary {
	sorted := make([]TrackOutcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Item.SequenceIndex < sorted[j].Item.SequenceIndex
	})

	s := RunSummary{Outcomes: sorted, Total: len(sorted)}
	for _, o := range sorted {
		switch o.Kind {
		case OutcomeDownloaded:
			s.Downloaded++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		case OutcomeCancelled:
			s.Cancelled++
		}
	}
	return s
}

// AllSucceeded reports whether every item ended as downloaded or skipped.
func (s RunSummary) AllSucceeded() bool {
	return s.Failed == 0 && s.Cancelled == 0
}

// NoneSucceeded reports whether not a single item was downloaded or skipped.
func (s RunSummary) NoneSucceeded() bool {
	return s.Downloaded == 0 && s.Skipped == 0
}
