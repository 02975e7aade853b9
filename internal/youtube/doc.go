// Package youtube resolves video and playlist references into flat lists
// of source items.
//
// Only metadata is read from the platform. Audio is never streamed from
// it; the items produced here exist to be normalized and matched against
// the music catalog, which serves the actual downloads.
package youtube
