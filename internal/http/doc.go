// Package http provides the HTTP client shared by mploader's network
// collaborators: catalog API calls, artwork fetches and audio stream
// downloads.
//
// The Client in this package handles:
//   - A browser-like User-Agent (the catalog rejects anonymous clients)
//   - Timeout handling
//   - JSON decoding for API responses
//   - Streaming downloads with progress tracking
//
// # Basic usage
//
//	client := http.NewClient()
//
//	// Call a JSON API
//	var out searchResponse
//	err := client.GetJSON(ctx, searchURL, &out)
//
//	// Stream a file to disk
//	err = client.DownloadFile(ctx, streamURL, "/tmp/track.m4a", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
package http
