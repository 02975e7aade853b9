// Package audio provides audio file services: transcoding downloaded
// streams to MP3, writing ID3 tags, and playlist generation.
//
// # Transcoding
//
// The catalog serves AAC streams; Transcoder shells out to ffmpeg to
// produce MP3 at a configured bitrate:
//
//	tr := audio.NewTranscoder("ffmpeg", logger)
//	err := tr.Transcode(ctx, "in.m4a", "out.mp3", 320)
//
// # ID3 Tagging
//
// Use the Tagger to write tags to MP3 files:
//
//	tagger := audio.NewTagger()
//	err := tagger.WriteTags(path, details.Tags(), artworkBytes)
//
// The tagger writes title, artist, album, album artist, composers,
// label, genre, year, copyright, source URL and duration, plus embedded
// cover art.
//
// # Playlist Generation
//
// Generate an M3U playlist for the files produced by a run:
//
//	creator := audio.NewPlaylistCreator(true) // extended M3U
//	content := creator.CreateM3U(entries)
//	os.WriteFile("playlist.m3u", []byte(content), 0644)
package audio
