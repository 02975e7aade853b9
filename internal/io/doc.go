// Package ioutils provides file system and image utilities for mploader.
//
// This package contains functions for:
//   - Directory creation
//   - Atomic promotion of temp files to final destinations
//   - Cover art resizing and JPEG conversion
//
// The pipeline never writes to a final destination path directly: tracks
// are assembled at temporary paths and moved into place with MoveFile only
// after every processing step succeeded, so a failed run can never leave a
// half-written file that looks like a completed download.
package ioutils
