package model

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKind classifies a downloaded file for preview rendering.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindOther MediaKind = "other"
)

// MediaKindOf infers the media kind from a file name extension.
func MediaKindOf(name string) MediaKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return MediaKindImage
	case ".mp4":
		return MediaKindVideo
	default:
		return MediaKindOther
	}
}

// MediaFile is a single relocated download artifact.
type MediaFile struct {
	// Name is the file name relative to the destination folder.
	Name string
	Kind MediaKind
}

// IsImage reports whether the file renders as an inline image.
func (f MediaFile) IsImage() bool {
	return f.Kind == MediaKindImage
}

// IsVideo reports whether the file renders as an inline video.
func (f MediaFile) IsVideo() bool {
	return f.Kind == MediaKindVideo
}

// FetchRequest carries the two user inputs of the download form.
type FetchRequest struct {
	// URL is the post URL (or pasted text containing one).
	URL string
	// Folder is the requested destination folder name. Empty means the
	// configured default.
	Folder string
}

// FetchResult describes a completed fetch.
type FetchResult struct {
	ID        uuid.UUID
	Shortcode Shortcode
	// Folder is the sanitized destination folder name actually used.
	Folder string
	Files  []MediaFile
	// Warnings holds non-fatal relocation problems.
	Warnings []string
	Duration time.Duration
}
