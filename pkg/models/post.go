package models

import (
	"errors"
	"strings"
)

// MaxCarouselItems is the platform ceiling for media entries in a single carousel.
const MaxCarouselItems = 10

type PostKind string

const (
	PostKindStatic   PostKind = "static"
	PostKindReel     PostKind = "reel"
	PostKindCarousel PostKind = "carousel"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

var (
	ErrNoMediaItems      = errors.New("carousel post must have at least one media item")
	ErrTooManyMediaItems = errors.New("carousel post cannot have more than 10 media items")
	ErrNoVisualMedia     = errors.New("post must have a visual media url")
	ErrNotCarousel       = errors.New("post is not a carousel")
	ErrMediaIndex        = errors.New("media item index out of range")
)

// MediaItem is one entry of a carousel. Provisional marks a locally-generated
// fallback URL that will not survive outside the editing session.
type MediaItem struct {
	Type        MediaKind `json:"type"`
	URL         string    `json:"url"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	Provisional bool      `json:"provisional,omitempty"`
}

type PostStats struct {
	Views string `json:"views,omitempty"`
	Likes int    `json:"likes"`
}

// Post is one feed entry. The JSON field names are the published wire format
// shared with the preview frontend, so they stay camelCase.
type Post struct {
	ID             int64       `json:"id"`
	Type           PostKind    `json:"type"`
	Day            string      `json:"day"`
	ImageType      string      `json:"imageType,omitempty"`
	Icon           string      `json:"icon,omitempty"`
	Title          string      `json:"title"`
	Objective      string      `json:"objective"`
	Stats          PostStats   `json:"stats"`
	Media          []MediaItem `json:"media,omitempty"`
	VisualMediaURL string      `json:"visualMediaUrl"`
	DownloadURL    string      `json:"downloadUrl,omitempty"`
	Copy           string      `json:"copy"`
	Hashtags       []string    `json:"hashtags"`
}

// Validate checks the kind-dependent media invariants: a carousel carries
// 1..10 media items and mirrors the first one as its visual media; any other
// kind carries no media items and a non-empty visual media URL.
func (p *Post) Validate() error {
	if p.Type == PostKindCarousel {
		if len(p.Media) == 0 {
			return ErrNoMediaItems
		}
		if len(p.Media) > MaxCarouselItems {
			return ErrTooManyMediaItems
		}
		return nil
	}
	if len(p.Media) > 0 {
		return ErrNotCarousel
	}
	if p.VisualMediaURL == "" {
		return ErrNoVisualMedia
	}
	return nil
}

// SetMedia replaces the carousel's media items and re-derives the primary URLs.
func (p *Post) SetMedia(items []MediaItem) error {
	if p.Type != PostKindCarousel {
		return ErrNotCarousel
	}
	if len(items) == 0 {
		return ErrNoMediaItems
	}
	if len(items) > MaxCarouselItems {
		return ErrTooManyMediaItems
	}
	p.Media = items
	p.syncPrimaryMedia()
	return nil
}

// RemoveMediaItem drops one carousel item. Removing the first item re-derives
// the primary URLs from the new first item.
func (p *Post) RemoveMediaItem(index int) error {
	if p.Type != PostKindCarousel {
		return ErrNotCarousel
	}
	if index < 0 || index >= len(p.Media) {
		return ErrMediaIndex
	}
	if len(p.Media) == 1 {
		return ErrNoMediaItems
	}
	p.Media = append(p.Media[:index], p.Media[index+1:]...)
	p.syncPrimaryMedia()
	return nil
}

// MoveMediaItem reorders one carousel item, preserving the relative order of
// the others.
func (p *Post) MoveMediaItem(from, to int) error {
	if p.Type != PostKindCarousel {
		return ErrNotCarousel
	}
	if from < 0 || from >= len(p.Media) || to < 0 || to >= len(p.Media) {
		return ErrMediaIndex
	}
	if from == to {
		return nil
	}
	item := p.Media[from]
	rest := append(p.Media[:from:from], p.Media[from+1:]...)
	p.Media = append(rest[:to:to], append([]MediaItem{item}, rest[to:]...)...)
	p.syncPrimaryMedia()
	return nil
}

// HasProvisionalMedia reports whether any referenced media URL is a
// non-durable local fallback.
func (p *Post) HasProvisionalMedia() bool {
	for _, item := range p.Media {
		if item.Provisional {
			return true
		}
	}
	return false
}

func (p *Post) syncPrimaryMedia() {
	if len(p.Media) == 0 {
		return
	}
	p.VisualMediaURL = p.Media[0].URL
	p.DownloadURL = p.Media[0].DownloadURL
}

// NormalizeHashtags ensures every tag carries a single leading '#'.
func NormalizeHashtags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		normalized = append(normalized, tag)
	}
	return normalized
}
