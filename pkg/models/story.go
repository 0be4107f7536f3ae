package models

// Story is one entry of a story highlight reel. Stories are static lookup
// data grouped by category name; they are never persisted.
type Story struct {
	Type     MediaKind `json:"type"`
	URL      string    `json:"url"`
	Duration int       `json:"duration"` // display duration in milliseconds
}
