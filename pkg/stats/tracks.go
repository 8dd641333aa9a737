package stats

import "github.com/df07/go-photon-tracer/pkg/core"

// TrackNode is one vertex of a track polyline
type TrackNode struct {
	Position core.Vec3
	Time     float64 // ns
}

// Track is the polyline of one photon, styled for display
type Track struct {
	ID          string
	Nodes       []TrackNode
	Color       int
	Width       int
	HitDetector bool
}

// Add appends a node
func (t *Track) Add(position core.Vec3, time float64) {
	t.Nodes = append(t.Nodes, TrackNode{Position: position, Time: time})
}

// TrackOptions controls track building and styling. Colours are palette
// indices of the viewer.
type TrackOptions struct {
	Build          bool
	MaxTracks      int  // cap over the whole run
	HitsOnly       bool // keep only tracks that reached a detector
	HitColor       int
	PrimaryColor   int
	SecondaryColor int
	OtherColor     int
	Width          int
}

// DefaultTrackOptions returns track options with building disabled
func DefaultTrackOptions() TrackOptions {
	return TrackOptions{
		Build:          false,
		MaxTracks:      1000,
		HitsOnly:       false,
		HitColor:       2,   // red
		PrimaryColor:   7,   // teal
		SecondaryColor: 6,   // magenta
		OtherColor:     920, // grey
		Width:          1,
	}
}

// TrackList is an append-only list of tracks capped at Max
type TrackList struct {
	Max    int
	Tracks []*Track
}

// NewTrackList creates an empty list holding at most limit tracks
func NewTrackList(limit int) *TrackList {
	return &TrackList{Max: limit}
}

// HasRoom reports whether another track may be added
func (l *TrackList) HasRoom() bool {
	return len(l.Tracks) < l.Max
}

// Add appends a track, returning false when the list is full
func (l *TrackList) Add(t *Track) bool {
	if !l.HasRoom() {
		return false
	}
	l.Tracks = append(l.Tracks, t)
	return true
}

// Merge appends another list's tracks until the cap is reached
func (l *TrackList) Merge(other *TrackList) {
	for _, t := range other.Tracks {
		if !l.Add(t) {
			return
		}
	}
}

// Len returns the number of tracks
func (l *TrackList) Len() int {
	return len(l.Tracks)
}
