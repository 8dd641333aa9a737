package transport

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/stats"
)

// recorder assembles the track and history log of the photon being traced
type recorder struct {
	opts    stats.TrackOptions
	tracks  *stats.TrackList
	logging bool

	track *stats.Track // nil when no track is built for this photon
	log   []stats.HistoryRecord
	hit   bool
}

func (r *recorder) start(position core.Vec3, time float64) {
	r.hit = false
	r.track = nil
	if r.opts.Build && r.tracks != nil && r.tracks.HasRoom() {
		r.track = &stats.Track{ID: fmt.Sprintf("trk_%s", uuid.NewString())}
		r.track.Add(position, time)
	}
	r.log = nil
	if r.logging {
		r.log = []stats.HistoryRecord{{Event: stats.Created, Position: position}}
	}
}

func (r *recorder) node(position core.Vec3, time float64) {
	if r.track != nil {
		r.track.Add(position, time)
	}
}

func (r *recorder) event(event stats.HistoryEvent, position core.Vec3) {
	if r.logging {
		r.log = append(r.log, stats.HistoryRecord{Event: event, Position: position})
	}
}

// finish styles and stores the track and hands the log to the sink
func (r *recorder) finish(origin ScintOrigin, sink stats.Sink) {
	if r.track != nil && (r.hit || !r.opts.HitsOnly) {
		r.track.Width = r.opts.Width
		r.track.HitDetector = r.hit
		switch {
		case r.hit:
			r.track.Color = r.opts.HitColor
		case origin == OriginPrimary:
			r.track.Color = r.opts.PrimaryColor
		case origin == OriginSecondary:
			r.track.Color = r.opts.SecondaryColor
		default:
			r.track.Color = r.opts.OtherColor
		}
		r.tracks.Add(r.track)
	}
	r.track = nil

	if r.logging {
		sink.AppendHistory(r.log)
		r.log = nil
	}
}
