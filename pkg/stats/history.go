package stats

import (
	"fmt"

	"github.com/df07/go-photon-tracer/pkg/core"
)

// HistoryEvent tags an entry of a photon's history log
type HistoryEvent int

const (
	Created HistoryEvent = iota
	FresnelReflectedEvent
	FresnelTransmittedEvent
	HitDetectorEvent
	HitDummyDetectorEvent
)

func (e HistoryEvent) String() string {
	switch e {
	case Created:
		return "created"
	case FresnelReflectedEvent:
		return "fresnel-reflected"
	case FresnelTransmittedEvent:
		return "fresnel-transmitted"
	case HitDetectorEvent:
		return "hit-detector"
	case HitDummyDetectorEvent:
		return "hit-dummy-detector"
	default:
		return fmt.Sprintf("HistoryEvent(%d)", int(e))
	}
}

// HistoryRecord is one entry of a photon's history log
type HistoryRecord struct {
	Event    HistoryEvent
	Position core.Vec3
}
