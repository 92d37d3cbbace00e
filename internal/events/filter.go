package events

import "github.com/pitchside/live-engine/internal/model"

// Settings selects which event categories reach a user.
type Settings struct {
	Enabled      bool `json:"enabled" mapstructure:"enabled"`
	Wickets      bool `json:"wickets" mapstructure:"wickets"`
	Boundaries   bool `json:"boundaries" mapstructure:"boundaries"`
	Milestones   bool `json:"milestones" mapstructure:"milestones"`
	MatchUpdates bool `json:"matchUpdates" mapstructure:"match_updates"`
}

// DefaultSettings enables everything.
func DefaultSettings() Settings {
	return Settings{Enabled: true, Wickets: true, Boundaries: true, Milestones: true, MatchUpdates: true}
}

// Allows reports whether an event of type t should be delivered.
func (s Settings) Allows(t model.EventType) bool {
	if !s.Enabled {
		return false
	}
	switch t {
	case model.EventWicket:
		return s.Wickets
	case model.EventBoundary, model.EventSix:
		return s.Boundaries
	case model.EventMilestone:
		return s.Milestones
	case model.EventMatchStart, model.EventMatchEnd, model.EventInningsBreak:
		return s.MatchUpdates
	default:
		return false
	}
}
