package combat

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// SessionState is the lifecycle state of a combat session
type SessionState string

// Session states
const (
	StatePreparation SessionState = "preparation"
	StateActive      SessionState = "active"
	StateVictory     SessionState = "victory"
	StateDefeat      SessionState = "defeat"
	StateDraw        SessionState = "draw"
)

// IsTerminal reports whether the state ends the session for good
func (s SessionState) IsTerminal() bool {
	return s == StateVictory || s == StateDefeat || s == StateDraw
}

// DefaultMaxRounds is the round limit after which a session ends in a draw
const DefaultMaxRounds = 50

// LogEntry is one line of the combat log
type LogEntry struct {
	Round     int        `json:"round"`
	ActorID   string     `json:"actor_id,omitempty"`
	Action    ActionType `json:"action,omitempty"`
	Narrative string     `json:"narrative"`
}

// Session is the state of one encounter
type Session struct {
	ID                    string       `json:"id"`
	Combatants            []*Combatant `json:"combatants"`
	TurnIndex             int          `json:"turn_index"`
	Round                 int          `json:"round"`
	State                 SessionState `json:"state"`
	StoryContext          string       `json:"story_context,omitempty"`
	EnvironmentalFeatures []string     `json:"environmental_features,omitempty"`
	TeamUpOpportunities   []string     `json:"team_up_opportunities,omitempty"`
	// TurnStarted is set once status effects were processed for the current turn
	TurnStarted bool       `json:"turn_started"`
	MaxRounds   int        `json:"max_rounds"`
	Log         []LogEntry `json:"log,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Combatant finds a combatant by ID
func (s *Session) Combatant(id string) (*Combatant, bool) {
	for _, c := range s.Combatants {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Current returns the combatant holding the turn
func (s *Session) Current() (*Combatant, bool) {
	if s.TurnIndex < 0 || s.TurnIndex >= len(s.Combatants) {
		return nil, false
	}
	return s.Combatants[s.TurnIndex], true
}

// Members returns the combatants of a faction in initiative order
func (s *Session) Members(faction Faction) []*Combatant {
	var out []*Combatant
	for _, c := range s.Combatants {
		if c.Faction == faction {
			out = append(out, c)
		}
	}
	return out
}

// Living returns the combatants of a faction with HP above 0
func (s *Session) Living(faction Faction) []*Combatant {
	var out []*Combatant
	for _, c := range s.Combatants {
		if c.Faction == faction && c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// AddLog appends a log line for the current round
func (s *Session) AddLog(actorID string, action ActionType, narrative string) {
	s.Log = append(s.Log, LogEntry{
		Round:     s.Round,
		ActorID:   actorID,
		Action:    action,
		Narrative: narrative,
	})
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Combatants = make([]*Combatant, len(s.Combatants))
	for i, c := range s.Combatants {
		out.Combatants[i] = c.Clone()
	}
	out.EnvironmentalFeatures = append([]string(nil), s.EnvironmentalFeatures...)
	out.TeamUpOpportunities = append([]string(nil), s.TeamUpOpportunities...)
	out.Log = append([]LogEntry(nil), s.Log...)
	return &out
}

// SessionEntityType is the entity type reported by sessions
const SessionEntityType = "combat_session"

var _ core.Entity = (*Session)(nil)

// GetID returns the session ID
func (s *Session) GetID() string {
	return s.ID
}

// GetType returns SessionEntityType
func (s *Session) GetType() string {
	return SessionEntityType
}
