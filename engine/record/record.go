// Package record exports a finished (or abandoned) game as a JSON transcript.
// A record is a log, not a save: it cannot be resumed.
package record

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nathoo/tuberoulette/engine/state"
)

// Version of the record format.
const Version = "1"

// Seat is an actor's final standing.
type Seat struct {
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"max_hp"`
}

// Record is the JSON-serializable transcript format.
type Record struct {
	Version    string   `json:"version"`
	Seed       int64    `json:"seed"`
	Rounds     int      `json:"rounds"`
	Steps      int      `json:"steps"`
	Draws      int64    `json:"rng_draws"`
	Outcome    string   `json:"outcome"`
	Player     Seat     `json:"player"`
	Dealer     Seat     `json:"dealer"`
	Transcript []string `json:"transcript"`
}

// Build captures s. draws is the RNG position at capture time.
func Build(s *state.State, draws int64) Record {
	transcript := make([]string, len(s.Transcript))
	copy(transcript, s.Transcript)
	return Record{
		Version:    Version,
		Seed:       s.Seed,
		Rounds:     s.Round,
		Steps:      s.StepCount,
		Draws:      draws,
		Outcome:    s.Outcome.String(),
		Player:     seat(s.Player),
		Dealer:     seat(s.Dealer),
		Transcript: transcript,
	}
}

// Marshal serializes a record to indented JSON.
func Marshal(r Record) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Load deserializes JSON bytes into a Record.
func Load(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("record version %q, want %q", r.Version, Version)
	}
	// Ensure the transcript is never nil after load.
	if r.Transcript == nil {
		r.Transcript = []string{}
	}
	return &r, nil
}

// WriteFile marshals r to path.
func WriteFile(path string, r Record) error {
	data, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func seat(a *state.Actor) Seat {
	return Seat{Name: a.Name, HP: a.HP, MaxHP: a.MaxHP}
}
