package game

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion guards against loading snapshots written by an
// incompatible build.
const snapshotVersion = 1

type snapshot struct {
	Version int        `json:"version"`
	State   *GameState `json:"state"`
}

// Snapshot serializes a game state. Everything a restore needs round-trips:
// modifier ids and the id counter, pending selections, per-attack combat
// bookkeeping, and the RNG seed.
func Snapshot(st *GameState) ([]byte, error) {
	return json.Marshal(snapshot{Version: snapshotVersion, State: st})
}

// RestoreSnapshot deserializes a snapshot back into a state value.
func RestoreSnapshot(data []byte) (*GameState, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is not supported", snap.Version)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("snapshot holds no state")
	}
	st := snap.State
	if st.ID == "" {
		return nil, fmt.Errorf("snapshot state has no game id")
	}
	if len(st.TurnOrder) == 0 || len(st.Players) != len(st.TurnOrder) {
		return nil, fmt.Errorf("snapshot players do not match turn order")
	}
	for _, id := range st.TurnOrder {
		if st.Players[id] == nil {
			return nil, fmt.Errorf("turn order names unknown player %q", id)
		}
	}
	for _, m := range st.Modifiers.Modifiers {
		if m.ID >= st.Modifiers.NextID {
			return nil, fmt.Errorf("modifier id %d is ahead of the id counter", m.ID)
		}
	}
	return st, nil
}
