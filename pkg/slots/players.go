package slots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/smartyhall/meshbbs/pkg/storagefs"
)

const maxPlayersFileBytes = 2_000_000

// PlayerState is the persisted per-player record, keyed by Meshtastic
// node ID in PlayersFile.
type PlayerState struct {
	Coins       uint64     `json:"coins"`
	LastReset   time.Time  `json:"last_reset"`
	TotalSpins  uint64     `json:"total_spins"`
	TotalWins   uint64     `json:"total_wins"`
	Jackpots    uint64     `json:"jackpots"`
	LastSpin    *time.Time `json:"last_spin,omitempty"`
	LastJackpot *time.Time `json:"last_jackpot,omitempty"`
}

// PlayersFile is the on-disk schema for slotmachine/players.json.
type PlayersFile struct {
	Players map[string]PlayerState `json:"players"`
}

func playersPath(baseDir string) string {
	return filepath.Join(baseDir, "slotmachine", "players.json")
}

func loadPlayers(baseDir string) (PlayersFile, error) {
	path := playersPath(baseDir)
	data, err := storagefs.ReadFileChecked(path, maxPlayersFileBytes)
	if err != nil {
		if os.IsNotExist(err) {
			return PlayersFile{Players: map[string]PlayerState{}}, nil
		}
		return PlayersFile{}, err
	}
	var file PlayersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return PlayersFile{}, err
	}
	if file.Players == nil {
		file.Players = map[string]PlayerState{}
	}
	return file, nil
}

func savePlayers(baseDir string, file PlayersFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return storagefs.WriteFileLocked(playersPath(baseDir), data)
}

// PlayerSummary is the public view of a player's coin balance and
// lifetime stats.
type PlayerSummary struct {
	Coins       uint64
	TotalSpins  uint64
	TotalWins   uint64
	Jackpots    uint64
	LastSpin    *time.Time
	LastJackpot *time.Time
}

// GetPlayerSummary returns playerID's stats, or ok=false if they have
// never spun.
func GetPlayerSummary(baseDir, playerID string) (PlayerSummary, bool, error) {
	file, err := loadPlayers(baseDir)
	if err != nil {
		return PlayerSummary{}, false, err
	}
	p, ok := file.Players[playerID]
	if !ok {
		return PlayerSummary{}, false, nil
	}
	return PlayerSummary{
		Coins:       p.Coins,
		TotalSpins:  p.TotalSpins,
		TotalWins:   p.TotalWins,
		Jackpots:    p.Jackpots,
		LastSpin:    p.LastSpin,
		LastJackpot: p.LastJackpot,
	}, true, nil
}

// NextRefillETA returns the hours/minutes remaining until playerID's
// next daily refill, or ok=false if they are not out of coins (or have
// no record at all).
func NextRefillETA(baseDir, playerID string, now time.Time) (hours, minutes int64, ok bool, err error) {
	file, err := loadPlayers(baseDir)
	if err != nil {
		return 0, 0, false, err
	}
	p, found := file.Players[playerID]
	if !found || p.Coins > 0 {
		return 0, 0, false, nil
	}
	remaining := time.Duration(RefillHours)*time.Hour - now.Sub(p.LastReset)
	if remaining <= 0 {
		return 0, 0, true, nil
	}
	return int64(remaining.Hours()), int64(remaining.Minutes()) % 60, true, nil
}
