package slots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/smartyhall/meshbbs/pkg/storagefs"
)

const maxJackpotFileBytes = 10_000

// globalJackpot is the progressive-pot state shared by every player,
// persisted to slotmachine/jackpot.json.
type globalJackpot struct {
	Losses      uint64     `json:"losses"`
	LastWin     *time.Time `json:"last_win,omitempty"`
	LastWinNode string     `json:"last_win_node,omitempty"`
}

func jackpotPath(baseDir string) string {
	return filepath.Join(baseDir, "slotmachine", "jackpot.json")
}

func loadJackpot(baseDir string) (globalJackpot, error) {
	data, err := storagefs.ReadFileChecked(jackpotPath(baseDir), maxJackpotFileBytes)
	if err != nil {
		if os.IsNotExist(err) {
			return globalJackpot{}, nil
		}
		return globalJackpot{}, err
	}
	var j globalJackpot
	if err := json.Unmarshal(data, &j); err != nil {
		return globalJackpot{}, err
	}
	return j, nil
}

func saveJackpot(baseDir string, j globalJackpot) error {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}
	return storagefs.WriteFileLocked(jackpotPath(baseDir), data)
}

func currentPot(losses uint64) uint64 {
	return baseJackpot + losses*BetCoins
}

// jackpotPayoutAndReset pays winner the current pot (>= baseJackpot)
// and resets the loss counter to zero.
func jackpotPayoutAndReset(baseDir, winner string, now time.Time) (uint64, error) {
	j, err := loadJackpot(baseDir)
	if err != nil {
		return 0, err
	}
	payout := currentPot(j.Losses)
	j.Losses = 0
	j.LastWin = &now
	j.LastWinNode = winner
	if err := saveJackpot(baseDir, j); err != nil {
		return 0, err
	}
	return payout, nil
}

// jackpotRecordLoss increments the shared loss counter after a
// zero-multiplier spin.
func jackpotRecordLoss(baseDir string) error {
	j, err := loadJackpot(baseDir)
	if err != nil {
		return err
	}
	j.Losses++
	return saveJackpot(baseDir, j)
}

// JackpotSummary is the public view of the current pot, used by a
// collaborator rendering a lobby/status screen.
type JackpotSummary struct {
	Amount      uint64
	LastWin     *time.Time
	LastWinNode string
}

// GetJackpotSummary reads the current progressive jackpot amount and
// last-winner record.
func GetJackpotSummary(baseDir string) (JackpotSummary, error) {
	j, err := loadJackpot(baseDir)
	if err != nil {
		return JackpotSummary{}, err
	}
	return JackpotSummary{
		Amount:      currentPot(j.Losses),
		LastWin:     j.LastWin,
		LastWinNode: j.LastWinNode,
	}, nil
}
