package slots

import (
	"math/rand"
	"time"
)

// Engine performs spins against a slot-machine data directory. It
// holds no mutable state of its own beyond the RNG source — every spin
// reads and writes the players/jackpot files under baseDir directly,
// so two Engines pointed at the same directory observe each other's
// changes immediately.
type Engine struct {
	baseDir string
	rng     *rand.Rand
}

// NewEngine returns an Engine rooted at baseDir (typically
// "<data_dir>/slotmachine"'s parent — the engine appends its own
// "slotmachine" subdirectory).
func NewEngine(baseDir string) *Engine {
	return &Engine{baseDir: baseDir, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// PerformSpin deducts the bet (refilling first if eligible), spins the
// three reels, applies the payout (including a jackpot read-reset on
// triple sevens), updates the player's lifetime stats, and persists
// the result. If the player cannot afford the bet and is not yet
// eligible for a refill, the returned outcome uses the out-of-coins
// sentinel and no state changes.
func (e *Engine) PerformSpin(playerID string) (SpinOutcome, uint64, error) {
	now := time.Now().UTC()
	file, err := loadPlayers(e.baseDir)
	if err != nil {
		return SpinOutcome{}, 0, err
	}

	entry, existed := file.Players[playerID]
	if !existed {
		entry = PlayerState{Coins: DailyGrant, LastReset: now}
	}

	if entry.Coins < BetCoins && entry.Coins == 0 {
		if now.Sub(entry.LastReset) >= time.Duration(RefillHours)*time.Hour {
			entry.Coins = DailyGrant
			entry.LastReset = now
		}
	}

	if entry.Coins < BetCoins {
		file.Players[playerID] = entry
		if err := savePlayers(e.baseDir, file); err != nil {
			return SpinOutcome{}, 0, err
		}
		remaining := time.Duration(RefillHours)*time.Hour - now.Sub(entry.LastReset)
		hours := int64(remaining.Hours())
		if hours < 0 {
			hours = 0
		}
		mins := int64(remaining.Minutes()) % 60
		if mins < 0 {
			mins = 0
		}
		return SpinOutcome{
			R1: "outofcoins", R2: "outofcoins", R3: "outofcoins",
			Description: refillETADescription(hours, mins),
		}, entry.Coins, nil
	}

	entry.Coins -= BetCoins
	r1 := spinReel(reel1, e.rng)
	r2 := spinReel(reel2, e.rng)
	r3 := spinReel(reel3, e.rng)
	mult, desc := evaluate(r1, r2, r3)

	var winnings uint64
	if mult == 100 {
		winnings, err = jackpotPayoutAndReset(e.baseDir, playerID, now)
		if err != nil {
			return SpinOutcome{}, 0, err
		}
		entry.Coins += winnings
	} else {
		winnings = uint64(mult) * BetCoins
		entry.Coins += winnings
		if mult == 0 {
			if err := jackpotRecordLoss(e.baseDir); err != nil {
				return SpinOutcome{}, 0, err
			}
		}
	}

	entry.TotalSpins++
	spinTime := now
	entry.LastSpin = &spinTime
	if mult > 0 {
		entry.TotalWins++
	}
	if mult == 100 {
		entry.Jackpots++
		jackpotTime := now
		entry.LastJackpot = &jackpotTime
	}

	file.Players[playerID] = entry
	if err := savePlayers(e.baseDir, file); err != nil {
		return SpinOutcome{}, 0, err
	}

	return SpinOutcome{R1: r1, R2: r2, R3: r3, Multiplier: mult, Winnings: winnings, Description: desc}, entry.Coins, nil
}

func refillETADescription(hours, mins int64) string {
	return "out of coins, next refill in ~" + itoa(hours) + "h " + itoa(mins) + "m"
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
