package domain

import (
	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/maxovaroy/merlin-V2/pkg/crypto"
)

// pickWinners samples up to count distinct user ids from the entries. Users
// who never won before are drawn first; previous winners only fill the
// remaining seats when the fresh pool runs dry.
func pickWinners(entries []entity.GiveawayEntry, count int) []string {
	if count <= 0 || len(entries) == 0 {
		return nil
	}

	fresh := []string{}
	veterans := []string{}
	for _, entry := range entries {
		if entry.Won {
			veterans = append(veterans, entry.UserID)
		} else {
			fresh = append(fresh, entry.UserID)
		}
	}

	winners := sample(fresh, count)
	if len(winners) < count {
		winners = append(winners, sample(veterans, count-len(winners))...)
	}

	return winners
}

func sample(pool []string, count int) []string {
	if count >= len(pool) {
		shuffled := append([]string{}, pool...)
		crypto.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		return shuffled
	}

	picked := make([]string, 0, count)
	remaining := append([]string{}, pool...)
	for i := 0; i < count; i++ {
		j := crypto.RandIntn(len(remaining))
		picked = append(picked, remaining[j])
		remaining[j] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return picked
}
