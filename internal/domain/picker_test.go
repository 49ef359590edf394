package domain

import (
	"testing"

	"github.com/maxovaroy/merlin-V2/internal/entity"
	"github.com/stretchr/testify/require"
)

func entriesOf(fresh, veterans []string) []entity.GiveawayEntry {
	entries := []entity.GiveawayEntry{}
	for _, id := range fresh {
		entries = append(entries, entity.GiveawayEntry{UserID: id})
	}
	for _, id := range veterans {
		entries = append(entries, entity.GiveawayEntry{UserID: id, Won: true})
	}
	return entries
}

func Test_pickWinners_bound(t *testing.T) {
	entries := entriesOf([]string{"a", "b"}, nil)

	winners := pickWinners(entries, 5)
	require.ElementsMatch(t, []string{"a", "b"}, winners)

	winners = pickWinners(entries, 1)
	require.Len(t, winners, 1)

	require.Empty(t, pickWinners(nil, 3))
	require.Empty(t, pickWinners(entries, 0))
}

func Test_pickWinners_distinct(t *testing.T) {
	entries := entriesOf([]string{"a", "b", "c", "d", "e"}, nil)

	for i := 0; i < 50; i++ {
		winners := pickWinners(entries, 3)
		require.Len(t, winners, 3)

		seen := map[string]bool{}
		for _, id := range winners {
			require.False(t, seen[id])
			seen[id] = true
		}
	}
}

func Test_pickWinners_prefersNeverWon(t *testing.T) {
	entries := entriesOf([]string{"fresh1", "fresh2"}, []string{"vet1", "vet2", "vet3"})

	// As long as enough never-won participants exist, no previous winner
	// may be drawn.
	for i := 0; i < 50; i++ {
		winners := pickWinners(entries, 2)
		require.ElementsMatch(t, []string{"fresh1", "fresh2"}, winners)
	}

	// When the fresh pool is short, previous winners fill the rest.
	for i := 0; i < 50; i++ {
		winners := pickWinners(entries, 4)
		require.Len(t, winners, 4)
		require.Contains(t, winners, "fresh1")
		require.Contains(t, winners, "fresh2")
	}
}
