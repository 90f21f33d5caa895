package infinitode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testLeaderboard() *Leaderboard {
	lb := &Leaderboard{
		method:     "leaderboards",
		mapname:    "5.1",
		mode:       ModeScore,
		difficulty: DifficultyNormal,
		total:      5000,
	}
	entries := []struct {
		playerid string
		nickname string
		score    int
	}{
		{"U-AAAA-AAAA-AAAAAA", "Eupho", 1000000},
		{"U-BBBB-BBBB-BBBBBB", "Advinas", 900000},
		{"U-CCCC-CCCC-CCCCCC", "Sprylos", 800000},
		{"U-DDDD-DDDD-DDDDDD", "OldTimer", 700000},
		{"U-EEEE-EEEE-EEEEEE", "S0ME-0NE", 600000},
	}
	for i, e := range entries {
		nickname := e.nickname
		lb.append(&Score{
			method:     "leaderboards",
			mapname:    "5.1",
			mode:       ModeScore,
			difficulty: DifficultyNormal,
			playerid:   e.playerid,
			rank:       i + 1,
			score:      e.score,
			nickname:   &nickname,
		})
	}
	return lb
}

func TestLeaderboardSlice(t *testing.T) {
	lb := testLeaderboard()
	sub := lb.Slice(1, 3)

	require.Equal(t, 2, sub.Len())
	require.Equal(t, 2, sub.At(0).Rank())
	require.Equal(t, 3, sub.At(1).Rank())

	// metadata carries over
	require.Equal(t, lb.Method(), sub.Method())
	require.Equal(t, lb.Mapname(), sub.Mapname())
	require.Equal(t, lb.Total(), sub.Total())

	// the source is untouched
	require.Equal(t, 5, lb.Len())
}

func TestLeaderboardSliceClampsBounds(t *testing.T) {
	lb := testLeaderboard()

	sub := lb.Slice(3, 100)
	require.Equal(t, 2, sub.Len())
	require.Equal(t, 4, sub.At(0).Rank())
	require.Equal(t, 5, sub.At(1).Rank())

	sub = lb.Slice(-2, 2)
	require.Equal(t, 2, sub.Len())
	require.Equal(t, 1, sub.At(0).Rank())

	require.True(t, lb.Slice(4, 1).IsEmpty())
	require.True(t, lb.Slice(10, 20).IsEmpty())
}

func TestLeaderboardScoreLookups(t *testing.T) {
	lb := testLeaderboard()

	score := lb.ScoreByPlayerID("U-CCCC-CCCC-CCCCCC")
	require.NotNil(t, score)
	require.Equal(t, 3, score.Rank())
	require.Nil(t, lb.ScoreByPlayerID("U-ZZZZ-ZZZZ-ZZZZZZ"))

	score = lb.ScoreByNickname("Advinas")
	require.NotNil(t, score)
	require.Equal(t, 2, score.Rank())
	require.Nil(t, lb.ScoreByNickname("advinas"))
}

func TestLeaderboardScoreByClosestNickname(t *testing.T) {
	lb := testLeaderboard()

	// exact matches trivially win
	score := lb.ScoreByClosestNickname("Sprylos")
	require.NotNil(t, score)
	require.Equal(t, 3, score.Rank())

	// misspellings and case differences still resolve
	score = lb.ScoreByClosestNickname("advinsa")
	require.NotNil(t, score)
	require.Equal(t, 2, score.Rank())

	require.Nil(t, lb.ScoreByClosestNickname("qqqqqqqqqqqq"))
}

func TestLeaderboardFormatScores(t *testing.T) {
	lb := testLeaderboard().Slice(0, 2)
	formatted, err := lb.FormatScores()
	require.NoError(t, err)
	require.Equal(
		t,
		"#1     Eupho                  1,000,000\n#2     Advinas                900,000",
		formatted,
	)
}

func TestLeaderboardIsEmpty(t *testing.T) {
	lb := &Leaderboard{}
	require.True(t, lb.IsEmpty())
	require.Equal(t, 0, lb.Len())
	require.Empty(t, lb.Scores())
	require.False(t, testLeaderboard().IsEmpty())
}
