package infinitode

import (
	"testing"

	"infinitode-go/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestParseSeasonalLeaderboard(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	body := readFixture(t, "seasonal.html")
	lb, err := parseSeasonalLeaderboard(body)
	require.NoError(t, err)

	require.Equal(t, "seasonal_leaderboard", lb.Method())
	require.Equal(t, "season", lb.Mapname())
	require.Equal(t, ModeScore, lb.Mode())
	require.Equal(t, DifficultyNormal, lb.Difficulty())
	require.Equal(t, 12345, lb.Total())
	require.Equal(t, body, lb.Raw())

	season, ok := lb.Season()
	require.True(t, ok)
	require.Equal(t, 3, season)

	_, ok = lb.Date()
	require.False(t, ok)
	require.Nil(t, lb.Player())

	require.Equal(t, 3, lb.Len())

	first := lb.At(0)
	require.Equal(t, 1, first.Rank())
	require.Equal(t, 1000000, first.Score())
	require.Equal(t, "U-AAAA-BBBB-CCCCCC", first.PlayerID())
	nickname, ok := first.Nickname()
	require.True(t, ok)
	require.Equal(t, "Eupho", nickname)

	second := lb.At(1)
	require.Equal(t, 2, second.Rank())
	require.Equal(t, 900000, second.Score())
	require.Equal(t, "U-DDDD-EEEE-FFFFFF", second.PlayerID())

	third := lb.At(2)
	require.Equal(t, 3, third.Rank())
	require.Equal(t, 123456, third.Score())
	nickname, ok = third.Nickname()
	require.True(t, ok)
	require.Equal(t, "S0ME-0NE", nickname)
}

func TestParseSeasonalLeaderboardMissingSeason(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	_, err := parseSeasonalLeaderboard([]byte("<html><body></body></html>"))
	require.ErrorIs(t, err, ErrMalformedResponse)
}
