package infinitode

import (
	"errors"
	"os"
	"sync"
	"testing"

	"infinitode-go/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func readFixture(t testing.TB, name string) []byte {
	body, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return body
}

func TestParsePlayerProfile(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	player, err := parsePlayerProfile(readFixture(t, "profile.html"), "U-AAAA-BBBB-CCCCCC")
	require.NoError(t, err)

	require.Equal(t, "U-AAAA-BBBB-CCCCCC", player.PlayerID())
	require.Equal(t, "Sprylos", player.Nickname())
	require.Equal(t, 57, player.Level())
	require.Equal(t, 120, player.XP())
	require.Equal(t, 500, player.XPMax())

	require.Equal(t, 7, player.SeasonLevel())
	require.Equal(t, 250, player.SeasonXP())
	require.Equal(t, 1000, player.SeasonXPMax())

	require.Equal(t, 1234567, player.TotalScore())
	require.Equal(t, 89, player.TotalRank())
	require.Equal(t, "1.2%", player.TotalTop())

	require.Equal(t, 17, player.Replays())
	require.Equal(t, 3, player.Issues())
	require.Equal(t, "2021-03-03", player.CreatedAt())

	require.Equal(t, map[string]BadgeInfo{
		"killed-enemies":     {Rarity: "epic", Color: "#FF0000"},
		"season-1-completed": {Rarity: "legendary", Color: "#00FF00"},
	}, player.Badges())
}

func TestParsePlayerProfileLevelRows(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	player, err := parsePlayerProfile(readFixture(t, "profile.html"), "U-AAAA-BBBB-CCCCCC")
	require.NoError(t, err)

	ranked := player.Score("5.1")
	require.Equal(t, "player", ranked.Method())
	require.Equal(t, "5.1", ranked.Mapname())
	require.Equal(t, 5000, ranked.Score())
	require.Equal(t, 12, ranked.Rank())
	total, ok := ranked.Total()
	require.True(t, ok)
	require.Equal(t, 3456, total)
	top, ok := ranked.Top()
	require.True(t, ok)
	require.Equal(t, "0.3%", top)
	nickname, ok := ranked.Nickname()
	require.True(t, ok)
	require.Equal(t, "Sprylos", nickname)
	level, ok := ranked.Level()
	require.True(t, ok)
	require.Equal(t, 57, level)

	unranked := player.Score("2.1")
	require.Equal(t, 0, unranked.Score())
	require.Equal(t, 0, unranked.Rank())
	top, ok = unranked.Top()
	require.True(t, ok)
	require.Equal(t, "-%", top)
}

func TestPlayerScoreCreatesMissingMaps(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	player, err := parsePlayerProfile(readFixture(t, "profile.html"), "U-AAAA-BBBB-CCCCCC")
	require.NoError(t, err)

	score := player.Score("6.2")
	require.Equal(t, "player", score.Method())
	require.Equal(t, "6.2", score.Mapname())
	require.Equal(t, "U-AAAA-BBBB-CCCCCC", score.PlayerID())
	require.Equal(t, 0, score.Rank())
	require.Equal(t, 0, score.Score())
	top, ok := score.Top()
	require.True(t, ok)
	require.Equal(t, "-%", top)
	total, ok := score.Total()
	require.True(t, ok)
	require.Equal(t, 0, total)

	// repeated lookups resolve to the same entry
	require.Same(t, score, player.Score("6.2"))
}

func TestPlayerConcurrentScoreAccess(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	player, err := parsePlayerProfile(readFixture(t, "profile.html"), "U-AAAA-BBBB-CCCCCC")
	require.NoError(t, err)

	// the session cache shares one Player across callers, lazy score
	// creation must hold up under concurrent use
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, mapname := range Levels {
				player.Score(mapname)
				player.DailyQuest()
				player.SkillPoint()
			}
		}()
	}
	wg.Wait()

	require.Same(t, player.Score("6.2"), player.Score("6.2"))
	require.Equal(t, 12, player.Score("5.1").Rank())
}

func TestParsePlayerProfileWithoutSeason(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	player, err := parsePlayerProfile(readFixture(t, "profile_noseason.html"), "U-DDDD-EEEE-FFFFFF")
	require.NoError(t, err)

	require.Equal(t, "OldTimer", player.Nickname())
	require.Equal(t, 1, player.Level())
	require.Equal(t, 40, player.XP())
	require.Equal(t, 160, player.XPMax())

	require.Equal(t, 1, player.SeasonLevel())
	require.Equal(t, 0, player.SeasonXP())
	require.Equal(t, 500, player.SeasonXPMax())

	require.Equal(t, 0, player.TotalScore())
	require.Equal(t, 0, player.TotalRank())
	require.Equal(t, "0%", player.TotalTop())

	require.Equal(t, 2, player.Replays())
	require.Equal(t, 0, player.Issues())
	require.Equal(t, "2019-12-21", player.CreatedAt())

	require.Empty(t, player.Badges())
}

func TestParsePlayerProfileEmptyPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	_, err := parsePlayerProfile(readFixture(t, "profile_empty.html"), "U-0000-0000-000000")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformedResponse)
	require.ErrorContains(t, err, "U-0000-0000-000000")

	// percent signs in the playerid must survive message formatting
	_, err = parsePlayerProfile(readFixture(t, "profile_empty.html"), "U-100%-0000-000000")
	require.ErrorContains(t, err, "U-100%-0000-000000")
}

func TestPlayerLazyScoresStartUnfetched(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/infinitode")
	defer cleanup()

	player, err := parsePlayerProfile(readFixture(t, "profile.html"), "U-AAAA-BBBB-CCCCCC")
	require.NoError(t, err)

	_, err = player.DailyQuest()
	require.ErrorIs(t, err, ErrNotFetched)
	_, err = player.SkillPoint()
	require.ErrorIs(t, err, ErrNotFetched)
}

func TestPlayerAvatarURL(t *testing.T) {
	player := &Player{playerid: "U-AAAA-BBBB-CCCCCC"}
	require.Equal(
		t,
		"https://infinitode.prineside.com/img/avatars/U-AAAA-BBBB-CCCCCC-128.png",
		player.AvatarURL(),
	)
}

func TestMalformedResponseUnwrapsToSentinel(t *testing.T) {
	err := malformed("missing %s", "footer")
	require.ErrorIs(t, err, ErrMalformedResponse)

	var typed *MalformedResponseError
	require.True(t, errors.As(err, &typed))
	require.Equal(t, "missing footer", typed.Reason)
}
