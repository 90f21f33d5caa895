package infinitode

import (
	"bytes"
	"strings"

	"infinitode-go/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	selSeasonNumber = `label[i18n="season_formatted"]`
	selPlayerCount  = `label[i18n="player_count_formatted"]`
	selSeasonRow    = `div[x="90"]`
	selSeasonName   = `label[color="LIGHT_BLUE:P300"]`
	selSeasonScore  = `label[nowrap="true"][text-align="right"]`
)

// The i18nf attribute holds a rendered format argument list like ["3"].
func i18nfValue(sel *goquery.Selection) string {
	value := sel.AttrOr("i18nf", "")
	value = strings.TrimPrefix(value, `["`)
	value = strings.TrimSuffix(value, `"]`)
	return value
}

func parseSeasonalLeaderboard(body []byte) (*Leaderboard, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, malformed("parsing seasonal leaderboard page: %s", err)
	}

	seasonLabel := doc.Find(selSeasonNumber).First()
	if seasonLabel.Length() == 0 {
		return nil, malformed("seasonal leaderboard page is missing the season number")
	}
	season := tryInt(i18nfValue(seasonLabel))

	countLabel := doc.Find(selPlayerCount).First()
	if countLabel.Length() == 0 {
		return nil, malformed("seasonal leaderboard page is missing the player count")
	}
	total := tryInt(stripCommas(i18nfValue(countLabel)))

	rows := doc.Find(selSeasonRow).Length()
	names := doc.Find(selSeasonName)
	scores := doc.Find(selSeasonScore)
	if names.Length() < rows || scores.Length() < rows {
		return nil, malformed(
			"seasonal leaderboard page has %d rows but %d names and %d scores",
			rows, names.Length(), scores.Length(),
		)
	}

	lb := &Leaderboard{
		method:     "seasonal_leaderboard",
		mapname:    "season",
		mode:       ModeScore,
		difficulty: DifficultyNormal,
		total:      total,
		raw:        body,
		season:     season,
	}
	for i := 0; i < rows; i++ {
		name := names.Eq(i)
		_, playerid, found := strings.Cut(name.AttrOr("click", ""), "id=")
		if !found {
			return nil, malformed("seasonal leaderboard row %d has no playerid", i+1)
		}
		nickname := htmlutil.CleanText(name.Text())
		lb.append(&Score{
			method:     "seasonal_leaderboard",
			mapname:    "season",
			mode:       ModeScore,
			difficulty: DifficultyNormal,
			playerid:   playerid,
			rank:       i + 1,
			score:      tryInt(stripCommas(scores.Eq(i).Text())),
			nickname:   &nickname,
		})
	}
	return lb, nil
}
