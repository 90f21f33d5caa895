package infinitode

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"infinitode-go/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// All selectors target the structural attributes the profile page is
// rendered with. Regions marked required abort the parse when missing:
// the site serves a near-empty page for unknown playerids, so a missing
// required region means the playerid does not exist.
const (
	selNickname    = `label:not([i18n])`
	selTotalsBox   = `div[width="522"][height="140"][align="center"]`
	selXPBar       = `div[width="330"][height="64"]`
	selSeasonBox   = `div[width="530"][align="center"][height="64"][pad-bottom="10"]`
	selSeasonLevel = `div[x="466"][width="64"][height="64"]`
	selLevelRow    = `div[width="800"][height="40"]`
	selNotRanked   = `label[i18n="not_ranked"]`
	selBadgeBox    = `div[width="80"][height="80"]`
	selFooterTable = `table[width="800"][align="center"]`
)

func invalidProfile(playerid, region string) error {
	return malformed("invalid playerid %q: profile page is missing %s", playerid, region)
}

func parsePlayerProfile(body []byte, playerid string) (*Player, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, malformed("parsing profile page: %s", err)
	}

	player := &Player{
		playerid: playerid,
		levels:   map[string]*Score{},
		badges:   map[string]BadgeInfo{},
	}

	nickname := doc.Find(selNickname).First()
	if nickname.Length() == 0 {
		return nil, invalidProfile(playerid, "the nickname")
	}
	player.nickname = htmlutil.CleanText(nickname.Text())

	parseProfileTotals(doc, player)
	player.level = parseProfileLevel(doc)

	err = parseProfileXP(doc, player)
	if err != nil {
		return nil, invalidProfile(playerid, "the XP bar")
	}
	parseProfileSeasonXP(doc, player)
	parseProfileLevelRows(doc, player)
	parseProfileBadges(doc, player)

	err = parseProfileFooter(doc, player)
	if err != nil {
		return nil, invalidProfile(playerid, "the footer statistics table")
	}

	return player, nil
}

// tryInt mirrors the tolerant integer coercion used all over the
// profile page, unparsable text counts as zero.
func tryInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

func parseProfileTotals(doc *goquery.Document, player *Player) {
	player.totalTop = "0%"

	box := doc.Find(selTotalsBox).First()
	if box.Length() == 0 {
		return
	}
	labels := box.Find("label")
	if labels.Length() < 4 {
		return
	}
	player.totalScore = tryInt(stripCommas(labels.Eq(1).Text()))
	player.totalRank = tryInt(stripCommas(labels.Eq(2).Text()))
	player.totalTop = strings.ReplaceAll(labels.Eq(3).Text(), "- Top ", "")
}

var levelCommentPattern = regexp.MustCompile(`>\s*([0-9]+)\s*<`)

// The XP level is only present in an HTML comment on the page.
func parseProfileLevel(doc *goquery.Document) int {
	for _, comment := range htmlutil.FindComments(doc) {
		if !strings.Contains(comment, "Level:") {
			continue
		}
		groups := levelCommentPattern.FindStringSubmatch(comment)
		if len(groups) == 2 {
			return tryInt(groups[1])
		}
	}
	return 1
}

func splitXPText(text string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(text), " / ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected \"xp / max\", got %q", text)
	}
	xp, err := strconv.Atoi(stripCommas(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	max, err := strconv.Atoi(stripCommas(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return xp, max, nil
}

func parseProfileXP(doc *goquery.Document, player *Player) error {
	bar := doc.Find(selXPBar).First()
	if bar.Length() == 0 {
		return fmt.Errorf("no XP bar")
	}
	xp, max, err := splitXPText(bar.Find("label").First().Text())
	if err != nil {
		return err
	}
	player.xp = xp
	player.xpMax = max
	return nil
}

// Profiles rendered before the current season (or for players who never
// participated) have no season box at all.
func parseProfileSeasonXP(doc *goquery.Document, player *Player) {
	player.seasonLevel = 1
	player.seasonXP = 0
	player.seasonXPMax = 500

	box := doc.Find(selSeasonBox).First()
	if box.Length() == 0 {
		return
	}
	xp, max, err := splitXPText(box.Find("label").First().Text())
	if err != nil {
		return
	}
	player.seasonXP = xp
	player.seasonXPMax = max

	levelBox := box.Find(selSeasonLevel).First()
	if levelBox.Length() == 0 {
		return
	}
	data := levelBox.AttrOr("data", "")
	if _, level, found := strings.Cut(data, ":"); found {
		player.seasonLevel = tryInt(level)
	}
}

func parseProfileLevelRows(doc *goquery.Document, player *Player) {
	rows := doc.Find(selLevelRow)
	// the first row is the table header
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		labels := row.Find("label")
		if labels.Length() == 0 {
			return
		}
		mapname := htmlutil.CleanText(labels.Eq(0).Text())

		var rank, score, total int
		top := "-%"
		if row.Find(selNotRanked).Length() == 0 && labels.Length() >= 5 {
			score = tryInt(stripCommas(labels.Eq(1).Text()))
			rank = tryInt(stripCommas(labels.Eq(2).Text()))
			total = tryInt(stripCommas(strings.ReplaceAll(labels.Eq(3).Text(), "/ ", "")))
			top = labels.Eq(labels.Length() - 1).Text()
		}

		level := player.level
		nickname := player.nickname
		topCopy := top
		totalCopy := total
		player.levels[mapname] = &Score{
			method:     "player",
			mapname:    mapname,
			mode:       ModeScore,
			difficulty: DifficultyNormal,
			playerid:   player.playerid,
			rank:       rank,
			score:      score,
			total:      &totalCopy,
			top:        &topCopy,
			level:      &level,
			nickname:   &nickname,
		}
	})
}

var badgeRarities = map[string]struct{}{
	"not-received": {},
	"common":       {},
	"rare":         {},
	"very-rare":    {},
	"epic":         {},
	"legendary":    {},
	"supreme":      {},
	"artifact":     {},
}

// allowedBadgeTypes is the badge-type allow-list; anything else found on
// the page is silently dropped.
func allowedBadgeTypes(level int) map[string]struct{} {
	highLeveled := level / 10
	if level >= 100 {
		highLeveled = 10
	}
	return map[string]struct{}{
		"daily-game":            {},
		"invited-players":       {},
		"killed-enemies":        {},
		"mined-resources":       {},
		"skillful":              {},
		"of-merit":              {},
		"beta-tester-season-2":  {},
		fmt.Sprintf("high-leveled-%d", highLeveled): {},
	}
}

func badgeTypeAllowed(ico, rarity string, allowed map[string]struct{}) bool {
	if _, ok := allowed[ico]; ok {
		return true
	}
	switch ico {
	case "youtube-author-" + rarity,
		"season-level-" + rarity + "-2",
		"season-level-" + rarity + "-3":
		return true
	}
	return strings.HasPrefix(ico, "season-1") || strings.HasPrefix(ico, "season-2")
}

func tokenAfter(s, marker string) (string, bool) {
	_, after, found := strings.Cut(s, marker)
	if !found {
		return "", false
	}
	// lop off the image file extension
	if dot := strings.LastIndexByte(after, '.'); dot >= 0 {
		after = after[:dot]
	}
	return after, true
}

func parseProfileBadges(doc *goquery.Document, player *Player) {
	allowed := allowedBadgeTypes(player.level)

	doc.Find(selBadgeBox).Each(func(_ int, box *goquery.Selection) {
		imgs := box.Find("img")
		if imgs.Length() < 2 {
			return
		}
		rarity, found := tokenAfter(imgs.Eq(0).AttrOr("src", ""), "bg-")
		if !found {
			return
		}
		if _, ok := badgeRarities[rarity]; !ok {
			return
		}
		ico, found := tokenAfter(imgs.Eq(1).AttrOr("src", ""), "icon-")
		if !found || !badgeTypeAllowed(ico, rarity, allowed) {
			return
		}
		color := imgs.Eq(imgs.Length() - 1).AttrOr("color", "")
		player.badges[ico] = BadgeInfo{Rarity: rarity, Color: color}
	})
}

var joinDayPattern = regexp.MustCompile(`^([0-9]+)`)

func parseProfileFooter(doc *goquery.Document, player *Player) error {
	table := doc.Find(selFooterTable).Last()
	labels := table.Find("label")
	n := labels.Length()
	if n < 3 {
		return fmt.Errorf("footer table has %d labels", n)
	}

	replays := strings.Split(labels.Eq(n-3).Text(), " ")
	if len(replays) == 4 {
		player.replays = tryInt(replays[3])
	}

	issues := strings.Split(labels.Eq(n-2).Text(), " ")
	if len(issues) == 6 && len(issues[0]) > 3 {
		player.issues = tryInt(issues[0][3:])
	}

	joined := labels.Eq(n - 1).Text()
	_, after, found := strings.Cut(joined, "ned ")
	if !found {
		return fmt.Errorf("no join date in %q", joined)
	}
	fields := strings.Fields(after)
	if len(fields) < 3 {
		return fmt.Errorf("unexpected join date %q", after)
	}
	day := joinDayPattern.FindString(fields[0])
	if day == "" {
		return fmt.Errorf("unexpected join day %q", fields[0])
	}
	createdAt, err := time.Parse("2 January 2006", fmt.Sprintf(
		"%s %s %s", day, fields[len(fields)-2], fields[len(fields)-1],
	))
	if err != nil {
		return err
	}
	player.createdAt = createdAt.Format("2006-01-02")
	return nil
}
