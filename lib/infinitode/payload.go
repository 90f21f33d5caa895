package infinitode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexInt decodes a JSON number or a numeric string. The API is not
// consistent about which one it sends.
type flexInt struct {
	set   bool
	value int
}

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	if s == "null" || s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not coercible to an integer: %q", s)
	}
	f.set = true
	f.value = n
	return nil
}

type badgePayload struct {
	IconImg      string `json:"iconImg"`
	IconColor    string `json:"iconColor"`
	OverlayImg   string `json:"overlayImg"`
	OverlayColor string `json:"overlayColor"`
}

type scorePayload struct {
	PlayerID    string        `json:"playerid"`
	Rank        flexInt       `json:"rank"`
	Score       flexInt       `json:"score"`
	HasPfp      *bool         `json:"hasPfp"`
	Level       flexInt       `json:"level"`
	Nickname    *string       `json:"nickname"`
	PinnedBadge *badgePayload `json:"pinnedBadge"`
	Position    flexInt       `json:"position"`
	Top         *string       `json:"top"`
	Total       flexInt       `json:"total"`
}

type apiResponse struct {
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Player       json.RawMessage `json:"player"`
	Leaderboards json.RawMessage `json:"leaderboards"`
}

func decodeAPIResponse(body []byte) (*apiResponse, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	var resp apiResponse
	err := decoder.Decode(&resp)
	if err != nil {
		return nil, malformed("decoding api response: %s", err)
	}
	return &resp, nil
}

// toScore maps a raw score object onto an entity. rankOverride replaces
// the payload's own rank when positive; leaderboard entries are ranked
// client-side from response order.
func (p *scorePayload) toScore(method, mapname, mode, difficulty, playerid string, rankOverride int) *Score {
	if playerid == "" {
		playerid = p.PlayerID
	}
	rank := p.Rank.value
	if rankOverride > 0 {
		rank = rankOverride
	}

	score := &Score{
		method:     method,
		mapname:    mapname,
		mode:       mode,
		difficulty: difficulty,
		playerid:   playerid,
		rank:       rank,
		score:      p.Score.value,
	}
	if p.HasPfp != nil {
		hasPfp := *p.HasPfp
		score.hasPfp = &hasPfp
	}
	if p.Level.set {
		level := p.Level.value
		score.level = &level
	}
	if p.Nickname != nil {
		nickname := *p.Nickname
		score.nickname = &nickname
	}
	if p.PinnedBadge != nil {
		score.pinnedBadge = &Badge{
			IconImg:      p.PinnedBadge.IconImg,
			IconColor:    p.PinnedBadge.IconColor,
			OverlayImg:   p.PinnedBadge.OverlayImg,
			OverlayColor: p.PinnedBadge.OverlayColor,
		}
	}
	if p.Position.set {
		position := p.Position.value
		score.position = &position
	}
	if p.Top != nil {
		top := *p.Top
		score.top = &top
	}
	if p.Total.set {
		total := p.Total.value
		score.total = &total
	}
	return score
}

// newScoreFromPayload maps a rank-lookup response, its player object is
// a standalone score.
func newScoreFromPayload(method, mapname, mode, difficulty, playerid string, resp *apiResponse) (*Score, error) {
	if len(resp.Player) == 0 {
		return nil, malformed("%s response is missing the player object", method)
	}
	var payload scorePayload
	err := json.Unmarshal(resp.Player, &payload)
	if err != nil {
		return nil, malformed("decoding %s player object: %s", method, err)
	}
	return payload.toScore(method, mapname, mode, difficulty, playerid, 0), nil
}

// newLeaderboardFromPayload maps a leaderboard response. The requesting
// player's own score is attached only when a playerid was supplied and
// the server reported an actual ranking for it.
func newLeaderboardFromPayload(method, mapname, mode, difficulty, playerid string, resp *apiResponse, body []byte, date string) (*Leaderboard, error) {
	if len(resp.Player) == 0 {
		return nil, malformed("%s response is missing the player object", method)
	}
	var player scorePayload
	err := json.Unmarshal(resp.Player, &player)
	if err != nil {
		return nil, malformed("decoding %s player object: %s", method, err)
	}
	if !player.Total.set {
		return nil, malformed("%s response is missing the total player count", method)
	}

	var entries []scorePayload
	if len(resp.Leaderboards) > 0 {
		err = json.Unmarshal(resp.Leaderboards, &entries)
		if err != nil {
			return nil, malformed("decoding %s leaderboard entries: %s", method, err)
		}
	}

	lb := &Leaderboard{
		method:     method,
		mapname:    mapname,
		mode:       mode,
		difficulty: difficulty,
		total:      player.Total.value,
		raw:        body,
		date:       date,
	}
	if playerid != "" && player.Score.value != 0 && player.Rank.value != 0 && player.Total.value != 0 {
		lb.playerScore = player.toScore(method, mapname, mode, difficulty, playerid, 0)
	}
	for i := range entries {
		lb.append(entries[i].toScore(method, mapname, mode, difficulty, "", i+1))
	}
	return lb, nil
}
