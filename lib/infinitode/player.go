package infinitode

import (
	"context"
	"fmt"
	"sync"
)

// lazyScore distinguishes "not yet attempted" from "attempted, the
// player is not ranked" from "resolved".
type lazyScore struct {
	fetched bool
	score   *Score
}

// Player is an in-game player profile scraped from the website. The
// session cache hands the same Player to every caller, so the lazily
// populated state is guarded by a mutex.
type Player struct {
	playerid string
	nickname string

	// mu guards levels, dailyQuest and skillPoint
	mu     sync.Mutex
	levels map[string]*Score

	level int
	xp    int
	xpMax int

	seasonLevel int
	seasonXP    int
	seasonXPMax int

	badges map[string]BadgeInfo

	totalScore int
	totalRank  int
	totalTop   string

	replays   int
	issues    int
	createdAt string

	dailyQuest lazyScore
	skillPoint lazyScore
}

func (p *Player) PlayerID() string { return p.playerid }

func (p *Player) Nickname() string { return p.nickname }

// Level is the player's XP level.
func (p *Player) Level() int { return p.level }

// XP is the player's XP in the current level.
func (p *Player) XP() int { return p.xp }

// XPMax is the XP required for the player to level up.
func (p *Player) XPMax() int { return p.xpMax }

func (p *Player) SeasonLevel() int { return p.seasonLevel }

func (p *Player) SeasonXP() int { return p.seasonXP }

func (p *Player) SeasonXPMax() int { return p.seasonXPMax }

// Badges maps badge type to its rarity and color.
func (p *Player) Badges() map[string]BadgeInfo {
	out := make(map[string]BadgeInfo, len(p.badges))
	for k, v := range p.badges {
		out[k] = v
	}
	return out
}

// TotalScore is the player's total seasonal score.
func (p *Player) TotalScore() int { return p.totalScore }

// TotalRank is the player's placement in the total leaderboard.
func (p *Player) TotalRank() int { return p.totalRank }

// TotalTop is the player's total top percentage, e.g. "1.2%".
func (p *Player) TotalTop() string { return p.totalTop }

// Replays is the player's amount of verified replays.
func (p *Player) Replays() int { return p.replays }

// Issues is the player's amount of replays that failed verification.
func (p *Player) Issues() int { return p.issues }

// CreatedAt is the player's creation date formatted as YYYY-MM-DD.
func (p *Player) CreatedAt() string { return p.createdAt }

// AvatarURL links to the player's avatar. The URL is dead when the
// player never uploaded one.
func (p *Player) AvatarURL() string {
	return fmt.Sprintf("https://infinitode.prineside.com/img/avatars/%s-128.png", p.playerid)
}

// Score returns the player's score on the given map. Maps the player is
// not ranked on yield a zero score, created lazily.
func (p *Player) Score(mapname string) *Score {
	p.mu.Lock()
	defer p.mu.Unlock()

	if score, ok := p.levels[mapname]; ok {
		return score
	}
	zero := "-%"
	total := 0
	score := &Score{
		method:     "player",
		mapname:    mapname,
		mode:       ModeScore,
		difficulty: DifficultyNormal,
		playerid:   p.playerid,
		top:        &zero,
		total:      &total,
	}
	p.levels[mapname] = score
	return score
}

// DailyQuest returns the player's daily quest score, nil when the player
// is not ranked, or ErrNotFetched before FetchDailyQuest has run.
func (p *Player) DailyQuest() (*Score, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dailyQuest.fetched {
		return nil, ErrNotFetched
	}
	return p.dailyQuest.score, nil
}

// SkillPoint returns the player's skill point score, nil when the player
// is not ranked, or ErrNotFetched before FetchSkillPoint has run.
func (p *Player) SkillPoint() (*Score, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.skillPoint.fetched {
		return nil, ErrNotFetched
	}
	return p.skillPoint.score, nil
}

// FetchDailyQuest fetches the player's daily quest score unless it is
// already resolved. A nil score means the player is not ranked today.
func (p *Player) FetchDailyQuest(ctx context.Context, session *Session) (*Score, error) {
	p.mu.Lock()
	if p.dailyQuest.fetched && p.dailyQuest.score != nil {
		score := p.dailyQuest.score
		p.mu.Unlock()
		return score, nil
	}
	p.mu.Unlock()

	lb, err := session.DailyQuestLeaderboards(ctx, "", p.playerid)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dailyQuest.fetched && p.dailyQuest.score != nil {
		return p.dailyQuest.score, nil
	}
	p.dailyQuest = lazyScore{fetched: true, score: lb.Player()}
	return p.dailyQuest.score, nil
}

// FetchSkillPoint fetches the player's skill point score unless it is
// already resolved. A nil score means the player is not ranked.
func (p *Player) FetchSkillPoint(ctx context.Context, session *Session) (*Score, error) {
	p.mu.Lock()
	if p.skillPoint.fetched && p.skillPoint.score != nil {
		score := p.skillPoint.score
		p.mu.Unlock()
		return score, nil
	}
	p.mu.Unlock()

	lb, err := session.SkillPointLeaderboard(ctx, p.playerid)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.skillPoint.fetched && p.skillPoint.score != nil {
		return p.skillPoint.score, nil
	}
	p.skillPoint = lazyScore{fetched: true, score: lb.Player()}
	return p.skillPoint.score, nil
}

func (p *Player) String() string {
	return fmt.Sprintf(
		"<Player playerid=%s nickname=%s total_rank=%d>",
		p.playerid, p.nickname, p.totalRank,
	)
}
