package infinitode

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Score is a single in-game score. Every field is read through an
// accessor. Optional fields report presence separately so an unknown
// value is never confused with zero. All fields are immutable except
// the lazily resolved owning player.
type Score struct {
	method     string
	mapname    string
	mode       string
	difficulty string
	playerid   string
	rank       int
	score      int

	hasPfp      *bool
	level       *int
	nickname    *string
	pinnedBadge *Badge
	position    *int
	top         *string
	total       *int

	// mu guards player
	mu     sync.Mutex
	player *Player
}

// Method names the session operation that produced this score.
func (s *Score) Method() string { return s.method }

func (s *Score) Mapname() string { return s.mapname }

func (s *Score) Mode() string { return s.mode }

func (s *Score) Difficulty() string { return s.difficulty }

func (s *Score) PlayerID() string { return s.playerid }

// Rank is the 1-based position of this score, computed client-side from
// response order.
func (s *Score) Rank() int { return s.rank }

func (s *Score) Score() int { return s.score }

// HasPfp reports whether the player has an avatar. Only sometimes available.
func (s *Score) HasPfp() (bool, bool) {
	if s.hasPfp == nil {
		return false, false
	}
	return *s.hasPfp, true
}

// Level is the XP level of the player. Only sometimes available.
func (s *Score) Level() (int, bool) {
	if s.level == nil {
		return 0, false
	}
	return *s.level, true
}

// Nickname is the nickname of the player. Only sometimes available.
func (s *Score) Nickname() (string, bool) {
	if s.nickname == nil {
		return "", false
	}
	return *s.nickname, true
}

// PinnedBadge is the pinned badge of the player. Only sometimes available.
func (s *Score) PinnedBadge() (Badge, bool) {
	if s.pinnedBadge == nil {
		return Badge{}, false
	}
	return *s.pinnedBadge, true
}

// Position is like Rank but reported by the server, it is unreliable
// beyond the top 200.
func (s *Score) Position() (int, bool) {
	if s.position == nil {
		return 0, false
	}
	return *s.position, true
}

// Top is the top percentage of this score, e.g. "1.23%".
func (s *Score) Top() (string, bool) {
	if s.top == nil {
		return "", false
	}
	return *s.top, true
}

// Total is the total player count on the map. Only sometimes available.
func (s *Score) Total() (int, bool) {
	if s.total == nil {
		return 0, false
	}
	return *s.total, true
}

// Player returns the owning player, or nil if FetchPlayer has not run yet.
func (s *Score) Player() *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

// FetchPlayer resolves the owning player through the given session and
// memoizes it on the score.
func (s *Score) FetchPlayer(ctx context.Context, session *Session) (*Player, error) {
	s.mu.Lock()
	if s.player != nil {
		player := s.player
		s.mu.Unlock()
		return player, nil
	}
	s.mu.Unlock()

	player, err := session.Player(ctx, s.playerid)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		s.player = player
	}
	return s.player, nil
}

// FormatScore renders the score as "#rank nickname score". Scores
// without a nickname attached cannot be formatted.
func (s *Score) FormatScore() (string, error) {
	if s.nickname == nil {
		return "", fmt.Errorf("the score has no nickname attached and cannot be formatted")
	}
	nickname := *s.nickname
	if runes := []rune(nickname); len(runes) >= 21 {
		nickname = string(runes[:19]) + "..."
	}
	return fmt.Sprintf("#%-5d %-22s %s", s.rank, nickname, groupDigits(s.score)), nil
}

// PrintScore writes the result of FormatScore to stdout.
func (s *Score) PrintScore() error {
	formatted, err := s.FormatScore()
	if err != nil {
		return err
	}
	fmt.Println(formatted)
	return nil
}

func (s *Score) String() string {
	return fmt.Sprintf(
		"<Score method=%s mapname=%s mode=%s difficulty=%s playerid=%s rank=%d score=%d>",
		s.method, s.mapname, s.mode, s.difficulty, s.playerid, s.rank, s.score,
	)
}

func groupDigits(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + strings.Join(groups, ",")
}
