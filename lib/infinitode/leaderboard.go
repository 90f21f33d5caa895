package infinitode

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// Leaderboard is an ordered sequence of scores ranked 1..N plus the
// metadata of the query that produced it.
type Leaderboard struct {
	method     string
	mapname    string
	mode       string
	difficulty string
	total      int
	raw        []byte

	date        string
	season      int
	playerScore *Score

	scores []*Score
}

// Method names the session operation that produced this leaderboard.
func (l *Leaderboard) Method() string { return l.method }

func (l *Leaderboard) Mapname() string { return l.mapname }

func (l *Leaderboard) Mode() string { return l.mode }

func (l *Leaderboard) Difficulty() string { return l.difficulty }

// Total is the total amount of players on this map.
func (l *Leaderboard) Total() int { return l.total }

// Raw is the raw source payload the leaderboard was mapped from.
func (l *Leaderboard) Raw() []byte { return l.raw }

// Date is the leaderboard's date. It only exists for the daily quest
// operation.
func (l *Leaderboard) Date() (string, bool) {
	return l.date, l.date != ""
}

// Season is the season number. It only exists for the seasonal operation.
func (l *Leaderboard) Season() (int, bool) {
	return l.season, l.season != 0
}

// Player is the requesting player's own score. It only exists when a
// valid playerid was supplied with the query.
func (l *Leaderboard) Player() *Score {
	return l.playerScore
}

func (l *Leaderboard) Len() int { return len(l.scores) }

func (l *Leaderboard) IsEmpty() bool { return len(l.scores) == 0 }

// At returns the i-th score in rank order.
func (l *Leaderboard) At(i int) *Score { return l.scores[i] }

// Scores returns the scores in rank order.
func (l *Leaderboard) Scores() []*Score {
	out := make([]*Score, len(l.scores))
	copy(out, l.scores)
	return out
}

// Slice returns a new leaderboard sharing this one's metadata but
// holding only the scores in [from, to). Out-of-range bounds are
// clamped to the score range, an inverted range yields no scores.
func (l *Leaderboard) Slice(from, to int) *Leaderboard {
	if from < 0 {
		from = 0
	}
	if to > len(l.scores) {
		to = len(l.scores)
	}
	if from > to {
		from = to
	}
	sub := *l
	sub.scores = l.scores[from:to]
	return &sub
}

// ScoreByPlayerID returns the score with the given playerid, or nil.
func (l *Leaderboard) ScoreByPlayerID(playerid string) *Score {
	for _, s := range l.scores {
		if s.playerid == playerid {
			return s
		}
	}
	return nil
}

// ScoreByNickname returns the first score with the given nickname, or nil.
func (l *Leaderboard) ScoreByNickname(nickname string) *Score {
	for _, s := range l.scores {
		if s.nickname != nil && *s.nickname == nickname {
			return s
		}
	}
	return nil
}

// closestNicknameThreshold is the minimum Jaro-Winkler similarity for a
// fuzzy nickname lookup to count as a match.
const closestNicknameThreshold = 0.7

// ScoreByClosestNickname returns the score whose nickname most closely
// matches the given one, or nil when nothing comes reasonably close.
func (l *Leaderboard) ScoreByClosestNickname(nickname string) *Score {
	var best *Score
	bestSimilarity := closestNicknameThreshold

	needle := strings.ToLower(nickname)
	for _, s := range l.scores {
		if s.nickname == nil {
			continue
		}
		similarity := matchr.JaroWinkler(needle, strings.ToLower(*s.nickname), true)
		if similarity >= bestSimilarity {
			best = s
			bestSimilarity = similarity
		}
	}
	return best
}

// FormatScores renders every score on its own line, see Score.FormatScore.
func (l *Leaderboard) FormatScores() (string, error) {
	lines := make([]string, len(l.scores))
	for i, s := range l.scores {
		formatted, err := s.FormatScore()
		if err != nil {
			return "", err
		}
		lines[i] = formatted
	}
	return strings.Join(lines, "\n"), nil
}

// PrintScores writes the result of FormatScores to stdout.
func (l *Leaderboard) PrintScores() error {
	formatted, err := l.FormatScores()
	if err != nil {
		return err
	}
	fmt.Println(formatted)
	return nil
}

func (l *Leaderboard) String() string {
	return fmt.Sprintf(
		"<Leaderboard method=%s mapname=%s mode=%s difficulty=%s total=%d scores=%d>",
		l.method, l.mapname, l.mode, l.difficulty, l.total, len(l.scores),
	)
}

func (l *Leaderboard) append(score *Score) {
	l.scores = append(l.scores, score)
}
