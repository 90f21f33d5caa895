package infinitode

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"strings"
	"time"

	"infinitode-go/lib/expiring"
	"infinitode-go/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/infinitode")

const (
	DefaultBaseURL = "https://infinitode.prineside.com/"
	BetaBaseURL    = "https://beta.infinitode.prineside.com/"
)

// apiQuery identifies the game client the API expects to be speaking to.
const apiQuery = "m=api&a=%s&apiv=1&g=com.prineside.tdi2&v=282"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	// Http is an optional pre-configured client. When nil a default
	// client with a cookie jar and a cloudflare bypass transport is
	// created.
	Http *resty.Client
	// BaseURL overrides the endpoint the session talks to. Defaults to
	// DefaultBaseURL, or BetaBaseURL when Beta is set.
	BaseURL string
	// Beta points the session at the beta server.
	Beta bool
	// CacheWindow is how long responses are memoized, default one minute.
	CacheWindow time.Duration
}

// Session is the entry point for every operation. It owns one shared
// HTTP client and one expiring-cache table for its whole lifetime;
// operations are safe to issue concurrently.
type Session struct {
	http    *resty.Client
	baseURL string

	scores  *expiring.Cache[*Score]
	boards  *expiring.Cache[*Leaderboard]
	players *expiring.Cache[*Player]
}

func NewSession(opts Options) (*Session, error) {
	client := opts.Http
	if client == nil {
		client = resty.New()
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		client.SetCookieJar(jar)
		client.SetHeader("user-agent", userAgent)
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
		telemetry.InstrumentResty(client, "infinitode/http")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
		if opts.Beta {
			baseURL = BetaBaseURL
		}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Session{
		http:    client,
		baseURL: baseURL,
		scores:  expiring.New[*Score](opts.CacheWindow),
		boards:  expiring.New[*Leaderboard](opts.CacheWindow),
		players: expiring.New[*Player](opts.CacheWindow),
	}, nil
}

// Close releases the idle connections held by the session's transport.
func (s *Session) Close() {
	s.http.GetClient().CloseIdleConnections()
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// post issues one API request and decodes the response envelope.
func (s *Session) post(ctx context.Context, action string, form map[string]string) (*apiResponse, []byte, error) {
	ctx, span := tracer.Start(ctx, "post:"+action)
	defer span.End()

	link := s.baseURL + "?" + fmt.Sprintf(apiQuery, action)
	slog.InfoContext(ctx, "sending api request", "action", action, "form", form)

	res, err := s.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, nil, &APIUnavailableError{cause: err}
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		span.SetStatus(codes.Error, "non-2xx response")
		return nil, nil, &APIUnavailableError{StatusCode: res.StatusCode()}
	}

	body := res.Body()
	resp, err := decodeAPIResponse(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "undecodable response")
		return nil, nil, err
	}
	if resp.Status != "success" {
		span.SetStatus(codes.Error, "server reported failure")
		return nil, nil, &APIError{Message: resp.Message}
	}
	return resp, body, nil
}

// get fetches one HTML page for the scrape-backed operations.
func (s *Session) get(ctx context.Context, endpoint string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "get:"+endpoint)
	defer span.End()

	link := s.baseURL + endpoint
	slog.InfoContext(ctx, "sending page request", "url", link)

	res, err := s.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, &APIUnavailableError{cause: err}
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		span.SetStatus(codes.Error, "non-2xx response")
		return nil, &APIUnavailableError{StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}

// LeaderboardsRank retrieves the score of the given player on one map.
// A valid playerid must be specified. Empty mode and difficulty default
// to "score" and "NORMAL".
func (s *Session) LeaderboardsRank(ctx context.Context, mapname, playerid, mode, difficulty string) (*Score, error) {
	mode = orDefault(mode, ModeScore)
	difficulty = orDefault(difficulty, DifficultyNormal)
	if err := checkArgs(mapname, playerid, mode, difficulty); err != nil {
		return nil, err
	}

	key := cacheKey("leaderboards_rank", mapname, playerid, mode, difficulty)
	return s.scores.Do(ctx, key, func(ctx context.Context) (*Score, error) {
		resp, _, err := s.post(ctx, "getLeaderboardsRank", map[string]string{
			"gamemode":   "BASIC_LEVELS",
			"difficulty": difficulty,
			"playerid":   playerid,
			"mapname":    mapname,
			"mode":       mode,
		})
		if err != nil {
			return nil, err
		}
		return newScoreFromPayload("leaderboards_rank", mapname, mode, difficulty, playerid, resp)
	})
}

// Leaderboards retrieves the top 200 scores of the specified map. The
// playerid is optional; when given, the returned leaderboard carries
// that player's own score and the response is never served from cache,
// so a personalized ranking cannot go stale.
func (s *Session) Leaderboards(ctx context.Context, mapname, playerid, mode, difficulty string) (*Leaderboard, error) {
	mode = orDefault(mode, ModeScore)
	difficulty = orDefault(difficulty, DifficultyNormal)
	if err := checkMapname(mapname); err != nil {
		return nil, err
	}
	if playerid != "" {
		if err := checkPlayerID(playerid); err != nil {
			return nil, err
		}
	}
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	if err := checkDifficulty(difficulty); err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context) (*Leaderboard, error) {
		form := map[string]string{
			"gamemode":   "BASIC_LEVELS",
			"difficulty": difficulty,
			"mapname":    mapname,
			"mode":       mode,
		}
		if playerid != "" {
			form["playerid"] = playerid
		}
		resp, body, err := s.post(ctx, "getLeaderboards", form)
		if err != nil {
			return nil, err
		}
		return newLeaderboardFromPayload("leaderboards", mapname, mode, difficulty, playerid, resp, body, "")
	}

	if playerid != "" {
		return fetch(ctx)
	}
	key := cacheKey("leaderboards", mapname, mode, difficulty)
	return s.boards.Do(ctx, key, fetch)
}

// RuntimeLeaderboards retrieves the runtime leaderboard displayed top
// right in-game. A valid playerid must be specified.
func (s *Session) RuntimeLeaderboards(ctx context.Context, mapname, playerid, mode, difficulty string) (*Leaderboard, error) {
	mode = orDefault(mode, ModeScore)
	difficulty = orDefault(difficulty, DifficultyNormal)
	if err := checkArgs(mapname, playerid, mode, difficulty); err != nil {
		return nil, err
	}

	key := cacheKey("runtime_leaderboards", mapname, playerid, mode, difficulty)
	return s.boards.Do(ctx, key, func(ctx context.Context) (*Leaderboard, error) {
		resp, body, err := s.post(ctx, "getRuntimeLeaderboards", map[string]string{
			"gamemode":   "BASIC_LEVELS",
			"difficulty": difficulty,
			"playerid":   playerid,
			"mapname":    mapname,
			"mode":       mode,
		})
		if err != nil {
			return nil, err
		}
		return newLeaderboardFromPayload("runtime_leaderboards", mapname, mode, difficulty, playerid, resp, body, "")
	})
}

// SkillPointLeaderboard retrieves the skill point leaderboard. The
// playerid is optional; personalized responses bypass the cache.
func (s *Session) SkillPointLeaderboard(ctx context.Context, playerid string) (*Leaderboard, error) {
	if playerid != "" {
		if err := checkPlayerID(playerid); err != nil {
			return nil, err
		}
	}

	fetch := func(ctx context.Context) (*Leaderboard, error) {
		form := map[string]string{}
		if playerid != "" {
			form["playerid"] = playerid
		}
		resp, body, err := s.post(ctx, "getSkillPointLeaderboard", form)
		if err != nil {
			return nil, err
		}
		return newLeaderboardFromPayload("skill_point_leaderboard", "SP", ModeScore, DifficultyNormal, playerid, resp, body, "")
	}

	if playerid != "" {
		return fetch(ctx)
	}
	return s.boards.Do(ctx, cacheKey("skill_point_leaderboard"), fetch)
}

// DailyQuestLeaderboards retrieves the daily quest leaderboard of the
// given date (YYYY-MM-DD). An empty or unparsable date falls back to
// the current UTC date; a bad date is logged, never an error. The
// playerid is optional; personalized responses bypass the cache.
func (s *Session) DailyQuestLeaderboards(ctx context.Context, date, playerid string) (*Leaderboard, error) {
	date = normalizeDate(ctx, date)
	if playerid != "" {
		if err := checkPlayerID(playerid); err != nil {
			return nil, err
		}
	}

	fetch := func(ctx context.Context) (*Leaderboard, error) {
		form := map[string]string{"date": date}
		if playerid != "" {
			form["playerid"] = playerid
		}
		resp, body, err := s.post(ctx, "getDailyQuestLeaderboards", form)
		if err != nil {
			return nil, err
		}
		return newLeaderboardFromPayload("daily_quest_leaderboards", "DQ", ModeScore, DifficultyNormal, playerid, resp, body, date)
	}

	if playerid != "" {
		return fetch(ctx)
	}
	return s.boards.Do(ctx, cacheKey("daily_quest_leaderboards", date), fetch)
}

// SeasonalLeaderboard retrieves the season leaderboard, the top 100
// scores in the running season. This operation takes no arguments.
func (s *Session) SeasonalLeaderboard(ctx context.Context) (*Leaderboard, error) {
	return s.boards.Do(ctx, cacheKey("seasonal_leaderboard"), func(ctx context.Context) (*Leaderboard, error) {
		body, err := s.get(ctx, "xdx/?url=seasonal_leaderboard")
		if err != nil {
			return nil, err
		}
		return parseSeasonalLeaderboard(body)
	})
}

// Player retrieves a player's profile. A valid playerid must be
// specified; unknown playerids surface as a malformed-response error
// because the site serves a near-empty page for them.
func (s *Session) Player(ctx context.Context, playerid string) (*Player, error) {
	if err := checkPlayerID(playerid); err != nil {
		return nil, err
	}

	return s.players.Do(ctx, cacheKey("player", playerid), func(ctx context.Context) (*Player, error) {
		body, err := s.get(ctx, "xdx/index.php?url=profile/view&id="+playerid)
		if err != nil {
			return nil, err
		}
		return parsePlayerProfile(body, playerid)
	})
}

func checkArgs(mapname, playerid, mode, difficulty string) error {
	if err := checkMapname(mapname); err != nil {
		return err
	}
	if err := checkPlayerID(playerid); err != nil {
		return err
	}
	if err := checkMode(mode); err != nil {
		return err
	}
	return checkDifficulty(difficulty)
}

const dateLayout = "2006-01-02"

func normalizeDate(ctx context.Context, date string) string {
	if date == "" {
		return time.Now().UTC().Format(dateLayout)
	}
	_, err := time.Parse(dateLayout, date)
	if err != nil {
		slog.WarnContext(ctx, "invalid daily quest date, falling back to today", "date", date)
		return time.Now().UTC().Format(dateLayout)
	}
	return date
}
