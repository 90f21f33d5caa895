package infinitode

import "regexp"

// Levels lists every known level name, including bonus levels and the
// daily quest maps.
var Levels = []string{
	"1.1", "1.2", "1.3", "1.4", "1.5", "1.6", "1.7", "1.8", "1.b1",
	"2.1", "2.2", "2.3", "2.4", "2.5", "2.6", "2.7", "2.8", "2.b1",
	"3.1", "3.2", "3.3", "3.4", "3.5", "3.6", "3.7", "3.8", "3.b1",
	"4.1", "4.2", "4.3", "4.4", "4.5", "4.6", "4.7", "4.8", "4.b1",
	"5.1", "5.2", "5.3", "5.4", "5.5", "5.6", "5.7", "5.8", "5.b1", "5.b2",
	"6.1", "6.2", "6.3", "6.4", "6.5", "6.6", "rumble", "dev", "zecred",
	"DQ1", "DQ3", "DQ4", "DQ5", "DQ7", "DQ8", "DQ9", "DQ10", "DQ11", "DQ12",
}

const (
	ModeScore = "score"
	ModeWaves = "waves"

	DifficultyEasy     = "EASY"
	DifficultyNormal   = "NORMAL"
	DifficultyEndless1 = "ENDLESS_I"
)

var Modes = []string{ModeScore, ModeWaves}

var Difficulties = []string{DifficultyEasy, DifficultyNormal, DifficultyEndless1}

var levelSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Levels))
	for _, l := range Levels {
		set[l] = struct{}{}
	}
	return set
}()

var playerIDPattern = regexp.MustCompile(`^U-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{6}$`)

func checkMapname(mapname string) error {
	if _, ok := levelSet[mapname]; !ok {
		return &InvalidArgumentError{Field: "mapname", Value: mapname}
	}
	return nil
}

func checkPlayerID(playerid string) error {
	if !playerIDPattern.MatchString(playerid) {
		return &InvalidArgumentError{Field: "playerid", Value: playerid}
	}
	return nil
}

func checkMode(mode string) error {
	if mode != ModeScore && mode != ModeWaves {
		return &InvalidArgumentError{Field: "mode", Value: mode}
	}
	return nil
}

func checkDifficulty(difficulty string) error {
	for _, d := range Difficulties {
		if difficulty == d {
			return nil
		}
	}
	return &InvalidArgumentError{Field: "difficulty", Value: difficulty}
}
