package commands

import (
	"infinitode-go/lib/infinitode"
	"infinitode-go/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	lbMode       *string
	lbDifficulty *string
	lbPlayerid   *string
	lbTop        *int
)

func init() {
	lbMode = leaderboardCmd.Flags().String("mode", infinitode.ModeScore, "The ranking mode, score or waves.")
	lbDifficulty = leaderboardCmd.Flags().String("difficulty", infinitode.DifficultyNormal, "The difficulty, EASY, NORMAL or ENDLESS_I.")
	lbPlayerid = leaderboardCmd.Flags().String("playerid", "", "Include this player's own ranking in the output.")
	lbTop = leaderboardCmd.Flags().Int("top", 0, "Only print the top N scores.")
	rootCmd.AddCommand(leaderboardCmd)
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <mapname>",
	Short: "Prints the top 200 scores of a map.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lb, err := session.Leaderboards(cmd.Context(), args[0], *lbPlayerid, *lbMode, *lbDifficulty)
		if err != nil {
			serviceutil.Fatal("failed to fetch leaderboard", err)
		}
		if *lbTop > 0 && *lbTop < lb.Len() {
			lb = lb.Slice(0, *lbTop)
		}
		renderLeaderboard(lb)
	},
}
