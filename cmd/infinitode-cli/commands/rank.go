package commands

import (
	"fmt"

	"infinitode-go/lib/infinitode"
	"infinitode-go/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	rankMode       *string
	rankDifficulty *string
)

func init() {
	rankMode = rankCmd.Flags().String("mode", infinitode.ModeScore, "The ranking mode, score or waves.")
	rankDifficulty = rankCmd.Flags().String("difficulty", infinitode.DifficultyNormal, "The difficulty, EASY, NORMAL or ENDLESS_I.")
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank <mapname> <playerid>",
	Short: "Prints a player's ranking on a map.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		score, err := session.LeaderboardsRank(cmd.Context(), args[0], args[1], *rankMode, *rankDifficulty)
		if err != nil {
			serviceutil.Fatal("failed to fetch rank", err)
		}

		fmt.Printf("rank #%d with a score of %d on %s\n", score.Rank(), score.Score(), score.Mapname())
		if total, ok := score.Total(); ok {
			fmt.Printf("out of %d players", total)
			if top, ok := score.Top(); ok {
				fmt.Printf(" (top %s)", top)
			}
			fmt.Println()
		}
	},
}
