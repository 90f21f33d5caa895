package commands

import (
	"infinitode-go/lib/infinitode"
	"infinitode-go/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	runtimeMode       *string
	runtimeDifficulty *string
)

func init() {
	runtimeMode = runtimeCmd.Flags().String("mode", infinitode.ModeScore, "The ranking mode, score or waves.")
	runtimeDifficulty = runtimeCmd.Flags().String("difficulty", infinitode.DifficultyNormal, "The difficulty, EASY, NORMAL or ENDLESS_I.")
	rootCmd.AddCommand(runtimeCmd)
}

var runtimeCmd = &cobra.Command{
	Use:   "runtime <mapname> <playerid>",
	Short: "Prints the runtime leaderboard shown top right in-game.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lb, err := session.RuntimeLeaderboards(cmd.Context(), args[0], args[1], *runtimeMode, *runtimeDifficulty)
		if err != nil {
			serviceutil.Fatal("failed to fetch runtime leaderboard", err)
		}
		renderLeaderboard(lb)
	},
}
