package commands

import (
	"fmt"

	"infinitode-go/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seasonalCmd)
}

var seasonalCmd = &cobra.Command{
	Use:   "seasonal",
	Short: "Prints the top 100 scores of the running season.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lb, err := session.SeasonalLeaderboard(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch seasonal leaderboard", err)
		}
		if season, ok := lb.Season(); ok {
			fmt.Println("season", season)
		}
		renderLeaderboard(lb)
	},
}
