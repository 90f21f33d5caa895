package commands

import (
	"fmt"

	"infinitode-go/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	dailyDate     *string
	dailyPlayerid *string
)

func init() {
	dailyDate = dailyCmd.Flags().String("date", "", "The leaderboard date as YYYY-MM-DD, defaults to today.")
	dailyPlayerid = dailyCmd.Flags().String("playerid", "", "Include this player's own ranking in the output.")
	rootCmd.AddCommand(dailyCmd)
}

var dailyCmd = &cobra.Command{
	Use:   "daily [--date <YYYY-MM-DD>]",
	Short: "Prints the daily quest leaderboard.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lb, err := session.DailyQuestLeaderboards(cmd.Context(), *dailyDate, *dailyPlayerid)
		if err != nil {
			serviceutil.Fatal("failed to fetch daily quest leaderboard", err)
		}
		if date, ok := lb.Date(); ok {
			fmt.Println("daily quest of", date)
		}
		renderLeaderboard(lb)
	},
}
