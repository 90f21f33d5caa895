package commands

import (
	"infinitode-go/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var skillPlayerid *string

func init() {
	skillPlayerid = skillpointCmd.Flags().String("playerid", "", "Include this player's own ranking in the output.")
	rootCmd.AddCommand(skillpointCmd)
}

var skillpointCmd = &cobra.Command{
	Use:   "skillpoint",
	Short: "Prints the skill point leaderboard.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		lb, err := session.SkillPointLeaderboard(cmd.Context(), *skillPlayerid)
		if err != nil {
			serviceutil.Fatal("failed to fetch skill point leaderboard", err)
		}
		renderLeaderboard(lb)
	},
}
