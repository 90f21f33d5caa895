package commands

import (
	"fmt"
	"os"

	"infinitode-go/lib/infinitode"
	"infinitode-go/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playerCmd)
}

var playerCmd = &cobra.Command{
	Use:   "player <playerid>",
	Short: "Prints a player's profile.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		player, err := session.Player(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to fetch player", err)
		}

		fmt.Printf("%s (level %d, %d/%d xp)\n", player.Nickname(), player.Level(), player.XP(), player.XPMax())
		fmt.Printf("season level %d (%d/%d xp)\n", player.SeasonLevel(), player.SeasonXP(), player.SeasonXPMax())
		fmt.Printf("total score %d, rank #%d (top %s)\n", player.TotalScore(), player.TotalRank(), player.TotalTop())
		fmt.Printf("%d replays verified, %d with issues, joined %s\n", player.Replays(), player.Issues(), player.CreatedAt())
		fmt.Println("avatar:", player.AvatarURL())

		badges := player.Badges()
		if len(badges) > 0 {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Badge", "Rarity", "Color"})
			for name, info := range badges {
				t.AppendRow(table.Row{name, info.Rarity, info.Color})
			}
			t.SetStyle(table.StyleRounded)
			t.Render()
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Map", "Score", "Rank", "Top"})
		for _, mapname := range infinitode.Levels {
			score := player.Score(mapname)
			if score.Rank() == 0 {
				continue
			}
			top, _ := score.Top()
			t.AppendRow(table.Row{mapname, score.Score(), score.Rank(), top})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
