package commands

import (
	"fmt"
	"os"

	"infinitode-go/lib/infinitode"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderLeaderboard(lb *infinitode.Leaderboard) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Player", "Score", "Top"})

	for _, score := range lb.Scores() {
		nickname, _ := score.Nickname()
		top, _ := score.Top()
		t.AppendRow(table.Row{score.Rank(), nickname, score.Score(), top})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Printf("%d players total\n", lb.Total())
	if own := lb.Player(); own != nil {
		fmt.Printf("own rank: #%d with a score of %d\n", own.Rank(), own.Score())
	}
}
