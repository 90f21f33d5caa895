package commands

import (
	"context"
	"fmt"
	"os"

	"infinitode-go/lib/configutil"
	"infinitode-go/lib/infinitode"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl string `json:"baseUrl"`
	Beta    bool   `json:"beta"`
}

var (
	beta    bool
	baseUrl string

	session *infinitode.Session
)

var rootCmd = &cobra.Command{
	Use:   "infinitode-cli",
	Short: "infinitode-cli queries Infinitode 2 leaderboards and player profiles.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		if baseUrl == "" {
			baseUrl = cfg.BaseUrl
		}

		session, err = infinitode.NewSession(infinitode.Options{
			BaseURL: baseUrl,
			Beta:    beta || cfg.Beta,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if session != nil {
			session.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&beta, "beta", false, "Query the beta server instead of production.")
	rootCmd.PersistentFlags().StringVar(&baseUrl, "base-url", "", "Override the server base url.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
