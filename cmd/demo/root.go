package demo

import (
	"github.com/ValentinKolb/socialKV/cmd/util"
	"github.com/ValentinKolb/socialKV/lib/common"
	"github.com/ValentinKolb/socialKV/lib/social/memstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	DemoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run a short scripted scenario against a fresh store",
		Long: `Run a short scripted scenario against a fresh in-memory store: alice and bob
sign up, bob posts, alice follows bob, reads her feed and likes the post.
Every step is printed as one JSON object per line.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			return common.InitLoggers(viper.GetString("log-level"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunScenario(memstore.NewMemStore(memstore.DefaultOptions()), cmd.OutOrStdout(), viper.GetBool("pretty"))
		},
	}
)

func init() {
	key := "pretty"
	DemoCmd.Flags().Bool(key, false, util.WrapString("Indent the JSON output"))
}
