package cmd

import (
	"fmt"
	"github.com/ValentinKolb/socialKV/cmd/demo"
	"github.com/ValentinKolb/socialKV/cmd/simulate"
	"github.com/ValentinKolb/socialKV/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "socialkv",
		Short: "in-memory social network store",
		Long: fmt.Sprintf(`socialKV (v%s)

A thread-safe, in-memory store for a small social network (users, posts,
comments, likes and follows), meant to back API servers under test.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of socialKV",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("socialKV v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(demo.DemoCmd)
	RootCmd.AddCommand(simulate.SimulateCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
