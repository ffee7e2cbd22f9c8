package simulate

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/socialKV/cmd/util"
	"github.com/ValentinKolb/socialKV/lib/common"
	"github.com/ValentinKolb/socialKV/lib/social/memstore"
	"github.com/ValentinKolb/socialKV/lib/social/metered"
	"github.com/ValentinKolb/socialKV/lib/workload"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"syscall"
)

var (
	simulateCmdConfig = common.DefaultWorkloadConfig()
	SimulateCmd       = &cobra.Command{
		Use:   "simulate",
		Short: "Run a concurrent workload against an in-memory store",
		Long: `Seed a fresh in-memory store with users, posts and follow edges, then run a
concurrent, randomized mix of operations against it. Afterwards the counters of
every user and post are verified and a latency report is printed.
The format of the environment variables is SOCIALKV_<flag> (e.g. SOCIALKV_WORKERS=16)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	util.SetupWorkloadFlags(SimulateCmd)

	key := "metrics"
	SimulateCmd.Flags().Bool(key, false, util.WrapString("Print the store metrics in Prometheus text format after the report"))
}

// processConfig reads the workload configuration from flags and environment variables
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	conf, err := util.GetWorkloadConfig()
	if err != nil {
		return err
	}
	simulateCmdConfig = conf

	return common.InitLoggers(conf.LogLevel)
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintln(out, simulateCmdConfig.String())

	// stop early on ctrl-c
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := metered.New(memstore.NewMemStore(memstore.DefaultOptions()), metrics.NewSet())

	runner, err := workload.NewRunner(store, simulateCmdConfig)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("workload aborted: %w", err)
	}

	fmt.Fprintln(out, "Report:")
	fmt.Fprintln(out, report.String())

	if viper.GetBool("metrics") {
		fmt.Fprintln(out, "Metrics:")
		store.WritePrometheus(out)
	}

	if len(report.Violations) > 0 {
		return fmt.Errorf("%d counter violations found", len(report.Violations))
	}
	return nil
}
