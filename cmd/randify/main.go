package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/randify/internal/config"
	"github.com/san-kum/randify/internal/scenario"
	"github.com/san-kum/randify/internal/store"
	"github.com/san-kum/randify/internal/viz"
)

var (
	trials     int
	seed       uint64
	configFile string
	exportPath string
	jsonOut    bool
	withSample bool
	noPlot     bool
	plotWidth  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "randify",
		Short: "monte carlo propagation of random variables",
		Long: "randify wraps deterministic functions so that random-variable\n" +
			"inputs are propagated by monte carlo simulation, estimating the\n" +
			"probability density of every output.",
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "number of monte carlo trials")
	runCmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "seed for the input samplers")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&exportPath, "export", "", "write results as json to this path")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write results as json to stdout")
	runCmd.Flags().BoolVar(&withSample, "samples", false, "include raw samples in the export")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the ascii density plots")
	runCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	runCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenarios",
		RunE:  listScenarios,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch the density estimates converge as trials grow",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "final number of trials")
	liveCmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "seed for the input samplers")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(runCmd, listCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) (*config.Config, *scenario.Scenario, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("trials") {
		cfg.Trials = trials
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	scn, err := scenario.Get(cfg.Scenario)
	if err != nil {
		return nil, nil, err
	}
	return cfg, scn, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, scn, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	outs, err := scn.Run(cfg)
	if err != nil {
		return err
	}

	if exportPath != "" || jsonOut {
		data, err := store.FromOutputs(scn.Name, cfg.Trials, cfg.Seed, scn.Outputs, outs, withSample)
		if err != nil {
			return err
		}
		if exportPath != "" {
			if err := store.ExportJSON(exportPath, data); err != nil {
				return err
			}
		}
		if jsonOut {
			return store.ExportJSONStdout(data)
		}
	}

	fmt.Printf("%s  (%d trials, seed %d)\n\n", scn.About, cfg.Trials, cfg.Seed)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "output\tmean\tstd\tskew\texkurt")
	for i, rv := range outs {
		ests, err := rv.EstimatePDF()
		if err != nil {
			return err
		}
		for k, e := range ests {
			name := scn.Outputs[i]
			if len(ests) > 1 {
				name = fmt.Sprintf("%s[%d]", name, k)
			}
			fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.4g\t%.4g\n",
				name, e.Mean, math.Sqrt(e.Variance), e.Skewness, e.Kurtosis)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	if noPlot {
		return nil
	}
	for i, rv := range outs {
		plot, err := viz.RenderVariable(scn.Outputs[i], rv, plotWidth, plotHeight)
		if err != nil {
			return err
		}
		fmt.Println(plot)
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "scenario\tinputs\tdescription")
	for _, name := range scenario.Names() {
		scn, err := scenario.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", scn.Name, len(scn.Inputs), scn.About)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, scn, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(scn, cfg)
}
