package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/goglass/internal/config"
	"github.com/alexiusacademia/goglass/internal/version"
)

var (
	cfgFile string

	// settings merges flags, GOGLASS_* variables, the config file and defaults
	settings = viper.New()

	// cfg is decoded from settings before every command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "goglass",
	Short: "Structural glass facade modelling tool",
	Long: `goglass - Go Structural Glass Modeller

A CLI tool that builds analysis models of point-supported structural
glass facades and keeps them in a local SQLite database.

This tool helps facade engineers:
  - Generate single panels and panel grids
  - Fit four-point spider supports inside a glass panel
  - Apply wind pressure to panels
  - Join loose nodes with nearest-neighbour lines
  - Export models to JSON, YAML and PNG/SVG/PDF drawings

Settings are read from goglass.yaml (current directory or
~/.config/goglass), GOGLASS_* environment variables and flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		klog.Flush()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goglass v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Structural Glass Modeller                            ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Glass panel and panel grid generation")
		fmt.Println("    • Spider fitting supports with restraint roles")
		fmt.Println("    • Uniform wind load on glass surfaces")
		fmt.Println("    • Nearest-pair line generation between nodes")
		fmt.Println("    • SQLite model storage, JSON/YAML/image export")
		fmt.Println()
		fmt.Println("  Use 'goglass --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		klog.Flush()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./goglass.yaml or ~/.config/goglass/goglass.yaml)")
	flags.String("db", "", "Model database path (default goglass.db)")
	flags.StringP("model", "m", "", "Name of the model to work on (default \"default\")")
	bindFlag(flags, "db", "db")
	bindFlag(flags, "model", "model")

	// klog registers -v (verbosity), -logtostderr and friends
	logFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(logFlags)
	logFlags.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
	})
	flags.AddGoFlagSet(logFlags)
}

// bindFlag ties a flag to a settings key, so that a flag given on the
// command line overrides the config file and environment.
func bindFlag(flags *pflag.FlagSet, name, key string) {
	if err := settings.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	config.Init(settings, cfgFile)
	if err := config.Read(settings, cfgFile != ""); err != nil {
		return err
	}
	if used := settings.ConfigFileUsed(); used != "" {
		klog.V(1).Infof("using config file %s", used)
	}

	var err error
	cfg, err = config.Load(settings)
	return err
}
