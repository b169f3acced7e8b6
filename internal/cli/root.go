package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/causalia/internal/model"
)

// Version is set at build time via -ldflags
var Version = "v0.1.0"

var (
	cfgFile  string
	verbose  bool
	ontology string
	cutoff   float64
	logMode  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "causalia",
	Short: "Causalia - assemble qualitative causal statements into edge distributions",
	Long: `Causalia reads qualitative causal statements ("rainfall increases
flooding", "crop yield decreases sharply when drought rises"), grounds their
concepts to an ontology, aggregates them into directed concept-pair edges and
fits, for every edge, a circular density over the joint direction of change.

The fitted densities are meant to be sampled by a downstream simulator.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number for Causalia.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "causalia %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := model.DefaultConfig()

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.causalia/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&ontology, "ontology", defaults.Grounding.Ontology, "grounding ontology")
	flags.Float64Var(&cutoff, "cutoff", defaults.Grounding.Cutoff, "minimum grounding score for a well-grounded concept")
	flags.StringVar(&logMode, "log", defaults.Log.Mode, "log mode (dev, prod, quiet)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("grounding.ontology", flags.Lookup("ontology"))
	_ = viper.BindPFlag("grounding.cutoff", flags.Lookup("cutoff"))
	_ = viper.BindPFlag("log.mode", flags.Lookup("log"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".causalia"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CAUSALIA_*, e.g. CAUSALIA_GROUNDING_CUTOFF
	viper.SetEnvPrefix("CAUSALIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env overrides resolve for
// keys that appear in no config file
func setDefaults(cfg *model.Config) {
	viper.SetDefault("grounding.ontology", cfg.Grounding.Ontology)
	viper.SetDefault("grounding.cutoff", cfg.Grounding.Cutoff)
	viper.SetDefault("density.bandwidth", cfg.Density.Bandwidth)
	viper.SetDefault("density.grid_points", cfg.Density.GridPoints)
	viper.SetDefault("background.per_adjective", cfg.Background.PerAdjective)
	viper.SetDefault("background.samples", cfg.Background.Samples)
	viper.SetDefault("background.seed", cfg.Background.Seed)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("fit.fail_on_degenerate", cfg.Fit.FailOnDegenerate)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.samples", cfg.Output.Samples)
	viper.SetDefault("output.seed", cfg.Output.Seed)
	viper.SetDefault("log.mode", cfg.Log.Mode)
}

// loadConfig resolves the effective configuration:
// flags, then CAUSALIA_* env, then config file, then defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
