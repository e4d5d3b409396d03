package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-draft-metrics/internal/config"
	"github.com/pable/go-draft-metrics/internal/logger"
)

var (
	v       = viper.New()
	cfgFile string
	cfg     config.Config
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "draftmetrics",
	Short: "Fantasy auction draft valuation tool",
	Long:  "Fetch Sleeper league data and projections, then value every player for an auction draft.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		}
		var err error
		cfg, err = config.Load(v, mustUserHome())
		if err != nil {
			return err
		}
		log = logger.New(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.draftmetrics/config.yaml)")
	pf.String("db", "", "path to SQLite cache database")
	pf.StringP("league", "l", "", "Sleeper league id")
	pf.StringP("username", "u", "", "Sleeper username, used to find the league when --league is unset")
	pf.String("sport", "", "sport (default nfl)")
	pf.String("season", "", "season year (default current year)")
	pf.String("season-type", "", "season type: regular, pre or post")
	pf.Float64("budget", 0, "fallback auction budget per team when the league has none")
	pf.Int("buffer", 0, "extra players per replacement window")
	pf.Bool("active-only", true, "drop inactive players")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")

	for key, flag := range map[string]string{
		"db":           "db",
		"league_id":    "league",
		"username":     "username",
		"sport":        "sport",
		"season":       "season",
		"season_type":  "season-type",
		"draft_budget": "budget",
		"buffer":       "buffer",
		"active_only":  "active-only",
		"log_level":    "log-level",
		"log_format":   "log-format",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
