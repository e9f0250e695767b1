/*
	Copyright 2024 The openlaps authors
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openlaps/vbo-session-go/log"
	compareCmd "github.com/openlaps/vbo-session-go/pkg/cmd/compare"
	lapsCmd "github.com/openlaps/vbo-session-go/pkg/cmd/laps"
	parseCmd "github.com/openlaps/vbo-session-go/pkg/cmd/parse"
	"github.com/openlaps/vbo-session-go/pkg/config"
	"github.com/openlaps/vbo-session-go/version"
)

const envPrefix = "VBS"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "vbs",
	Short:   "Telemetry session tooling for vehicle data logger files",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := log.NewWithFilter(
			config.LogLevel, config.LogFormat, config.LogFilter)
		if err != nil {
			return err
		}
		log.ResetDefault(logger)
		cmd.SetContext(log.AddToContext(cmd.Context(), logger))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.vbs.yml)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"controls the log level (zap log level values)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"log output format (text or json)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter, "log-filter",
		"",
		"zapfilter rules for named loggers (e.g. 'debug:vbo* info:*')")
	rootCmd.PersistentFlags().StringVar(&config.ChannelMapFile, "channel-map",
		"",
		"yaml file with custom column-name to field mappings")
	rootCmd.PersistentFlags().IntVar(&config.MaxDataPoints, "max-data-points",
		-1,
		"truncate the data section after this many samples (-1 = unlimited)")
	rootCmd.PersistentFlags().IntVar(&config.SectorCount, "sector-count",
		3,
		"number of sectors per lap")
	rootCmd.PersistentFlags().Float64Var(&config.MinLapDistance, "min-lap-distance",
		100,
		"minimum lap distance in meters for heuristic lap detection")
	rootCmd.PersistentFlags().Float64Var(&config.MinLapTime, "min-lap-time",
		0,
		"laps shorter than this many seconds are marked invalid (0 = off)")
	rootCmd.PersistentFlags().BoolVar(&config.AllowDifferentTracks, "allow-different-tracks",
		false,
		"allow comparing sessions recorded on different circuits")
	rootCmd.PersistentFlags().Float64Var(&config.ProgressTolerance, "progress-tolerance",
		0.01,
		"acceptable progress difference for cross-session matches")

	// add commands here
	rootCmd.AddCommand(parseCmd.NewParseCmd())
	rootCmd.AddCommand(lapsCmd.NewLapsCmd())
	rootCmd.AddCommand(compareCmd.NewCompareCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".vbs" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vbs")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --favorite-color to VBS_FAVORITE_COLOR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
