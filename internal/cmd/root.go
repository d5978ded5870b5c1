package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ksk1130/tsvloggen/internal/config"
)

const envPrefix = "TSVLOGGEN"

// NewRootCmd builds the tsvloggen command tree. Each call returns an
// independent command with its own settings.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "tsvloggen",
		Short: "tsvloggen — large sample TSV log generator",
		Long: `tsvloggen writes a large tab-separated sample log file for testing
log-processing tools. Each line is built from a random message template
with randomized field values, until the file reaches the target size.

Examples:
  tsvloggen
  tsvloggen -s 10 -o sample.tsv
  tsvloggen -s 1 --seed 42 --format json`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors print usage; runtime errors do not.
			cmd.SilenceUsage = true
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), v, cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.tsvloggen.yaml)")

	flags := rootCmd.Flags()
	flags.Int64P(config.KeySize, "s", config.DefaultSizeMB, "target file size in MB")
	flags.StringP(config.KeyOutput, "o", config.DefaultOutput, "output file path")
	flags.Int64(config.KeySeed, 0, "random seed (default: derived from the clock)")
	flags.String(config.KeyStart, config.DefaultStart, "timestamp of the first line ("+config.StartLayout+")")
	flags.Int64(config.KeyProgressEvery, config.DefaultProgressEvery, "lines between progress notices (0 disables)")
	flags.String(config.KeyFormat, config.DefaultFormat, "summary format: text, json")
	flags.BoolP(config.KeyQuiet, "q", false, "suppress progress and summary output")
	flags.String(config.KeyManifest, "", "write a JSON run manifest to this path")

	rootCmd.AddCommand(newTemplatesCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".tsvloggen")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one must load.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}
