// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the specsplit CLI, which replaces a
// monolithic Markdown specification with a modular directory of section
// files, an index, a snapshot, and a compatibility stub.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/specsplit/internal/layout"
	"github.com/pdiddy/specsplit/internal/split"
	"github.com/pdiddy/specsplit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultDoneMessage is printed when the layout does not set its own.
const defaultDoneMessage = "Modular specification files generated."

// appFs is the filesystem commands read and write.
var appFs = afero.NewOsFs()

const (
	defaultSource     = "schema/abstract/specification.md"
	defaultOutputRoot = "schema/abstract"
)

// rootCmd splits the configured specification when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "specsplit",
	Short: "Split a monolithic specification into modular section files",
	Long: `specsplit locates a fixed, ordered list of section headings in a
monolithic Markdown specification and rewrites it as a modular directory:
a verbatim snapshot, an index with a table of contents and the preamble,
one file per section group, and an examples appendix. The original file
is replaced by a short stub pointing at the index and snapshot.

Every heading is located before anything is written. A missing heading
aborts the run and leaves the filesystem untouched. Once the source has
been replaced by the stub, running again fails until the snapshot is
restored.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadSplitConfig(appFs)
	if err != nil {
		return err
	}
	if _, err := split.Run(appFs, cfg, split.Options{Log: newLogger(cmd.ErrOrStderr())}); err != nil {
		return err
	}
	msg := cfg.Layout.DoneMessage
	if msg == "" {
		msg = defaultDoneMessage
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./specsplit.yaml or ~/.config/specsplit/config.yaml)")

	viper.SetDefault("source", defaultSource)
	viper.SetDefault("output_root", defaultOutputRoot)
	viper.SetDefault("layout", "")
	viper.SetDefault("log_level", "info")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("specsplit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "specsplit"))
		}
	}

	viper.SetEnvPrefix("SPECSPLIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadSplitConfig builds the run configuration from viper settings. The
// built-in TELOS layout is used unless a layout file is configured.
func loadSplitConfig(fs afero.Fs) (types.SplitConfig, error) {
	cfg := types.SplitConfig{
		Source:     filepath.ToSlash(viper.GetString("source")),
		OutputRoot: filepath.ToSlash(viper.GetString("output_root")),
	}
	if p := viper.GetString("layout"); p != "" {
		l, err := layout.Load(fs, p)
		if err != nil {
			return types.SplitConfig{}, err
		}
		cfg.Layout = l
	} else {
		cfg.Layout = layout.Default()
	}
	return cfg, nil
}

// newLogger returns a text logger on w at the configured level.
func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		log.WithField("log_level", viper.GetString("log_level")).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
