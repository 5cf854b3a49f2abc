// Package cmd wires the emodb command line: building the database from the
// public corpus and inspecting a database that was already written.
package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/beltrewilton/audeeremodb/config"
	"github.com/beltrewilton/audeeremodb/logging"
)

// Version is stamped at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

type commandContext struct {
	v          *viper.Viper
	configFile string
	stderr     io.Writer
}

func (c *commandContext) load() (*cfg.Root, *logrus.Logger, error) {
	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
	}
	conf, err := cfg.Load(c.v)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(c.stderr, conf.Pipeline.LogLvl, conf.Pipeline.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return conf, log, nil
}

// NewRootCommand returns the emodb command tree. Running it without a
// subcommand builds the database.
func NewRootCommand() *cobra.Command {
	ctx := &commandContext{v: cfg.New()}

	build := newBuildCommand(ctx)
	rootCmd := &cobra.Command{
		Use:           "emodb",
		Short:         "Convert the Berlin Database of Emotional Speech into an annotated database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.stderr = cmd.ErrOrStderr()
		},
		RunE: build.RunE,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFile, "config", "c", "", "Configuration file path")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")
	_ = ctx.v.BindPFlag("pipeline.log_level", flags.Lookup("log-level"))
	_ = ctx.v.BindPFlag("pipeline.log_format", flags.Lookup("log-format"))
	addBuildFlags(rootCmd)

	rootCmd.AddCommand(build)
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "emodb "+Version)
		},
	}
}
