package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/beltrewilton/audeeremodb/orchestrator"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Download the corpus if needed and write the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindBuildFlags(ctx, cmd)
			conf, log, err := ctx.load()
			if err != nil {
				return err
			}
			log.WithField("version", Version).Info("emodb build starting")

			sum, err := orchestrator.NewPipeline(conf, log).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(sum))
			return nil
		},
	}

	addBuildFlags(cmd)
	return cmd
}

// addBuildFlags registers the build options on cmd. Both the root command
// and "build" carry them since the root runs a build by default.
func addBuildFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "Output directory for the database")
	flags.String("source-dir", "", "Directory the corpus archive is unpacked into")
	flags.String("url", "", "Corpus archive URL")
	flags.Bool("sqlite", false, "Also export the tables to db.sqlite")
	flags.Bool("verify-media", false, "Check every WAV header against the declared media")
}

// bindBuildFlags points the viper keys at the flags of the command that is
// actually executing.
func bindBuildFlags(ctx *commandContext, cmd *cobra.Command) {
	flags := cmd.Flags()
	_ = ctx.v.BindPFlag("paths.outputs", flags.Lookup("output"))
	_ = ctx.v.BindPFlag("source.dir", flags.Lookup("source-dir"))
	_ = ctx.v.BindPFlag("source.url", flags.Lookup("url"))
	_ = ctx.v.BindPFlag("storage.sqlite", flags.Lookup("sqlite"))
	_ = ctx.v.BindPFlag("media.verify", flags.Lookup("verify-media"))
}

func renderSummary(sum *orchestrator.Summary) string {
	rows := [][]string{
		{"output", sum.OutputDir},
		{"downloaded", strconv.FormatBool(sum.Fetched)},
		{"files", strconv.Itoa(sum.Files)},
		{"speakers", strconv.Itoa(sum.Speakers)},
		{"confidence", fmt.Sprintf("%.3f / %.3f / %.3f", sum.Confidence.Min, sum.Confidence.Mean, sum.Confidence.Max)},
	}
	if sum.MediaMismatches > 0 {
		rows = append(rows, []string{"media mismatches", strconv.Itoa(sum.MediaMismatches)})
	}
	return renderTable([]string{"Field", "Value"}, rows, nil) + "\n" + renderCounts("Emotion", sum.Emotions)
}

func renderCounts(label string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, strconv.Itoa(counts[k])})
	}
	return renderTable([]string{label, "Files"}, rows, []columnAlignment{alignLeft, alignRight})
}
