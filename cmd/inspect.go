package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/beltrewilton/audeeremodb/audformat"
	"github.com/beltrewilton/audeeremodb/orchestrator"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Validate a written database and print its tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := ctx.load()
			if err != nil {
				return err
			}
			dir := conf.Paths.Outputs
			if len(args) == 1 {
				dir = args[0]
			}
			db, err := audformat.Load(dir)
			if err != nil {
				return fmt.Errorf("load %s: %w", dir, err)
			}
			if err := db.Validate(); err != nil {
				return err
			}
			log.WithField("dir", dir).Debug("database loaded")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTables(db))
			sum, err := orchestrator.Summarize(db)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderCounts("Emotion", sum.Emotions))
			fmt.Fprintln(out, renderCounts("Sentence", sum.Sentences))
			return nil
		},
	}
}

func renderTables(db *audformat.Database) string {
	type entry struct {
		id, kind string
		t        *audformat.Table
	}
	var entries []entry
	for id, t := range db.Tables {
		entries = append(entries, entry{id, "filewise", t})
	}
	for id, t := range db.MiscTables {
		entries = append(entries, entry{id, "misc", t})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		cols := ""
		for i, c := range e.t.Columns {
			if i > 0 {
				cols += ", "
			}
			cols += c.ID
		}
		rows = append(rows, []string{e.id, e.kind, strconv.Itoa(e.t.Len()), cols})
	}
	return renderTable(
		[]string{"Table", "Type", "Rows", "Columns"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}
