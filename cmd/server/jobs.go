package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gardenguru/pkg/care"
)

var (
	jobOwner    string
	jobDate     string
	exportOut   string
	exportPlant string
	exportType  string
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Store the watering tasks that are due for an owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if jobDate != "" {
			d, err := care.ParseDate(jobDate)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			day = d
		}
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ts, err := a.tasks.DeriveDue(cmd.Context(), jobOwner, day)
		if err != nil {
			return err
		}
		for _, t := range ts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.DueDate, t.PlantID, t.TaskName)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d new task(s)\n", len(ts))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an owner's completed tasks to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		filter := care.HistoryFilter{PlantID: exportPlant, TaskType: exportType}
		if err := a.tasks.ExportHistory(cmd.Context(), jobOwner, filter, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Str("owner", jobOwner).Str("out", exportOut).Msg("history exported")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{deriveCmd, exportCmd} {
		c.Flags().StringVar(&jobOwner, "owner", "", "owner id")
		_ = c.MarkFlagRequired("owner")
	}
	deriveCmd.Flags().StringVar(&jobDate, "date", "", "reference date (YYYY-MM-DD), default today")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "task-history.xlsx", "output file")
	exportCmd.Flags().StringVar(&exportPlant, "plant", "", "only this plant id")
	exportCmd.Flags().StringVar(&exportType, "type", "", "only this task type")
}
