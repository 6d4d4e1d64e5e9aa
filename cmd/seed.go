package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shiftboard.com/shiftboard/internal/constants"
	model "shiftboard.com/shiftboard/internal/models"
)

var seedDays int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo workplaces, workers and shifts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := seed(cmd.Context(), a, seedDays)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "seeded %d shifts\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 7, "number of days of shifts to create")
	rootCmd.AddCommand(seedCmd)
}

var (
	seedWorkplaces = []struct {
		name   string
		status constants.WorkplaceStatus
	}{
		{"Laguna Honda", constants.WorkplaceActive},
		{"Mission Bay", constants.WorkplaceActive},
		{"Sunset Care", constants.WorkplaceActive},
		{"Presidio Clinic", constants.WorkplaceSuspended},
	}
	seedJobTypes = []string{"CNA", "LVN", "RN", "Food Service Assistant"}
	seedWorkers  = []string{"Ada", "Grace", "Linus"}
)

func seed(ctx context.Context, a *app, days int) (int, error) {
	workplaces := make([]*model.Workplace, 0, len(seedWorkplaces))
	for _, w := range seedWorkplaces {
		wp := &model.Workplace{Name: w.name, Status: w.status}
		if err := a.workplaces.Create(ctx, wp); err != nil {
			return 0, errors.Wrapf(err, "create workplace %s", w.name)
		}
		workplaces = append(workplaces, wp)
	}

	for _, name := range seedWorkers {
		if err := a.workers.Create(ctx, &model.Worker{Name: name, Status: constants.WorkerActive}); err != nil {
			return 0, errors.Wrapf(err, "create worker %s", name)
		}
	}

	today := a.clock.Now().UTC().Truncate(24 * time.Hour)
	created := 0
	for d := 0; d < days; d++ {
		for i, wp := range workplaces {
			start := today.Add(time.Duration(d)*24*time.Hour + time.Duration(7+i*3)*time.Hour)
			hours := 4
			contact := fmt.Sprintf("%s desk", wp.Name)
			shift := &model.Shift{
				WorkplaceID:          wp.ID,
				StartAt:              start,
				EndAt:                start.Add(8 * time.Hour),
				JobType:              seedJobTypes[(d+i)%len(seedJobTypes)],
				PayRate:              float64(22 + 3*((d+i)%5)),
				MinCancellationHours: &hours,
				ContactPersonName:    &contact,
			}
			if err := a.shifts.Create(ctx, shift); err != nil {
				return created, errors.Wrap(err, "create shift")
			}
			created++
		}
	}
	return created, nil
}
