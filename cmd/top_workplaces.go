package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var topLimit int

var topWorkplacesCmd = &cobra.Command{
	Use:   "top-workplaces",
	Short: "Print the workplaces with the most completed shifts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ranks, err := a.reportService().TopWorkplaces(cmd.Context(), topLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ranks) == 0 {
			color.New(color.FgYellow).Fprintln(out, "no completed shifts yet")
			return nil
		}

		bold := color.New(color.Bold)
		count := color.New(color.FgGreen)
		for i, r := range ranks {
			fmt.Fprintf(out, "%2d. %s  %s\n", i+1, bold.Sprint(r.Name), count.Sprintf("%d shifts", r.Shifts))
		}
		return nil
	},
}

func init() {
	topWorkplacesCmd.Flags().IntVar(&topLimit, "limit", 3, "number of workplaces to show")
	rootCmd.AddCommand(topWorkplacesCmd)
}
