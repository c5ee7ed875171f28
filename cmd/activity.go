package cmd

import (
	"github.com/ellard/glosa/internal/output"
	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Short:   "Show review activity over the past year",
	GroupID: "study",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		course, err := currentCourse()
		if err != nil {
			return err
		}

		history, err := newClient().ActivityHistory(course.L1, course.L2)
		if err != nil {
			output.Error("fetch activity: %v", err)
			return err
		}

		if asJSON {
			return output.JSON(history)
		}

		var total struct {
			learned, strengthened, forgotten, crammed int
		}
		for _, a := range history.Activities {
			total.learned += a.Learned
			total.strengthened += a.Strengthened
			total.forgotten += a.Forgotten
			total.crammed += a.Crammed
		}

		output.Title("Past year")
		output.Info("  learned       %d", total.learned)
		output.Info("  strengthened  %d", total.strengthened)
		output.Info("  forgotten     %d", total.forgotten)
		output.Info("  crammed       %d", total.crammed)
		agg := history.Aggregates
		if agg.Learned+agg.Strengthened+agg.Forgotten > 0 {
			output.Subtle("older: %d learned, %d strengthened, %d forgotten",
				agg.Learned, agg.Strengthened, agg.Forgotten)
		}
		return nil
	},
}

func init() {
	activityCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(activityCmd)
}
