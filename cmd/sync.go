package cmd

import (
	"fmt"

	"github.com/ellard/glosa/internal/config"
	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/output"
	"github.com/ellard/glosa/internal/reviewsync"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Short:   "Send pending reviews to the server",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		if !config.IsAuthenticated() {
			output.Error("not logged in (run: glosa auth login)")
			return fmt.Errorf("not authenticated")
		}

		database, course, err := openCourseDB()
		if err != nil {
			return err
		}
		defer database.Close()

		pending, err := db.PendingReviews(database.Conn())
		if err != nil {
			return err
		}

		engine := &reviewsync.Engine{
			DB:     database,
			Client: newClient(),
			L1:     course.L1,
			L2:     course.L2,
		}

		var outcome *reviewsync.Outcome
		err = database.WithWriteLock(func() error {
			var err error
			outcome, err = engine.Sync()
			return err
		})
		if err != nil {
			output.Error("sync: %v", err)
			output.Subtle("%d reviews still queued; sync again when the server is reachable", len(pending))
			return err
		}

		if asJSON {
			return output.JSON(outcome)
		}
		if outcome.Submitted == 0 && outcome.MergedReviews == 0 {
			output.Info("Nothing to sync")
			return nil
		}
		output.Success("Synced %d reviews (watermark %d)", outcome.Submitted, outcome.Watermark)
		if outcome.MergedReviews > 0 {
			output.Info("Merged %d reviews from other devices", outcome.MergedReviews)
		}
		if outcome.StatsReplaced {
			output.Subtle("server corrected the local statistics")
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(syncCmd)
}
