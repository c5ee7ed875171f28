package cmd

import (
	"github.com/ellard/glosa/internal/output"
	"github.com/ellard/glosa/internal/wordlist"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:     "refresh",
	Short:   "Update the local word list from the server",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		database, course, err := openCourseDB()
		if err != nil {
			return err
		}
		defer database.Close()

		refresher := &wordlist.Refresher{
			DB:     database,
			Client: newClient(),
			L1:     course.L1,
			L2:     course.L2,
		}

		var result *wordlist.RefreshResult
		err = database.WithWriteLock(func() error {
			var err error
			result, err = refresher.Refresh()
			return err
		})
		if err != nil {
			output.Error("refresh: %v", err)
			return err
		}

		if asJSON {
			return output.JSON(result)
		}
		if !result.Refreshed {
			output.Info("Word list already up to date")
			return nil
		}
		output.Success("Word list updated: %d seen, %d unseen", result.Seen, result.Unseen)
		if result.Skipped > 0 {
			output.Warning("skipped %d malformed records", result.Skipped)
		}
		return nil
	},
}

func init() {
	refreshCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(refreshCmd)
}
