package cmd

import (
	"github.com/ellard/glosa/internal/config"
	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/output"
	"github.com/spf13/cobra"
)

// statusInfo is the machine-readable form of `glosa status`.
type statusInfo struct {
	Course        config.Course `json:"course"`
	Authenticated bool          `json:"authenticated"`
	WordListETag  string        `json:"wordListEtag,omitempty"`
	Seen          int           `json:"seen"`
	Unseen        int           `json:"unseen"`
	PendingSync   int           `json:"pendingSync"`
	Watermark     int64         `json:"watermark"`
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show local cache and sync state",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		database, course, err := openCourseDB()
		if err != nil {
			return err
		}
		defer database.Close()

		info := statusInfo{Course: course, Authenticated: config.IsAuthenticated()}

		if info.WordListETag, err = database.WordListVersion(); err != nil {
			return err
		}
		if info.Seen, err = db.CountWords(database.Conn(), db.PartitionSeen); err != nil {
			return err
		}
		if info.Unseen, err = db.CountWords(database.Conn(), db.PartitionUnseen); err != nil {
			return err
		}
		pending, err := db.PendingReviews(database.Conn())
		if err != nil {
			return err
		}
		info.PendingSync = len(pending)
		if info.Watermark, err = database.Watermark(); err != nil {
			return err
		}

		if asJSON {
			return output.JSON(info)
		}

		output.Title("glosa status")
		output.Info("  course     %s -> %s", course.L1, course.L2)
		if info.WordListETag == "" {
			output.Warning("word list never downloaded (run: glosa refresh)")
		} else {
			output.Info("  word list  %d seen / %d unseen (version %s)", info.Seen, info.Unseen, info.WordListETag)
		}
		output.Info("  reviews    %d waiting to sync (watermark %d)", info.PendingSync, info.Watermark)
		if !info.Authenticated {
			output.Subtle("not logged in; refresh and sync need credentials")
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}
