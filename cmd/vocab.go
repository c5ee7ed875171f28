package cmd

import (
	"github.com/ellard/glosa/internal/apiclient"
	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/output"
	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:     "vocab",
	Short:   "List vocabulary",
	GroupID: "study",
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")
		asJSON, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")
		sortBy, _ := cmd.Flags().GetString("sort")
		unseen, _ := cmd.Flags().GetBool("unseen")

		if remote {
			return remoteVocab(limit, sortBy, asJSON)
		}

		database, _, err := openCourseDB()
		if err != nil {
			return err
		}
		defer database.Close()

		partition := db.PartitionSeen
		if unseen {
			partition = db.PartitionUnseen
		}
		words, err := db.ListWords(database.Conn(), partition, limit)
		if err != nil {
			return err
		}

		if asJSON {
			return output.JSON(words)
		}
		if len(words) == 0 {
			output.Info("No words. Run 'glosa refresh' to fetch the word list.")
			return nil
		}

		items := make([]string, 0, len(words))
		for _, w := range words {
			items = append(items, output.Word(w.Word, w.FrequencyClass))
		}
		output.Info("%s", output.Columns(items))
		return nil
	},
}

func remoteVocab(limit int, sortBy string, asJSON bool) error {
	course, err := currentCourse()
	if err != nil {
		return err
	}

	words, err := newClient().Vocabulary(course.L1, course.L2, apiclient.VocabularyOptions{
		Limit:  limit,
		SortBy: sortBy,
	})
	if err != nil {
		output.Error("fetch vocabulary: %v", err)
		return err
	}

	if asJSON {
		return output.JSON(words)
	}
	for _, w := range words {
		output.Info("%-24s due %s  strength %.0f", w.Word, w.Due, w.Strength)
	}
	return nil
}

func init() {
	vocabCmd.Flags().Bool("remote", false, "query the server instead of the local cache")
	vocabCmd.Flags().Bool("unseen", false, "list words not yet reviewed")
	vocabCmd.Flags().Bool("json", false, "output as JSON")
	vocabCmd.Flags().Int("limit", 50, "max words to list")
	vocabCmd.Flags().String("sort", "word", "server sort order: word, reviewed, due, strength")
	rootCmd.AddCommand(vocabCmd)
}
