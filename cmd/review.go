package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ellard/glosa/internal/output"
	"github.com/ellard/glosa/internal/scheduler"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:     "review",
	Short:   "Review due words and learn new ones",
	GroupID: "study",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		newCount, _ := cmd.Flags().GetInt("new")

		database, _, err := openCourseDB()
		if err != nil {
			return err
		}
		defer database.Close()

		sched := &scheduler.Scheduler{DB: database}

		due, err := sched.Due(count)
		if err != nil {
			return err
		}
		fresh, err := sched.NewWords(newCount)
		if err != nil {
			return err
		}

		if len(due) == 0 && len(fresh) == 0 {
			output.Info("Nothing due and no new words. Run 'glosa refresh' to fetch the word list.")
			return nil
		}

		var answered, correct int
		err = database.WithWriteLock(func() error {
			for _, word := range due {
				ok, err := askWord(word, false)
				if err != nil {
					return err
				}
				if _, err := sched.Answer(word, ok); err != nil {
					return err
				}
				answered++
				if ok {
					correct++
				}
			}
			for _, w := range fresh {
				ok, err := askWord(w.Word, true)
				if err != nil {
					return err
				}
				if _, err := sched.Answer(w.Word, ok); err != nil {
					return err
				}
				answered++
				if ok {
					correct++
				}
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, errReviewAborted) {
				output.Subtle("session ended early")
			} else {
				return err
			}
		}

		if answered > 0 {
			output.Success("Reviewed %d words, %d correct", answered, correct)
			output.Subtle("run 'glosa sync' to send reviews to the server")
		}
		return nil
	},
}

var errReviewAborted = errors.New("review aborted")

// askWord shows a single self-graded recall prompt.
func askWord(word string, isNew bool) (bool, error) {
	title := fmt.Sprintf("Do you know %q?", word)
	if isNew {
		title = fmt.Sprintf("New word: %q. Did you already know it?", word)
	}

	var known bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&known),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, errReviewAborted
		}
		return false, err
	}
	return known, nil
}

func init() {
	reviewCmd.Flags().IntP("count", "n", 10, "max due words to review")
	reviewCmd.Flags().Int("new", 5, "max new words to introduce")
	rootCmd.AddCommand(reviewCmd)
}
