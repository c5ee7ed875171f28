package cmd

import (
	"fmt"

	"github.com/ellard/glosa/internal/config"
	"github.com/ellard/glosa/internal/output"
	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:     "course",
	Short:   "Show or change the active course",
	GroupID: "study",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Course.L1 == "" || cfg.Course.L2 == "" {
			output.Info("No course selected (run: glosa course set <l1> <l2>)")
			return nil
		}
		output.Info("Studying %s from %s", cfg.Course.L2, cfg.Course.L1)
		return nil
	},
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses the server offers",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		courses, err := newClient().Courses()
		if err != nil {
			output.Error("list courses: %v", err)
			return err
		}

		if asJSON {
			return output.JSON(courses)
		}
		for _, c := range courses {
			output.Info("%s -> %s  (%s from %s)", c.L1.Code, c.L2.Code, c.L2.Name, c.L1.Name)
		}
		return nil
	},
}

var courseSetCmd = &cobra.Command{
	Use:   "set <l1> <l2>",
	Short: "Select the course to study",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l1, l2 := args[0], args[1]
		if l1 == l2 {
			return fmt.Errorf("l1 and l2 must differ")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.Course = config.Course{L1: l1, L2: l2}
		if err := config.Save(cfg); err != nil {
			return err
		}

		output.Success("Now studying %s from %s", l2, l1)
		output.Subtle("run 'glosa refresh' to download the word list")
		return nil
	},
}

func init() {
	courseListCmd.Flags().Bool("json", false, "output as JSON")

	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseSetCmd)
	rootCmd.AddCommand(courseCmd)
}
