package cmd

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display statistics about users and their tasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Total Users: %s\n", humanize.Comma(stats.TotalUsers))
		fmt.Printf("Admin Users: %s\n", humanize.Comma(stats.AdminUsers))
		fmt.Printf("Users Without Tasks: %s\n", humanize.Comma(stats.UsersWithoutTasks))
		fmt.Printf("Total Tasks: %s\n", humanize.Comma(stats.TotalTasks))

		if len(stats.TasksByStatus) > 0 {
			statuses := make([]string, 0, len(stats.TasksByStatus))
			for status := range stats.TasksByStatus {
				statuses = append(statuses, status)
			}
			sort.Strings(statuses)

			fmt.Println("\nTasks by Status:")
			for _, status := range statuses {
				fmt.Printf("  %s: %s\n", status, humanize.Comma(stats.TasksByStatus[status]))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
