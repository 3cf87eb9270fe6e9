package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fieldsVerbose bool

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List cached curriculum fields",
	Long: `List the curriculum fields currently in the offline cache.

With --verbose, programs and courses are shown nested under each field.

Examples:
  campuspocket fields
  campuspocket fields --verbose`,
	Args: cobra.NoArgs,
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().BoolVarP(&fieldsVerbose, "verbose", "v", false, "show programs and courses")
}

func runFields(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return trackCLIError("fields", err)
	}
	defer func() { _ = database.Close() }()

	fields, err := database.GetAllFields()
	if err != nil {
		return trackCLIError("fields", err)
	}

	if len(fields) == 0 {
		fmt.Println("No fields cached. Run `campuspocket sync fields` first.")
		return nil
	}

	for _, field := range fields {
		fmt.Printf("%-30s %d programs, %d courses\n", field.Title, field.ProgramsCount, field.TotalCourses)
		if !fieldsVerbose {
			continue
		}
		for _, program := range field.Programs {
			fmt.Printf("  %s (%s, %d images)\n", program.Name, program.Duration, len(program.Images))
			for _, course := range program.Courses {
				fmt.Printf("    %-40s %s  %.1f★  %d students\n",
					course.Title, course.Level, course.Rating, course.Students)
			}
		}
	}
	return nil
}
