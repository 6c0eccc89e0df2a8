package cli

import (
	"github.com/amezghal/autoecole/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Candidates  service.CandidateService
	Instructors service.InstructorService
	Vehicles    service.VehicleService
	Lessons     service.LessonService
	Exams       service.ExamService
	Schedule    service.ScheduleService

	// IsInteractive reports whether stdin/stdout are attached to a terminal;
	// gates the enroll form and the agenda TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "autoecole" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "autoecole",
		Short: "Driving school scheduling and candidate progression",
	}

	root.AddCommand(
		newCandidateCmd(app),
		newInstructorCmd(app),
		newVehicleCmd(app),
		newLessonCmd(app),
		newExamCmd(app),
		newAgendaCmd(app),
	)

	return root
}
