package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amezghal/autoecole/internal/cli"
	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/amezghal/autoecole/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.autoecole/autoecole.db
	dbPath := os.Getenv("AUTOECOLE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".autoecole", "autoecole.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	candidateRepo := repository.NewSQLiteCandidateRepo(database)
	instructorRepo := repository.NewSQLiteInstructorRepo(database)
	vehicleRepo := repository.NewSQLiteVehicleRepo(database)
	lessonRepo := repository.NewSQLiteLessonRepo(database)
	examRepo := repository.NewSQLiteExamRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Candidates:  service.NewCandidateService(candidateRepo, uow),
		Instructors: service.NewInstructorService(instructorRepo, vehicleRepo, uow),
		Vehicles:    service.NewVehicleService(vehicleRepo),
		Lessons:     service.NewLessonService(lessonRepo, candidateRepo, instructorRepo, uow),
		Exams:       service.NewExamService(examRepo, candidateRepo, instructorRepo, uow),
		Schedule:    service.NewScheduleService(lessonRepo, examRepo, candidateRepo, instructorRepo),
	}

	// Detect interactive terminal for the enroll form and agenda TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
