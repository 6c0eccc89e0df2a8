package cli

import (
	"context"
	"fmt"

	"github.com/amezghal/autoecole/internal/cli/formatter"
	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/spf13/cobra"
)

func newLessonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Manage lesson bookings",
	}

	cmd.AddCommand(
		newLessonBookCmd(app),
		newLessonListCmd(app),
		newLessonCompleteCmd(app),
		newLessonCancelCmd(app),
		newLessonRescheduleCmd(app),
	)

	return cmd
}

func newLessonBookCmd(app *App) *cobra.Command {
	var candidateID, instructorID, lessonType, date, slot, notes string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a lesson slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, err := app.Lessons.Book(context.Background(), contract.BookLessonRequest{
				CandidateID:  candidateID,
				InstructorID: instructorID,
				LessonType:   domain.Phase(lessonType),
				Date:         date,
				Slot:         slot,
				Notes:        notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Booked %s lesson on %s at %s (%s)\n",
				lesson.LessonType, formatter.ISODate(lesson.Date), lesson.Time, formatter.TruncID(lesson.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "Candidate ID")
	cmd.Flags().StringVar(&instructorID, "instructor", "", "Instructor ID")
	cmd.Flags().StringVar(&lessonType, "type", "", "Lesson type (highway_code|parking|driving)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&slot, "time", "", "Time slot (HH:MM)")
	cmd.Flags().StringVar(&notes, "notes", "", "Booking notes")
	_ = cmd.MarkFlagRequired("candidate")
	_ = cmd.MarkFlagRequired("instructor")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newLessonListCmd(app *App) *cobra.Command {
	var candidateID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a candidate's lessons",
		RunE: func(cmd *cobra.Command, args []string) error {
			lessons, err := app.Lessons.ListByCandidate(context.Background(), candidateID)
			if err != nil {
				return err
			}
			if len(lessons) == 0 {
				fmt.Println("No lessons found.")
				return nil
			}

			headers := []string{"ID", "TYPE", "DATE", "TIME", "INSTRUCTOR", "STATUS"}
			rows := make([][]string, 0, len(lessons))
			for _, l := range lessons {
				rows = append(rows, []string{
					formatter.TruncID(l.ID),
					formatter.PhaseLabel(l.LessonType),
					formatter.ISODate(l.Date),
					l.Time,
					formatter.TruncID(l.InstructorID),
					formatter.BookingStatusStyle(string(l.Status)).Render(string(l.Status)),
				})
			}

			fmt.Print(formatter.RenderBox("Lessons", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "Candidate ID")
	_ = cmd.MarkFlagRequired("candidate")

	return cmd
}

func newLessonCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a lesson as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, err := app.Lessons.Complete(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Completed %s lesson for candidate %s\n",
				lesson.LessonType, formatter.TruncID(lesson.CandidateID))
			return nil
		},
	}
}

func newLessonCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a scheduled lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, err := app.Lessons.Cancel(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Cancelled lesson %s\n", formatter.TruncID(lesson.ID))
			return nil
		},
	}
}

func newLessonRescheduleCmd(app *App) *cobra.Command {
	var instructorID, date, slot string

	cmd := &cobra.Command{
		Use:   "reschedule ID",
		Short: "Move a scheduled lesson to a new slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, err := app.Lessons.Reschedule(context.Background(), contract.RescheduleRequest{
				BookingID:    args[0],
				InstructorID: instructorID,
				Date:         date,
				Slot:         slot,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Rescheduled lesson to %s at %s\n", formatter.ISODate(lesson.Date), lesson.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&instructorID, "instructor", "", "New instructor ID (optional)")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&slot, "time", "", "New time slot (HH:MM)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}
