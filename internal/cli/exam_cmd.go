package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/cli/formatter"
	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/rules"
	"github.com/spf13/cobra"
)

func newExamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Manage exam attempts",
	}

	cmd.AddCommand(
		newExamScheduleCmd(app),
		newExamListCmd(app),
		newExamResultCmd(app),
		newExamCancelCmd(app),
		newExamRescheduleCmd(app),
		newExamEligibilityCmd(app),
	)

	return cmd
}

func newExamScheduleCmd(app *App) *cobra.Command {
	var candidateID, instructorID, examType, date, slot, notes string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule an exam attempt",
		RunE: func(cmd *cobra.Command, args []string) error {
			exam, err := app.Exams.Schedule(context.Background(), contract.ScheduleExamRequest{
				CandidateID:  candidateID,
				InstructorID: instructorID,
				ExamType:     domain.Phase(examType),
				Date:         date,
				Slot:         slot,
				Notes:        notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled %s exam (attempt %d) on %s at %s (%s)\n",
				exam.ExamType, exam.AttemptNumber, formatter.ISODate(exam.Date), exam.Time, formatter.TruncID(exam.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "Candidate ID")
	cmd.Flags().StringVar(&instructorID, "instructor", "", "Instructor ID")
	cmd.Flags().StringVar(&examType, "type", "", "Exam type (highway_code|parking|driving)")
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

func newExamListCmd(app *App) *cobra.Command {
	var candidateID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a candidate's exams",
		RunE: func(cmd *cobra.Command, args []string) error {
			exams, err := app.Exams.ListByCandidate(context.Background(), candidateID)
			if err != nil {
				return err
			}
			if len(exams) == 0 {
				fmt.Println("No exams found.")
				return nil
			}

			headers := []string{"ID", "TYPE", "ATTEMPT", "DATE", "TIME", "STATUS"}
			rows := make([][]string, 0, len(exams))
			for _, e := range exams {
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					formatter.PhaseLabel(e.ExamType),
					fmt.Sprintf("%d", e.AttemptNumber),
					formatter.ISODate(e.Date),
					e.Time,
					formatter.BookingStatusStyle(string(e.Status)).Render(string(e.Status)),
				})
			}

			fmt.Print(formatter.RenderBox("Exams", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "Candidate ID")
	_ = cmd.MarkFlagRequired("candidate")

	return cmd
}

func newExamResultCmd(app *App) *cobra.Command {
	var result, notes string

	cmd := &cobra.Command{
		Use:   "result ID",
		Short: "Record an exam result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exam, err := app.Exams.RecordResult(context.Background(), contract.RecordResultRequest{
				ExamID: args[0],
				Result: domain.ExamResult(result),
				Notes:  notes,
			})
			if err != nil {
				return err
			}
			style := formatter.StyleGreen
			if exam.Status == domain.ExamFailed {
				style = formatter.StyleRed
			}
			fmt.Printf("Recorded %s for %s exam (attempt %d)\n",
				style.Render(string(exam.Status)), exam.ExamType, exam.AttemptNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&result, "result", "", "Exam result (passed|failed)")
	cmd.Flags().StringVar(&notes, "notes", "", "Result notes")
	_ = cmd.MarkFlagRequired("result")

	return cmd
}

func newExamCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a scheduled exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exam, err := app.Exams.Cancel(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Cancelled %s exam %s\n", exam.ExamType, formatter.TruncID(exam.ID))
			return nil
		},
	}
}

func newExamRescheduleCmd(app *App) *cobra.Command {
	var instructorID, date, slot string

	cmd := &cobra.Command{
		Use:   "reschedule ID",
		Short: "Move a scheduled exam to a new slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exam, err := app.Exams.Reschedule(context.Background(), contract.RescheduleRequest{
				BookingID:    args[0],
				InstructorID: instructorID,
				Date:         date,
				Slot:         slot,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Rescheduled exam to %s at %s\n", formatter.ISODate(exam.Date), exam.Time)
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

func newExamEligibilityCmd(app *App) *cobra.Command {
	var examType, asOfStr string

	cmd := &cobra.Command{
		Use:   "eligibility CANDIDATE_ID",
		Short: "Check whether a candidate may schedule an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf := time.Now().UTC()
			if asOfStr != "" {
				parsed, err := rules.ParseDate(asOfStr)
				if err != nil {
					return err
				}
				asOf = parsed
			}

			decision, err := app.Exams.CanTake(context.Background(), args[0], domain.Phase(examType), asOf)
			if err != nil {
				return err
			}
			if decision.CanTake {
				fmt.Println(formatter.StyleGreen.Render("Eligible: a new attempt may be scheduled."))
				return nil
			}
			msg := fmt.Sprintf("Not eligible: %s", decision.Reason)
			if decision.WaitUntil != nil {
				msg += fmt.Sprintf(" (wait until %s)", formatter.ISODate(*decision.WaitUntil))
			}
			fmt.Println(formatter.StyleRed.Render(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&examType, "type", "", "Exam type (highway_code|parking|driving)")
	cmd.Flags().StringVar(&asOfStr, "as-of", "", "Evaluate as of this date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
