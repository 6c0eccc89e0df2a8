package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amezghal/autoecole/internal/cli/formatter"
	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newCandidateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidate",
		Short: "Manage candidates",
	}

	cmd.AddCommand(
		newCandidateAddCmd(app),
		newCandidateEnrollCmd(app),
		newCandidateListCmd(app),
		newCandidateShowCmd(app),
		newCandidatePayCmd(app),
		newCandidateRemoveCmd(app),
	)

	return cmd
}

func newCandidateAddCmd(app *App) *cobra.Command {
	var name, category string
	var fee int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewEnrollCandidateRequest(name)
			if category != "" {
				req.LicenseCategory = category
			}
			req.TotalFee = fee

			cand, err := app.Candidates.Enroll(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Enrolled %s (%s)\n", cand.Name, formatter.TruncID(cand.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Candidate name")
	cmd.Flags().StringVar(&category, "category", "B", "License category")
	cmd.Flags().IntVar(&fee, "fee", 0, "Total fee in cents")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCandidateEnrollCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a candidate interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("enroll requires an interactive terminal (use 'candidate add' instead)")
			}

			var name, category, feeStr string
			category = "B"

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Candidate name").
						Value(&name).
						Validate(func(s string) error {
							if s == "" {
								return fmt.Errorf("name is required")
							}
							return nil
						}),
					huh.NewSelect[string]().
						Title("License category").
						Options(
							huh.NewOption("B (car)", "B"),
							huh.NewOption("A (motorcycle)", "A"),
							huh.NewOption("C (truck)", "C"),
						).
						Value(&category),
					huh.NewInput().
						Title("Total fee (euros, blank for none)").
						Placeholder("1200").
						Value(&feeStr).
						Validate(validateOptionalInt),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}

			req := contract.NewEnrollCandidateRequest(name)
			req.LicenseCategory = category
			if feeStr != "" {
				euros, _ := strconv.Atoi(feeStr)
				req.TotalFee = euros * 100
			}

			cand, err := app.Candidates.Enroll(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Enrolled %s (%s)\n", cand.Name, formatter.TruncID(cand.ID))
			return nil
		},
	}
}

func newCandidateListCmd(app *App) *cobra.Command {
	var includeDeleted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := app.Candidates.List(context.Background(), includeDeleted)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Println("No candidates found.")
				return nil
			}

			headers := []string{"ID", "NAME", "CAT", "STATUS", "PHASE", "PAID"}
			rows := make([][]string, 0, len(candidates))
			for _, c := range candidates {
				rows = append(rows, []string{
					formatter.TruncID(c.ID),
					c.Name,
					c.LicenseCategory,
					formatter.BookingStatusStyle(string(c.Status)).Render(string(c.Status)),
					currentPhaseLabel(c),
					fmt.Sprintf("%s / %s", formatter.Euros(c.PaidAmount), formatter.Euros(c.TotalFee)),
				})
			}

			fmt.Print(formatter.RenderBox("Candidates", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "all", false, "Include deleted candidates")

	return cmd
}

func newCandidateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a candidate's progression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cand, err := app.Candidates.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}

			var content string
			content += fmt.Sprintf("%s  %s\n", formatter.Bold(cand.Name), formatter.Dim(string(cand.Status)))
			content += fmt.Sprintf("Paid %s of %s\n\n", formatter.Euros(cand.PaidAmount), formatter.Euros(cand.TotalFee))

			headers := []string{"PHASE", "STATUS", "LESSONS", "ATTEMPTS", "NEXT EXAM"}
			rows := make([][]string, 0, len(cand.Progress))
			for _, pp := range cand.Progress {
				nextExam := "-"
				if pp.ExamDate != nil {
					nextExam = formatter.ISODate(*pp.ExamDate)
				}
				done, plan := pp.SessionsRatio()
				rows = append(rows, []string{
					formatter.PhaseLabel(pp.Phase),
					formatter.PhaseStatusIndicator(pp.Status),
					formatter.SessionsBar(done, plan),
					fmt.Sprintf("%d", pp.ExamAttempts),
					nextExam,
				})
			}
			content += formatter.RenderTable(headers, rows)

			fmt.Print(formatter.RenderBox("Candidate", content))
			return nil
		},
	}
}

func newCandidatePayCmd(app *App) *cobra.Command {
	var note string
	var amount int

	cmd := &cobra.Command{
		Use:   "pay ID",
		Short: "Record a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cand, err := app.Candidates.RecordPayment(context.Background(), contract.RecordPaymentRequest{
				CandidateID: args[0],
				Amount:      amount,
				Note:        note,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s for %s (paid %s of %s)\n",
				formatter.Euros(amount), cand.Name,
				formatter.Euros(cand.PaidAmount), formatter.Euros(cand.TotalFee))
			return nil
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 0, "Payment amount in cents")
	cmd.Flags().StringVar(&note, "note", "", "Payment note")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newCandidateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a candidate (soft delete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Candidates.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed candidate %s\n", args[0])
			return nil
		},
	}
}

// currentPhaseLabel returns the candidate's active phase for list display.
func currentPhaseLabel(c *domain.Candidate) string {
	for _, pp := range c.Progress {
		if pp.Status == domain.PhaseInProgress {
			return formatter.PhaseLabel(pp.Phase)
		}
	}
	if c.Status == domain.CandidateCompleted {
		return formatter.StyleGreen.Render("graduated")
	}
	return formatter.Dim("-")
}

func validateOptionalInt(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}
