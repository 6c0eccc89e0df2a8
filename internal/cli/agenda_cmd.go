package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/cli/formatter"
	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/rules"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newAgendaCmd(app *App) *cobra.Command {
	var dateStr string
	var useTUI bool

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show the day's schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := rules.DateOnly(time.Now())
			if dateStr != "" {
				parsed, err := rules.ParseDate(dateStr)
				if err != nil {
					return err
				}
				date = parsed
			}

			if useTUI {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("--tui requires an interactive terminal")
				}
				p := tea.NewProgram(newAgendaModel(app, date), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}

			agenda, err := app.Schedule.Agenda(context.Background(), date)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderBox(
				fmt.Sprintf("Agenda %s", formatter.HumanDate(agenda.Date)),
				renderAgendaTable(agenda),
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Day to show (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Browse days interactively")

	return cmd
}

func renderAgendaTable(agenda *contract.DayAgenda) string {
	if len(agenda.Entries) == 0 {
		return formatter.Dim("No bookings.")
	}

	headers := []string{"TIME", "KIND", "PHASE", "CANDIDATE", "INSTRUCTOR", "STATUS"}
	rows := make([][]string, 0, len(agenda.Entries))
	for _, e := range agenda.Entries {
		kind := formatter.StyleBlue.Render(e.Kind)
		if e.Kind == "exam" {
			kind = formatter.StylePurple.Render(e.Kind)
		}
		rows = append(rows, []string{
			e.Slot,
			kind,
			formatter.PhaseLabel(e.Phase),
			e.CandidateName,
			e.InstructorName,
			formatter.BookingStatusStyle(e.Status).Render(e.Status),
		})
	}
	return formatter.RenderTable(headers, rows)
}
