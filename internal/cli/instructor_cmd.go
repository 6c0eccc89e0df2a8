package cli

import (
	"context"
	"fmt"

	"github.com/amezghal/autoecole/internal/cli/formatter"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/spf13/cobra"
)

func newInstructorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructor",
		Short: "Manage instructors",
	}

	cmd.AddCommand(
		newInstructorAddCmd(app),
		newInstructorListCmd(app),
		newInstructorAssignCmd(app),
		newInstructorUnassignCmd(app),
	)

	return cmd
}

func newInstructorAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new instructor",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &domain.Instructor{Name: name}
			if err := app.Instructors.Create(context.Background(), in); err != nil {
				return err
			}
			fmt.Printf("Added instructor %s (%s)\n", in.Name, formatter.TruncID(in.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Instructor name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newInstructorListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List instructors",
		RunE: func(cmd *cobra.Command, args []string) error {
			instructors, err := app.Instructors.List(context.Background())
			if err != nil {
				return err
			}
			if len(instructors) == 0 {
				fmt.Println("No instructors found.")
				return nil
			}

			headers := []string{"ID", "NAME", "STATUS", "VEHICLE"}
			rows := make([][]string, 0, len(instructors))
			for _, in := range instructors {
				vehicle := formatter.Dim("-")
				if in.VehicleID != nil {
					vehicle = formatter.TruncID(*in.VehicleID)
				}
				rows = append(rows, []string{
					formatter.TruncID(in.ID),
					in.Name,
					formatter.BookingStatusStyle(string(in.Status)).Render(string(in.Status)),
					vehicle,
				})
			}

			fmt.Print(formatter.RenderBox("Instructors", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newInstructorAssignCmd(app *App) *cobra.Command {
	var vehicleID string

	cmd := &cobra.Command{
		Use:   "assign-vehicle INSTRUCTOR_ID",
		Short: "Assign a vehicle to an instructor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Instructors.AssignVehicle(context.Background(), args[0], vehicleID); err != nil {
				return err
			}
			fmt.Printf("Assigned vehicle %s to instructor %s\n", vehicleID, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "Vehicle ID")
	_ = cmd.MarkFlagRequired("vehicle")

	return cmd
}

func newInstructorUnassignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign-vehicle INSTRUCTOR_ID",
		Short: "Detach an instructor's vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Instructors.UnassignVehicle(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Unassigned vehicle from instructor %s\n", args[0])
			return nil
		},
	}
}
