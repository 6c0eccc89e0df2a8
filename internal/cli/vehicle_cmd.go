package cli

import (
	"context"
	"fmt"

	"github.com/amezghal/autoecole/internal/cli/formatter"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/spf13/cobra"
)

func newVehicleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Manage vehicles",
	}

	cmd.AddCommand(
		newVehicleAddCmd(app),
		newVehicleListCmd(app),
	)

	return cmd
}

func newVehicleAddCmd(app *App) *cobra.Command {
	var plate, model string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := &domain.Vehicle{Plate: plate, Model: model}
			if err := app.Vehicles.Create(context.Background(), v); err != nil {
				return err
			}
			fmt.Printf("Added vehicle %s (%s)\n", v.Plate, formatter.TruncID(v.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&plate, "plate", "", "License plate")
	cmd.Flags().StringVar(&model, "model", "", "Vehicle model")
	_ = cmd.MarkFlagRequired("plate")

	return cmd
}

func newVehicleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicles, err := app.Vehicles.List(context.Background())
			if err != nil {
				return err
			}
			if len(vehicles) == 0 {
				fmt.Println("No vehicles found.")
				return nil
			}

			headers := []string{"ID", "PLATE", "MODEL", "INSTRUCTOR"}
			rows := make([][]string, 0, len(vehicles))
			for _, v := range vehicles {
				instructor := formatter.Dim("-")
				if v.InstructorID != nil {
					instructor = formatter.TruncID(*v.InstructorID)
				}
				rows = append(rows, []string{
					formatter.TruncID(v.ID),
					v.Plate,
					v.Model,
					instructor,
				})
			}

			fmt.Print(formatter.RenderBox("Vehicles", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
