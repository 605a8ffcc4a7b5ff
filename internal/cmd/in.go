package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"stempel/internal/services"
)

// InCmd clocks an employee in
type InCmd struct {
	Project  string `help:"Project or construction site the work belongs to" required:""`
	Location string `help:"Where the clock-in happened (e.g. 'north gate')"`
}

// Run executes the in command
func (i *InCmd) Run(cli *CLI) error {
	if cli.Employee == "" {
		return fmt.Errorf("no employee ID configured (use --employee, $STEMPEL_EMPLOYEE, or settings.json)")
	}

	sess, err := cli.Container.TrackingService.ClockIn(context.Background(), services.ClockInParams{
		EmployeeID: cli.Employee,
		ProjectID:  i.Project,
		Location:   i.Location,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Clocked in on %s at %s (session %s)",
		sess.ProjectID, sess.ClockIn.Format("15:04"), sess.ID)

	return nil
}
