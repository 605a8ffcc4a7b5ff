package cmd

import (
	"context"

	"github.com/pterm/pterm"
)

// PauseCmd starts a pause on the current session
type PauseCmd struct{}

// Run executes the pause command
func (p *PauseCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := cli.Container.OpenSessionID(ctx, cli.Employee)
	if err != nil {
		return err
	}

	sess, err := cli.Container.TrackingService.StartPause(ctx, sessionID)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Pause started at %s on session %s",
		sess.CurrentPause.Start.Format("15:04"), sess.ID)

	return nil
}

// ResumeCmd ends the pause on the current session
type ResumeCmd struct{}

// Run executes the resume command
func (r *ResumeCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := cli.Container.OpenSessionID(ctx, cli.Employee)
	if err != nil {
		return err
	}

	sess, err := cli.Container.TrackingService.EndPause(ctx, sessionID)
	if err != nil {
		return err
	}

	last := sess.Pauses[len(sess.Pauses)-1]
	pterm.Success.Printfln("Pause ended after %s, total paused %s",
		last.Duration(), sess.PauseTotal)

	return nil
}
