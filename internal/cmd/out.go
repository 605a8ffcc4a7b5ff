package cmd

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"stempel/internal/ports"
	"stempel/internal/services"
)

// OutCmd clocks an employee out
type OutCmd struct {
	Notes    string   `help:"Closing notes appended to the session"`
	Location string   `help:"Where the clock-out happened"`
	Attach   []string `help:"Files to attach as final documentation" type:"existingfile"`
}

// Run executes the out command
func (o *OutCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := cli.Container.OpenSessionID(ctx, cli.Employee)
	if err != nil {
		return err
	}

	uploads, err := readUploads(o.Attach)
	if err != nil {
		return err
	}

	result, err := cli.Container.TrackingService.ClockOut(ctx, services.ClockOutParams{
		SessionID:   sessionID,
		Notes:       o.Notes,
		Location:    o.Location,
		Attachments: uploads,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Clocked out of session %s: %s worked, %s paused",
		result.Session.ID,
		formatMinutes(result.WorkedMinutes),
		result.Session.PauseTotal)

	if result.FailedUploads > 0 {
		pterm.Warning.Printfln("%d attachment(s) could not be stored", result.FailedUploads)
	}

	return nil
}

// readUploads loads files from disk into blob uploads, guessing the content
// type from the file extension
func readUploads(files []string) ([]ports.BlobUpload, error) {
	uploads := make([]ports.BlobUpload, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		uploads = append(uploads, ports.BlobUpload{
			Name:        filepath.Base(file),
			Content:     content,
			ContentType: mime.TypeByExtension(filepath.Ext(file)),
		})
	}
	return uploads, nil
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
