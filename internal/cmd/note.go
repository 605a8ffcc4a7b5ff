package cmd

import (
	"context"

	"github.com/pterm/pterm"

	"stempel/internal/services"
)

// NoteCmd attaches live documentation to the current session
type NoteCmd struct {
	Text     string   `arg:"" optional:"" help:"Documentation notes"`
	Image    []string `help:"Image files to attach" type:"existingfile"`
	Document []string `help:"Document files to attach" type:"existingfile"`
}

// Run executes the note command
func (n *NoteCmd) Run(cli *CLI) error {
	ctx := context.Background()

	sessionID, err := cli.Container.OpenSessionID(ctx, cli.Employee)
	if err != nil {
		return err
	}

	images, err := readUploads(n.Image)
	if err != nil {
		return err
	}
	documents, err := readUploads(n.Document)
	if err != nil {
		return err
	}

	result, err := cli.Container.TrackingService.AddDocumentation(ctx, services.AddDocumentationParams{
		SessionID: sessionID,
		Notes:     n.Text,
		Images:    images,
		Documents: documents,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Documentation added: %d image(s), %d document(s)",
		len(result.Entry.Images), len(result.Entry.Documents))

	if result.FailedUploads > 0 {
		pterm.Warning.Printfln("%d file(s) could not be stored", result.FailedUploads)
	}

	return nil
}
