package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"

	adapteridentity "stempel/internal/adapters/identity"
	"stempel/internal/config"
	"stempel/internal/paths"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta  SettingsMetaCmd  `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Token SettingsTokenCmd `cmd:"token" help:"Issue a signed identity token and store it in settings.json"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := paths.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	// Table format
	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Example settings.json:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for key, value := range example {
		var valueStr string
		switch v := value.(type) {
		case string:
			valueStr = v
		case bool:
			valueStr = fmt.Sprintf("%t", v)
		case int:
			valueStr = fmt.Sprintf("%d", v)
		default:
			valueStr = fmt.Sprintf("%v", v)
		}

		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}

	w.Flush()

	fmt.Println()
	fmt.Println("Create or edit this file to configure stempel.")
	fmt.Println("All settings are optional and have sensible defaults.")

	return nil
}

// SettingsTokenCmd issues a signed identity token for the configured employee
type SettingsTokenCmd struct {
	Secret string `help:"Signing secret shared with the back office" required:""`
	TTL    string `help:"Token lifetime (Go duration, e.g. 720h)" default:"720h"`
}

// Run executes the token command
func (s *SettingsTokenCmd) Run(cli *CLI) error {
	if cli.Employee == "" {
		return fmt.Errorf("no employee ID configured (use --employee, $STEMPEL_EMPLOYEE, or settings.json)")
	}

	ttl, err := time.ParseDuration(s.TTL)
	if err != nil {
		return fmt.Errorf("invalid ttl %q: %w", s.TTL, err)
	}

	token, err := adapteridentity.IssueToken([]byte(s.Secret), cli.Employee, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	settings.IdentityToken = token
	settings.TokenSecret = s.Secret
	if err := config.SaveSettings(settings); err != nil {
		return err
	}

	pterm.Success.Printfln("Identity token for %s stored in %s (valid %s)",
		cli.Employee, paths.GetSettingsPath(), s.TTL)

	return nil
}
