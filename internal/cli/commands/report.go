package commands

import "github.com/spf13/cobra"

const scanExitCodes = `
Exit codes:
  0 - All chat files scanned
  1 - At least one file was missing or could not be read completely
  2 - Configuration or usage error`

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "report [config-file]",
		Short: "Count search terms per sender and show their first occurrences",
		Long: `Scan chat exports and print, per sender, how many messages contain each
search term, followed by the first message that contained it.

Without a config file the built-in chat file and search terms are used.
--file and --term override whatever the config file says.

Example:
  chattally report
  chattally report chattally.yaml
  chattally report -f 'exports/*.txt' -t "Te amo" -t "Amor"
` + scanExitCodes,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts, modeBoth)
		},
	}

	addScanFlags(cmd, opts)
	return cmd
}

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "count [config-file]",
		Short: "Count messages containing each search term, per sender",
		Long: `Scan chat exports and print, per sender, how many messages contain each
search term. A message counts once per term however often the term repeats.
` + scanExitCodes,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts, modeCount)
		},
	}

	addScanFlags(cmd, opts)
	return cmd
}

// NewFirstCommand creates the first command.
func NewFirstCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "first [config-file]",
		Short: "Show the first message containing each search term, per sender",
		Long: `Scan chat exports and print, per sender and search term, the first
message line that contained the term.
` + scanExitCodes,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts, modeFirst)
		},
	}

	addScanFlags(cmd, opts)
	return cmd
}
