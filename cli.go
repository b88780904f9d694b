package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
)

func newRootCmd() *cobra.Command {
	var importPath string

	rootCmd := &cobra.Command{
		Use:     "wayedit",
		Version: version,
		Short:   "Interactive editor for robot path waypoints",
		Long: `wayedit edits the ordered waypoint list a trajectory generator follows.

Waypoints can be added, edited in place, reordered by dragging, deleted, and
bulk-imported from pasted "new SwerveTrajectoryWaypoint(...)" lines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(importPath)
		},
	}
	rootCmd.Flags().StringVarP(&importPath, "import", "i", "", "import waypoints from a text file at startup")

	rootCmd.AddCommand(newParseCmd(), newRenderCmd())
	return rootCmd
}

func execute() error {
	return newRootCmd().Execute()
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorColor.Sprint("Error:"), err)
}

func runEditor(importPath string) error {
	config := loadEnvConfig()

	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "wayedit")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	initial := defaultWaypoints()
	if importPath != "" {
		poses, err := readWaypointFile(importPath, os.Stderr)
		if err != nil {
			return err
		}
		initial = poses
	}

	store := NewWaypointStore(initial...)
	defer store.Close()

	m := newModel(config, store)
	if importPath != "" {
		m.successMessage = importSummary(len(initial), 0, importPath)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// readWaypointFile parses path and warns about skipped lines on w.
func readWaypointFile(path string, w io.Writer) ([]Pose, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	report := ParseWaypointsReport(string(data))
	for _, skipped := range report.Skipped {
		warningColor.Fprint(w, "skipped ")
		fmt.Fprintln(w, skipped)
	}
	if len(report.Poses) < minWaypoints {
		return nil, fmt.Errorf("%s: %d waypoint(s) parsed: %w", path, len(report.Poses), ErrTooFewWaypoints)
	}
	return report.Poses, nil
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the waypoints parsed from a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report := ParseWaypointsReport(string(data))
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func printReport(w io.Writer, report ParseReport) {
	headerColor.Fprintf(w, "%5s  %12s  %12s  %12s\n", "#", "X", "Y", "Angle")
	for i, p := range report.Poses {
		fmt.Fprintf(w, "%5d  %12s  %12s  %12s\n", i,
			formatNumber(DisplayValue(p.X)),
			formatNumber(DisplayValue(p.Y)),
			formatNumber(DisplayValue(p.Heading)))
	}
	for _, skipped := range report.Skipped {
		warningColor.Fprint(w, "skipped ")
		fmt.Fprintln(w, skipped)
	}
	successColor.Fprintf(w, "%d waypoints", len(report.Poses))
	fmt.Fprintf(w, ", %d skipped, %d blank\n", len(report.Skipped), report.Blank)
}

func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw the waypoints parsed from a text file as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poses, err := readWaypointFile(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			path := withExtension(output, ".png")
			if err := exportPNG(path, poses); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "waypoints.png", "PNG file to write")
	return cmd
}
