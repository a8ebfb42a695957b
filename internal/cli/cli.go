package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	overtimeService "github.com/cmlabs-hris/overtime-backend-go/internal/service/overtime"
)

var (
	// Version is set at build time
	Version = "dev"
)

// App holds the CLI application state.
type App struct {
	calculator *overtimeService.Calculator
	root       *cobra.Command
}

// NewApp creates the overtimectl command tree around a calculator.
func NewApp(calculator *overtimeService.Calculator) *App {
	a := &App{calculator: calculator}

	a.root = &cobra.Command{
		Use:   "overtimectl",
		Short: "Compute overtime from worked intervals",
		Long: `overtimectl computes overtime minutes for a worked day using the
regular schedule of the employee's branch.

It runs offline and needs no database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.calcCmd())
	a.root.AddCommand(a.policyCmd())
	a.root.AddCommand(a.formatCmd())

	return a
}

// SetOutput redirects command output, used by tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides os.Args[1:].
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "overtimectl %s\n", Version)
		},
	}
}

func (a *App) calcCmd() *cobra.Command {
	var req overtime.CalculateRequest
	var start2, end2, branchName, branchKey string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the overtime of a worked day",
		Example: `  overtimectl calc --date 2024-01-15 --start 06:00 --end 18:00 --lunch
  overtimectl calc --date 2024-01-16 --start 07:00 --end 11:30 --start2 13:00 --end2 18:30 --branch "Sao Jose"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.StartTime2 = overtime.NonEmpty(&start2)
			req.EndTime2 = overtime.NonEmpty(&end2)
			req.BranchName = overtime.NonEmpty(&branchName)
			req.BranchKey = overtime.NonEmpty(&branchKey)

			if err := req.Validate(); err != nil {
				return err
			}

			b, err := a.calculator.Compute(req.Date, req.StartTime, req.EndTime, req.Options())
			if err != nil {
				return err
			}

			resp := overtime.NewCalculateResponse(b)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			fmt.Fprintf(out, "%s (%s), policy %s\n", resp.Date, resp.DayOfWeek, resp.BranchKey)
			fmt.Fprintf(out, "regular: %s\n", formatWindows(resp.RegularWindows))
			for _, in := range resp.Intervals {
				fmt.Fprintf(out, "  %s-%s worked %s, regular %s, overtime %s\n",
					in.Start, in.End,
					overtime.FormatMinutesAsDuration(in.DurationMinutes),
					overtime.FormatMinutesAsDuration(in.RegularMinutes),
					overtime.FormatMinutesAsDuration(in.OvertimeMinutes),
				)
			}
			if resp.LunchExtraMinutes > 0 {
				fmt.Fprintf(out, "  lunch worked +%s\n", overtime.FormatMinutesAsDuration(resp.LunchExtraMinutes))
			}
			fmt.Fprintf(out, "overtime: %s (%d min, %s h)\n", resp.OvertimeFormatted, resp.OvertimeMinutes, resp.OvertimeHours.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "Work date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&start2, "start2", "", "Start of the second interval (HH:MM)")
	cmd.Flags().StringVar(&end2, "end2", "", "End of the second interval (HH:MM)")
	cmd.Flags().StringVar(&branchName, "branch", "", "Branch name used to pick the schedule")
	cmd.Flags().StringVar(&branchKey, "branch-key", "", "Explicit schedule ("+strings.Join(overtime.BranchKeyValues, ", ")+")")
	cmd.Flags().BoolVar(&req.LunchWorked, "lunch", false, "The lunch break was worked")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the breakdown as JSON")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (a *App) policyCmd() *cobra.Command {
	var date, branchName, branchKey string

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the regular schedule of a branch on a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := overtime.Options{BranchName: branchName}
			if branchKey != "" {
				key, ok := overtime.ParseBranchKey(branchKey)
				if !ok {
					return fmt.Errorf("%w: %q", overtime.ErrUnknownBranchKey, branchKey)
				}
				opts.BranchKey = &key
			}

			key, policy, err := a.calculator.Policy(date, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "policy: %s\n", key)
			if policy == nil {
				fmt.Fprintln(out, "regular: none, every worked minute is overtime")
				return nil
			}

			windows := make([]overtime.WindowResponse, 0, len(policy.Windows))
			for _, w := range policy.Windows {
				windows = append(windows, overtime.WindowResponse{Start: w.Start.String(), End: w.End.String()})
			}
			fmt.Fprintf(out, "regular: %s\n", formatWindows(windows))
			if policy.LunchAllowed() {
				fmt.Fprintf(out, "worked lunch: +%s\n", overtime.FormatMinutesAsDuration(policy.LunchExtraMinutes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Work date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&branchName, "branch", "", "Branch name used to pick the schedule")
	cmd.Flags().StringVar(&branchKey, "branch-key", "", "Explicit schedule ("+strings.Join(overtime.BranchKeyValues, ", ")+")")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func (a *App) formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <minutes>",
		Short: "Format minutes as hours and minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil || minutes < 0 {
				return fmt.Errorf("minutes must be a non-negative integer, got %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), overtime.FormatMinutesAsDuration(minutes))
			return nil
		},
	}
}

func formatWindows(windows []overtime.WindowResponse) string {
	if len(windows) == 0 {
		return "none"
	}
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = w.Start + "-" + w.End
	}
	return strings.Join(parts, ", ")
}

