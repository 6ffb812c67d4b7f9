package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/logger"
)

var (
	inspectDriver string
	inspectSource string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarise the raw store",
	Long: `Counts rows in each raw table and lists the action types and categories
found in timeline_actions, with the label and order each one gets in the
archive. Codes missing from the lookup tables are marked, and lookup
entries the source never uses are counted (listed with --verbose).
Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDriver, "driver", "", "raw store driver: duckdb, postgres or sqlite")
	inspectCmd.Flags().StringVarP(&inspectSource, "source", "s", "", "raw store file or connection string")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	if inspector == nil || settingsService == nil {
		return errors.New("inspect service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	source := settings.Source
	if cmd.Flags().Changed("driver") {
		source.Driver = domain.SourceDriver(inspectDriver)
	}
	if cmd.Flags().Changed("source") {
		source.DSN = inspectSource
	}
	if !source.Driver.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, source.Driver)
	}

	overview, err := inspector.Inspect(context.Background(), source)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("%s: %s", source.Driver.Description(), maskDSN(source.DSN))))

	tableRows := make([][]string, 0, len(overview.Tables))
	for _, t := range overview.Tables {
		tableRows = append(tableRows, []string{t.Table, fmt.Sprint(t.Rows)})
	}
	cmd.Println(renderTable([]string{"Table", "Rows"}, tableRows))

	knownTypes := domain.KnownActionTypes()
	if len(overview.ActionTypes) > 0 {
		known := codeSet(knownTypes)
		rows := make([][]string, 0, len(overview.ActionTypes))
		for _, c := range overview.ActionTypes {
			rows = append(rows, []string{displayCode(c.Code), domain.ActionLabel(c.Code), mapped(known, c.Code), fmt.Sprint(c.Rows)})
		}
		cmd.Println(titleStyle.Render("Action types"))
		cmd.Println(renderTable([]string{"Code", "Label", "Mapped", "Rows"}, rows))
	}
	printUnused(cmd, "action types", unusedCodes(knownTypes, overview.ActionTypes))

	knownCats := domain.KnownCategories()
	if len(overview.Categories) > 0 {
		known := codeSet(knownCats)
		rows := make([][]string, 0, len(overview.Categories))
		for _, c := range overview.Categories {
			rows = append(rows, []string{displayCode(c.Code), itoa(domain.CategoryOrder(c.Code)), mapped(known, c.Code), fmt.Sprint(c.Rows)})
		}
		cmd.Println(titleStyle.Render("Categories"))
		cmd.Println(renderTable([]string{"Category", "Order", "Mapped", "Rows"}, rows))
	}
	printUnused(cmd, "categories", unusedCodes(knownCats, overview.Categories))

	return nil
}

// printUnused reports lookup entries the source never uses. The codes
// themselves are listed only with --verbose.
func printUnused(cmd *cobra.Command, what string, codes []string) {
	if len(codes) == 0 {
		return
	}
	cmd.Println(mutedStyle.Render(fmt.Sprintf("%d known %s have no rows", len(codes), what)))
	if logger.IsVerbose() {
		cmd.Println(mutedStyle.Render("  " + strings.Join(codes, ", ")))
	}
}

// unusedCodes returns the known codes absent from found, in known order.
func unusedCodes(known []string, found []domain.CodeCount) []string {
	seen := make(map[string]bool, len(found))
	for _, c := range found {
		if c.Rows > 0 {
			seen[c.Code] = true
		}
	}
	var unused []string
	for _, code := range known {
		if !seen[code] {
			unused = append(unused, code)
		}
	}
	return unused
}

func codeSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

func mapped(known map[string]bool, code string) string {
	if known[code] {
		return "yes"
	}
	return "no"
}

func displayCode(code string) string {
	if code == "" {
		return "(none)"
	}
	return code
}
