package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/config"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/report"
)

// generatorName identifies this tool in exported reports.
const generatorName = "herdcarbon"

// NewCalculateCmd creates the calculate command, which evaluates a farm and
// renders the full report.
func NewCalculateCmd() *cobra.Command {
	var (
		output    string
		precision int
		farmName  string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate emissions, economics and financing for a farm",
		Long: `Evaluates the farm parameters and renders a full report: per-cow emissions,
sequestration, herd performance, efficiency scores, the gap to the theoretical
minimum, the reduction pathway, green financing and loan risk.`,
		Example: `  # Text report for the default farm
  herdcarbon calculate

  # JSON export for a farm file
  herdcarbon calculate --params farm.json --output json

  # HTML report with a farm name
  herdcarbon calculate --params farm.yaml --output html --farm-name "Home Farm"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalculate(cmd, output, precision, farmName)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"output format: "+strings.Join(report.Formats(), ", ")+" (default from config)")
	cmd.Flags().IntVar(&precision, "precision", -1, "decimal places (default from config)")
	cmd.Flags().StringVar(&farmName, "farm-name", "", "farm name shown in the report")

	return cmd
}

func runCalculate(cmd *cobra.Command, output string, precision int, farmName string) error {
	if output == "" {
		output = config.GetDefaultOutputFormat()
	}
	if precision < 0 {
		precision = config.GetOutputPrecision()
	}

	params, err := loadParameters(cmd, farm.DefaultParameters())
	if err != nil {
		return err
	}

	res, err := evaluate(cmd, newCalculator(nil), params)
	if err != nil {
		return err
	}

	exp := report.Build(res, report.Meta{
		FarmName:  farmName,
		Generator: generatorName,
		Version:   cmd.Root().Version,
	}, time.Now())

	return report.Render(cmd.OutOrStdout(), output, exp, report.RenderOptions{
		Precision: precision,
		Styled:    styledOutput(cmd),
	})
}
