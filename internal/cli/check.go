package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Ade-Adebayo/package-health-agent/internal/config"
	"github.com/Ade-Adebayo/package-health-agent/internal/depparse"
	"github.com/Ade-Adebayo/package-health-agent/internal/health"
	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

var (
	checkPath   string
	checkFormat string // output format: text or json
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "One-shot dependency health check of a local project",
	Long:  "Reads package.json or requirements.txt from the project directory, analyzes every declared dependency and prints the report.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkPath, "path", "p", ".", "Path to project directory to analyze")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format: text or json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Keep stdout clean for the report; only lookup warnings go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	eco, deps, err := loadProject(checkPath)
	if err != nil {
		return err
	}
	if len(deps) == 0 {
		return fmt.Errorf("no analyzable dependencies found in %s", checkPath)
	}

	analyzer := health.NewAnalyzer(config.Default())
	report := analyzer.Analyze(cmd.Context(), eco, deps)

	if checkFormat == "json" {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for _, p := range report.Packages {
		fmt.Printf("%-30s current: %-12s latest: %-12s score: %3d  %s\n",
			p.Name, orDash(p.CurrentVersion), orDash(p.LatestVersion), p.HealthScore, p.Recommendation)
	}
	fmt.Printf("\n%d packages — %d outdated, %d vulnerable, %d deprecated — overall score %d/100\n",
		report.TotalPackages, report.OutdatedCount, report.VulnerableCount,
		report.DeprecatedCount, report.OverallHealthScore)
	return nil
}

// loadProject detects the project type by manifest presence and parses the
// declared dependencies. package.json wins when both manifests exist.
func loadProject(dir string) (types.Ecosystem, []types.Dependency, error) {
	pkgFile := filepath.Join(dir, "package.json")
	if data, err := os.ReadFile(pkgFile); err == nil {
		fmt.Fprintf(os.Stderr, "Detected npm project at %s\n", dir)
		return types.EcosystemNPM, depparse.PackageJSON(data), nil
	}

	reqFile := filepath.Join(dir, "requirements.txt")
	if data, err := os.ReadFile(reqFile); err == nil {
		fmt.Fprintf(os.Stderr, "Detected Python project at %s\n", dir)
		return types.EcosystemPython, depparse.RequirementsText(string(data)), nil
	}

	return "", nil, fmt.Errorf("no supported manifest found in %s (checked for package.json and requirements.txt)", dir)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
