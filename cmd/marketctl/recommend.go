package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"campus_market/internal/domain"
	"campus_market/internal/shared"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank accommodations or food providers for a preference vector",
	Long: `Recommend loads a preference vector from a YAML file and/or --set
answers, fetches the catalog (live or synthesized) and prints the ranked
matches with their scores and reasons.

Example prefs.yaml:

  city: Lagos
  accommodationType: studio
  priceRange: moderate
  amenities: [WiFi, Security]`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("prefs", "", "YAML file holding the preference vector")
	recommendCmd.Flags().String("kind", string(domain.KindAccommodation), "accommodation|food")
	recommendCmd.Flags().StringArray("set", nil, "questionnaire answer dimension=value (repeatable)")

	rootCmd.AddCommand(recommendCmd)
}

func loadPrefs(path string, answers []string) (domain.PreferenceVector, error) {
	var p domain.PreferenceVector
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("read prefs: %w", err)
		}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return p, fmt.Errorf("parse prefs %s: %w", path, err)
		}
	}
	for _, a := range answers {
		dim, val, ok := strings.Cut(a, "=")
		if !ok || !p.Set(strings.TrimSpace(dim), val) {
			return p, fmt.Errorf("bad --set %q: want dimension=value", a)
		}
	}
	return p, nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, ok := domain.ParseKind(kindFlag)
	if !ok {
		return fmt.Errorf("unknown kind %q", kindFlag)
	}
	path, _ := cmd.Flags().GetString("prefs")
	answers, _ := cmd.Flags().GetStringArray("set")
	prefs, err := loadPrefs(path, answers)
	if err != nil {
		return err
	}

	svc, cleanup, err := shared.NewService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if kind == domain.KindFood {
		out, err := svc.RecommendFoodProviders(cmd.Context(), prefs)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
	out, err := svc.RecommendAccommodations(cmd.Context(), prefs)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}
