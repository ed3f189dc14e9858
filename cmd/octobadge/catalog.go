package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/octobadge/internal/cli"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the badge catalog",
		Long: `List every known GitHub badge with its rarity, tiers and how to earn it.

Filter by category (Achievement, Highlight, Special) or rarity
(common, rare, epic, legendary).`,
		Args: cobra.NoArgs,
		RunE: runCatalog,
	}

	cmd.Flags().String("category", "", "only show badges in this category")
	cmd.Flags().String("rarity", "", "only show badges of this rarity")
	cmd.Flags().Bool("json", false, "output JSON")

	return cmd
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	categoryFlag, _ := cmd.Flags().GetString("category")
	rarityFlag, _ := cmd.Flags().GetString("rarity")
	asJSON, _ := cmd.Flags().GetBool("json")

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(settings)
	if err != nil {
		return err
	}

	badges := cat.All()
	if categoryFlag != "" {
		category, parseErr := model.ParseCategory(categoryFlag)
		if parseErr != nil {
			return parseErr
		}
		badges = filterBadges(badges, func(b model.BadgeDefinition) bool { return b.Category == category })
	}
	if rarityFlag != "" {
		rarity, parseErr := model.ParseRarity(rarityFlag)
		if parseErr != nil {
			return parseErr
		}
		badges = filterBadges(badges, func(b model.BadgeDefinition) bool { return b.Rarity == rarity })
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, badges)
	}

	if len(badges) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No badges match."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Badges (%d)", len(badges))))
	for _, b := range badges {
		printBadgeDefinition(out, b)
	}
	return nil
}

func filterBadges(badges []model.BadgeDefinition, keep func(model.BadgeDefinition) bool) []model.BadgeDefinition {
	out := make([]model.BadgeDefinition, 0, len(badges))
	for _, b := range badges {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func printBadgeDefinition(w io.Writer, b model.BadgeDefinition) {
	header := fmt.Sprintf("%s %s  %s · %s", b.Icon, cli.BoldStyle.Render(b.Name), b.Category, cli.FormatRarity(b.Rarity))
	if b.Rarity >= model.RarityEpic {
		header += " " + cli.StarIcon
	}
	if b.Retired {
		header += " " + cli.SubtleStyle.Render("(retired)")
	}
	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "   %s\n", b.Description)
	fmt.Fprintf(w, "   %s\n", cli.SubtleStyle.Render("How to earn: "+b.HowToEarn))
	if b.HasTiers() {
		tiers := make([]string, 0, len(b.Tiers))
		for _, t := range b.Tiers {
			tiers = append(tiers, fmt.Sprintf("%s (%s)", t.Name, t.Requirement))
		}
		fmt.Fprintf(w, "   Tiers: %s\n", strings.Join(tiers, ", "))
	}
	fmt.Fprintln(w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the catalog rarity distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(settings)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Rarity distribution"))

			maxCount := 0
			dist := cat.RarityDistribution()
			for _, rc := range dist {
				maxCount = max(maxCount, rc.Count)
			}
			for _, rc := range dist {
				bar := ""
				if maxCount > 0 {
					bar = strings.Repeat("█", rc.Count*20/maxCount)
				}
				pad := strings.Repeat(" ", max(0, 10-len(rc.Rarity.String())))
				fmt.Fprintf(out, "%s%s %s %d\n", cli.FormatRarity(rc.Rarity), pad, bar, rc.Count)
			}

			featured := cat.Featured()
			fmt.Fprintf(out, "\n%s Featured (Epic and Legendary): %d of %d badges\n", cli.ChartIcon, len(featured), cat.Len())
			return nil
		},
	}
}
