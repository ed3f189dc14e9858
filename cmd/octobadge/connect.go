package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/octobadge/internal/achievement"
	"github.com/Veraticus/octobadge/internal/cli"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/spf13/cobra"
)

func connectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect <login>",
		Short: "Evaluate a GitHub user's badges",
		Long: `Fetch a GitHub user's public profile, repository stars and merged pull
requests, then report which badges they own and their progress toward
each tier.

Badges that cannot be measured from public data can be marked as owned
with --own; measured tiers always reflect the fetched metrics.`,
		Example: `  octobadge connect octocat
  octobadge connect octocat --own public-sponsor --own quickdraw`,
		Args: cobra.ExactArgs(1),
		RunE: runConnect,
	}

	cmd.Flags().StringSlice("own", nil, "badge IDs to mark as owned")
	cmd.Flags().Bool("json", false, "output JSON")

	return cmd
}

func runConnect(cmd *cobra.Command, args []string) error {
	owned, _ := cmd.Flags().GetStringSlice("own")
	asJSON, _ := cmd.Flags().GetBool("json")
	login := strings.TrimSpace(args[0])

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(settings)
	if err != nil {
		return err
	}
	collector, err := newCollector(settings)
	if err != nil {
		return err
	}

	s := session.New(cat, newEngine(), collector)
	for _, id := range owned {
		if _, ok := cat.Lookup(id); !ok {
			return fmt.Errorf("unknown badge %q", id)
		}
	}

	err = cli.WithSpinner(cmd.ErrOrStderr(), "Collecting "+login, func() error {
		return s.Connect(cmd.Context(), login)
	})
	if err != nil {
		return err
	}

	// Evaluation overwrites flags on tiered badges, so manual flags go last.
	for _, id := range owned {
		if err := markOwned(s, id); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, newConnectReport(s))
	}
	printConnectReport(out, s)
	return nil
}

// markOwned sets the manual ownership flag of id without flipping a badge
// that is already owned.
func markOwned(s *session.Session, id string) error {
	b, ok := s.Badge(id)
	if !ok {
		return fmt.Errorf("unknown badge %q", id)
	}
	if b.Owned {
		return nil
	}
	_, err := s.Toggle(id)
	return err
}

type tierReport struct {
	Name      string `json:"name"`
	Progress  int    `json:"progress"`
	Threshold int    `json:"threshold"`
	Unlocked  bool   `json:"unlocked"`
}

type badgeReport struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Rarity model.Rarity `json:"rarity"`
	Tiers  []tierReport `json:"tiers,omitempty"`
	Owned  bool         `json:"owned"`
}

type connectReport struct {
	Profile           model.UserProfile `json:"profile"`
	NextGoal          string            `json:"next_goal,omitempty"`
	Badges            []badgeReport     `json:"badges"`
	Stats             model.UserStats   `json:"stats"`
	Owned             int               `json:"owned"`
	Total             int               `json:"total"`
	AchievementsOwned int               `json:"achievements_owned"`
	AchievementsTotal int               `json:"achievements_total"`
}

func newConnectReport(s *session.Session) connectReport {
	profile, _ := s.Profile()
	summary := s.Summary()

	report := connectReport{
		Profile:           profile,
		Stats:             s.Stats(),
		Owned:             summary.Owned,
		Total:             summary.Total,
		AchievementsOwned: summary.AchievementsOwned,
		AchievementsTotal: summary.AchievementsTotal,
	}
	if summary.NextGoal != nil {
		report.NextGoal = summary.NextGoal.ID
	}

	for _, b := range s.Badges() {
		br := badgeReport{ID: b.ID, Name: b.Name, Rarity: b.Rarity, Owned: b.Owned}
		for _, t := range b.Tiers {
			br.Tiers = append(br.Tiers, tierReport{
				Name:      t.Name,
				Progress:  t.Progress,
				Threshold: t.Threshold,
				Unlocked:  t.Unlocked,
			})
		}
		report.Badges = append(report.Badges, br)
	}
	return report
}

func printConnectReport(w io.Writer, s *session.Session) {
	profile, _ := s.Profile()
	stats := s.Stats()
	summary := s.Summary()

	title := "@" + profile.Login
	if profile.Name != "" {
		title += " (" + profile.Name + ")"
	}
	details := fmt.Sprintf("%s %d stars · %d merged PRs · %d public repos · %d followers\nJoined %s",
		cli.StarIcon, stats.TotalStars, stats.MergedPRs, profile.PublicRepos, profile.Followers,
		profile.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintln(w, cli.RenderBox(title, details))
	fmt.Fprintln(w)

	for _, b := range s.Badges() {
		printEvaluatedBadge(w, b)
	}

	fmt.Fprintln(w)
	printSummary(w, summary)
}

func printEvaluatedBadge(w io.Writer, b model.EvaluatedBadge) {
	mark := cli.SubtleStyle.Render(cli.ErrorIcon)
	if b.Owned {
		mark = cli.SuccessStyle.Render(cli.SuccessIcon)
	}
	fmt.Fprintf(w, "%s %s %s  %s\n", mark, b.Icon, b.Name, cli.FormatRarity(b.Rarity))
	for _, t := range b.Tiers {
		status := cli.SubtleStyle.Render(fmt.Sprintf("%d/%d", t.Progress, t.Threshold))
		if t.Unlocked {
			status = cli.SuccessStyle.Render(fmt.Sprintf("%d/%d %s", t.Progress, t.Threshold, cli.SuccessIcon))
		}
		fmt.Fprintf(w, "     %-9s %s\n", t.Name, status)
	}
}

func printSummary(w io.Writer, summary achievement.Summary) {
	fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Collection: %d/%d owned, achievements %d/%d",
		summary.Owned, summary.Total, summary.AchievementsOwned, summary.AchievementsTotal)))
	if summary.NextGoal != nil {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Next goal: %s %s (%s)",
			summary.NextGoal.Icon, summary.NextGoal.Name, summary.NextGoal.HowToEarn)))
	}
}
