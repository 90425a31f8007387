package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthdash/internal/services"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

const summaryRecentLimit = 5

func newSummaryCommand(options *rootOptions) *cobra.Command {
	var email string
	var language string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print today's wellbeing card for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(options)
			if err != nil {
				return err
			}
			defer rt.close()

			i18nManager, err := rt.i18nManager()
			if err != nil {
				return err
			}
			userID, userEmail, err := rt.findUser(services.NewAuthService(rt.repositories.Users), email)
			if err != nil {
				return err
			}

			messages := i18nManager.Messages(language)
			dashboard := services.NewDashboardService(rt.recordStore(), rt.config.Location)
			view, err := dashboard.Build(cmd.Context(), userID, time.Now(), services.DashboardOptions{
				Limit:  summaryRecentLimit,
				Labels: wellbeing.MapLabels(messages),
			})
			if err != nil {
				return fmt.Errorf("build summary for %s: %w", userEmail, err)
			}

			card := summaryCard{
				Email:    userEmail,
				Summary:  view.Summary,
				Recent:   view.Recent,
				Messages: messages,
				Location: rt.config.Location,
			}
			_, err = io.WriteString(options.stdout, card.Render(useColor(options.stdout)))
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&language, "lang", "", "label language (de or en)")
	return cmd
}

type summaryCard struct {
	Email    string
	Summary  wellbeing.Summary
	Recent   []wellbeing.Entry
	Messages map[string]string
	Location *time.Location
}

func (card summaryCard) Render(color bool) string {
	styles := newSummaryStyles(color, card.Summary.Band)

	lines := []string{
		styles.title.Render(card.text("summary.title")) + "  " + styles.muted.Render(card.Summary.Date+" · "+card.Email),
		"",
		fmt.Sprintf("%s: %s  %s  %s",
			card.text("summary.score"),
			styles.score.Render(formatSummaryScore(card.Summary.Display)),
			styles.muted.Render("("+card.text("score_day."+string(card.Summary.DisplayDay))+")"),
			styles.score.Render(card.text("band."+string(card.Summary.Band))),
		),
		card.text("direction." + string(card.Summary.Direction)),
		fmt.Sprintf("%s %d · %s %d · %s %d · %s %d",
			card.text("summary.meals"), card.Summary.Counts.Meals,
			card.text("summary.medications"), card.Summary.Counts.Medications,
			card.text("summary.symptoms"), card.Summary.Counts.Symptoms,
			card.text("summary.daily_entries"), card.Summary.Counts.DailyEntries,
		),
		"",
		styles.title.Render(card.text("summary.recent")),
	}

	if len(card.Recent) == 0 {
		lines = append(lines, styles.muted.Render(card.text("summary.empty")))
	}
	for _, entry := range card.Recent {
		line := entry.At.In(card.location()).Format("02.01. 15:04") + "  " + entry.Title
		if entry.Subtitle != "" {
			line += styles.muted.Render(" · " + entry.Subtitle)
		}
		lines = append(lines, line)
	}

	return styles.frame.Render(strings.Join(lines, "\n")) + "\n"
}

func (card summaryCard) text(key string) string {
	if value, ok := card.Messages[key]; ok && value != "" {
		return value
	}
	return key
}

func (card summaryCard) location() *time.Location {
	if card.Location == nil {
		return time.UTC
	}
	return card.Location
}

type summaryStyles struct {
	frame lipgloss.Style
	title lipgloss.Style
	score lipgloss.Style
	muted lipgloss.Style
}

func newSummaryStyles(color bool, band wellbeing.Band) summaryStyles {
	styles := summaryStyles{
		frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		title: lipgloss.NewStyle().Bold(true),
		score: lipgloss.NewStyle().Bold(true),
		muted: lipgloss.NewStyle(),
	}
	if !color {
		return styles
	}

	styles.frame = styles.frame.BorderForeground(lipgloss.Color("62"))
	styles.title = styles.title.Foreground(lipgloss.Color("39"))
	styles.muted = styles.muted.Foreground(lipgloss.Color("245"))
	switch band {
	case wellbeing.BandGood:
		styles.score = styles.score.Foreground(lipgloss.Color("42"))
	case wellbeing.BandModerate:
		styles.score = styles.score.Foreground(lipgloss.Color("214"))
	case wellbeing.BandPoor:
		styles.score = styles.score.Foreground(lipgloss.Color("196"))
	}
	return styles
}

func formatSummaryScore(score wellbeing.Score) string {
	if !score.Valid {
		return "-"
	}
	return strconv.FormatFloat(score.Rounded(1).Value, 'f', 1, 64)
}

// useColor reports whether output is an interactive terminal.
func useColor(output io.Writer) bool {
	file, ok := output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
