package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/example/flashdeck/internal/predictor"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "flashdeck",
		Short:         "Adaptive spaced-repetition flashcards",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runMenu(cmd)
		},
	}

	root.AddCommand(newPlayCmd(app))
	root.AddCommand(newDueCmd(app))
	root.AddCommand(newTrainCmd(app))
	root.AddCommand(newImportCmd(app))
	root.AddCommand(newSetsCmd(app))
	return root
}

func newPlayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play <set>",
		Short: "Review the due cards of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			exists, err := app.sets.Exists(args[0])
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("set %q does not exist", args[0])
			}

			_, err = app.game().Play(args[0])
			return err
		},
	}
}

func newDueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "Show how many cards are due per set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.printDue(cmd)
		},
	}
}

func (a *App) printDue(cmd *cobra.Command) error {
	sets, err := a.sets.GetAll()
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		cmd.Println(mutedStyle.Render("No card sets yet."))
		return nil
	}

	now := time.Now()
	cmd.Println(headerStyle.Render("Due cards"))
	for _, set := range sets {
		due, err := a.cards.Due(set.Name, now)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("  %-20s %d/%d due", set.Name, len(due), set.CardCount)
		if len(due) > 0 {
			cmd.Println(dueStyle.Render(line))
		} else {
			cmd.Println(mutedStyle.Render(line))
		}
	}
	return nil
}

func newTrainCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train the review-interval model from history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hist, err := app.log.Load()
			if err != nil {
				return err
			}

			if !app.pred.Train(hist) {
				cmd.Println(mutedStyle.Render(fmt.Sprintf(
					"Not enough history to train (need %d samples). The Leitner ladder stays in charge.",
					predictor.MinTrainingSamples)))
				return nil
			}

			meta := app.pred.Meta()
			cmd.Println(headerStyle.Render(fmt.Sprintf("Trained model v%d on %d sessions", meta.Version, meta.LastTrainingSize)))

			type pair struct {
				name  string
				value float64
			}
			pairs := make([]pair, 0, len(meta.Importances))
			for name, value := range meta.Importances {
				pairs = append(pairs, pair{name, value})
			}
			sort.Slice(pairs, func(i, j int) bool { return pairs[i].value > pairs[j].value })
			for _, p := range pairs {
				cmd.Printf("  %-22s %.3f\n", p.name, p.value)
			}
			return nil
		},
	}
}
