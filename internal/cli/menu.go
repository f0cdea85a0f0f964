package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/flashdeck/internal/reminder"
)

// terminalNotifier prints due-card reminders into the interactive session.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) NotifyDue(count int) error {
	_, err := fmt.Fprintln(n.out, dueStyle.Render(fmt.Sprintf("Reminder: %d cards are due for review.", count)))
	return err
}

// runMenu is the interactive shell: pick a set, play it, repeat. A reminder
// job runs in the background for the duration of the session.
func (a *App) runMenu(cmd *cobra.Command) error {
	rem := reminder.New(
		a.cards,
		terminalNotifier{out: cmd.OutOrStdout()},
		time.Duration(a.cfg.ReminderIntervalMinutes)*time.Minute,
		a.cfg.QuietHoursStart,
		a.cfg.QuietHoursEnd,
	)
	rem.Start()
	defer rem.Stop()

	reader := bufio.NewReader(os.Stdin)

	for {
		cmd.Println()
		if err := a.printDue(cmd); err != nil {
			return err
		}

		cmd.Print("\nSet to review (or 'q' to quit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		name := strings.TrimSpace(line)

		if name == "" {
			continue
		}
		if strings.EqualFold(name, "q") {
			return nil
		}

		exists, err := a.sets.Exists(name)
		if err != nil {
			return err
		}
		if !exists {
			cmd.Println(mutedStyle.Render(fmt.Sprintf("No set named %q.", name)))
			continue
		}

		if _, err := a.game().Play(name); err != nil {
			return err
		}
	}
}
