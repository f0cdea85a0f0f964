package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/flashdeck/pkg/models"
)

func newSetsCmd(app *App) *cobra.Command {
	sets := &cobra.Command{
		Use:   "sets",
		Short: "Manage card sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.printSets(cmd)
		},
	}

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new card set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := app.sets.Exists(args[0])
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("set %q already exists", args[0])
			}
			if err := app.sets.Create(args[0], description); err != nil {
				return err
			}
			cmd.Printf("Created set %q\n", args[0])
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "set description")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a card set and all of its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := app.sets.Exists(args[0])
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("set %q does not exist", args[0])
			}
			if err := app.sets.Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted set %q\n", args[0])
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <set> <word> <answer>",
		Short: "Add or replace a card in a set",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := app.sets.Exists(args[0])
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("set %q does not exist", args[0])
			}
			card := &models.Card{SetName: args[0], Word: args[1], Answer: args[2]}
			if err := app.cards.Upsert(card); err != nil {
				return err
			}
			cmd.Printf("Added %q to %q\n", args[1], args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <set> <word>",
		Short: "Remove a card from a set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.cards.Get(args[0], args[1]); err != nil {
				return fmt.Errorf("card %q not found in set %q", args[1], args[0])
			}
			if err := app.cards.Delete(args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("Removed %q from %q\n", args[1], args[0])
			return nil
		},
	}

	sets.AddCommand(create, del, add, remove)
	return sets
}

func (a *App) printSets(cmd *cobra.Command) error {
	all, err := a.sets.GetAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		cmd.Println(mutedStyle.Render("No card sets yet. Create one with 'flashdeck sets create <name>'."))
		return nil
	}

	cmd.Println(headerStyle.Render("Card sets"))
	for _, set := range all {
		line := fmt.Sprintf("  %-20s %3d cards", set.Name, set.CardCount)
		if set.Description != "" {
			line += "  " + mutedStyle.Render(set.Description)
		}
		cmd.Println(line)
	}
	return nil
}
