package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "characters <story-id>",
		Short: "Show the characters of a story",
		Args:  cobra.ExactArgs(1),
		Run:   runCharacters,
	}

	RootCmd.AddCommand(cmd)
}

func runCharacters(cmd *cobra.Command, args []string) {
	svc, _, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}

	characters, err := svc.GetCharacters(cmd.Context(), args[0])
	if err != nil {
		exitErr("fetch characters", err)
	}

	if formatFlag == "json" {
		printJSON(characters)
		return
	}

	if len(characters) == 0 {
		fmt.Println("No characters yet.")
		return
	}
	for _, ch := range characters {
		fmt.Printf("%s (importance %.1f)\n  %s\n", ch.Name, ch.Importance, ch.Description)
	}
}
