package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "suggest <story-id>",
		Short: "Show AI-suggested next actions for a story",
		Args:  cobra.ExactArgs(1),
		Run:   runSuggest,
	}

	RootCmd.AddCommand(cmd)
}

func runSuggest(cmd *cobra.Command, args []string) {
	svc, _, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}

	suggestions, err := svc.GetSuggestions(cmd.Context(), args[0])
	if err != nil {
		exitErr("fetch suggestions", err)
	}

	if formatFlag == "json" {
		printJSON(suggestions)
		return
	}

	if len(suggestions) == 0 {
		fmt.Println("No suggestions right now.")
		return
	}
	for i, suggestion := range suggestions {
		fmt.Printf("%d. %s\n", i+1, suggestion)
	}
}
