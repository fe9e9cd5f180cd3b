package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "append <story-id> <text...>",
		Short: "Append a continuation to a story",
		Args:  cobra.MinimumNArgs(2),
		Run:   runAppend,
	}

	RootCmd.AddCommand(cmd)
}

func runAppend(cmd *cobra.Command, args []string) {
	id := args[0]
	text := strings.Join(args[1:], " ")

	svc, _, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}

	section, err := svc.AddSection(cmd.Context(), id, text)
	if err != nil {
		exitErr("add section", err)
	}

	if formatFlag == "json" {
		printJSON(section)
		return
	}

	fmt.Printf("Added section %s (order %d)\n\n%s\n", section.ID, section.Order, section.Text)
}
