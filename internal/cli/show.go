package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <story-id>",
		Short: "Show a story with its sections",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	svc, _, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}

	st, err := svc.GetStory(cmd.Context(), args[0])
	if err != nil {
		exitErr("fetch story", err)
	}

	if formatFlag == "json" {
		printJSON(st)
		return
	}

	fmt.Printf("%s (%s)\n", st.Theme, st.Genre)
	if st.Setting != "" {
		fmt.Printf("Setting: %s\n", st.Setting)
	}
	for _, section := range st.Sections {
		fmt.Printf("\n%s\n", section.Text)
	}
}
