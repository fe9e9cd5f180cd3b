package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyweave/storyweave/internal/story"
)

func init() {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new story",
		Run:   runCreate,
	}

	cmd.Flags().StringP("genre", "g", "scifi", "Genre: scifi, cyberpunk, space_opera, or dystopian")
	cmd.Flags().StringP("theme", "t", "", "Story theme")
	cmd.Flags().StringP("setting", "s", "", "Story setting")

	RootCmd.AddCommand(cmd)
}

func runCreate(cmd *cobra.Command, args []string) {
	genre, _ := cmd.Flags().GetString("genre")
	theme, _ := cmd.Flags().GetString("theme")
	setting, _ := cmd.Flags().GetString("setting")

	svc, _, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}

	created, err := svc.CreateStory(cmd.Context(), story.Settings{
		Genre:   story.Genre(genre),
		Theme:   theme,
		Setting: setting,
	})
	if err != nil {
		exitErr("create story", err)
	}

	if formatFlag == "json" {
		printJSON(created)
		return
	}

	fmt.Printf("Created story %s (%s)\n", created.ID, created.Genre)
	for _, section := range created.Sections {
		fmt.Printf("\n%s\n", section.Text)
	}
}
