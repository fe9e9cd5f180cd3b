package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyweave/storyweave/internal/story"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stories",
		Run:   runList,
	}

	cmd.Flags().String("filter", "", `Filter expression over genre, theme, setting, sections (e.g. 'genre == "scifi"')`)

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	filterSrc, _ := cmd.Flags().GetString("filter")

	var filter *story.Filter
	if filterSrc != "" {
		var err error
		filter, err = story.CompileFilter(filterSrc)
		if err != nil {
			exitErr("filter", err)
		}
	}

	svc, _, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}

	stories, err := svc.GetAllStories(cmd.Context())
	if err != nil {
		exitErr("list stories", err)
	}

	if filter != nil {
		stories, err = filter.Apply(stories)
		if err != nil {
			exitErr("filter", err)
		}
	}

	if formatFlag == "json" {
		printJSON(stories)
		return
	}

	if len(stories) == 0 {
		fmt.Println("No stories.")
		return
	}
	for _, item := range stories {
		fmt.Printf("%s  %-12s %s\n", item.ID, item.Genre, item.Theme)
	}
}
