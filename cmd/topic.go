package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/mycarbs/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the documentation" }
func (*topicCmd) Usage() string {
	return `mycarbs topic [-list] [<topic>... | *]

  Without topic, shows the overview of the documentation.
  "*" shows every topic, one after the other.
  -list prints the topic names only, one per line.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "Print the topic names")
}

// page returns the markdown of the requested topics.
func (c *topicCmd) page(topics []string) (string, error) {
	if c.list {
		names, err := docs.GetAllTopics()
		if err != nil {
			return "", err
		}
		return strings.Join(names, "\n") + "\n", nil
	}
	if len(topics) == 0 {
		return docs.Readme(), nil
	}
	return docs.GetTopics(topics...)
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	page, err := c.page(f.Args())
	if err != nil {
		return fail("reading the documentation", err)
	}
	if c.list {
		// plain names, for scripts and completion
		fmt.Print(page)
		return subcommands.ExitSuccess
	}
	printMarkdown(page)
	return subcommands.ExitSuccess
}
