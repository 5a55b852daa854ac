package command

import (
	"github.com/spf13/cobra"
)

// NewSubcommandGroup returns a bare cobra command grouping the given
// subcommands; invoking the group itself prints usage.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	group := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	group.AddCommand(subcommands...)

	return group
}
