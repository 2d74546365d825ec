package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-symfony/app"
)

// console debug:container
var debugContainerCmd = &cobra.Command{
	Use:   "debug:container",
	Short: "List the services registered in the container builder",
	RunE: func(cmd *cobra.Command, args []string) error {
		builder := app.New().Builder

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SERVICE\tCLASS\tSHARED\tPUBLIC\tTAGS")
		for _, id := range builder.ServiceIDs() {
			def, err := builder.GetDefinition(id)
			if err != nil {
				return err
			}
			tags := make([]string, 0, len(def.Tags()))
			for name := range def.Tags() {
				tags = append(tags, name)
			}
			sort.Strings(tags)
			fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%s\n",
				id, def.Class(), def.IsShared(), def.IsPublic(), strings.Join(tags, ", "))
		}

		aliases := builder.Aliases()
		if len(aliases) > 0 {
			names := make([]string, 0, len(aliases))
			for alias := range aliases {
				names = append(names, alias)
			}
			sort.Strings(names)
			fmt.Fprintln(w, "\nALIAS\tTARGET")
			for _, alias := range names {
				fmt.Fprintf(w, "%s\t%s\n", alias, aliases[alias])
			}
		}
		return w.Flush()
	},
}

// console debug:parameters
var debugParametersCmd = &cobra.Command{
	Use:   "debug:parameters",
	Short: "List the container parameters and their values",
	RunE: func(cmd *cobra.Command, args []string) error {
		builder := app.New().Builder

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PARAMETER\tVALUE")
		for _, name := range builder.ParameterNames() {
			value, err := builder.GetParameter(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%v\n", name, value)
		}
		return w.Flush()
	},
}
