package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akil18/cop-shop-server-side/pkg/app"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// copshop routes: print all registered routes.
var routesCmd = &cobra.Command{
	Use:     "routes",
	Aliases: []string{"route:list"},
	Short:   "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The table only needs the route definitions, not live backends.
		infos := app.New(store.NewMemory(), nil, nil, nil).Router().Routes()
		if len(infos) == 0 {
			fmt.Println("No routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
