package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sanggab/PagenationCalendar/internal/paging"
)

var (
	pageCount  int
	pageCycles int
	pageEdge   int
)

var pageCmd = &cobra.Command{
	Use:   "page <index>",
	Short: "Map a dashboard scroll index to its logical page",
	Long: "Show which logical page a scroll index lands on and where the looping pager " +
		"settles it. Pager size defaults to the goals file's dashboard section.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q (expected an integer)", args[0])
		}

		cfg := goalFile.Dashboard
		if pageCount != 0 {
			cfg.Pages = pageCount
		}
		if pageCycles != 0 {
			cfg.Cycles = pageCycles
		}
		if pageEdge != 0 {
			cfg.EdgeCycles = pageEdge
		}
		pager, err := paging.NewPager(cfg.Pages, cfg.Cycles, cfg.EdgeCycles)
		if err != nil {
			return err
		}

		page, position := pager.Settle(index)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "items %d, center %d\n", pager.ItemCount(), pager.Center())
		fmt.Fprintf(out, "index %d -> page %d of %d\n", index, page, pager.TotalPages)
		if position != index {
			fmt.Fprintf(out, "recentered to %d\n", position)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pageCmd)
	pageCmd.Flags().IntVar(&pageCount, "pages", 0, "Logical pages (default from the goals file, 3)")
	pageCmd.Flags().IntVar(&pageCycles, "cycles", 0, "Times the pages repeat (default from the goals file, 120)")
	pageCmd.Flags().IntVar(&pageEdge, "edge", 0, "Cycles from either end that trigger re-centring (default 1)")
}
