package main

import (
	"github.com/joshuapare/memkit/internal/sysalloc"
	"github.com/joshuapare/memkit/mem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report platform allocation parameters and common layouts",
		Long: `The info command prints the platform page size and the computed
layouts for common value shapes.

Example:
  memctl info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

func runInfo() error {
	printInfo("Platform:\n")
	printInfo("  Page size: %d bytes\n", sysalloc.PageSize())

	printInfo("\nLayouts:\n")
	printLayout("byte", mem.LayoutOf[byte]())
	printLayout("uint32", mem.LayoutOf[uint32]())
	printLayout("uint64", mem.LayoutOf[uint64]())
	printLayout("complex128", mem.LayoutOf[complex128]())
	printLayout("struct{}", mem.LayoutOf[struct{}]())
	printLayout("[4096]byte", mem.LayoutOf[[4096]byte]())

	return nil
}

func printLayout(name string, l mem.Layout) {
	printInfo("  %-12s size=%-6d align=%-4d padded=%d\n", name, l.Size, l.Align, l.PaddedSize())
}
