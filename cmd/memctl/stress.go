package main

import (
	"fmt"
	"time"

	"github.com/joshuapare/memkit/mem"
	"github.com/spf13/cobra"
)

var (
	stressSlots     int
	stressRounds    int
	stressZeroizing bool
)

func init() {
	rootCmd.AddCommand(newStressCmd())
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Exercise buffer grow/shrink cycles and report allocator stats",
		Long: `The stress command runs repeated grow/shrink cycles over a raw buffer,
verifying after every resize that the surviving prefix kept its contents,
and prints the backing allocator's call counts when done.

Example:
  memctl stress --slots 4096 --rounds 200
  memctl stress --zeroizing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	cmd.Flags().IntVar(&stressSlots, "slots", 1024, "Peak slot count per cycle")
	cmd.Flags().IntVar(&stressRounds, "rounds", 100, "Number of grow/shrink cycles")
	cmd.Flags().BoolVar(&stressZeroizing, "zeroizing", false, "Back the buffer with the zeroizing allocator")
	return cmd
}

func runStress() error {
	counting := &mem.CountingAllocator{}
	if stressZeroizing {
		counting.Backend = mem.ZeroAllocator{}
	}

	log.Debug("starting stress run",
		"slots", stressSlots, "rounds", stressRounds, "zeroizing", stressZeroizing)
	start := time.Now()

	buf, err := mem.TryWithCapacityIn[uint64](16, counting)
	if err != nil {
		return fmt.Errorf("initial allocation: %w", err)
	}
	defer buf.Free()

	written := 16
	fill(buf.Slice(), 0, written)

	for round := range stressRounds {
		if err := buf.TryResize(stressSlots); err != nil {
			return fmt.Errorf("round %d grow: %w", round, err)
		}
		if err := verify(buf.Slice(), written); err != nil {
			return fmt.Errorf("round %d after grow: %w", round, err)
		}
		fill(buf.Slice(), written, stressSlots)
		written = stressSlots

		if err := buf.TryResize(16); err != nil {
			return fmt.Errorf("round %d shrink: %w", round, err)
		}
		written = 16
		if err := verify(buf.Slice(), written); err != nil {
			return fmt.Errorf("round %d after shrink: %w", round, err)
		}
		log.Debug("cycle complete", "round", round)
	}

	stats := counting.Stats()
	printInfo("Stress complete in %s\n", time.Since(start).Round(time.Microsecond))
	printInfo("  Allocs:     %d\n", stats.Allocs)
	printInfo("  Reallocs:   %d\n", stats.Reallocs)
	printInfo("  Deallocs:   %d\n", stats.Deallocs)
	printInfo("  Live bytes: %d\n", stats.LiveBytes)
	return nil
}

// fill writes each slot's own index into slots [from, to).
func fill(s []uint64, from, to int) {
	for i := from; i < to; i++ {
		s[i] = uint64(i)
	}
}

// verify checks that the first n slots still hold their own index.
func verify(s []uint64, n int) error {
	for i := range n {
		if s[i] != uint64(i) {
			return fmt.Errorf("slot %d holds %d, want %d", i, s[i], i)
		}
	}
	return nil
}
