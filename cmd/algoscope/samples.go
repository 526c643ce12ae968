// ABOUTME: The samples command: lists the built-in pseudocode catalog or prints one sample's code.
// ABOUTME: Printed code is pipeable straight back into analyze.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algoscope/algoscope/samples"
)

var samplesCmd = &cobra.Command{
	Use:   "samples [name]",
	Short: "List built-in sample algorithms, or print one by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 1 {
			s, ok := samples.Find(args[0])
			if !ok {
				return fmt.Errorf("unknown sample %q", args[0])
			}
			fmt.Println(s.Code)
			return nil
		}

		for _, s := range samples.Catalog() {
			fmt.Printf("%-18s %s\n", s.Name, s.Description)
		}
		return nil
	},
}
