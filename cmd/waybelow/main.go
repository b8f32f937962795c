// Command waybelow is a small demo CLI wiring type inference and proof
// search over a handful of embedded example programs (spec §8 scenarios
// S1-S3). There is no surface parser in scope, so every example is built
// directly through the ast package rather than read from a file.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "waybelow",
	Short:        "waybelow ⊑\n a Horn-clause proof engine with Hindley-Milner style predicate typing",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(typecheckCmd, proveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func exampleNames() []string {
	names := make([]string, 0, len(examples()))
	for name := range examples() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupExample(name string) (example, error) {
	e, ok := examples()[name]
	if !ok {
		return example{}, fmt.Errorf("no such example %q, want one of %v", name, exampleNames())
	}
	return e, nil
}
