package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/waybelow-lang/waybelow"
	"github.com/waybelow-lang/waybelow/builtin"
	"github.com/waybelow-lang/waybelow/internal/log"
)

var typecheckCmd = &cobra.Command{
	Use:   "typecheck [example]",
	Short: "infer and print the predicate type of one embedded example",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypecheck,
}

func runTypecheck(cmd *cobra.Command, args []string) error {
	e, err := lookupExample(args[0])
	if err != nil {
		return err
	}

	sess := waybelow.NewSession()
	_, env, err := waybelow.Typecheck(sess, e.program, builtin.TypeEnv(sess.Src))
	if err != nil {
		log.With("infer").Error("typecheck failed", "example", e.name, "error", err)
		return err
	}

	scheme, ok := env.SchemeOf(e.pred.name, e.pred.arity)
	if !ok {
		return fmt.Errorf("typecheck succeeded but %s/%d was never defined", e.pred.name, e.pred.arity)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s/%d : %s\n", e.pred.name, e.pred.arity, scheme.String())
	return nil
}
