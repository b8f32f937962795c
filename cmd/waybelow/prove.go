package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/waybelow-lang/waybelow"
	"github.com/waybelow-lang/waybelow/builtin"
	"github.com/waybelow-lang/waybelow/internal/log"
	"github.com/waybelow-lang/waybelow/proof"
)

var maxAnswers int

var proveCmd = &cobra.Command{
	Use:   "prove [example]",
	Short: "typecheck, compile and prove the embedded goal for one example",
	Args:  cobra.ExactArgs(1),
	RunE:  runProve,
}

func init() {
	proveCmd.Flags().IntVar(&maxAnswers, "max-answers", 10, "stop after this many answers")
}

func runProve(cmd *cobra.Command, args []string) error {
	e, err := lookupExample(args[0])
	if err != nil {
		return err
	}

	sess := waybelow.NewSession()
	typed, _, err := waybelow.Typecheck(sess, e.program, builtin.TypeEnv(sess.Src))
	if err != nil {
		log.With("infer").Error("typecheck failed", "example", e.name, "error", err)
		return err
	}

	db, err := waybelow.Compile(typed)
	if err != nil {
		return err
	}
	db.Merge(builtin.Database())

	eng := waybelow.NewEngine(sess, db, proof.Limits{MaxAnswers: maxAnswers})
	answers, err := eng.Take(e.goal(), maxAnswers)
	if err != nil {
		log.With("proof").Error("proof search failed", "example", e.name, "error", err)
		return err
	}

	out := cmd.OutOrStdout()
	if len(answers) == 0 {
		fmt.Fprintln(out, "no.")
		return nil
	}
	for i, ans := range answers {
		fmt.Fprintf(out, "answer %d:", i+1)
		if ans.Size() == 0 {
			fmt.Fprint(out, " yes")
		}
		for v, t := range ans.Iter() {
			fmt.Fprintf(out, " %s = %s", v.String(), t.String())
		}
		fmt.Fprintln(out)
	}
	return nil
}
