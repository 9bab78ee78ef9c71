package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/viewdb"
)

// MutateResult is the outcome of the mutate command.
type MutateResult struct {
	Before  []int    `yaml:"before"`
	Where   []string `yaml:"where,omitempty"`
	Add     int      `yaml:"add"`
	Changed int      `yaml:"changed"`
	After   []int    `yaml:"after"`
}

// Text implements Texter.
func (r MutateResult) Text() string {
	return fmt.Sprintf("changed %d of %d\nbefore: %v\nafter:  %v", r.Changed, len(r.Before), r.Before, r.After)
}

type mutateOptions struct {
	data  []int
	where []string
	add   int
}

// NewMutateCommand creates the mutate command.
func NewMutateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &mutateOptions{}

	cmd := &cobra.Command{
		Use:   "mutate",
		Short: "Modify elements of a store through a mutable view",
		Long: `Mutate takes a mutable view over the whole store, narrows it once per
--where predicate and adds --add to every element that is left. Each
narrowing consumes the previous view.`,
		Example:       "  viewdb mutate --data=1,2,3,4,5,6 --where even --add 10",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().IntSliceVar(&opts.data, "data", []int{}, "store contents")
	cmd.Flags().StringArrayVar(&opts.where, "where", nil, "predicate name, repeatable ("+strings.Join(PredicateNames(), "|")+")")
	cmd.Flags().IntVar(&opts.add, "add", 1, "value added to every selected element")

	return cmd
}

func runMutate(rootOpts *RootOptions, opts *mutateOptions, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)

	preds, err := parsePredicates(opts.where)
	if err != nil {
		return fail(f, ErrCodePredicate, err)
	}

	s := viewdb.New(append([]int{}, opts.data...), rootOpts.storeOptions(cmd.ErrOrStderr())...)
	defer s.Close()

	m, err := s.ViewMut()
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}
	for i, p := range preds {
		before := m.Len()
		m, err = m.Select(p)
		if err != nil {
			return fail(f, ErrCodeAccess, err)
		}
		f.VerboseLog("step %d (%s): %d -> %d", i+1, opts.where[i], before, m.Len())
	}

	changed := 0
	for ptr, err := range m.All() {
		if err != nil {
			return fail(f, ErrCodeAccess, err)
		}
		*ptr += opts.add
		changed++
	}
	m.Release()

	after := make([]int, 0, s.Len())
	for x, err := range s.All() {
		if err != nil {
			return fail(f, ErrCodeAccess, err)
		}
		after = append(after, x)
	}

	return f.Success(MutateResult{
		Before:  opts.data,
		Where:   opts.where,
		Add:     opts.add,
		Changed: changed,
		After:   after,
	})
}
