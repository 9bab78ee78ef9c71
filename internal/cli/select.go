package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/viewdb"
)

// SelectResult is the outcome of the select command.
type SelectResult struct {
	Data     []int    `yaml:"data"`
	Where    []string `yaml:"where,omitempty"`
	Selected []int    `yaml:"selected"`
}

// Text implements Texter.
func (r SelectResult) Text() string {
	where := ""
	if len(r.Where) > 0 {
		where = " where " + strings.Join(r.Where, " and ")
	}
	return fmt.Sprintf("selected %d of %d%s: %v", len(r.Selected), len(r.Data), where, r.Selected)
}

type selectOptions struct {
	data  []int
	where []string
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select elements of a store through a chain of read views",
		Long: `Select builds a store from --data and narrows a read view over it once
per --where predicate. Each step derives a new view from the previous one.`,
		Example:       "  viewdb select --data=-1,5,0 --where positive",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().IntSliceVar(&opts.data, "data", []int{}, "store contents")
	cmd.Flags().StringArrayVar(&opts.where, "where", nil, "predicate name, repeatable ("+strings.Join(PredicateNames(), "|")+")")

	return cmd
}

func runSelect(rootOpts *RootOptions, opts *selectOptions, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)

	preds, err := parsePredicates(opts.where)
	if err != nil {
		return fail(f, ErrCodePredicate, err)
	}

	data := append([]int{}, opts.data...)
	s := viewdb.New(data, rootOpts.storeOptions(cmd.ErrOrStderr())...)
	defer s.Close()

	v, err := s.View()
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}
	for i, p := range preds {
		next, err := v.Select(p)
		v.Release()
		if err != nil {
			return fail(f, ErrCodeAccess, err)
		}
		f.VerboseLog("step %d (%s): %d -> %d", i+1, opts.where[i], v.Len(), next.Len())
		v = next
	}
	defer v.Release()

	selected, err := v.Collect()
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}

	return f.Success(SelectResult{
		Data:     opts.data,
		Where:    opts.where,
		Selected: selected,
	})
}
