package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/viewdb"
)

// Side is one half of a filter-two result.
type Side struct {
	Selected []int `yaml:"selected"`
	Stale    bool  `yaml:"stale,omitempty"`
}

func (s Side) String() string {
	if s.Stale {
		return "stale"
	}
	return fmt.Sprint(s.Selected)
}

// FilterTwoResult is the outcome of the filter-two command.
type FilterTwoResult struct {
	Where  []string `yaml:"where,omitempty"`
	Closed string   `yaml:"closed,omitempty"`
	A      Side     `yaml:"a"`
	B      Side     `yaml:"b"`
}

// Text implements Texter.
func (r FilterTwoResult) Text() string {
	return fmt.Sprintf("a: %s\nb: %s", r.A, r.B)
}

type filterTwoOptions struct {
	a     []int
	b     []int
	where []string
	close string
}

// NewFilterTwoCommand creates the filter-two command.
func NewFilterTwoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &filterTwoOptions{}

	cmd := &cobra.Command{
		Use:   "filter-two",
		Short: "Filter views of two independent stores with one predicate",
		Long: `Filter-two builds one store from --a and one from --b and filters a view
of each with the conjunction of the --where predicates.

With --close the named store is closed after filtering. Its result becomes
stale while the other result stays readable.`,
		Example:       "  viewdb filter-two --a=0,5,0,0 --b=6,-5,-7,3,-1 --where positive --close a",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilterTwo(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().IntSliceVar(&opts.a, "a", []int{}, "contents of the first store")
	cmd.Flags().IntSliceVar(&opts.b, "b", []int{}, "contents of the second store")
	cmd.Flags().StringArrayVar(&opts.where, "where", nil, "predicate name, repeatable ("+strings.Join(PredicateNames(), "|")+")")
	cmd.Flags().StringVar(&opts.close, "close", "", "store to close after filtering (a|b)")

	return cmd
}

func runFilterTwo(rootOpts *RootOptions, opts *filterTwoOptions, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)

	if opts.close != "" && opts.close != "a" && opts.close != "b" {
		return fail(f, ErrCodeGeneric, fmt.Errorf("invalid --close %q: must be a or b", opts.close))
	}
	preds, err := parsePredicates(opts.where)
	if err != nil {
		return fail(f, ErrCodePredicate, err)
	}

	storeOpts := rootOpts.storeOptions(cmd.ErrOrStderr())
	sa := viewdb.New(append([]int{}, opts.a...), storeOpts...)
	sb := viewdb.New(append([]int{}, opts.b...), storeOpts...)
	defer sa.Close()
	defer sb.Close()

	va, err := sa.View()
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}
	vb, err := sb.View()
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}

	ra, rb, err := viewdb.FilterTwo(va, vb, viewdb.And(preds...))
	va.Release()
	vb.Release()
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}

	switch opts.close {
	case "a":
		_ = sa.Close()
	case "b":
		_ = sb.Close()
	}

	a, err := collectSide(ra)
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}
	b, err := collectSide(rb)
	if err != nil {
		return fail(f, ErrCodeAccess, err)
	}
	f.VerboseLog("a: %d of %d, b: %d of %d", ra.Len(), len(opts.a), rb.Len(), len(opts.b))
	ra.Release()
	rb.Release()

	return f.Success(FilterTwoResult{
		Where:  opts.where,
		Closed: opts.close,
		A:      a,
		B:      b,
	})
}

// collectSide reads v, reporting a stale view instead of failing.
func collectSide(v *viewdb.View[int]) (Side, error) {
	xs, err := v.Collect()
	switch {
	case viewdb.IsStale(err):
		return Side{Stale: true}, nil
	case err != nil:
		return Side{}, err
	}
	return Side{Selected: xs}, nil
}
