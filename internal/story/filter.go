package story

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled expression evaluated against story list entries,
// e.g. `genre == "scifi" && sections > 2`. Filtering happens entirely on the
// client and never changes the backend's ordering.
type Filter struct {
	program *vm.Program
}

// filterEnv exposes the fields an expression can reference.
type filterEnv struct {
	Genre    string `expr:"genre"`
	Theme    string `expr:"theme"`
	Setting  string `expr:"setting"`
	Sections int    `expr:"sections"`
}

func newFilterEnv(item ListItem) filterEnv {
	return filterEnv{
		Genre:    item.Genre,
		Theme:    item.Theme,
		Setting:  item.Setting,
		Sections: len(item.Sections),
	}
}

// CompileFilter compiles a filter expression. The expression must reference
// known fields and evaluate to a boolean.
func CompileFilter(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return &Filter{program: program}, nil
}

// Match reports whether the list entry satisfies the filter.
func (f *Filter) Match(item ListItem) (bool, error) {
	result, err := expr.Run(f.program, newFilterEnv(item))
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter did not evaluate to a boolean")
	}
	return matched, nil
}

// Apply returns the entries that satisfy the filter, preserving order.
func (f *Filter) Apply(items []ListItem) ([]ListItem, error) {
	var matched []ListItem
	for _, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
