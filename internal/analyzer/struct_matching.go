package analyzer

import (
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// matchKind classifies the outcome of matching a partial row against
// the registered struct declarations.
type matchKind int

const (
	noMatch matchKind = iota
	oneMatch
	multipleMatches
)

// matchStructs counts the registered structs consistent with a partial
// row: every binding must name an instance attribute (field or method
// slot) whose declared type unifies with the bound type. Trial
// substitutions accumulate across the bindings of one candidate and
// are discarded afterwards.
func matchStructs(ctx *InferenceContext, row typesystem.Row) (matchKind, string, []string) {
	u := ctx.unifier()
	var candidates []string

	for _, name := range ctx.Structs.Names() {
		info, _ := ctx.Structs.Lookup(name)
		trial := typesystem.Subst{}
		consistent := true
		for _, e := range row.Entries {
			attr, ok := info.Attr(e.Name)
			if !ok {
				consistent = false
				break
			}
			s, err := u.Unify(attr.Type().Apply(trial), e.Ty.Apply(trial))
			if err != nil {
				consistent = false
				break
			}
			trial = trial.Compose(s)
		}
		if consistent {
			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
		return noMatch, "", nil
	case 1:
		return oneMatch, candidates[0], candidates
	default:
		return multipleMatches, "", candidates
	}
}
