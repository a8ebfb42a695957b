package overtime

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BranchAlias maps a fragment of a branch name (usually a city) to a policy.
type BranchAlias struct {
	Match string
	Key   BranchKey
}

// BranchResolver classifies free-text branch names into branch keys.
type BranchResolver struct {
	aliases []BranchAlias
}

// NewBranchResolver builds a resolver. Aliases are tried in order; the first substring match wins.
func NewBranchResolver(aliases []BranchAlias) *BranchResolver {
	folded := make([]BranchAlias, 0, len(aliases))
	for _, a := range aliases {
		m := FoldText(a.Match)
		if m == "" {
			continue
		}
		folded = append(folded, BranchAlias{Match: m, Key: a.Key})
	}
	return &BranchResolver{aliases: folded}
}

// Resolve returns the key for name, or BranchKeyDefault when nothing matches.
func (r *BranchResolver) Resolve(name string) BranchKey {
	n := FoldText(name)
	if n == "" || r == nil {
		return BranchKeyDefault
	}
	for _, a := range r.aliases {
		if strings.Contains(n, a.Match) {
			return a.Key
		}
	}
	return BranchKeyDefault
}

// Aliases returns the folded alias table.
func (r *BranchResolver) Aliases() []BranchAlias {
	out := make([]BranchAlias, len(r.aliases))
	copy(out, r.aliases)
	return out
}

// FoldText lower-cases s and strips diacritics ("São José" -> "sao jose").
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
