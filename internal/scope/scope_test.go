package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	name string
	team string
}

func teamOf(i item) string { return i.team }

func TestParseSet(t *testing.T) {
	set := ParseSet(" hcm,,hn;; dn | ct\tvt ")
	assert.Len(t, set, 5)
	for _, k := range []string{"HCM", "HN", "DN", "CT", "VT"} {
		assert.Contains(t, set, k)
	}

	assert.Empty(t, ParseSet(""))
	assert.Empty(t, ParseSet(" ,;| "))
}

func TestFilterNoScopeIsIdentity(t *testing.T) {
	items := []item{{"a", "HCM"}, {"b", "HN"}, {"c", ""}}

	assert.Equal(t, items, Filter("", items, teamOf))
	assert.Equal(t, items, Filter(" ; | ", items, teamOf))
}

func TestFilterKeepsUntaggedAndScoped(t *testing.T) {
	items := []item{
		{"a", "HCM"},
		{"b", "HN"},
		{"c", ""},
		{"d", "hcm"},
		{"e", "  "},
	}

	got := Filter("hcm", items, teamOf)

	var names []string
	for _, it := range got {
		names = append(names, it.name)
	}
	assert.Equal(t, []string{"a", "c", "d", "e"}, names)
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, Filter[item]("HCM", nil, teamOf))
}
