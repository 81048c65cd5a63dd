// internal/cli/prompts_test.go
package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

func TestParseIDList(t *testing.T) {
	ids := parseIDList(" 1, 42,x, 7 ")
	assert.Equal(t, map[int]bool{1: true, 42: true, 7: true}, ids)
	assert.Empty(t, parseIDList(""))
	assert.Empty(t, parseIDList("a, b"))
}

func TestFilterByIDPreservesOrder(t *testing.T) {
	chs := []gzapi.ChallengeSummary{{ID: 3}, {ID: 1}, {ID: 2}}
	got := filterByID(chs, map[int]bool{1: true, 3: true})
	assert.Equal(t, []gzapi.ChallengeSummary{{ID: 3}, {ID: 1}}, got)
}

func TestAskHandlesEOF(t *testing.T) {
	var out strings.Builder
	p := newPrompter(strings.NewReader(""), &out)
	assert.Equal(t, "", p.ask("pick: "))
	assert.Contains(t, out.String(), "pick: ")
}
