// internal/cli/prompts.go
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ctfops/gzctf-clone/internal/gzapi"
)

// prompter wraps stdin/stdout for the interactive menus.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints a prompt and returns the trimmed reply; EOF reads as "".
func (p *prompter) ask(msg string) string {
	fmt.Fprint(p.out, msg)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func (p *prompter) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// parseIDList parses a comma-separated id selection; entries that are
// not numbers are ignored. An empty result means "nothing selected".
func parseIDList(s string) map[int]bool {
	ids := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids[id] = true
		}
	}
	return ids
}

// filterByID keeps the summaries whose id is in the selection,
// preserving order.
func filterByID(chs []gzapi.ChallengeSummary, ids map[int]bool) []gzapi.ChallengeSummary {
	var selected []gzapi.ChallengeSummary
	for _, ch := range chs {
		if ids[ch.ID] {
			selected = append(selected, ch)
		}
	}
	return selected
}

// printGames renders the game selection menu.
func (p *prompter) printGames(games []gzapi.GameSummary) {
	p.printf("\nAvailable games:\n")
	for _, g := range games {
		p.printf("%3d | %s\n", g.ID, g.Title)
	}
}

// printChallenges renders the challenge selection menu. gameTitles may
// be nil when all challenges come from a single known game.
func (p *prompter) printChallenges(chs []gzapi.ChallengeSummary, gameTitles map[int]string) {
	p.printf("\nAvailable challenges:\n")
	for _, ch := range chs {
		score := ch.OriginalScore
		if score == 0 {
			score = ch.Score
		}
		if gameTitles != nil {
			p.printf("%3d | %-20s | [%s] %s (%d pts)\n", ch.ID, gameTitles[ch.GameID], ch.Category, ch.Title, score)
		} else {
			p.printf("%3d | [%s] %s (%d pts)\n", ch.ID, ch.Category, ch.Title, score)
		}
	}
}
