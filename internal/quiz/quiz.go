// Package quiz implements the 1963 ASCII quiz, the 1963 text filter and the
// emoji personality quiz.
package quiz

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/glyphscope/internal/model"
)

// Quiz sizes and the 1963 range.
const (
	ASCIICount   = 3
	UnicodeCount = 3
	asciiFirst   = 32
	asciiLast    = 93
	bmpLimit     = 0x10000
	controlName  = "<control>"
)

// Item is one character on the quiz grid.
type Item struct {
	CodePoint int    `json:"code"`
	Glyph     string `json:"glyph"`
	// ASCII is true when the character was in the 1963 standard.
	ASCII bool `json:"ascii"`
}

// Quiz is a shuffled grid of 1963 and later characters.
type Quiz struct {
	Items []Item `json:"items"`
}

// Outcome is the verdict for one item after submission.
type Outcome string

// Outcomes. Unselected later characters have no verdict.
const (
	OutcomeNone      Outcome = ""
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeMissed    Outcome = "missed"
)

// Result scores a submitted quiz.
type Result struct {
	Outcomes  []Outcome `json:"outcomes"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Missed    int       `json:"missed"`
}

// Perfect reports whether every 1963 character was found and nothing else.
func (r Result) Perfect() bool {
	return r.Incorrect == 0 && r.Missed == 0
}

// Generator draws quiz grids.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Rand exposes the generator's source for other draws in the same session.
func (g *Generator) Rand() *rand.Rand {
	return g.rnd
}

// ASCIIQuiz draws distinct 1963 code points and distinct later BMP
// characters from chars, then shuffles them together. When the metadata
// table is short the grid simply has fewer later characters.
func (g *Generator) ASCIIQuiz(chars []model.UnicodeChar) Quiz {
	asciiPool := make([]int, 0, asciiLast-asciiFirst+1)
	for cp := asciiFirst; cp <= asciiLast; cp++ {
		asciiPool = append(asciiPool, cp)
	}
	var unicodePool []int
	for _, c := range chars {
		cp := c.CodePoint
		if cp == 0 || (cp >= asciiFirst && cp <= asciiLast) || cp >= bmpLimit || c.Name == controlName {
			continue
		}
		unicodePool = append(unicodePool, cp)
	}

	var items []Item
	for _, cp := range g.pick(asciiPool, ASCIICount) {
		items = append(items, Item{CodePoint: cp, Glyph: string(rune(cp)), ASCII: true})
	}
	for _, cp := range g.pick(unicodePool, UnicodeCount) {
		items = append(items, Item{CodePoint: cp, Glyph: string(rune(cp))})
	}
	g.rnd.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return Quiz{Items: items}
}

// pick draws up to n entries at distinct positions of pool.
func (g *Generator) pick(pool []int, n int) []int {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]int, 0, n)
	for _, i := range g.rnd.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

// Score marks each item: selected 1963 characters are correct, selected
// later ones incorrect and unselected 1963 characters missed. selected holds
// item indexes.
func (q Quiz) Score(selected map[int]bool) Result {
	r := Result{Outcomes: make([]Outcome, len(q.Items))}
	for i, item := range q.Items {
		switch {
		case item.ASCII && selected[i]:
			r.Outcomes[i] = OutcomeCorrect
			r.Correct++
		case !item.ASCII && selected[i]:
			r.Outcomes[i] = OutcomeIncorrect
			r.Incorrect++
		case item.ASCII:
			r.Outcomes[i] = OutcomeMissed
			r.Missed++
		}
	}
	return r
}
