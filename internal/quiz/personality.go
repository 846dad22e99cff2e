package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// Archetype is a personality quiz result.
type Archetype struct {
	Key   string `json:"key"`
	Emoji string `json:"emoji"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Archetypes in tie-break order.
var Archetypes = []Archetype{
	{Key: "robot", Emoji: "🤖", Title: "The Focused Robot", Text: "Calm, methodical, and quietly unstoppable. Low drama, high output."},
	{Key: "party", Emoji: "🥳", Title: "The Party Popper", Text: "High energy, social, and ready to celebrate the little wins."},
	{Key: "cool", Emoji: "😎", Title: "The Cool Sunbeam", Text: "Chill, sunny mood, and unbothered. Vibes on cruise control."},
	{Key: "chaos", Emoji: "😵‍💫", Title: "The Whirlwind", Text: "Brain tabs: 87. Coffee: yes. Plans: pending. You'll still make it work."},
	{Key: "think", Emoji: "🤔", Title: "The Thinky Face", Text: "Curious, analytical, always connecting dots and asking better questions."},
	{Key: "cozy", Emoji: "😌", Title: "The Cozy Cloud", Text: "Soft focus, gentle pace, big on comfort and care."},
	{Key: "rage", Emoji: "😤", Title: "The Determined Puff", Text: "Grit online. Obstacles are fuel. You're here to push through."},
	{Key: "fragile", Emoji: "😬", Title: "The Yikes Face", Text: "Slightly crunchy on the outside, tender on the inside. Still showing up."},
	{Key: "lol", Emoji: "😂", Title: "The Chaos Jester", Text: "If you don't laugh you'll cry, but mostly you laugh."},
}

type weight struct {
	archetype string
	points    int
}

// Question is one personality question and the score each answer adds.
type Question struct {
	Key     string
	Prompt  string
	Options []string
	scores  map[string][]weight
}

// Questions in display order.
var Questions = []Question{
	{
		Key: "energy", Prompt: "Energy level", Options: []string{"low", "mid", "high"},
		scores: map[string][]weight{
			"low":  {{"cozy", 2}, {"robot", 1}},
			"mid":  {{"cool", 2}},
			"high": {{"party", 2}, {"rage", 1}},
		},
	},
	{
		Key: "social", Prompt: "Social battery", Options: []string{"solo", "chill", "party"},
		scores: map[string][]weight{
			"solo":  {{"robot", 2}, {"think", 1}},
			"chill": {{"cool", 2}, {"cozy", 1}},
			"party": {{"party", 3}},
		},
	},
	{
		Key: "head", Prompt: "Headspace", Options: []string{"zen", "think", "chaos"},
		scores: map[string][]weight{
			"zen":   {{"cozy", 2}, {"cool", 1}},
			"think": {{"think", 3}},
			"chaos": {{"chaos", 3}, {"lol", 1}},
		},
	},
	{
		Key: "weather", Prompt: "Inner weather", Options: []string{"sunny", "cloudy", "stormy"},
		scores: map[string][]weight{
			"sunny":  {{"cool", 2}},
			"cloudy": {{"cozy", 2}},
			"stormy": {{"rage", 2}, {"fragile", 1}},
		},
	},
	{
		Key: "focus", Prompt: "Focus", Options: []string{"distracted", "steady", "locked"},
		scores: map[string][]weight{
			"distracted": {{"chaos", 2}, {"fragile", 1}},
			"steady":     {{"cool", 1}, {"cozy", 1}, {"robot", 1}},
			"locked":     {{"robot", 3}},
		},
	},
	{
		Key: "curve", Prompt: "When life throws a curveball", Options: []string{"lol", "cope", "fight"},
		scores: map[string][]weight{
			"lol":   {{"lol", 3}},
			"cope":  {{"fragile", 3}},
			"fight": {{"rage", 3}},
		},
	},
}

// ErrIncomplete is returned when a question has no answer.
var ErrIncomplete = errors.New("answer all 6 questions to reveal your emoji")

// Answers maps a question key to the chosen option.
type Answers map[string]string

// Personality scores the answers and returns the best archetype. Ties go to
// the archetype listed first.
func Personality(answers Answers) (Archetype, error) {
	scores := make(map[string]int, len(Archetypes))
	for _, q := range Questions {
		choice := strings.ToLower(strings.TrimSpace(answers[q.Key]))
		if choice == "" {
			return Archetype{}, ErrIncomplete
		}
		weights, ok := q.scores[choice]
		if !ok {
			return Archetype{}, fmt.Errorf("invalid answer %q for %s (want one of %s)", choice, q.Key, strings.Join(q.Options, ", "))
		}
		for _, w := range weights {
			scores[w.archetype] += w.points
		}
	}
	best, bestScore := Archetypes[0], -1
	for _, a := range Archetypes {
		if scores[a.Key] > bestScore {
			best, bestScore = a, scores[a.Key]
		}
	}
	return best, nil
}
