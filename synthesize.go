package mcqgenerator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxQuestions is the upper bound a caller may request per generation.
const MaxQuestions = 30

// Fragments shorter than this are skipped during synthesis. Stricter
// than the segmenter's retention threshold; both filters are applied.
const minUsableFragmentLength = 25

// keyPhraseWords is how many leading words of a fragment are substituted
// into the question template.
const keyPhraseWords = 6

// GenericExplanation is attached to every synthesized question.
const GenericExplanation = "This question tests understanding of the text content."

var questionTemplates = []string{
	"What is mentioned about '%s' in the text?",
	"Which detail is provided regarding '%s'?",
	"What information is given about '%s'?",
	"How is '%s' described in the content?",
	"What aspect of '%s' is highlighted?",
}

var optionSets = []OptionSet{
	NewOptionSet("Professional role", "Educational background", "Key achievement", "Personal quality"),
	NewOptionSet("Technical function", "Strategic importance", "Operational detail", "Main responsibility"),
	NewOptionSet("Primary purpose", "Main contribution", "Significant impact", "Essential feature"),
	NewOptionSet("Core expertise", "Methodology used", "Result achieved", "Skill demonstrated"),
}

// Keyword sets are checked in this order; the first hit decides the
// category for the whole request.
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryEducation, []string{"teacher", "school", "education", "student"}},
	{CategoryTechnology, []string{"technology", "software", "computer", "digital"}},
	{CategoryBusiness, []string{"business", "company", "organization"}},
}

// DetectCategory classifies the whole input text by keyword presence.
func DetectCategory(text string) Category {
	lower := strings.ToLower(text)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.category
			}
		}
	}
	return CategoryGeneral
}

// DifficultyFor derives a difficulty tier from the fragment's word count.
func DifficultyFor(fragment string) Difficulty {
	wordCount := len(strings.Fields(fragment))
	switch {
	case wordCount > 20:
		return DifficultyHard
	case wordCount > 12:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// Generator synthesizes MCQ sets from plain text. It holds the storage
// handle explicitly; there is no package-level database state.
type Generator struct {
	db  *DB
	rng *rand.Rand
}

// NewGenerator creates a generator writing through the given database.
// A nil db disables persistence.
func NewGenerator(db *DB) *Generator {
	return &Generator{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate produces up to numQuestions MCQs from the text, consuming
// sentence fragments in order. The category is computed once for the
// whole request; template, option set, and correct label are uniform
// random picks with no semantic grounding. The finished set is persisted
// before it is returned; persistence failure is logged and swallowed so
// generation never blocks on storage.
func (g *Generator) Generate(text, source string, numQuestions int) *MCQSet {
	set := &MCQSet{
		ID:          uuid.NewString(),
		Source:      source,
		TextPreview: previewOf(text),
		GeneratedAt: time.Now(),
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		set.MCQs = []MCQ{fallbackMCQ()}
		g.persist(set)
		return set
	}

	category := DetectCategory(text)

	n := numQuestions
	if len(sentences) < n {
		n = len(sentences)
	}
	for i := 0; i < n; i++ {
		sentence := sentences[i]
		if len(sentence) < minUsableFragmentLength {
			continue
		}

		words := strings.Fields(sentence)
		if len(words) > keyPhraseWords {
			words = words[:keyPhraseWords]
		}
		keyPhrase := strings.Join(words, " ")

		template := questionTemplates[g.rng.Intn(len(questionTemplates))]
		options := optionSets[g.rng.Intn(len(optionSets))]
		labels := Labels()
		correct := labels[g.rng.Intn(len(labels))]

		set.MCQs = append(set.MCQs, MCQ{
			Question:      fmt.Sprintf(template, keyPhrase),
			Options:       options,
			CorrectAnswer: correct,
			Explanation:   GenericExplanation,
			Category:      category,
			Difficulty:    DifficultyFor(sentence),
		})
	}

	g.persist(set)
	return set
}

func (g *Generator) persist(set *MCQSet) {
	if g.db == nil {
		return
	}
	if err := g.db.SaveQuestions(set.MCQs); err != nil {
		VerboseLog("Database error: %v", err)
		return
	}
	VerboseLog("Saved %d MCQs to database", len(set.MCQs))
}

// fallbackMCQ is emitted when the text yields no usable fragments at all.
func fallbackMCQ() MCQ {
	return MCQ{
		Question:      "Insufficient text to generate questions.",
		Options:       NewOptionSet("Add more content", "Try different text", "Text too short", "Insufficient data"),
		CorrectAnswer: LabelD,
		Explanation:   "Please provide more substantial text content.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyEasy,
	}
}

func previewOf(text string) string {
	r := []rune(text)
	if len(r) > 200 {
		return string(r[:200]) + "..."
	}
	return text
}
