package mcqgenerator

import (
	"strings"
	"testing"
)

func TestDetectCategoryPrecedence(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Category
	}{
		{"education wins over technology", "The student used software daily", CategoryEducation},
		{"technology wins over business", "The company shipped new software", CategoryTechnology},
		{"business alone", "The organization restructured", CategoryBusiness},
		{"no keywords", "Rivers flow toward the sea", CategoryGeneral},
		{"case insensitive", "The SCHOOL opened early", CategoryEducation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectCategory(tc.text); got != tc.want {
				t.Errorf("DetectCategory(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func sentenceOfWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ")
}

func TestDifficultyForBoundaries(t *testing.T) {
	cases := []struct {
		words int
		want  Difficulty
	}{
		{5, DifficultyEasy},
		{12, DifficultyEasy},
		{13, DifficultyMedium},
		{20, DifficultyMedium},
		{21, DifficultyHard},
		{40, DifficultyHard},
	}
	for _, tc := range cases {
		if got := DifficultyFor(sentenceOfWords(tc.words)); got != tc.want {
			t.Errorf("DifficultyFor(%d words) = %s, want %s", tc.words, got, tc.want)
		}
	}
}

func TestGenerateProducesRequestedCount(t *testing.T) {
	// Five usable sentences, each comfortably over the 25-char skip filter.
	text := "The school laboratory hosts weekly experiments for students. " +
		"Each session covers a different physical principle in depth. " +
		"Attendance has grown steadily across the last three terms. " +
		"Teachers rotate through the program on a voluntary basis. " +
		"Funding comes from a mix of grants and local donations."

	g := NewGenerator(nil)
	set := g.Generate(text, "Text Input", 3)

	if len(set.MCQs) != 3 {
		t.Fatalf("expected 3 MCQs, got %d", len(set.MCQs))
	}
	if set.ID == "" {
		t.Error("set ID not assigned")
	}
	if set.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not assigned")
	}

	for i, mcq := range set.MCQs {
		if mcq.Category != CategoryEducation {
			t.Errorf("MCQ %d category = %s, want Education for the whole request", i, mcq.Category)
		}
		if mcq.Explanation != GenericExplanation {
			t.Errorf("MCQ %d explanation = %q", i, mcq.Explanation)
		}
		if _, err := ParseLabel(string(mcq.CorrectAnswer)); err != nil {
			t.Errorf("MCQ %d correct answer invalid: %v", i, err)
		}
		for j, l := range Labels() {
			if mcq.Options[j].Label != l {
				t.Errorf("MCQ %d option %d labeled %s, want %s", i, j, mcq.Options[j].Label, l)
			}
			if mcq.Options[j].Text == "" {
				t.Errorf("MCQ %d option %s has empty text", i, l)
			}
		}
	}
}

func TestGenerateKeyPhraseSubstitution(t *testing.T) {
	text := "Alpha beta gamma delta epsilon zeta eta theta iota kappa lambda."
	g := NewGenerator(nil)
	set := g.Generate(text, "Text Input", 1)

	if len(set.MCQs) != 1 {
		t.Fatalf("expected 1 MCQ, got %d", len(set.MCQs))
	}
	// Key phrase is the fragment's first six words.
	if !strings.Contains(set.MCQs[0].Question, "Alpha beta gamma delta epsilon zeta") {
		t.Errorf("question %q does not contain the six-word key phrase", set.MCQs[0].Question)
	}
	if strings.Contains(set.MCQs[0].Question, "eta theta") {
		t.Errorf("question %q contains words beyond the key phrase", set.MCQs[0].Question)
	}
}

func TestGenerateSkipsShortFragments(t *testing.T) {
	// Both fragments survive the segmenter (> 20 chars) but the first is
	// under the synthesizer's stricter 25-char filter.
	short := "aaaa bbbb cccc dddd ee" // 22 chars
	long := "This sentence is clearly long enough to be used"
	if len(short) <= 20 || len(short) >= 25 {
		t.Fatalf("fixture length %d outside (20,25)", len(short))
	}

	g := NewGenerator(nil)
	set := g.Generate(short+". "+long+".", "Text Input", 5)

	if len(set.MCQs) != 1 {
		t.Fatalf("expected only the long fragment to be used, got %d MCQs", len(set.MCQs))
	}
	if !strings.Contains(set.MCQs[0].Question, "This sentence is clearly long enough") {
		t.Errorf("unexpected question %q", set.MCQs[0].Question)
	}
}

func TestGenerateFallbackRecord(t *testing.T) {
	g := NewGenerator(nil)
	set := g.Generate("Too short. Tiny!", "Text Input", 5)

	if len(set.MCQs) != 1 {
		t.Fatalf("expected single fallback record, got %d", len(set.MCQs))
	}
	mcq := set.MCQs[0]
	if mcq.Question != "Insufficient text to generate questions." {
		t.Errorf("fallback question = %q", mcq.Question)
	}
	if mcq.CorrectAnswer != LabelD {
		t.Errorf("fallback correct answer = %s, want D", mcq.CorrectAnswer)
	}
	if mcq.Category != CategoryGeneral || mcq.Difficulty != DifficultyEasy {
		t.Errorf("fallback classified as %s/%s", mcq.Category, mcq.Difficulty)
	}
}

func TestGenerateBoundedByFragmentCount(t *testing.T) {
	text := "Only one usable sentence lives inside this whole input."
	g := NewGenerator(nil)
	set := g.Generate(text, "Text Input", 10)

	if len(set.MCQs) != 1 {
		t.Fatalf("expected 1 MCQ from 1 usable fragment, got %d", len(set.MCQs))
	}
}

func TestGeneratePreview(t *testing.T) {
	long := strings.Repeat("abcdefghij", 30) + ". And then some more text to look at here."
	g := NewGenerator(nil)
	set := g.Generate(long, "Text Input", 1)

	if !strings.HasSuffix(set.TextPreview, "...") {
		t.Errorf("long input preview not truncated: %q", set.TextPreview)
	}
	if got := len([]rune(set.TextPreview)); got != 203 {
		t.Errorf("preview length = %d, want 203", got)
	}
}
