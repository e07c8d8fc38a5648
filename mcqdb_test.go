package mcqgenerator

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.CreateTables(); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	return db
}

func TestAnalyticsEmptyStore(t *testing.T) {
	db := openTestDB(t)

	a := db.GetAnalytics()
	if a.TotalQuestions != 0 {
		t.Errorf("TotalQuestions = %d, want 0", a.TotalQuestions)
	}
	if len(a.Categories) != 0 || a.Categories == nil {
		t.Errorf("Categories = %v, want empty non-nil map", a.Categories)
	}
	if len(a.Difficulties) != 0 || a.Difficulties == nil {
		t.Errorf("Difficulties = %v, want empty non-nil map", a.Difficulties)
	}
	if a.AvgScore != 0 {
		t.Errorf("AvgScore = %v, want 0", a.AvgScore)
	}
}

func TestSaveQuestionsAndAnalytics(t *testing.T) {
	db := openTestDB(t)

	mcqs := []MCQ{
		{Question: "Q1", Options: NewOptionSet("a", "b", "c", "d"), CorrectAnswer: LabelA,
			Explanation: GenericExplanation, Category: CategoryEducation, Difficulty: DifficultyEasy},
		{Question: "Q2", Options: NewOptionSet("a", "b", "c", "d"), CorrectAnswer: LabelB,
			Explanation: GenericExplanation, Category: CategoryEducation, Difficulty: DifficultyMedium},
		{Question: "Q3", Options: NewOptionSet("a", "b", "c", "d"), CorrectAnswer: LabelC,
			Explanation: GenericExplanation, Category: CategoryTechnology, Difficulty: DifficultyMedium},
	}
	if err := db.SaveQuestions(mcqs); err != nil {
		t.Fatalf("SaveQuestions: %v", err)
	}

	a := db.GetAnalytics()
	if a.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", a.TotalQuestions)
	}
	if a.Categories["Education"] != 2 || a.Categories["Technology"] != 1 {
		t.Errorf("Categories = %v", a.Categories)
	}
	if a.Difficulties["Easy"] != 1 || a.Difficulties["Medium"] != 2 {
		t.Errorf("Difficulties = %v", a.Difficulties)
	}
}

func TestSaveTestResultAverage(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveTestResult(3, 4); err != nil {
		t.Fatalf("SaveTestResult: %v", err)
	}
	if err := db.SaveTestResult(1, 2); err != nil {
		t.Fatalf("SaveTestResult: %v", err)
	}

	a := db.GetAnalytics()
	// (75 + 50) / 2, rounded to one decimal.
	if a.AvgScore != 62.5 {
		t.Errorf("AvgScore = %v, want 62.5", a.AvgScore)
	}
}

func TestSaveTestResultZeroTotal(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveTestResult(0, 0); err != nil {
		t.Fatalf("SaveTestResult: %v", err)
	}
	a := db.GetAnalytics()
	if a.AvgScore != 0 {
		t.Errorf("AvgScore = %v, want 0 for zero-total result", a.AvgScore)
	}
}

func TestOptionsJSONEncoding(t *testing.T) {
	options := NewOptionSet("w", "x", "y", "z")

	encoded, err := OptionsToJSON(options)
	if err != nil {
		t.Fatalf("OptionsToJSON: %v", err)
	}
	// The portable encoding is a label-keyed object in A-D order.
	want := `{"A":"w","B":"x","C":"y","D":"z"}`
	if encoded != want {
		t.Errorf("OptionsToJSON = %s, want %s", encoded, want)
	}

	decoded, err := JSONToOptions(encoded)
	if err != nil {
		t.Fatalf("JSONToOptions: %v", err)
	}
	if decoded != options {
		t.Errorf("JSONToOptions = %v, want %v", decoded, options)
	}
}

func TestGeneratePersistsQuestions(t *testing.T) {
	db := openTestDB(t)
	g := NewGenerator(db)

	text := "The first sentence is long enough to use in a question. " +
		"The second sentence also clears the length threshold easily. " +
		"A third sentence rounds out the sample input nicely."
	set := g.Generate(text, "Text Input", 3)

	if len(set.MCQs) != 3 {
		t.Fatalf("expected 3 MCQs, got %d", len(set.MCQs))
	}
	if got := db.GetAnalytics().TotalQuestions; got != 3 {
		t.Errorf("persisted question count = %d, want 3", got)
	}
}
