package entities

// Question is one question/answer pair as it is stored in the question bank
// and presented to the player. The question text doubles as the cooldown key.
type Question struct {
	Question string `json:"question" validate:"required,notblank,max=500"`
	Answer   string `json:"answer" validate:"required,notblank,max=500"`
}

// QuestionKind tells generated arithmetic questions apart from stored trivia.
type QuestionKind string

const (
	KindArithmetic QuestionKind = "arithmetic"
	KindTrivia     QuestionKind = "trivia"
)

// DefaultQuestions returns the built-in bank used when the question file
// cannot be read.
func DefaultQuestions() []Question {
	return []Question{
		{Question: "O'zbekiston poytaxti qayer?", Answer: "Toshkent"},
		{Question: "Apple manosi nima?", Answer: "olma"},
		{Question: "Python qanday til?", Answer: "dasturlash"},
	}
}
