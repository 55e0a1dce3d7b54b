package structurer

import "fmt"

// Input budgets, in characters, imposed by the upstream providers.
const (
	MaxQuestionChars  = 15000
	MaxAnswerKeyChars = 10000
)

func buildQuestionsPrompt(text string) string {
	return fmt.Sprintf(`You are a quiz parser. Given raw text from a PDF question paper,
extract ALL questions and their multiple-choice options (A, B, C, D).

Return ONLY a valid JSON array in exactly this format (no markdown, no explanations):
[
  {
    "question_number": 1,
    "question_text": "What is the capital of France?",
    "options": {"A": "London", "B": "Paris", "C": "Berlin", "D": "Madrid"}
  }
]

Rules:
- Extract every question you can find
- If a question has no clear options, include it with empty option strings
- question_number must be sequential integers starting from 1
- Clean up formatting artifacts left by PDF extraction
- Do NOT include the option letter in the option text ("Paris", not "B. Paris")

Raw text from PDF:
%s`, text)
}

func buildAnswerKeyPrompt(text string) string {
	return fmt.Sprintf(`You are an answer key parser. Given raw text from an answer key PDF,
extract the correct answer (A, B, C, or D) for each question number.

Return ONLY a valid JSON object mapping question numbers to correct options:
{"1": "B", "2": "A", "3": "C"}

Rules:
- Keys must be question numbers as strings
- Values must be single uppercase letters: A, B, C, or D
- Extract ALL question-answer pairs you can find

Raw text from answer key PDF:
%s`, text)
}

// truncateRunes cuts s to at most n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
