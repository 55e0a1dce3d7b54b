package id

import "github.com/google/uuid"

// GenerateID returns a new random UUID string for quizzes, questions and attempts.
func GenerateID() string {
	return uuid.NewString()
}
