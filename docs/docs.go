// Package docs holds the OpenAPI description of the HTTP API, registered
// with swag so httpSwagger can serve it under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/quizzes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quizzes"],
                "summary": "Create a quiz",
                "parameters": [
                    {"description": "Quiz to create", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateQuizRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.QuizResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/quizzes/{quizID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Quizzes"],
                "summary": "Get a quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "quizID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.QuizResponse"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/quizzes/{quizID}/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Quizzes"],
                "summary": "List the questions of a quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "quizID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.StoredQuestionResponse"}}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/quizzes/{quizID}/attempts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quizzes"],
                "summary": "Submit an attempt",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "quizID", "in": "path", "required": true},
                    {"description": "Chosen options by question number", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateAttemptRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.AttemptResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/quizzes/{quizID}/regrade": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Grading"],
                "summary": "Regrade every attempt of a quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "quizID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.RegradeResponse"}},
                    "400": {"description": "No answer key available for this quiz", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/parse-pdf": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Parsing"],
                "summary": "Parse questions from a PDF URL",
                "parameters": [
                    {"description": "PDF location and target quiz", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ParsePDFRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ParsePDFResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "All AI providers failed", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/parse-pdf-upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Parsing"],
                "summary": "Parse questions from an uploaded PDF",
                "parameters": [
                    {"type": "file", "description": "Question paper PDF", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Quiz ID", "name": "quiz_id", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ParsePDFResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "413": {"description": "file too large", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "All AI providers failed", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/parse-answer-key": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Parsing"],
                "summary": "Parse an answer key from a PDF URL",
                "parameters": [
                    {"description": "PDF location and target quiz", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ParsePDFRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ParseAnswerKeyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/parse-answer-key-upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Parsing"],
                "summary": "Parse an answer key from an uploaded PDF",
                "parameters": [
                    {"type": "file", "description": "Answer key PDF", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Quiz ID", "name": "quiz_id", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ParseAnswerKeyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "413": {"description": "file too large", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/extract-basic": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Parsing"],
                "summary": "Extract an answer key with pattern matching only",
                "parameters": [
                    {"description": "Raw answer key text", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ExtractBasicRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ExtractBasicResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/grade-quiz": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Grading"],
                "summary": "Grade an attempt",
                "parameters": [
                    {"description": "Quiz and attempt to grade", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.GradeQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.GradeQuizResponse"}},
                    "400": {"description": "No answer key available for this quiz", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "quiz or attempt not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string", "example": "AI could not parse questions from the text"}}
        },
        "api.CreateQuizRequest": {
            "type": "object",
            "properties": {"title": {"type": "string", "example": "Physics midterm"}}
        },
        "api.QuizResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "review", "ready"]},
                "total_questions": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "api.StoredQuestionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "question_number": {"type": "integer"},
                "question_text": {"type": "string"},
                "options": {"$ref": "#/definitions/quiz.Options"},
                "correct_option": {"type": "string", "x-nullable": true}
            }
        },
        "api.CreateAttemptRequest": {
            "type": "object",
            "properties": {"answers": {"$ref": "#/definitions/quiz.AnswerMap"}}
        },
        "api.AttemptResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "quiz_id": {"type": "string"},
                "answers": {"$ref": "#/definitions/quiz.AnswerMap"},
                "score": {"type": "integer", "x-nullable": true},
                "is_graded": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "api.ParsePDFRequest": {
            "type": "object",
            "required": ["pdf_url", "quiz_id"],
            "properties": {
                "pdf_url": {"type": "string", "example": "https://example.com/paper.pdf"},
                "quiz_id": {"type": "string"}
            }
        },
        "api.ParsePDFResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "quiz_id": {"type": "string"},
                "status": {"type": "string"},
                "total_questions": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/quiz.Question"}}
            }
        },
        "api.ParseAnswerKeyResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "quiz_id": {"type": "string"},
                "status": {"type": "string"},
                "total_answers": {"type": "integer"},
                "updated_questions": {"type": "integer"},
                "answer_map": {"$ref": "#/definitions/quiz.AnswerMap"},
                "source": {"type": "string", "enum": ["ai", "regex"]}
            }
        },
        "api.ExtractBasicRequest": {
            "type": "object",
            "properties": {"text": {"type": "string", "example": "1. B\n2) A\nQ3: C"}}
        },
        "api.ExtractBasicResponse": {
            "type": "object",
            "properties": {
                "total_answers": {"type": "integer"},
                "answer_map": {"$ref": "#/definitions/quiz.AnswerMap"}
            }
        },
        "api.GradeQuizRequest": {
            "type": "object",
            "required": ["quiz_id", "attempt_id"],
            "properties": {
                "quiz_id": {"type": "string"},
                "attempt_id": {"type": "string"}
            }
        },
        "api.GradeQuizResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "score": {"type": "integer"},
                "total": {"type": "integer"},
                "percentage": {"type": "number", "example": 66.7},
                "details": {"type": "array", "items": {"$ref": "#/definitions/grader.Detail"}}
            }
        },
        "api.RegradeEntry": {
            "type": "object",
            "properties": {
                "attempt_id": {"type": "string"},
                "score": {"type": "integer"},
                "total": {"type": "integer"},
                "percentage": {"type": "number"},
                "error": {"type": "string"}
            }
        },
        "api.RegradeResponse": {
            "type": "object",
            "properties": {
                "quiz_id": {"type": "string"},
                "attempts": {"type": "array", "items": {"$ref": "#/definitions/api.RegradeEntry"}}
            }
        },
        "grader.Detail": {
            "type": "object",
            "properties": {
                "question_number": {"type": "integer"},
                "user_option": {"type": "string", "x-nullable": true},
                "correct_option": {"type": "string"},
                "is_correct": {"type": "boolean"}
            }
        },
        "quiz.AnswerMap": {
            "type": "object",
            "additionalProperties": {"type": "string", "enum": ["A", "B", "C", "D"]}
        },
        "quiz.Options": {
            "type": "object",
            "properties": {
                "A": {"type": "string"},
                "B": {"type": "string"},
                "C": {"type": "string"},
                "D": {"type": "string"}
            }
        },
        "quiz.Question": {
            "type": "object",
            "properties": {
                "question_number": {"type": "integer"},
                "question_text": {"type": "string"},
                "options": {"$ref": "#/definitions/quiz.Options"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PDF-to-Quiz API",
	Description:      "Turn question-paper and answer-key PDFs into structured quizzes, then grade attempts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
