package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnify/backend/config"

	"github.com/stretchr/testify/assert"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func generatorFor(server *httptest.Server) *Generator {
	return NewGenerator(&config.Config{
		GroqAPIKey:  "test-key",
		GroqBaseURL: server.URL,
		GroqModel:   "test-model",
	})
}

func TestGenerateCourseOutline(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		`{"title":"Go","description":"The Go language","chapters":[{"title":"Basics","description":"Syntax","order_index":0}]}`)
	defer server.Close()

	outline, err := generatorFor(server).GenerateCourseOutline(context.Background(), "Go")
	assert.NoError(t, err)
	assert.Equal(t, "Go", outline.Title)
	assert.Len(t, outline.Chapters, 1)
	assert.Equal(t, 0, outline.Chapters[0].OrderIndex)
}

func TestGenerateCourseOutlineStripsCodeFence(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		"```json\n{\"title\":\"Go\",\"description\":\"d\",\"chapters\":[{\"title\":\"C\",\"description\":\"d\",\"order_index\":0}]}\n```")
	defer server.Close()

	outline, err := generatorFor(server).GenerateCourseOutline(context.Background(), "Go")
	assert.NoError(t, err)
	assert.Equal(t, "Go", outline.Title)
}

func TestGenerateCourseOutlineRejectsEmptyOutline(t *testing.T) {
	server := completionServer(t, http.StatusOK, `{"title":"","description":"","chapters":[]}`)
	defer server.Close()

	_, err := generatorFor(server).GenerateCourseOutline(context.Background(), "Go")
	assert.Error(t, err)
}

func TestGenerateCourseOutlineAPIError(t *testing.T) {
	server := completionServer(t, http.StatusTooManyRequests, "")
	defer server.Close()

	_, err := generatorFor(server).GenerateCourseOutline(context.Background(), "Go")
	assert.Error(t, err)
}

func TestGenerateChapterContent(t *testing.T) {
	server := completionServer(t, http.StatusOK, "Chapter body text.")
	defer server.Close()

	content, err := generatorFor(server).GenerateChapterContent(context.Background(), "Go", "Basics", "Syntax")
	assert.NoError(t, err)
	assert.Equal(t, "Chapter body text.", content)
}

func TestGenerateQuizParsesQuestions(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		`[{"question":"Q?","options":["a","b","c","d"],"correct_answer":2}]`)
	defer server.Close()

	questions, err := generatorFor(server).GenerateQuiz(context.Background(), "Go", "", 1)
	assert.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, 2, questions[0].CorrectAnswer)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
