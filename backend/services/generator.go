package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"learnify/backend/config"
)

// Generator talks to an OpenAI-compatible chat completions endpoint
// (Groq by default) and turns free-text topics into structured content.
type Generator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		apiKey:  cfg.GroqAPIKey,
		baseURL: strings.TrimRight(cfg.GroqBaseURL, "/"),
		model:   cfg.GroqModel,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

type ChapterStub struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

type CourseOutline struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Chapters    []ChapterStub `json:"chapters"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

func (g *Generator) GenerateCourseOutline(ctx context.Context, topic string) (*CourseOutline, error) {
	system := "You are a curriculum designer for an online learning platform. " +
		"Always respond with valid JSON only, without markdown fences."
	user := fmt.Sprintf(
		`Create a course outline on the topic %q. Respond with a JSON object of the form `+
			`{"title": string, "description": string, "chapters": [{"title": string, "description": string, "order_index": number}]}. `+
			`Use 3 to 6 chapters with order_index starting at 0.`,
		topic)

	content, err := g.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var outline CourseOutline
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &outline); err != nil {
		return nil, fmt.Errorf("could not parse course outline: %w", err)
	}
	if outline.Title == "" || len(outline.Chapters) == 0 {
		return nil, fmt.Errorf("course outline is incomplete")
	}
	return &outline, nil
}

func (g *Generator) GenerateChapterContent(ctx context.Context, courseTitle, chapterTitle, chapterDescription string) (string, error) {
	system := "You are an educator writing chapter content for an online course. " +
		"Respond with the chapter text only, in plain prose."
	user := fmt.Sprintf(
		"Write the full chapter content for the course %q.\nChapter title: %q\nChapter description: %q",
		courseTitle, chapterTitle, chapterDescription)

	content, err := g.complete(ctx, system, user)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("chapter content is empty")
	}
	return content, nil
}

func (g *Generator) GenerateQuiz(ctx context.Context, topic, material string, count int) ([]QuizQuestion, error) {
	system := "You are an examiner creating quiz questions. " +
		"Always respond with valid JSON only, without markdown fences."
	user := fmt.Sprintf(
		`Create %d multiple-choice quiz questions about %q. Respond with a JSON array of the form `+
			`[{"question": string, "options": [string, string, string, string], "correct_answer": number}] `+
			`where correct_answer is the zero-based index of the right option.`,
		count, topic)
	if material != "" {
		user += "\n\nBase the questions on the following material:\n" + material
	}

	content, err := g.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &questions); err != nil {
		return nil, fmt.Errorf("could not parse quiz questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no quiz questions returned")
	}
	return questions, nil
}

// AnswerQuestion answers a free-form question grounded on extracted
// document text. Backs the PDF chat page.
func (g *Generator) AnswerQuestion(ctx context.Context, material, question string) (string, error) {
	system := "You are a helpful tutor. Answer the question using only the provided document text. " +
		"If the document does not contain the answer, say so."
	user := fmt.Sprintf("Document text:\n%s\n\nQuestion: %s", material, question)

	answer, err := g.complete(ctx, system, user)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("empty answer returned")
	}
	return answer, nil
}

func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	requestData := chatCompletionRequest{
		Model: g.model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var completionResp chatCompletionResponse
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&completionResp); err != nil {
		return "", fmt.Errorf("failed to decode API response: %w", err)
	}
	if len(completionResp.Choices) == 0 {
		return "", fmt.Errorf("no content returned by the API")
	}

	return completionResp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding ```json fence that some models
// emit despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
