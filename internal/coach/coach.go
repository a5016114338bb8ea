// Package coach answers questions about the user's finances with a
// Gemini model, grounded on the last 30 days of data.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// DefaultModelName is the Gemini model used to answer questions.
const DefaultModelName = "gemini-2.5-flash"

// contextWindow is how far back financial data is included in the
// prompt.
const contextWindow = 30 * 24 * time.Hour

// Greeting is stored as the first coach message of an empty chat.
const Greeting = "Hello! I'm your financial coach. Ask me anything about your spending habits or incomes."

var ErrEmptyModelResponse = errors.New("the model returned an empty response")

// A Generator produces the model's answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, DefaultModelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("error generating content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyModelResponse
	}

	return text, nil
}

// Service answers questions and keeps the chat history.
type Service struct {
	db        *gorm.DB
	generator Generator
}

// New returns a Service backed by the Gemini API. The API key is read
// from the environment by the genai client.
func New(ctx context.Context, db *gorm.DB) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %w", err)
	}

	return NewWithGenerator(db, genaiGenerator{client: client}), nil
}

// NewWithGenerator returns a Service using the given Generator.
//
// A nil database handle means the current models.DB, which follows
// reconnects after a database restore.
func NewWithGenerator(db *gorm.DB, generator Generator) *Service {
	return &Service{db: db, generator: generator}
}

func (s *Service) handle() *gorm.DB {
	if s.db != nil {
		return s.db
	}

	return models.DB
}

// Ask sends the question with a summary of the last 30 days of data to
// the model.
//
// The question and the answer are appended to the chat history. The
// question is only persisted when the model answers, a failed request
// can simply be retried.
func (s *Service) Ask(ctx context.Context, question string) (models.ChatMessage, error) {
	if strings.TrimSpace(question) == "" {
		return models.ChatMessage{}, models.ErrChatMessageEmpty
	}

	prompt, err := s.buildPrompt(question)
	if err != nil {
		return models.ChatMessage{}, err
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return models.ChatMessage{}, err
	}

	answer := models.ChatMessage{Message: text, FromUser: false}
	err = s.handle().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.ChatMessage{Message: question, FromUser: true}).Error; err != nil {
			return err
		}

		return tx.Create(&answer).Error
	})
	if err != nil {
		return models.ChatMessage{}, err
	}

	return answer, nil
}

// History returns all chat messages in chronological order. An empty
// history is seeded with the greeting.
func (s *Service) History() ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.handle().Order("created_at ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		greeting := models.ChatMessage{Message: Greeting, FromUser: false}
		if err := s.handle().Create(&greeting).Error; err != nil {
			return nil, err
		}
		messages = append(messages, greeting)
	}

	return messages, nil
}

// buildPrompt summarizes the last 30 days of incomes and expenses for
// the model. The model is instructed to only use this data.
func (s *Service) buildPrompt(question string) (string, error) {
	since := types.DateOf(time.Now().UTC().Add(-contextWindow))

	var incomes []models.Income
	err := s.handle().Where("date(date) >= date(?)", since).Order("date ASC").Find(&incomes).Error
	if err != nil {
		return "", err
	}

	var expenses []models.Expense
	err = s.handle().Preload("Category").Where("date(date) >= date(?)", since).Order("date ASC").Find(&expenses).Error
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("--- User's Financial Data (Last 30 Days) ---\n")

	b.WriteString("\n## Incomes:\n")
	if len(incomes) == 0 {
		b.WriteString("No incomes recorded.\n")
	}
	for _, income := range incomes {
		fmt.Fprintf(&b, "- %s from '%s' on %s\n", income.Amount, income.Note, income.Date)
	}

	b.WriteString("\n## Expenses:\n")
	if len(expenses) == 0 {
		b.WriteString("No expenses recorded.\n")
	}
	for _, expense := range expenses {
		note := expense.Note
		if note == "" {
			note = "no note"
		}
		fmt.Fprintf(&b, "- %s on '%s' (%s) on %s\n", expense.Amount, expense.Category.Name, note, expense.Date)
	}
	b.WriteString("--- End of Financial Data ---\n")

	return fmt.Sprintf(
		"You are a friendly and helpful financial assistant.\n"+
			"Provide insights based *only* on the data below. Be concise.\n\n"+
			"Data:\n%s\nQuestion: %q\n",
		b.String(), question,
	), nil
}
