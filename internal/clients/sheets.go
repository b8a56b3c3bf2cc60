package clients

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

const knowledgeRange = "Sheet1!A1:Z1000"

// KnowledgeItem is one Q&A row of the knowledge sheet.
type KnowledgeItem struct {
	Question string
	Answer   string
	Category string
}

// SheetsClient reads the knowledge base from a Google Sheet.
type SheetsClient struct {
	SheetID string
	Options []option.ClientOption

	once    sync.Once
	svc     *sheets.Service
	initErr error
}

// NewSheetsClient returns nil when no sheet id is configured.
func NewSheetsClient(sheetID, credentialsJSON string) *SheetsClient {
	if sheetID == "" {
		return nil
	}
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	return &SheetsClient{SheetID: sheetID, Options: opts}
}

func (c *SheetsClient) service(ctx context.Context) (*sheets.Service, error) {
	c.once.Do(func() {
		c.svc, c.initErr = sheets.NewService(ctx, c.Options...)
	})
	return c.svc, c.initErr
}

// Knowledge returns every row after the header that has at least a question
// and an answer. Category defaults to "General".
func (c *SheetsClient) Knowledge(ctx context.Context) ([]KnowledgeItem, error) {
	if c == nil {
		return nil, fmt.Errorf("knowledge sheet not configured")
	}
	svc, err := c.service(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	resp, err := svc.Spreadsheets.Values.Get(c.SheetID, knowledgeRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read knowledge sheet: %w", err)
	}
	return knowledgeRows(resp.Values), nil
}

func knowledgeRows(values [][]interface{}) []KnowledgeItem {
	if len(values) < 2 {
		return nil
	}
	out := make([]KnowledgeItem, 0, len(values)-1)
	for _, row := range values[1:] {
		if len(row) < 2 {
			continue
		}
		item := KnowledgeItem{
			Question: cell(row[0]),
			Answer:   cell(row[1]),
			Category: "General",
		}
		if len(row) > 2 {
			item.Category = cell(row[2])
		}
		out = append(out, item)
	}
	return out
}

func cell(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// FormatKnowledge renders items as prompt context blocks separated by blank lines.
func FormatKnowledge(items []KnowledgeItem) string {
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		blocks = append(blocks, fmt.Sprintf("Category: %s\nQ: %s\nA: %s", it.Category, it.Question, it.Answer))
	}
	return strings.Join(blocks, "\n\n")
}
