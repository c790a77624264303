package smart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dompet/internal/core"
	applog "dompet/internal/log"
	"dompet/internal/metrics"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini calls the generateContent endpoint with a JSON response schema
// and maps the result onto drafts.
type Gemini struct {
	client  *http.Client
	log     *applog.Logger
	apiKey  string
	model   string
	baseURL string
	now     func() time.Time
}

// Option tweaks the client; used mainly by tests.
type Option func(*Gemini)

func WithBaseURL(u string) Option          { return func(g *Gemini) { g.baseURL = u } }
func WithHTTPClient(c *http.Client) Option { return func(g *Gemini) { g.client = c } }
func WithClock(now func() time.Time) Option {
	return func(g *Gemini) { g.now = now }
}

func NewGemini(apiKey, model string, logger *applog.Logger, opts ...Option) *Gemini {
	g := &Gemini{
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     logger.WithComponent(applog.ComponentSmart),
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type generateRequest struct {
	Contents []content       `json:"contents"`
	Config   *generateConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// draftPayload matches the schema the model is asked to fill.
type draftPayload struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

var draftSchema = json.RawMessage(`{
  "type": "ARRAY",
  "items": {
    "type": "OBJECT",
    "properties": {
      "description": {"type": "STRING"},
      "amount": {"type": "NUMBER"},
      "type": {"type": "STRING", "enum": ["INCOME", "EXPENSE"]},
      "category": {"type": "STRING"},
      "date": {"type": "STRING"}
    },
    "required": ["description", "amount", "type", "category", "date"]
  }
}`)

// Parse sends the text to the model and decodes the structured reply.
func (g *Gemini) Parse(ctx context.Context, text string) ([]Draft, error) {
	if g.apiKey == "" {
		return nil, core.ErrInvalidKey
	}
	started := g.now()
	defer func() {
		metrics.SmartParseSeconds.Observe(time.Since(started).Seconds())
	}()

	today := core.DateOf(g.now())
	prompt := fmt.Sprintf(`Analisis teks berikut dan ekstrak data transaksi keuangan.
Teks: %q

Kembalikan array objek JSON dengan properti:
- description (string): Deskripsi singkat transaksi
- amount (number): Jumlah uang (angka murni tanpa simbol)
- type (string): 'INCOME' atau 'EXPENSE'
- category (string): Kategori yang paling relevan (Contoh: Makanan, Transportasi, Gaji)
- date (string): Tanggal dalam format YYYY-MM-DD. Jika tidak disebutkan, gunakan tanggal hari ini: %s.`,
		text, today)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Config: &generateConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   draftSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, core.ErrInvalidKey
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", core.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", core.ErrAdapter, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", core.ErrAdapter, err)
	}
	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", core.ErrAdapter, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, nil
	}

	var payloads []draftPayload
	if err := json.Unmarshal([]byte(gr.Candidates[0].Content.Parts[0].Text), &payloads); err != nil {
		return nil, fmt.Errorf("%w: decode drafts: %v", core.ErrAdapter, err)
	}

	drafts := make([]Draft, 0, len(payloads))
	for _, p := range payloads {
		d, err := p.toDraft(today)
		if err != nil {
			g.log.WarnContext(ctx, "skipping unusable draft",
				applog.FieldError, err.Error())
			continue
		}
		drafts = append(drafts, d)
	}
	g.log.InfoContext(ctx, "text parsed",
		applog.FieldOperation, applog.OpParse,
		applog.FieldBatchSize, len(drafts))
	return drafts, nil
}

func (p draftPayload) toDraft(fallback core.Date) (Draft, error) {
	amount, err := core.MoneyFromFloat(p.Amount)
	if err != nil {
		return Draft{}, err
	}
	kind := core.TransactionKind(p.Type)
	if kind != core.Income && kind != core.Expense {
		return Draft{}, core.ErrInvalidKind
	}
	date, err := core.ParseDate(p.Date)
	if err != nil {
		date = fallback
	}
	category := p.Category
	if category == "" {
		category = "Lainnya"
	}
	return Draft{
		Description: p.Description,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		Date:        date,
	}, nil
}
