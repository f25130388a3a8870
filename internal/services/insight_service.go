package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "debtwise/internal/errors"
	"debtwise/internal/planner"
)

const coachingPromptTemplate = `You are a personal finance coach. A user has the following debt situation:

Debt-to-income ratio: %.1f%% (%s tier)
Total minimum payments: $%.2f per month
Monthly income used for the ratio: $%.2f
Disposable income after expenses: $%.2f

Debts:
%s

Give 2-3 short, practical coaching tips for this situation. Be specific and
encouraging. Do not recommend new credit products. Plain text only.`

// insightService generates coaching tips by calling an Ollama-compatible
// generate endpoint. It is an optional collaborator: when no endpoint is
// configured, callers get ErrInsightUnavailable and the rest of the API is
// unaffected.
type insightService struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewInsightService creates a new InsightServicer. An empty endpoint yields a
// service that always reports unavailability.
func NewInsightService(endpoint, model string, timeout time.Duration) InsightServicer {
	return &insightService{
		endpoint: endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// CoachingTips builds a prompt from the assessment and debt summaries and
// returns the model's free-text advice.
func (s *insightService) CoachingTips(assessment *planner.RiskAssessment, debts []planner.Debt) (string, error) {
	if s.endpoint == "" {
		return "", apperrors.ErrInsightUnavailable
	}

	prompt := fmt.Sprintf(coachingPromptTemplate,
		assessment.RatioPct,
		assessment.Tier,
		float64(assessment.TotalMinPaymentCents)/100,
		float64(assessment.IncomeBaseCents)/100,
		float64(assessment.DisposableCents)/100,
		debtSummary(debts),
	)

	text, err := s.generate(prompt)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInsightUnavailable, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.ErrInsightUnavailable
	}
	return text, nil
}

func (s *insightService) generate(prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  s.model,
		Prompt: prompt,
		Stream: false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.httpClient.Post(
		s.endpoint+"/api/generate",
		"application/json",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("failed to call insight model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("insight model error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return genResp.Response, nil
}

func debtSummary(debts []planner.Debt) string {
	if len(debts) == 0 {
		return "(no active debts)"
	}
	var b strings.Builder
	for _, d := range debts {
		fmt.Fprintf(&b, "- %s (%s): $%.2f balance at %.2f%% APR, $%.2f minimum\n",
			d.Name, d.Category,
			float64(d.BalanceCents)/100,
			float64(d.APRBps)/100,
			float64(d.MinPaymentCents)/100)
	}
	return strings.TrimRight(b.String(), "\n")
}
