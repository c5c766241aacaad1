package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/util"
	"strings"

	"github.com/ayush6624/go-chatgpt"
)

// CommentaryRepository produces the one-sentence prose attached to the
// sector and volatility results.
type CommentaryRepository interface {
	SectorBiasAnalysis(ctx context.Context, benchmark, user domain.Distribution, similarity float64) (string, error)
	RiskAnalysis(ctx context.Context, weightedBeta, weightedSharpe float64) (string, error)
}

// ChatClient is satisfied by *chatgpt.Client.
type ChatClient interface {
	Send(ctx context.Context, req *chatgpt.ChatCompletionRequest) (*chatgpt.ChatResponse, error)
}

type gptRepositoryHandler struct {
	GptClient ChatClient
	Retry     util.RetryPolicy
}

func NewGptClient(apiKey string) (*chatgpt.Client, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}
	return client, nil
}

func NewGptCommentaryRepository(client ChatClient, retry util.RetryPolicy) CommentaryRepository {
	return gptRepositoryHandler{
		GptClient: client,
		Retry:     retry,
	}
}

const sectorPrompt = `
Analyze the following sector allocation data and provide a brief, easy-to-understand insight about this portfolio's investment approach:

SP500 Sector Allocation: %s
Portfolio Sector Allocation: %s
Similarity Score: %v%%

IMPORTANT: Similarity interpretation:
- 0-20%%: Very different from market (concentrated/specialized approach)
- 20-50%%: Moderate deviation (some sector tilts)
- 50-80%%: Reasonably aligned with market
- 80-100%%: Very close to market allocation

Please provide a brief one-sentence analysis explaining what this portfolio's sector allocation means in simple terms.
`

const riskPrompt = `
Analyze the following portfolio risk metrics and provide a brief, easy-to-understand insight about this portfolio's risk-return profile:

Portfolio Weighted Beta: %.4f
Portfolio Weighted Sharpe Ratio: %.4f

IMPORTANT: Risk interpretation guidelines:
- Beta > 1.5: High market sensitivity (aggressive/risky approach)
- Beta 0.8-1.5: Moderate market sensitivity (balanced approach)
- Beta < 0.8: Low market sensitivity (defensive/conservative approach)

- Sharpe > 1.5: Excellent risk-adjusted returns (high reward for risk taken)
- Sharpe 0.5-1.5: Good risk-adjusted returns (reasonable reward for risk)
- Sharpe < 0.5: Poor risk-adjusted returns (low reward for risk taken)

Please provide a brief one-sentence analysis explaining what this portfolio's beta and Sharpe values mean in simple terms, focusing on whether the portfolio is taking appropriate risks and getting rewarded for them.
`

func SectorPrompt(benchmark, user domain.Distribution, similarity float64) (string, error) {
	benchmarkJson, err := json.MarshalIndent(benchmark, "", "  ")
	if err != nil {
		return "", err
	}
	userJson, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(sectorPrompt, benchmarkJson, userJson, similarity), nil
}

func RiskPrompt(weightedBeta, weightedSharpe float64) string {
	return fmt.Sprintf(riskPrompt, weightedBeta, weightedSharpe)
}

func (h gptRepositoryHandler) SectorBiasAnalysis(ctx context.Context, benchmark, user domain.Distribution, similarity float64) (string, error) {
	prompt, err := SectorPrompt(benchmark, user, similarity)
	if err != nil {
		return "", fmt.Errorf("failed to build sector prompt: %w", err)
	}
	return h.complete(ctx, prompt)
}

func (h gptRepositoryHandler) RiskAnalysis(ctx context.Context, weightedBeta, weightedSharpe float64) (string, error) {
	return h.complete(ctx, RiskPrompt(weightedBeta, weightedSharpe))
}

func (h gptRepositoryHandler) complete(ctx context.Context, prompt string) (string, error) {
	var out string
	err := util.Retry(ctx, h.Retry, "commentary", func(ctx context.Context) error {
		res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
			Model: chatgpt.GPT35Turbo,
			Messages: []chatgpt.ChatMessage{
				{
					Role:    chatgpt.ChatGPTModelRoleUser,
					Content: prompt,
				},
			},
		})
		if err != nil {
			return err
		}
		if res == nil || len(res.Choices) == 0 {
			return fmt.Errorf("empty completion response")
		}
		out = strings.TrimSpace(res.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}

	return out, nil
}
