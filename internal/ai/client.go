package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Anamiiikka/fundhive/internal/config"
)

// Client 外部文本生成服务客户端（OpenAI 兼容的 chat completions 接口）
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient 创建客户端
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// Analysis 商业分析结果
type Analysis struct {
	Score  int      `json:"score"`
	Report []string `json:"report"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_completion_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze 将提示词发给生成服务并解析为评分和报告
func (c *Client) Analyze(ctx context.Context, prompt string) (*Analysis, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 1,
		MaxTokens:   1024,
		TopP:        1,
		Stream:      false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ai request failed with status %d: %s", resp.StatusCode, snippet)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode ai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("ai response contained no choices")
	}

	return ParseAnalysis(parsed.Choices[0].Message.Content)
}

var scorePattern = regexp.MustCompile(`Business Analysis Score:\s*(\d+)`)

// ParseAnalysis 解析模型返回的结构化文本：
//
//	Business Analysis Score: 72
//	Analysis:
//	- 第一条结论
//	- 第二条结论
func ParseAnalysis(raw string) (*Analysis, error) {
	score := 0
	var report []string
	inAnalysis := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "Business Analysis Score:"):
			if m := scorePattern.FindStringSubmatch(line); m != nil {
				score, _ = strconv.Atoi(m[1])
			}
		case strings.HasPrefix(line, "Analysis:"):
			inAnalysis = true
		case inAnalysis && strings.HasPrefix(line, "-"):
			report = append(report, strings.TrimSpace(strings.TrimPrefix(line, "-")))
		}
	}

	if score < 0 || score > 100 {
		return nil, errors.New("invalid score received from AI")
	}
	if len(report) == 0 {
		report = []string{"No detailed analysis provided by AI."}
	}
	return &Analysis{Score: score, Report: report}, nil
}
