package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/studypay-service/internal/config"
	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/repository"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// AIService relays text-generation requests to the upstream provider on
// behalf of users who hold AI access.
type AIService struct {
	users  repository.UserRepository
	cfg    config.AIConfig
	client *http.Client
	clock  func() time.Time
	logger *zap.Logger
}

func NewAIService(users repository.UserRepository, cfg config.AIConfig, logger *zap.Logger) *AIService {
	return &AIService{
		users:  users,
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		clock:  time.Now,
		logger: logger,
	}
}

type aiRequestBody struct {
	Contents []aiContent `json:"contents"`
}

type aiContent struct {
	Parts []aiPart `json:"parts"`
}

type aiPart struct {
	Text string `json:"text"`
}

type aiResponseBody struct {
	Candidates []struct {
		Content aiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateText checks the caller's AI entitlement, relays the prompt and
// records the usage. Models are tried in configured order.
func (s *AIService) GenerateText(ctx context.Context, user *domain.User, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperrors.NewValidationError("prompt is required", nil)
	}
	if err := s.checkEntitlement(user); err != nil {
		return "", err
	}

	var lastErr error
	for _, model := range s.cfg.Models {
		text, err := s.relay(ctx, model, prompt)
		if err == nil {
			s.recordUsage(ctx, user)
			return text, nil
		}
		lastErr = err
		s.logger.Warn("ai model request failed", zap.String("model", model), zap.Error(err))
	}
	return "", apperrors.NewInternalError(fmt.Errorf("all ai models failed: %w", lastErr))
}

func (s *AIService) checkEntitlement(user *domain.User) error {
	if user.AIAccess {
		return nil
	}
	if user.AIPurchase != nil && !user.AIPurchase.Expired(s.clock()) {
		return nil
	}
	return apperrors.NewForbidden("ai access is not enabled for this account")
}

func (s *AIService) relay(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(aiRequestBody{
		Contents: []aiContent{{Parts: []aiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", strings.TrimRight(s.cfg.Endpoint, "/"), model, s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed aiResponseBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("upstream returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// recordUsage bumps the request counter on a purchase-based entitlement.
// Counting failures do not fail the request itself.
func (s *AIService) recordUsage(ctx context.Context, user *domain.User) {
	if user.AIPurchase == nil {
		return
	}
	user.AIPurchase.RequestsMade++
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("ai usage counter update failed", zap.String("user_id", user.ID), zap.Error(err))
	}
}
