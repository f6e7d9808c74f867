// Package openaicls implements ports.Classifier against an OpenAI-compatible
// API. The backend wants a filesystem path, so content is staged to a scoped
// temporary file that is removed on every exit path.
package openaicls

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"

	"curator/internal/config"
	"curator/internal/domain"
	"curator/internal/ports"
)

const (
	backoffBase = 500 * time.Millisecond
	backoffCap  = 8 * time.Second
)

// Classifier labels file content with one of the configured categories.
type Classifier struct {
	client  openai.Client
	model   string
	labels  domain.LabelSet
	limiter *rate.Limiter
	retries int

	// invoke performs one classification attempt; swapped out in tests.
	invoke func(ctx context.Context, stagedPath, ext, prompt string) (string, error)
}

// Classifier implements the classifier port.
var _ ports.Classifier = (*Classifier)(nil)

// New creates a Classifier from the classifier configuration and the closed
// label set.
func New(cfg config.Classifier, labels domain.LabelSet) *Classifier {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retrying is owned here, with backoff, not by the SDK.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	c := &Classifier{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		labels:  labels,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute)/60, 1),
		retries: cfg.MaxAttempts,
	}
	c.invoke = c.generate
	return c
}

// Verify checks the API key by listing the backend's models.
func (c *Classifier) Verify(ctx context.Context) error {
	if _, err := c.client.Models.List(ctx); err != nil {
		return fmt.Errorf("classifier credential rejected: %w", err)
	}
	return nil
}

// Classify stages the content, picks a prompt for the extension and asks the
// model for a label. Transient failures are retried with exponential backoff
// and jitter; a hard daily-quota response aborts with ErrDailyLimitExceeded;
// anything still failing after the final attempt becomes Uncategorized. The
// returned label is always a member of the closed set.
func (c *Classifier) Classify(ctx context.Context, content []byte, ext string) (string, error) {
	staged, err := os.CreateTemp("", "curator-*"+ext)
	if err != nil {
		return domain.Uncategorized, nil
	}
	stagedPath := staged.Name()
	defer os.Remove(stagedPath)

	if _, err := staged.Write(content); err != nil {
		staged.Close()
		return domain.Uncategorized, nil
	}
	if err := staged.Close(); err != nil {
		return domain.Uncategorized, nil
	}

	prompt := domain.PromptFor(ext, c.labels)

	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoffDelay(attempt)); err != nil {
				return "", err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		raw, err := c.invoke(ctx, stagedPath, ext, prompt)
		if err == nil {
			return c.labels.Normalize(raw), nil
		}
		if isDailyLimit(err) {
			return "", ports.ErrDailyLimitExceeded
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return domain.Uncategorized, nil
}

// generate performs one round trip: images travel inline as a data URI,
// everything else is uploaded from the staged file and referenced by handle.
func (c *Classifier) generate(ctx context.Context, stagedPath, ext, prompt string) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt),
	}

	if domain.IsImageExtension(ext) {
		data, err := os.ReadFile(stagedPath)
		if err != nil {
			return "", fmt.Errorf("read staged file: %w", err)
		}
		uri := fmt.Sprintf("data:%s;base64,%s",
			domain.MimeTypeForExtension(ext), base64.StdEncoding.EncodeToString(data))
		parts = append(parts, openai.ImageContentPart(
			openai.ChatCompletionContentPartImageImageURLParam{URL: uri}))
	} else {
		f, err := os.Open(stagedPath)
		if err != nil {
			return "", fmt.Errorf("open staged file: %w", err)
		}
		defer f.Close()

		uploaded, err := c.client.Files.New(ctx, openai.FileNewParams{
			File:    f,
			Purpose: openai.FilePurposeUserData,
		})
		if err != nil {
			return "", fmt.Errorf("upload staged file: %w", err)
		}
		parts = append(parts, openai.FileContentPart(
			openai.ChatCompletionContentPartFileFileParam{
				FileID: openai.String(uploaded.ID),
			}))
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// isDailyLimit recognises the backend's hard quota violation. Only an HTTP
// 429 counts; every other failure is treated as transient.
func isDailyLimit(err error) bool {
	var apierr *openai.Error
	return errors.As(err, &apierr) && apierr.StatusCode == http.StatusTooManyRequests
}

func backoffDelay(attempt int) time.Duration {
	delay := backoffBase << (attempt - 1)
	if delay > backoffCap {
		delay = backoffCap
	}
	return delay + rand.N(delay/2+1)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
