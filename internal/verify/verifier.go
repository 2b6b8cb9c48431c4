// Package verify checks source URLs for accessibility and freshness and
// derives reputation scores from the results.
package verify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/credlab/credence/internal/model"
	"github.com/credlab/credence/internal/util"
)

const verifyMaxRetries = 3

// verifySleepFunc is the sleep function used between retries (injectable for tests)
var verifySleepFunc = time.Sleep

const (
	staleAfterDays     = 365
	veryStaleAfterDays = 3 * 365
)

// Verifier verifies source links concurrently
type Verifier struct {
	httpClient *http.Client
	userAgent  string
	maxWorkers int
}

// NewVerifier creates a new verifier from config
func NewVerifier(cfg *model.Config) *Verifier {
	maxWorkers := cfg.Concurrency.VerifyWorkers
	if maxWorkers <= 0 {
		maxWorkers = 20
	}

	return &Verifier{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  cfg.HTTP.UserAgent,
		maxWorkers: maxWorkers,
	}
}

// Verify verifies all sources concurrently. Results are positionally
// aligned with the input.
func (v *Verifier) Verify(ctx context.Context, sources []model.Source) []model.VerificationResult {
	if len(sources) == 0 {
		return []model.VerificationResult{}
	}

	results := make([]model.VerificationResult, len(sources))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.maxWorkers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s model.Source) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.VerificationResult{
					URL:          s.URL,
					IsAccessible: false,
					Error:        "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.verifySingleWithRetry(ctx, s.URL)
		}(i, src)
	}

	wg.Wait()

	return results
}

// verifySingleWithRetry retries transient failures with linear backoff
func (v *Verifier) verifySingleWithRetry(ctx context.Context, url string) model.VerificationResult {
	var result model.VerificationResult

	for attempt := 1; attempt <= verifyMaxRetries; attempt++ {
		result = v.verifySingle(ctx, url)
		if result.Error == "" || !isTransient(result) {
			return result
		}
		if attempt < verifyMaxRetries {
			verifySleepFunc(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}

	return result
}

// isTransient reports whether a failed verification is worth retrying.
// Hard 4xx outcomes are final; network errors and 5xx are not.
func isTransient(r model.VerificationResult) bool {
	if r.StatusCode >= 400 && r.StatusCode < 500 {
		return false
	}
	return true
}

// verifySingle performs one HEAD check of a source URL
func (v *Verifier) verifySingle(ctx context.Context, url string) model.VerificationResult {
	result := model.VerificationResult{
		URL:          url,
		IsAccessible: false,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.IsDead = true
		return result
	}

	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.IsDead = true
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.IsAccessible = true
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		result.IsDead = true
	}

	if finalURL := resp.Request.URL.String(); finalURL != url {
		result.RedirectURL = finalURL
	}

	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if parsed, err := http.ParseTime(lm); err == nil {
			result.LastModified = &parsed
			age := int(time.Since(parsed).Hours() / 24)
			result.AgeDays = &age
			result.IsStale = age > staleAfterDays
			result.IsVeryStale = age > veryStaleAfterDays
		}
	}

	if !result.IsAccessible && result.Error == "" {
		result.Error = fmt.Sprintf("status %d", resp.StatusCode)
	}

	// Some servers reject HEAD outright; treat 405 as accessible enough.
	if resp.StatusCode == http.StatusMethodNotAllowed {
		result.IsAccessible = true
		result.Error = ""
	}

	if result.Error != "" {
		result.Error = strings.TrimSpace(result.Error)
	}

	return result
}
