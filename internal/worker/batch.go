package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/credlab/credence/internal/model"
)

// Auditor defines the interface for auditing a single URL
type Auditor interface {
	AuditURL(ctx context.Context, url string) (*model.AuditReport, error)
}

// AuditJob represents a single-URL audit job
type AuditJob struct {
	URL     string
	Auditor Auditor
}

// Execute executes the audit job
func (j *AuditJob) Execute(ctx context.Context) Result {
	report, err := j.Auditor.AuditURL(ctx, j.URL)
	return &AuditResult{
		URL:    j.URL,
		Report: report,
		Error:  err,
	}
}

// AuditResult represents the result of an audit job
type AuditResult struct {
	URL    string
	Report *model.AuditReport
	Error  error
}

// GetError returns the error from the audit result
func (r *AuditResult) GetError() error {
	return r.Error
}

// BatchProcessor audits multiple URLs concurrently
type BatchProcessor struct {
	auditor     Auditor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(auditor Auditor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		auditor:     auditor,
		concurrency: concurrency,
	}
}

// ProcessURLs audits multiple URLs concurrently
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*AuditResult {
	if len(urls) == 0 {
		return []*AuditResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&AuditJob{
			URL:     url,
			Auditor: b.auditor,
		})
	}

	results := pool.Wait()

	auditResults := make([]*AuditResult, len(results))
	for i, result := range results {
		auditResults[i] = result.(*AuditResult)
	}

	return auditResults
}

// ProcessFile reads URLs from a file and audits them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AuditResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file (one per line), skipping blank
// lines and # comments and deduplicating.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
