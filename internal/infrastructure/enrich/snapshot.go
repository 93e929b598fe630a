package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-authenticity/internal/domain/authenticity"

	"github.com/chromedp/chromedp"
)

// PostingSnapshot renders a posting URL in headless Chrome and backfills
// jd_text for records submitted without a description. Platforms that
// only expose the description through client-side rendering need this.
type PostingSnapshot struct {
	timeout time.Duration
}

func NewPostingSnapshot(timeout time.Duration) *PostingSnapshot {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &PostingSnapshot{timeout: timeout}
}

func (s *PostingSnapshot) Fetch(ctx context.Context, job *authenticity.JobRecord) error {
	if s == nil || job == nil {
		return nil
	}
	if job.JDText != nil && strings.TrimSpace(*job.JDText) != "" {
		return nil
	}
	postingURL := strings.TrimSpace(job.URL)
	if postingURL == "" {
		return nil
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, s.timeout)
	defer reqCancel()

	var text string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(postingURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`document.body ? document.body.innerText : ""`, &text),
	)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", postingURL, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("snapshot %s: empty body", postingURL)
	}

	job.JDText = &text
	return nil
}
