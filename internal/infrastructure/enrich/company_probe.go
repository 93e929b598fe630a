package enrich

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"job-authenticity/internal/domain/authenticity"

	"github.com/gocolly/colly/v2"
)

// CompanyProbe visits the claimed company website and checks that the
// site actually presents the company name. The verdict lands in
// company_info.domain_matches_name when the submitter left it unset.
type CompanyProbe struct {
	timeout time.Duration
}

func NewCompanyProbe(timeout time.Duration) *CompanyProbe {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CompanyProbe{timeout: timeout}
}

func (p *CompanyProbe) Probe(ctx context.Context, job *authenticity.JobRecord) error {
	if p == nil || job == nil || job.CompanyInfo == nil {
		return nil
	}
	if job.CompanyInfo.DomainMatchesName != nil {
		return nil
	}
	domain := ""
	if job.CompanyInfo.WebsiteDomain != nil {
		domain = strings.TrimSpace(*job.CompanyInfo.WebsiteDomain)
	}
	if domain == "" || strings.TrimSpace(job.CompanyName) == "" {
		return nil
	}

	siteURL := domain
	if !strings.HasPrefix(siteURL, "http://") && !strings.HasPrefix(siteURL, "https://") {
		siteURL = "https://" + siteURL
	}

	allowed := hostFromURL(siteURL)
	var c *colly.Collector
	if allowed == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(allowed, "www."+allowed))
	}
	c.SetRequestTimeout(p.timeout)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: 300 * time.Millisecond})

	var pageTitle string
	var bodyText string
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if strings.TrimSpace(pageTitle) == "" {
			pageTitle = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("body", func(e *colly.HTMLElement) {
		bodyText = strings.TrimSpace(e.Text)
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := c.Visit(siteURL); err != nil {
		return fmt.Errorf("probe %s: %w", domain, err)
	}
	c.Wait()
	if reqErr != nil {
		return fmt.Errorf("probe %s: %w", domain, reqErr)
	}

	match := nameAppearsOnSite(job.CompanyName, pageTitle, bodyText)
	job.CompanyInfo.DomainMatchesName = &match
	return nil
}

// nameAppearsOnSite tokenizes the company name and requires a majority of
// tokens on the page. Legal suffixes are ignored so "Acme Corp Pte Ltd"
// still matches a site that only says "Acme Corp".
func nameAppearsOnSite(companyName, pageTitle, bodyText string) bool {
	haystack := strings.ToLower(pageTitle + " " + bodyText)
	if strings.TrimSpace(haystack) == "" {
		return false
	}

	tokens := strings.Fields(strings.ToLower(companyName))
	kept := tokens[:0]
	for _, tok := range tokens {
		if legalSuffixes[strings.Trim(tok, ".,")] {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return false
	}

	hits := 0
	for _, tok := range kept {
		if strings.Contains(haystack, tok) {
			hits++
		}
	}
	return hits*2 > len(kept)
}

var legalSuffixes = map[string]bool{
	"inc":  true,
	"llc":  true,
	"ltd":  true,
	"pte":  true,
	"pt":   true,
	"corp": true,
	"co":   true,
	"gmbh": true,
	"bv":   true,
	"plc":  true,
}

func hostFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}
