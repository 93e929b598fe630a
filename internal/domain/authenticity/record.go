package authenticity

import "strings"

type Platform string

const (
	PlatformLinkedIn    Platform = "linkedin"
	PlatformIndeed      Platform = "indeed"
	PlatformGlassdoor   Platform = "glassdoor"
	PlatformCompanySite Platform = "company_site"
	PlatformOther       Platform = "other"
)

// JobRecord is one scraped or submitted job posting. Every nested object
// may be wholly absent; a rule whose data source is missing simply does
// not activate.
type JobRecord struct {
	JobID       string   `json:"job_id"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Platform    Platform `json:"platform"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`

	JDText *string `json:"jd_text"`

	PosterInfo  *PosterInfo  `json:"poster_info"`
	CompanyInfo *CompanyInfo `json:"company_info"`

	PlatformMetadata PlatformMetadata `json:"platform_metadata"`
	DerivedSignals   DerivedSignals   `json:"derived_signals"`
}

type PosterInfo struct {
	Name             *string `json:"name"`
	Title            *string `json:"title"`
	Company          *string `json:"company"`
	Location         *string `json:"location"`
	AccountAgeMonths *int    `json:"account_age_months"`
	// RecentPostCount is the number of other postings by the same poster
	// in the last 7 days.
	RecentPostCount *int `json:"recent_post_count"`
}

type CompanyInfo struct {
	WebsiteDomain     *string  `json:"website_domain"`
	DomainMatchesName *bool    `json:"domain_matches_name"`
	EmployeeCount     *int     `json:"employee_count"`
	ExternalRating    *float64 `json:"external_rating"`
	RecentLayoffs     *bool    `json:"recent_layoffs"`
}

type PlatformMetadata struct {
	PostedDaysAgo  *int  `json:"posted_days_ago"`
	RepostCount    *int  `json:"repost_count"`
	ApplicantCount *int  `json:"applicant_count"`
	ViewCount      *int  `json:"view_count"`
	ActivelyHiring *bool `json:"actively_hiring"`
	EasyApply      *bool `json:"easy_apply"`
}

type DerivedSignals struct {
	CompanyDomainMismatch  bool `json:"company_domain_mismatch"`
	PosterHasNoCompany     bool `json:"poster_has_no_company"`
	PosterLocationMismatch bool `json:"poster_location_mismatch"`
	PosterCompanyMismatch  bool `json:"poster_company_mismatch"`
	NoPosterIdentity       bool `json:"no_poster_identity"`
}

// resolveField walks a dot-path data source against the record. The second
// return value distinguishes "field absent or nil" from a legitimate zero
// value; callers must treat false as "rule does not apply".
func resolveField(job *JobRecord, path string) (any, bool) {
	if job == nil {
		return nil, false
	}

	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		switch path {
		case "job_id":
			return job.JobID, true
		case "title":
			return job.Title, true
		case "company_name":
			return job.CompanyName, true
		case "platform":
			return string(job.Platform), true
		case "location":
			return job.Location, true
		case "url":
			return job.URL, true
		case "jd_text":
			return derefString(job.JDText)
		}
		return nil, false
	}

	switch head {
	case "poster_info":
		p := job.PosterInfo
		if p == nil {
			return nil, false
		}
		switch rest {
		case "name":
			return derefString(p.Name)
		case "title":
			return derefString(p.Title)
		case "company":
			return derefString(p.Company)
		case "location":
			return derefString(p.Location)
		case "account_age_months":
			return derefInt(p.AccountAgeMonths)
		case "recent_post_count":
			return derefInt(p.RecentPostCount)
		}

	case "company_info":
		ci := job.CompanyInfo
		if ci == nil {
			return nil, false
		}
		switch rest {
		case "website_domain":
			return derefString(ci.WebsiteDomain)
		case "domain_matches_name":
			return derefBool(ci.DomainMatchesName)
		case "employee_count":
			return derefInt(ci.EmployeeCount)
		case "external_rating":
			return derefFloat(ci.ExternalRating)
		case "recent_layoffs":
			return derefBool(ci.RecentLayoffs)
		}

	case "platform_metadata":
		m := job.PlatformMetadata
		switch rest {
		case "posted_days_ago":
			return derefInt(m.PostedDaysAgo)
		case "repost_count":
			return derefInt(m.RepostCount)
		case "applicant_count":
			return derefInt(m.ApplicantCount)
		case "view_count":
			return derefInt(m.ViewCount)
		case "actively_hiring":
			return derefBool(m.ActivelyHiring)
		case "easy_apply":
			return derefBool(m.EasyApply)
		}

	case "derived_signals":
		d := job.DerivedSignals
		switch rest {
		case "company_domain_mismatch":
			return d.CompanyDomainMismatch, true
		case "poster_has_no_company":
			return d.PosterHasNoCompany, true
		case "poster_location_mismatch":
			return d.PosterLocationMismatch, true
		case "poster_company_mismatch":
			return d.PosterCompanyMismatch, true
		case "no_poster_identity":
			return d.NoPosterIdentity, true
		}
	}

	return nil, false
}

func derefString(v *string) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

func derefInt(v *int) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

func derefFloat(v *float64) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

func derefBool(v *bool) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}
