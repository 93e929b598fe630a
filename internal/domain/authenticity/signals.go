package authenticity

import "strings"

// DeriveSignals computes the cross-field mismatch booleans from the raw
// poster and company data. Callers use it when an inbound payload carries
// no precomputed derived signals.
func DeriveSignals(job JobRecord) DerivedSignals {
	var out DerivedSignals

	if ci := job.CompanyInfo; ci != nil && ci.DomainMatchesName != nil {
		out.CompanyDomainMismatch = !*ci.DomainMatchesName
	}

	pi := job.PosterInfo
	if pi == nil {
		out.NoPosterIdentity = true
		return out
	}

	out.PosterHasNoCompany = isBlank(pi.Company)
	out.NoPosterIdentity = isBlank(pi.Name) && isBlank(pi.Title)

	if pi.Location != nil && job.Location != "" {
		out.PosterLocationMismatch = !sameLocation(*pi.Location, job.Location)
	}
	if pi.Company != nil && !isBlank(pi.Company) && job.CompanyName != "" {
		out.PosterCompanyMismatch = !strings.EqualFold(
			strings.TrimSpace(*pi.Company),
			strings.TrimSpace(job.CompanyName),
		)
	}

	return out
}

func isBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

// sameLocation tolerates different granularities ("Austin, TX" vs
// "Austin") by accepting containment either way.
func sameLocation(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
