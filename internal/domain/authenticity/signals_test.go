package authenticity

import "testing"

func TestDeriveSignals_NoPoster(t *testing.T) {
	out := DeriveSignals(JobRecord{CompanyName: "Acme"})
	if !out.NoPosterIdentity {
		t.Fatalf("missing poster must set no_poster_identity")
	}
	if out.PosterHasNoCompany || out.PosterCompanyMismatch || out.PosterLocationMismatch {
		t.Fatalf("other poster signals must stay false without poster data: %+v", out)
	}
}

func TestDeriveSignals_CompanyDomain(t *testing.T) {
	match := true
	out := DeriveSignals(JobRecord{CompanyInfo: &CompanyInfo{DomainMatchesName: &match}})
	if out.CompanyDomainMismatch {
		t.Fatalf("matching domain must not flag a mismatch")
	}

	match = false
	out = DeriveSignals(JobRecord{CompanyInfo: &CompanyInfo{DomainMatchesName: &match}})
	if !out.CompanyDomainMismatch {
		t.Fatalf("non-matching domain must flag a mismatch")
	}

	// Unknown stays unflagged; absence is not evidence.
	out = DeriveSignals(JobRecord{CompanyInfo: &CompanyInfo{}})
	if out.CompanyDomainMismatch {
		t.Fatalf("unknown domain match must not flag a mismatch")
	}
}

func TestDeriveSignals_PosterMismatches(t *testing.T) {
	job := JobRecord{
		CompanyName: "Acme Corp",
		Location:    "Austin, TX",
		PosterInfo: &PosterInfo{
			Name:     strPtr("Jordan Lee"),
			Title:    strPtr("Recruiter"),
			Company:  strPtr("Globex"),
			Location: strPtr("Lagos"),
		},
	}
	out := DeriveSignals(job)
	if out.NoPosterIdentity {
		t.Fatalf("named poster must not be anonymous")
	}
	if out.PosterHasNoCompany {
		t.Fatalf("poster has a company")
	}
	if !out.PosterCompanyMismatch {
		t.Fatalf("Globex != Acme Corp must flag a company mismatch")
	}
	if !out.PosterLocationMismatch {
		t.Fatalf("Lagos != Austin must flag a location mismatch")
	}
}

func TestDeriveSignals_LocationGranularity(t *testing.T) {
	job := JobRecord{
		Location:   "Austin, TX",
		PosterInfo: &PosterInfo{Name: strPtr("J"), Location: strPtr("Austin")},
	}
	if out := DeriveSignals(job); out.PosterLocationMismatch {
		t.Fatalf("coarser poster location must not flag a mismatch")
	}
}

func TestDeriveSignals_BlankCompany(t *testing.T) {
	job := JobRecord{
		CompanyName: "Acme",
		PosterInfo:  &PosterInfo{Name: strPtr("J"), Company: strPtr("   ")},
	}
	out := DeriveSignals(job)
	if !out.PosterHasNoCompany {
		t.Fatalf("blank company must count as no company")
	}
	if out.PosterCompanyMismatch {
		t.Fatalf("blank company must not also count as a mismatch")
	}
}
