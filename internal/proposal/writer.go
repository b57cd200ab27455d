package proposal

import (
	"fmt"
	"strings"
	"time"

	"tenderhunt-engine/internal/domain"
)

// Writer assembles a markdown proposal for one tender from fixed section
// templates filled with tender and company details.
type Writer struct {
	profile domain.CompanyProfile
}

func NewWriter(profile domain.CompanyProfile) *Writer {
	return &Writer{profile: profile}
}

func (w *Writer) Generate(t domain.Tender) string {
	now := time.Now()

	var b strings.Builder
	title := t.Title
	if title == "" {
		title = "Tender Opportunity"
	}
	fmt.Fprintf(&b, "# Proposal: %s\n\n", title)
	fmt.Fprintf(&b, "**Tender Reference:** %s\n", orNA(t.SourceURL))
	fmt.Fprintf(&b, "**Submission Date:** %s\n\n", now.Format("January 2, 2006"))

	sections := []struct {
		heading string
		body    string
	}{
		{"Executive Summary", w.executiveSummary(t)},
		{"Company Profile", w.companyOverview()},
		{"Understanding of Requirements", w.requirementsAnalysis(t)},
		{"Proposed Solution", w.proposedSolution()},
		{"Project Timeline", w.projectTimeline()},
		{"Relevant Experience", w.relevantExperience(t)},
		{"Pricing", w.pricing(t)},
		{"Terms and Conditions", w.termsConditions()},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "## %s\n%s\n\n", s.heading, s.body)
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "**Proposal Metadata:**\n")
	fmt.Fprintf(&b, "- Generated: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Tender ID: %s\n", orNA(t.SourceURL))
	fmt.Fprintf(&b, "- Company: %s\n", orNA(w.profile.Name))
	b.WriteString("- Generation Method: Template-Based\n")
	return b.String()
}

func (w *Writer) executiveSummary(t domain.Tender) string {
	name := w.profile.Name
	if name == "" {
		name = "Our Company"
	}

	investment := "a significant investment"
	if t.Budget != "" {
		investment = "a " + t.Budget + " investment"
	}
	industry := t.Industry
	if industry == "" {
		industry = "technology infrastructure"
	}

	services := w.profile.CoreServices
	if len(services) > 3 {
		services = services[:3]
	}
	serviceList := strings.Join(services, ", ")
	if serviceList == "" {
		serviceList = "technology solutions"
	}

	years := w.profile.YearsInOperation
	if years == 0 {
		years = 7
	}

	return fmt.Sprintf(
		"%s is pleased to submit this comprehensive proposal for the **%s**. "+
			"This project represents %s in %s that aligns with our core competencies in %s.\n\n"+
			"With %d years of experience and a proven track record of delivering similar projects, "+
			"we are confident in our ability to deliver exceptional value.",
		name, t.Title, investment, industry, serviceList, years)
}

func (w *Writer) companyOverview() string {
	name := w.profile.Name
	if name == "" {
		name = "Our Company"
	}
	hq := w.profile.Headquarters
	if hq == "" {
		hq = "our headquarters"
	}
	years := w.profile.YearsInOperation
	if years == 0 {
		years = 7
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"%s is a technology solutions provider headquartered in %s. "+
			"With %d years of operation, we have established ourselves as a trusted partner "+
			"for organizations seeking reliable and scalable technology solutions.\n\n",
		name, hq, years)

	if len(w.profile.CoreServices) > 0 {
		b.WriteString("**Our Core Services Include:**\n")
		for _, s := range w.profile.CoreServices {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(w.profile.Certifications) > 0 {
		b.WriteString("**Certifications & Partnerships:**\n")
		for _, c := range w.profile.Certifications {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Writer) requirementsAnalysis(t domain.Tender) string {
	var b strings.Builder
	b.WriteString("Based on our review of the tender documentation, we have identified " +
		"the following key requirements and objectives:\n\n")

	if len(t.Requirements) > 0 {
		b.WriteString("**Key Requirements:**\n")
		for _, r := range t.Requirements {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "**Project Objectives:**\n%s\n\n", t.Description)
	}
	if t.Budget != "" {
		fmt.Fprintf(&b,
			"**Budget Considerations:**\nThe project budget of %s indicates the scope and "+
				"complexity of this engagement, requiring careful resource allocation.\n\n",
			t.Budget)
	}
	if t.Deadline != "" {
		fmt.Fprintf(&b,
			"**Timeline Requirements:**\nWith a deadline of %s, we will ensure our proposed "+
				"solution is delivered within the required timeframe.",
			t.Deadline)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Writer) proposedSolution() string {
	var b strings.Builder
	b.WriteString("Our proposed solution addresses all identified requirements while " +
		"leveraging our proven expertise and best practices.\n\n")
	b.WriteString("**Our Approach:**\n")
	b.WriteString("1. **Discovery & Analysis:** Requirements gathering and stakeholder engagement\n")
	b.WriteString("2. **Design & Architecture:** Scalable solution design with security by design\n")
	b.WriteString("3. **Development & Implementation:** Agile development with continuous integration\n")
	b.WriteString("4. **Testing & Quality Assurance:** Rigorous testing protocols and quality gates\n")
	b.WriteString("5. **Deployment & Training:** Smooth deployment with comprehensive user training\n")
	b.WriteString("6. **Support & Maintenance:** Ongoing support and continuous improvement\n")

	if len(w.profile.Technologies) > 0 {
		techs := w.profile.Technologies
		if len(techs) > 8 {
			techs = techs[:8]
		}
		b.WriteString("\n**Proposed Technology Stack:**\n")
		for _, tech := range techs {
			fmt.Fprintf(&b, "- %s\n", tech)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Writer) projectTimeline() string {
	return "**Project Duration:** 20 weeks (5 months)\n\n" +
		"**Detailed Timeline:**\n\n" +
		"**Month 1: Foundation**\n" +
		"- Week 1-2: Project kickoff and requirements finalization\n" +
		"- Week 3-4: Infrastructure setup and environment configuration\n\n" +
		"**Month 2-3: Development**\n" +
		"- Week 5-8: Core feature development\n" +
		"- Week 9-12: Advanced features and integration\n\n" +
		"**Month 4: Testing & Integration**\n" +
		"- Week 13-16: System integration, testing and optimization\n\n" +
		"**Month 5: Deployment**\n" +
		"- Week 17-20: Production deployment, training and go-live support"
}

func (w *Writer) relevantExperience(t domain.Tender) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"Our company has successfully delivered projects similar to the **%s**. "+
			"Highlights of our most relevant experience:\n",
		t.Title)

	projects := w.profile.PastProjects
	if len(projects) > 3 {
		projects = projects[:3]
	}
	for i, p := range projects {
		fmt.Fprintf(&b, "\n**Project %d: %s**\n- **Industry:** %s\n", i+1, p.Name, orNA(p.Industry))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Writer) pricing(t domain.Tender) string {
	var b strings.Builder
	b.WriteString("Our pricing is transparent and competitive with no hidden costs.\n\n")
	if t.Budget != "" {
		fmt.Fprintf(&b, "**Project Budget:** %s\n\n", t.Budget)
	}
	b.WriteString("**Pricing Structure:**\nWe propose a **fixed-price model** with " +
		"milestone-based payments.\n\n")
	b.WriteString("**Payment Schedule:**\n")
	b.WriteString("- **30%** upon project initiation\n")
	b.WriteString("- **30%** upon completion of core development\n")
	b.WriteString("- **25%** upon successful testing and integration\n")
	b.WriteString("- **15%** upon final delivery and acceptance")
	return b.String()
}

func (w *Writer) termsConditions() string {
	return "This proposal is valid for 30 days from the date of submission. " +
		"All terms and conditions are subject to mutual agreement and final contract negotiation.\n\n" +
		"**Support and Warranty:**\n" +
		"- 90-day warranty period post-delivery\n" +
		"- Bug fixes and critical issue resolution\n" +
		"- Optional extended support agreements\n\n" +
		"**Change Management:**\n" +
		"- Formal change request process\n" +
		"- Impact assessment and approval workflow\n" +
		"- Transparent pricing for scope changes"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
