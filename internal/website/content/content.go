// Package content holds the static copy of the Northbeam site.
package content

import "github.com/northbeam/website/internal/website"

const (
	AgencyName = "Northbeam"
	Email      = "hello@northbeam.digital"
)

// Nav returns the main navigation links.
func Nav() []website.NavLink {
	return []website.NavLink{
		{Label: "Services", URL: "/services"},
		{Label: "Work", URL: "/#work"},
		{Label: "Clients", URL: "/#testimonials"},
		{Label: "About", URL: "/about"},
	}
}

// NavCTA is the button at the end of the navigation.
func NavCTA() website.NavLink {
	return website.NavLink{Label: "Start a project", URL: "/#contact"}
}

// Features returns the "why us" cards.
func Features() []website.Feature {
	return []website.Feature{
		{Icon: "◆", Title: "Senior people only", Description: "The people who pitch are the people who build. No juniors learning on your budget."},
		{Icon: "◎", Title: "Strategy before pixels", Description: "Every engagement starts with a two-week discovery sprint and a written plan you own."},
		{Icon: "↯", Title: "Fast by default", Description: "Sites that load in under a second on a mid-range phone, measured on every release."},
		{Icon: "◐", Title: "Accessible", Description: "WCAG 2.1 AA is the floor, tested with screen readers and keyboards, not just linters."},
		{Icon: "✦", Title: "Measurable results", Description: "Analytics and conversion goals are wired up on day one so we can show what moved."},
		{Icon: "∞", Title: "Here after launch", Description: "Care plans with a named engineer, monthly reports and a four-hour response window."},
	}
}

// Services returns the agency's offerings in display order.
func Services() []website.Service {
	return []website.Service{
		{
			Slug:        "web-development",
			Icon:        "⌘",
			Title:       "Web development",
			Summary:     "Marketing sites, web apps and headless commerce, built to be fast and easy to edit.",
			Highlights:  []string{"Server-rendered Go and modern front ends", "Headless CMS integration", "Performance budgets in CI"},
			Description: "We design the architecture around how your team publishes, not around a framework trend. Every build ships with a content model, a staging environment and documentation your developers will actually read.",
			Phases:      []website.Phase{{Name: "Discovery", Weeks: 2}, {Name: "Design", Weeks: 3}, {Name: "Build", Weeks: 6}, {Name: "Launch", Weeks: 1}},
		},
		{
			Slug:        "brand-identity",
			Icon:        "◈",
			Title:       "Brand identity",
			Summary:     "Names, marks and visual systems for companies that are outgrowing their first logo.",
			Highlights:  []string{"Positioning workshops", "Logo and type systems", "Brand guidelines as a living site"},
			Description: "Identity work starts with what you stand for. We run positioning workshops with your leadership team, then build a visual system that holds up from a favicon to a billboard.",
			Phases:      []website.Phase{{Name: "Positioning", Weeks: 2}, {Name: "Identity concepts", Weeks: 3}, {Name: "Guidelines", Weeks: 2}},
		},
		{
			Slug:        "product-design",
			Icon:        "▣",
			Title:       "Product design",
			Summary:     "Research, prototyping and UI design for SaaS products and internal tools.",
			Highlights:  []string{"User interviews and usability tests", "Clickable prototypes in week two", "Design systems engineers like"},
			Description: "We test with real users early and often. Prototypes are in front of customers within two weeks, and the resulting design system is delivered as code-ready components.",
			Phases:      []website.Phase{{Name: "Research", Weeks: 2}, {Name: "Prototype", Weeks: 2}, {Name: "UI design", Weeks: 4}, {Name: "Handover", Weeks: 1}},
		},
		{
			Slug:        "seo-growth",
			Icon:        "↗",
			Title:       "SEO & growth",
			Summary:     "Technical SEO, content strategy and conversion work that compounds month over month.",
			Highlights:  []string{"Technical audits and structured data", "Editorial calendars", "A/B testing programmes"},
			Description: "Growth work is a programme, not a project. We fix the technical foundation first, then build a content and experimentation rhythm with clear monthly targets.",
			Phases:      []website.Phase{{Name: "Technical audit", Weeks: 2}, {Name: "Foundation fixes", Weeks: 4}, {Name: "Content programme", Weeks: 6}},
		},
	}
}

// ServiceBySlug looks up a service.
func ServiceBySlug(slug string) (website.Service, bool) {
	for _, s := range Services() {
		if s.Slug == slug {
			return s, true
		}
	}
	return website.Service{}, false
}

// Testimonials returns client quotes in display order.
func Testimonials() []website.Testimonial {
	return []website.Testimonial{
		{
			Quote:   "Northbeam rebuilt our site in eight weeks and our demo requests doubled the following quarter.",
			Author:  "Priya Raman",
			Role:    "VP Marketing",
			Company: "Fieldline",
		},
		{
			Quote:   "They asked better questions about our customers than we had asked ourselves.",
			Author:  "Tomás Ferreira",
			Role:    "Founder",
			Company: "Cobalt Coffee Co.",
		},
		{
			Quote:   "The design system they handed over is still the backbone of our product two years later.",
			Author:  "Hannah Osei",
			Role:    "Head of Product",
			Company: "Ledgerly",
		},
		{
			Quote:   "Calm, senior and honest about trade-offs. Exactly what a small team needs from an agency.",
			Author:  "Marcus Lind",
			Role:    "CTO",
			Company: "Tidewater Health",
		},
	}
}

// CTA is the closing call to action.
func CTA() website.CTAConfig {
	return website.CTAConfig{
		Title:       "Have a project in mind?",
		Subtitle:    "Tell us where you are and where you want to be. We reply to every message within one working day.",
		ButtonLabel: "Email " + Email,
		ButtonURL:   "mailto:" + Email,
	}
}

// Footer returns the footer configuration.
func Footer() website.FooterConfig {
	return website.FooterConfig{
		Tagline:   "An independent design and engineering studio.",
		Email:     Email,
		Copyright: "© Northbeam Digital Ltd. All rights reserved.",
		Links: []website.NavLink{
			{Label: "Services", URL: "/services"},
			{Label: "About", URL: "/about"},
			{Label: "Privacy", URL: "/privacy"},
		},
		Social: website.SocialLinks{
			LinkedIn:  "https://www.linkedin.com/company/northbeam-digital",
			Instagram: "https://www.instagram.com/northbeam.digital",
			Dribbble:  "https://dribbble.com/northbeam",
		},
	}
}
