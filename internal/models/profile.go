package models

import (
	"fmt"
	"strings"
)

// Link is a named external link
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SkillGroup is one card of the skills section
type SkillGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Project is one card of the projects section
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Repo        string   `json:"repo"`
	Deployed    string   `json:"deployed,omitempty"`
	Badge       string   `json:"badge,omitempty"`
	Highlight   string   `json:"highlight,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

// Profile holds the static content of the portfolio
type Profile struct {
	Name         string       `json:"name"`
	Handle       string       `json:"handle"`
	Greeting     string       `json:"greeting"`
	Tagline      string       `json:"tagline"`
	Availability string       `json:"availability"`
	Contact      string       `json:"contact"`
	Links        []Link       `json:"links"`
	Skills       []SkillGroup `json:"skills"`
	Projects     []Project    `json:"projects"`
	Footer       string       `json:"footer"`
}

// DefaultProfile returns the portfolio content shipped with the binary
func DefaultProfile() Profile {
	return Profile{
		Name:         "Rashi Sahu",
		Handle:       "Rashi.dev",
		Greeting:     "Hi, I’m",
		Tagline:      "Full-stack developer and published researcher (CGPA: 8.58). I build scalable solutions and AI experiences.",
		Availability: "Available for hire",
		Contact:      "Rohit",
		Links: []Link{
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/rashi-sahu-701b71320/"},
			{Label: "GitHub", URL: "https://github.com/rashi125"},
			{Label: "Resume", URL: "/resume.pdf"},
		},
		Skills: []SkillGroup{
			{Title: "Frontend", Items: []string{"React", "GSAP", "Locomotive", "Tailwind"}},
			{Title: "Backend", Items: []string{"Node.js", "FastAPI", "Firebase", "REST"}},
			{Title: "Database", Items: []string{"MongoDB", "MySQL", "PostgreSQL"}},
			{Title: "Languages", Items: []string{"Python", "C++", "JS", "SQL", "R"}},
		},
		Projects: []Project{
			{
				Title:       "Akshar Mitra",
				Description: "AI-Assisted Dyslexia Detection Platform. Integrated multimodal framework for early screening.",
				Tech:        []string{"React", "FastAPI", "MongoDB"},
				Repo:        "https://github.com/rashi125/Akshar",
				Deployed:    "https://lnkd.in/eDMfgyYP",
				Badge:       "Hackathon Winner 🏆",
				Highlight:   "SCIE Publication",
				Featured:    true,
			},
			{
				Title:       "Chicago Table Data",
				Description: "Real-time data fetching from Chicago API with server-side navigation and PrimeReact UI.",
				Tech:        []string{"PrimeReact", "REST API", "JavaScript"},
				Repo:        "https://github.com/rashi125/PrimeReact-project",
				Deployed:    "https://primereact-project-1.onrender.com/",
				Badge:       "API Integration",
			},
			{
				Title:       "Mental Health Platform",
				Description: "Modular UI components with Firebase auth and real-time database focus on user accessibility and ai chatbot integration",
				Tech:        []string{"React", "TypeScript", "Firebase", "Python"},
				Repo:        "https://github.com/Shiva-005/The-Beacons-A-Clear-Path-in-Uncertain-times.git",
				Badge:       "Healthcare",
			},
			{
				Title:       "Job Search Platform",
				Description: "Developed job listing pages with complex state management, search, and sorting filters.",
				Tech:        []string{"React", "TypeScript", "Firebase", "Python"},
				Repo:        "https://github.com/rashi125/job",
				Badge:       "Job Board",
			},
			{
				Title:       "Two Good Co Clone",
				Description: "High-performance GSAP clone focusing on smooth scrolling and creative UI interactions.",
				Tech:        []string{"GSAP", "Locomotive.js", "JavaScript"},
				Repo:        "https://github.com/rashi125/TWO-GOOD-CO",
				Deployed:    "https://two-good-co-7bfk.onrender.com",
				Badge:       "Frontend Clone",
			},
			{
				Title:       "Bubble Game",
				Description: "Interactive browser-based logic game built to master DOM manipulation and timing logic.",
				Tech:        []string{"JavaScript", "HTML5", "CSS3"},
				Repo:        "https://github.com/rashi125/Bubble-Game",
				Deployed:    "https://bubble-game-5ouz.onrender.com",
				Badge:       "JS Logic",
			},
		},
		Footer: "© 2026 Rashi Sahu. Built with Go & Passion.",
	}
}

// Headline returns the hero line animated by the typing effect
func (p Profile) Headline() string {
	return fmt.Sprintf("%s %s.", p.Greeting, p.Name)
}

// FeaturedProjects returns the projects flagged as featured, in order
func (p Profile) FeaturedProjects() []Project {
	var featured []Project
	for _, proj := range p.Projects {
		if proj.Featured {
			featured = append(featured, proj)
		}
	}
	return featured
}

// Markdown renders the profile document below the hero line: the
// availability and tagline intro followed by Body.
func (p Profile) Markdown() string {
	var sb strings.Builder

	if p.Availability != "" {
		fmt.Fprintf(&sb, "`%s`\n\n", strings.ToUpper(p.Availability))
	}
	if p.Tagline != "" {
		fmt.Fprintf(&sb, "%s\n\n", p.Tagline)
	}

	sb.WriteString(p.Body())
	return sb.String()
}

// Body renders the links, skills, projects and footer. Featured projects
// come first under their own heading.
func (p Profile) Body() string {
	var sb strings.Builder

	if len(p.Links) > 0 {
		links := make([]string, 0, len(p.Links))
		for _, l := range p.Links {
			links = append(links, fmt.Sprintf("[%s](%s)", l.Label, l.URL))
		}
		fmt.Fprintf(&sb, "%s\n\n", strings.Join(links, " · "))
	}

	if len(p.Skills) > 0 {
		sb.WriteString("## Skills\n\n")
		for _, s := range p.Skills {
			fmt.Fprintf(&sb, "- **%s**: %s\n", s.Title, strings.Join(s.Items, ", "))
		}
		sb.WriteString("\n")
	}

	featured := p.FeaturedProjects()
	others := make([]Project, 0, len(p.Projects)-len(featured))
	for _, proj := range p.Projects {
		if !proj.Featured {
			others = append(others, proj)
		}
	}

	if len(featured) > 0 {
		sb.WriteString("## Featured Projects\n\n")
		writeProjects(&sb, featured)
	}
	if len(others) > 0 {
		if len(featured) > 0 {
			sb.WriteString("## More Projects\n\n")
		} else {
			sb.WriteString("## Projects\n\n")
		}
		writeProjects(&sb, others)
	}

	if p.Footer != "" {
		fmt.Fprintf(&sb, "---\n\n%s\n", p.Footer)
	}

	return sb.String()
}

func writeProjects(sb *strings.Builder, projects []Project) {
	for _, proj := range projects {
		title := proj.Title
		if proj.Badge != "" {
			title = fmt.Sprintf("%s `%s`", title, proj.Badge)
		}
		fmt.Fprintf(sb, "### %s\n\n%s\n\n", title, proj.Description)
		if proj.Highlight != "" {
			fmt.Fprintf(sb, "**%s**\n\n", strings.ToUpper(proj.Highlight))
		}
		if len(proj.Tech) > 0 {
			fmt.Fprintf(sb, "*%s*\n\n", strings.Join(proj.Tech, " · "))
		}
		fmt.Fprintf(sb, "- Source: %s\n", proj.Repo)
		if proj.Deployed != "" {
			fmt.Fprintf(sb, "- Live: %s\n", proj.Deployed)
		}
		sb.WriteString("\n")
	}
}
