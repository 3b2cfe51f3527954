package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRole(t *testing.T) {
	tests := []struct {
		role  Role
		valid bool
		label string
	}{
		{RoleUser, true, "You"},
		{RoleAssistant, true, "Assistant"},
		{Role("system"), false, "system"},
		{Role(""), false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.role.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	u := UserMessage("hello")
	if u.Role != RoleUser || u.Content != "hello" {
		t.Errorf("UserMessage() = %+v", u)
	}

	a := AssistantMessage("Hi there")
	if a.Role != RoleAssistant || a.Content != "Hi there" {
		t.Errorf("AssistantMessage() = %+v", a)
	}

	if a.String() != "assistant: Hi there" {
		t.Errorf("String() = %q", a.String())
	}
}

func TestWireFieldNames(t *testing.T) {
	data, err := json.Marshal(ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"message":"hello"}` {
		t.Errorf("ChatRequest JSON = %s", data)
	}

	data, err = json.Marshal(ChatResponse{Response: "Hi"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"response":"Hi"}` {
		t.Errorf("ChatResponse JSON = %s", data)
	}

	data, err = json.Marshal(ErrorResponse{Detail: "boom"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"detail":"boom"}` {
		t.Errorf("ErrorResponse JSON = %s", data)
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	if p.Name == "" {
		t.Fatal("DefaultProfile() has no name")
	}
	if len(p.Skills) != 4 {
		t.Errorf("len(Skills) = %d, want 4", len(p.Skills))
	}
	if len(p.Projects) != 6 {
		t.Errorf("len(Projects) = %d, want 6", len(p.Projects))
	}

	featured := p.FeaturedProjects()
	if len(featured) != 1 || featured[0].Title != "Akshar Mitra" {
		t.Errorf("FeaturedProjects() = %+v", featured)
	}

	if got := p.Headline(); got != "Hi, I’m Rashi Sahu." {
		t.Errorf("Headline() = %q", got)
	}
}

func TestProfileMarkdown(t *testing.T) {
	md := DefaultProfile().Markdown()

	wants := []string{
		"## Skills",
		"- **Database**: MongoDB, MySQL, PostgreSQL",
		"## Featured Projects",
		"### Akshar Mitra `Hackathon Winner 🏆`",
		"**SCIE PUBLICATION**",
		"- Live: https://bubble-game-5ouz.onrender.com",
		"[GitHub](https://github.com/rashi125)",
	}
	for _, want := range wants {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q", want)
		}
	}

	// Projects without a deployment have no live link
	jobIdx := strings.Index(md, "### Job Search Platform")
	nextIdx := strings.Index(md, "### Two Good Co Clone")
	if jobIdx < 0 || nextIdx < 0 {
		t.Fatal("expected both project headings")
	}
	if strings.Contains(md[jobIdx:nextIdx], "- Live:") {
		t.Error("Job Search Platform should not have a live link")
	}
}

func TestProfileMarkdownFeaturedFirst(t *testing.T) {
	p := DefaultProfile()
	md := p.Markdown()

	featuredIdx := strings.Index(md, "## Featured Projects")
	akshar := strings.Index(md, "### Akshar Mitra")
	moreIdx := strings.Index(md, "## More Projects")
	chicago := strings.Index(md, "### Chicago Table Data")
	if featuredIdx < 0 || moreIdx < 0 {
		t.Fatalf("expected featured and more sections, got:\n%s", md)
	}
	if !(featuredIdx < akshar && akshar < moreIdx && moreIdx < chicago) {
		t.Errorf("section order: featured=%d akshar=%d more=%d chicago=%d",
			featuredIdx, akshar, moreIdx, chicago)
	}
	if strings.Count(md, "### Akshar Mitra") != 1 {
		t.Error("featured project listed more than once")
	}

	for i := range p.Projects {
		p.Projects[i].Featured = false
	}
	md = p.Markdown()
	if strings.Contains(md, "## Featured Projects") || !strings.Contains(md, "## Projects") {
		t.Errorf("without featured projects expected a plain Projects heading")
	}
}

func TestProfileBodyOmitsIntro(t *testing.T) {
	p := DefaultProfile()
	body := p.Body()

	if strings.Contains(body, p.Tagline) {
		t.Error("Body() should not repeat the tagline")
	}
	if strings.Contains(body, strings.ToUpper(p.Availability)) {
		t.Error("Body() should not repeat the availability")
	}
	if !strings.Contains(body, "## Skills") {
		t.Error("Body() missing skills")
	}

	md := p.Markdown()
	if !strings.Contains(md, p.Tagline) || !strings.HasSuffix(md, body) {
		t.Error("Markdown() should be the intro followed by Body()")
	}
}

func TestEmptyProfileMarkdown(t *testing.T) {
	if md := (Profile{}).Markdown(); md != "" {
		t.Errorf("Markdown() of empty profile = %q, want empty", md)
	}
}
