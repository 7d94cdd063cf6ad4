// Package model defines the typed records that make up a resume data
// pool: personal info, the keyed record types (experiences, projects,
// education, certifications, research papers, club activities, hobbies),
// profiles that reference them by ID, and the fully resolved template
// context. Records are decoded from YAML and validated explicitly; a
// record that passes Validate is safe to hand to the renderer.
package model

import (
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"
)

// URL is an absolute URL field. Decoding rejects strings that do not
// parse as absolute URLs, so a populated URL is always usable as-is.
type URL struct {
	*url.URL
}

// ParseURL parses s into a URL, requiring an absolute URL.
func ParseURL(s string) (URL, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return URL{}, fmt.Errorf("invalid URL %q: %w", s, err)
	}
	if !parsed.IsAbs() {
		return URL{}, fmt.Errorf("URL %q is not absolute", s)
	}
	return URL{parsed}, nil
}

// MustParseURL is ParseURL that panics on error, for fixtures and tests.
func MustParseURL(s string) URL {
	u, err := ParseURL(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *URL) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseURL(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u URL) MarshalYAML() (interface{}, error) {
	return u.String(), nil
}

func (u URL) String() string {
	if u.URL == nil {
		return ""
	}
	return u.URL.String()
}

// Equal reports whether two URLs render to the same string.
func (u URL) Equal(v URL) bool {
	return u.String() == v.String()
}

// PersonalInfo is the resume header data, one per run.
type PersonalInfo struct {
	Name         string `yaml:"name"`
	Phone        string `yaml:"phone,omitempty"`
	Email        string `yaml:"email,omitempty"`
	LinkedIn     *URL   `yaml:"linkedin,omitempty"`
	GitHub       *URL   `yaml:"github,omitempty"`
	Blog         *URL   `yaml:"blog,omitempty"`
	ProjectsPage *URL   `yaml:"projects_page,omitempty"`
	PyPI         *URL   `yaml:"pypi,omitempty"`
	PassportDev  *URL   `yaml:"passport_dev,omitempty"`
	Location     string `yaml:"location,omitempty"`
}

func (p PersonalInfo) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name: required")
	}
	return nil
}

// SkillCategory groups skills under a category name. Skill categories
// live inline on a profile, never in the shared pools.
type SkillCategory struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

func (s SkillCategory) Validate() error {
	if s.Category == "" {
		return fmt.Errorf("category: required")
	}
	return nil
}

// Experience is one work experience entry. Location is an empty string
// when not given, distinguishing it from the optional URL fields which
// stay absent.
type Experience struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Date         string   `yaml:"date"`
	Location     string   `yaml:"location,omitempty"`
	BulletPoints []string `yaml:"bullet_points,omitempty"`
	Link         *URL     `yaml:"link,omitempty"`
}

func (e Experience) Validate() error {
	switch {
	case e.Title == "":
		return fmt.Errorf("title: required")
	case e.Company == "":
		return fmt.Errorf("company: required")
	case e.Date == "":
		return fmt.Errorf("date: required")
	}
	return nil
}

// Project is one project entry.
type Project struct {
	Name        string `yaml:"name"`
	Link        *URL   `yaml:"link,omitempty"`
	Description string `yaml:"description"`
}

func (p Project) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("name: required")
	case p.Description == "":
		return fmt.Errorf("description: required")
	}
	return nil
}

// Education is one education entry.
type Education struct {
	Institution string `yaml:"institution"`
	Location    string `yaml:"location"`
	Degree      string `yaml:"degree"`
	Notes       string `yaml:"notes,omitempty"`
}

func (e Education) Validate() error {
	switch {
	case e.Institution == "":
		return fmt.Errorf("institution: required")
	case e.Location == "":
		return fmt.Errorf("location: required")
	case e.Degree == "":
		return fmt.Errorf("degree: required")
	}
	return nil
}

// Certification is one certification or award. The credential link is
// the one URL field that is required rather than optional.
type Certification struct {
	Name           string `yaml:"name"`
	Issuer         string `yaml:"issuer"`
	CredentialLink *URL   `yaml:"credential_link"`
}

func (c Certification) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("name: required")
	case c.Issuer == "":
		return fmt.Errorf("issuer: required")
	case c.CredentialLink == nil:
		return fmt.Errorf("credential_link: required")
	}
	return nil
}

// PaperStatus is the publication status of a research paper.
type PaperStatus string

const (
	StatusPublished     PaperStatus = "Published"
	StatusInPreparation PaperStatus = "In Preparation"
	StatusSubmitted     PaperStatus = "Submitted"
	StatusPreprint      PaperStatus = "Preprint"
)

var paperStatuses = map[PaperStatus]bool{
	StatusPublished:     true,
	StatusInPreparation: true,
	StatusSubmitted:     true,
	StatusPreprint:      true,
}

// ResearchPaper is one research paper or publication.
type ResearchPaper struct {
	Title   string      `yaml:"title"`
	Authors string      `yaml:"authors"`
	Status  PaperStatus `yaml:"status"`
	Link    *URL        `yaml:"link,omitempty"`
}

func (r ResearchPaper) Validate() error {
	switch {
	case r.Title == "":
		return fmt.Errorf("title: required")
	case r.Authors == "":
		return fmt.Errorf("authors: required")
	case r.Status == "":
		return fmt.Errorf("status: required")
	case !paperStatuses[r.Status]:
		return fmt.Errorf("status: %q is not one of Published, In Preparation, Submitted, Preprint", r.Status)
	}
	return nil
}

// ClubActivity is one club or association entry.
type ClubActivity struct {
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Date        string `yaml:"date"`
	Description string `yaml:"description,omitempty"`
	Link        *URL   `yaml:"link,omitempty"`
}

func (c ClubActivity) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("name: required")
	case c.Role == "":
		return fmt.Errorf("role: required")
	case c.Date == "":
		return fmt.Errorf("date: required")
	}
	return nil
}

// Hobby is one hobby or interest.
type Hobby struct {
	Name string `yaml:"name"`
	Link *URL   `yaml:"link,omitempty"`
}

func (h Hobby) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("name: required")
	}
	return nil
}

// Profile selects and orders shared records for one resume variant.
// The seven list fields hold record IDs, not records; the order of each
// list is the display order after resolution.
type Profile struct {
	Title                string          `yaml:"title"`
	Summary              string          `yaml:"summary"`
	Skills               []SkillCategory `yaml:"skills,omitempty"`
	Experiences          []string        `yaml:"experiences,omitempty"`
	Projects             []string        `yaml:"projects,omitempty"`
	Education            []string        `yaml:"education,omitempty"`
	Certifications       []string        `yaml:"certifications,omitempty"`
	ResearchPapers       []string        `yaml:"research_papers,omitempty"`
	ClubsAndAssociations []string        `yaml:"clubs_and_associations,omitempty"`
	Hobbies              []string        `yaml:"hobbies,omitempty"`
}

func (p Profile) Validate() error {
	switch {
	case p.Title == "":
		return fmt.Errorf("title: required")
	case p.Summary == "":
		return fmt.Errorf("summary: required")
	}
	for i, s := range p.Skills {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("skills[%d]: %w", i, err)
		}
	}
	return nil
}

// SharedData is the full pool of keyed records available to every
// profile, loaded once per run and read-only afterwards.
type SharedData struct {
	Experiences          map[string]Experience
	Projects             map[string]Project
	Education            map[string]Education
	Certifications       map[string]Certification
	ResearchPapers       map[string]ResearchPaper
	ClubsAndAssociations map[string]ClubActivity
	Hobbies              map[string]Hobby
	Profiles             map[string]Profile
}

// NewSharedData returns a SharedData with every pool allocated empty.
func NewSharedData() *SharedData {
	return &SharedData{
		Experiences:          map[string]Experience{},
		Projects:             map[string]Project{},
		Education:            map[string]Education{},
		Certifications:       map[string]Certification{},
		ResearchPapers:       map[string]ResearchPaper{},
		ClubsAndAssociations: map[string]ClubActivity{},
		Hobbies:              map[string]Hobby{},
		Profiles:             map[string]Profile{},
	}
}

// Sections holds the resolved records for one rendered resume, in the
// order the profile listed them.
type Sections struct {
	Skills               []SkillCategory
	Experiences          []Experience
	Projects             []Project
	Education            []Education
	Certifications       []Certification
	ResearchPapers       []ResearchPaper
	ClubsAndAssociations []ClubActivity
	Hobbies              []Hobby
}

// TemplateContext is the fully resolved payload handed to the renderer.
type TemplateContext struct {
	PersonalInfo PersonalInfo
	Title        string
	Summary      string
	Sections     Sections
}

// Validate re-checks the resolved context so that whatever reaches the
// renderer is schema-correct, independent of how it was assembled.
func (c TemplateContext) Validate() error {
	if err := c.PersonalInfo.Validate(); err != nil {
		return fmt.Errorf("personal_info: %w", err)
	}
	switch {
	case c.Title == "":
		return fmt.Errorf("title: required")
	case c.Summary == "":
		return fmt.Errorf("summary: required")
	}
	for i, s := range c.Sections.Skills {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sections.skills[%d]: %w", i, err)
		}
	}
	for i, e := range c.Sections.Experiences {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("sections.experiences[%d]: %w", i, err)
		}
	}
	for i, p := range c.Sections.Projects {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("sections.projects[%d]: %w", i, err)
		}
	}
	for i, e := range c.Sections.Education {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("sections.education[%d]: %w", i, err)
		}
	}
	for i, c2 := range c.Sections.Certifications {
		if err := c2.Validate(); err != nil {
			return fmt.Errorf("sections.certifications[%d]: %w", i, err)
		}
	}
	for i, r := range c.Sections.ResearchPapers {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("sections.research_papers[%d]: %w", i, err)
		}
	}
	for i, c2 := range c.Sections.ClubsAndAssociations {
		if err := c2.Validate(); err != nil {
			return fmt.Errorf("sections.clubs_and_associations[%d]: %w", i, err)
		}
	}
	for i, h := range c.Sections.Hobbies {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("sections.hobbies[%d]: %w", i, err)
		}
	}
	return nil
}
