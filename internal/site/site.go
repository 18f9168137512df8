// Package site loads the firm's static configuration: contact details,
// practice areas, team, city landing pages and legal texts.
package site

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/util"
)

//go:embed site.yaml
var defaultYAML []byte

type Contact struct {
	Phone    string  `yaml:"phone"`
	WhatsApp string  `yaml:"whatsapp"`
	Email    string  `yaml:"email"`
	Address  string  `yaml:"address"`
	Hours    string  `yaml:"hours"`
	HoursEn  *string `yaml:"hours_en"`
}

type Service struct {
	Slug      string  `yaml:"slug"`
	Icon      string  `yaml:"icon"`
	Title     string  `yaml:"title"`
	TitleEn   *string `yaml:"title_en"`
	Excerpt   string  `yaml:"excerpt"`
	ExcerptEn *string `yaml:"excerpt_en"`
	Content   string  `yaml:"content"`
	ContentEn *string `yaml:"content_en"`
}

func (s *Service) Field(name string) (string, *string) {
	switch name {
	case i18n.FieldTitle, i18n.FieldName:
		return s.Title, s.TitleEn
	case i18n.FieldExcerpt:
		return s.Excerpt, s.ExcerptEn
	case i18n.FieldContent:
		return s.Content, s.ContentEn
	}
	return "", nil
}

type TeamMember struct {
	Slug   string  `yaml:"slug"`
	Name   string  `yaml:"name"`
	Role   string  `yaml:"role"`
	RoleEn *string `yaml:"role_en"`
	Bio    string  `yaml:"bio"`
	BioEn  *string `yaml:"bio_en"`
	Photo  string  `yaml:"photo"`
	Bar    string  `yaml:"bar"`
}

func (m *TeamMember) Field(name string) (string, *string) {
	switch name {
	case i18n.FieldName, i18n.FieldTitle:
		return m.Name, nil
	case i18n.FieldRole:
		return m.Role, m.RoleEn
	case i18n.FieldBio, i18n.FieldContent:
		return m.Bio, m.BioEn
	}
	return "", nil
}

type City struct {
	Slug     string  `yaml:"slug"`
	Name     string  `yaml:"name"`
	Province string  `yaml:"province"`
	Intro    string  `yaml:"intro"`
	IntroEn  *string `yaml:"intro_en"`
}

func (c *City) Field(name string) (string, *string) {
	switch name {
	case i18n.FieldName, i18n.FieldTitle:
		return c.Name, nil
	case i18n.FieldContent, i18n.FieldDescription:
		return c.Intro, c.IntroEn
	}
	return "", nil
}

type LegalPage struct {
	Slug      string  `yaml:"slug"`
	Title     string  `yaml:"title"`
	TitleEn   *string `yaml:"title_en"`
	Content   string  `yaml:"content"`
	ContentEn *string `yaml:"content_en"`
}

func (p *LegalPage) Field(name string) (string, *string) {
	switch name {
	case i18n.FieldTitle:
		return p.Title, p.TitleEn
	case i18n.FieldContent:
		return p.Content, p.ContentEn
	}
	return "", nil
}

// Config is loaded once at startup and never mutated.
type Config struct {
	Name          string       `yaml:"name"`
	LegalName     string       `yaml:"legal_name"`
	Tagline       string       `yaml:"tagline"`
	TaglineEn     *string      `yaml:"tagline_en"`
	Contact       Contact      `yaml:"contact"`
	Services      []Service    `yaml:"services"`
	Team          []TeamMember `yaml:"team"`
	Cities        []City       `yaml:"cities"`
	Legal         []LegalPage  `yaml:"legal"`
	SocialProfile []string     `yaml:"social_profiles"`
}

func (c *Config) Field(name string) (string, *string) {
	if name == "tagline" {
		return c.Tagline, c.TaglineEn
	}
	return "", nil
}

// Load parses the embedded site configuration.
func Load() (*Config, error) {
	return Parse(defaultYAML)
}

// Parse decodes and validates a site configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("site config: name is required")
	}
	if err := checkSlugs("service", len(c.Services), func(i int) string { return c.Services[i].Slug }); err != nil {
		return err
	}
	if err := checkSlugs("team member", len(c.Team), func(i int) string { return c.Team[i].Slug }); err != nil {
		return err
	}
	if err := checkSlugs("city", len(c.Cities), func(i int) string { return c.Cities[i].Slug }); err != nil {
		return err
	}
	return checkSlugs("legal page", len(c.Legal), func(i int) string { return c.Legal[i].Slug })
}

func checkSlugs(kind string, n int, slug func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		s := slug(i)
		if !util.IsValidSlug(s) {
			return fmt.Errorf("site config: invalid %s slug %q", kind, s)
		}
		if seen[s] {
			return fmt.Errorf("site config: duplicate %s slug %q", kind, s)
		}
		seen[s] = true
	}
	return nil
}

func (c *Config) Service(slug string) (*Service, bool) {
	for i := range c.Services {
		if c.Services[i].Slug == slug {
			return &c.Services[i], true
		}
	}
	return nil, false
}

func (c *Config) City(slug string) (*City, bool) {
	for i := range c.Cities {
		if c.Cities[i].Slug == slug {
			return &c.Cities[i], true
		}
	}
	return nil, false
}

func (c *Config) LegalPage(slug string) (*LegalPage, bool) {
	for i := range c.Legal {
		if c.Legal[i].Slug == slug {
			return &c.Legal[i], true
		}
	}
	return nil, false
}
