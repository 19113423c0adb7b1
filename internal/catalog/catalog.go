package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/internsim/practice-api/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedFS embed.FS

const embeddedFile = "catalog.yaml"

// Common catalog errors
var (
	ErrEmptyCatalog     = errors.New("catalog defines no projects")
	ErrDuplicateProject = errors.New("duplicate project id")
	ErrInvalidProject   = errors.New("invalid project definition")

	ErrDuplicateAchievement = errors.New("duplicate achievement id")
	ErrInvalidAchievement   = errors.New("invalid achievement definition")
)

// Project is a predefined practice project.
type Project struct {
	ID                 string            `yaml:"id"`
	Title              string            `yaml:"title"`
	Description        string            `yaml:"description"`
	ClientPersona      string            `yaml:"client_persona"`
	ClientMood         string            `yaml:"client_mood"`
	Field              domain.Field      `yaml:"field"`
	Difficulty         domain.Difficulty `yaml:"difficulty"`
	CustomerDifficulty domain.Difficulty `yaml:"customer_difficulty"`
	Level              int               `yaml:"level"`
	Duration           string            `yaml:"duration"`
	Tools              []string          `yaml:"tools"`
}

// Achievement is an unlockable badge. It is earned once the user's value
// for Metric reaches Threshold, and unlocking it grants the rewards once.
type Achievement struct {
	ID           string                   `yaml:"id"`
	Title        string                   `yaml:"title"`
	Description  string                   `yaml:"description"`
	Icon         string                   `yaml:"icon"`
	Category     string                   `yaml:"category"`
	Rarity       domain.Rarity            `yaml:"rarity"`
	XPReward     int                      `yaml:"xp_reward"`
	CreditReward int                      `yaml:"credit_reward"`
	Metric       domain.AchievementMetric `yaml:"metric"`
	Threshold    int                      `yaml:"threshold"`
}

// Earned reports whether stats satisfy the condition of a.
func (a Achievement) Earned(stats domain.AchievementStats) bool {
	return stats.Value(a.Metric) >= a.Threshold
}

type document struct {
	Version      int                     `yaml:"version"`
	Fields       map[domain.Field]string `yaml:"fields"`
	Projects     []Project               `yaml:"projects"`
	Achievements []Achievement           `yaml:"achievements"`
}

// Catalog is an immutable, validated project catalog. It is safe for
// concurrent use.
type Catalog struct {
	projects     []Project
	byID         map[string]Project
	labels       map[domain.Field]string
	achievements []Achievement
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	data, err := embeddedFS.ReadFile(embeddedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return Parse(data)
}

// Load returns the catalog stored at path, or the embedded catalog when
// path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Projects) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		projects: make([]Project, 0, len(doc.Projects)),
		byID:     make(map[string]Project, len(doc.Projects)),
		labels:   make(map[domain.Field]string, len(doc.Fields)),
	}
	for field, label := range doc.Fields {
		if !field.IsValid() {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidProject, field)
		}
		c.labels[field] = label
	}

	for _, p := range doc.Projects {
		if err := validateProject(p); err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, p.ID)
		}
		if p.Tools == nil {
			p.Tools = []string{}
		}
		c.byID[p.ID] = p
		c.projects = append(c.projects, p)
	}

	sort.SliceStable(c.projects, func(i, j int) bool {
		return c.projects[i].Level < c.projects[j].Level
	})

	achievementIDs := make(map[string]struct{}, len(doc.Achievements))
	c.achievements = make([]Achievement, 0, len(doc.Achievements))
	for _, a := range doc.Achievements {
		if a.Rarity == "" {
			a.Rarity = domain.RarityCommon
		}
		if err := validateAchievement(a); err != nil {
			return nil, err
		}
		if _, exists := achievementIDs[a.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAchievement, a.ID)
		}
		achievementIDs[a.ID] = struct{}{}
		c.achievements = append(c.achievements, a)
	}
	return c, nil
}

func validateProject(p Project) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidProject)
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("%w: %s: title is required", ErrInvalidProject, p.ID)
	case !p.Field.IsValid():
		return fmt.Errorf("%w: %s: unknown field %q", ErrInvalidProject, p.ID, p.Field)
	case !p.Difficulty.IsValid():
		return fmt.Errorf("%w: %s: unknown difficulty %q", ErrInvalidProject, p.ID, p.Difficulty)
	case p.CustomerDifficulty != "" && !p.CustomerDifficulty.IsValid():
		return fmt.Errorf("%w: %s: unknown customer difficulty %q", ErrInvalidProject, p.ID, p.CustomerDifficulty)
	case p.Level < 1:
		return fmt.Errorf("%w: %s: level must be at least 1", ErrInvalidProject, p.ID)
	}
	return nil
}

func validateAchievement(a Achievement) error {
	switch {
	case strings.TrimSpace(a.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidAchievement)
	case strings.TrimSpace(a.Title) == "":
		return fmt.Errorf("%w: %s: title is required", ErrInvalidAchievement, a.ID)
	case !a.Metric.IsValid():
		return fmt.Errorf("%w: %s: unknown metric %q", ErrInvalidAchievement, a.ID, a.Metric)
	case !a.Rarity.IsValid():
		return fmt.Errorf("%w: %s: unknown rarity %q", ErrInvalidAchievement, a.ID, a.Rarity)
	case a.Threshold < 1:
		return fmt.Errorf("%w: %s: threshold must be at least 1", ErrInvalidAchievement, a.ID)
	case a.XPReward < 0 || a.CreditReward < 0:
		return fmt.Errorf("%w: %s: rewards cannot be negative", ErrInvalidAchievement, a.ID)
	}
	return nil
}

// Project returns the predefined project with the given id.
func (c *Catalog) Project(id string) (Project, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Projects returns every predefined project ordered by level.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// FieldLabel returns the display label of field. Fields without a label
// fall back to the raw field value.
func (c *Catalog) FieldLabel(field domain.Field) string {
	if label, ok := c.labels[field]; ok {
		return label
	}
	return string(field)
}

// Achievements returns every achievement in catalog order.
func (c *Catalog) Achievements() []Achievement {
	out := make([]Achievement, len(c.achievements))
	copy(out, c.achievements)
	return out
}

// Earnable returns the achievements whose condition stats satisfy and
// whose id is not in earned, in catalog order.
func (c *Catalog) Earnable(stats domain.AchievementStats, earned map[string]bool) []Achievement {
	var out []Achievement
	for _, a := range c.achievements {
		if !earned[a.ID] && a.Earned(stats) {
			out = append(out, a)
		}
	}
	return out
}
