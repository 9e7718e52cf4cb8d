package badges

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/w1ncs/netcontrol/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Rule names recognized by the evaluator
const (
	RuleTotalCheckIns = "total_checkins"
	RuleUniqueNets    = "unique_nets"
	RuleFirstCheckIn  = "first_checkin"
	RuleNetCheckIns   = "net_checkins"
	RuleTimeWindow    = "time_window"
)

// TimeWindow is a daily time-of-day window; it may wrap midnight
// (e.g. 22:00 to 05:00)
type TimeWindow struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Definition is one badge with its award rule
type Definition struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Icon        string     `yaml:"icon"`
	Category    string     `yaml:"category"`
	Rule        string     `yaml:"rule"`
	Threshold   int        `yaml:"threshold"`
	Window      TimeWindow `yaml:"window"`
}

// Catalog is the loaded set of badge definitions
type Catalog struct {
	defs []Definition
}

type catalogFile struct {
	Badges []Definition `yaml:"badges"`
}

// Load reads a badge catalog from path, or the embedded default catalog
// when path is empty
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read badge catalog: %w", err)
		}
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse badge catalog: %w", err)
	}
	if len(file.Badges) == 0 {
		return nil, fmt.Errorf("badge catalog is empty")
	}

	for _, d := range file.Badges {
		if err := validateDefinition(d); err != nil {
			return nil, err
		}
	}

	return &Catalog{defs: file.Badges}, nil
}

func validateDefinition(d Definition) error {
	if d.ID == "" || d.Name == "" {
		return fmt.Errorf("badge definition missing id or name")
	}
	switch d.Rule {
	case RuleTotalCheckIns, RuleUniqueNets, RuleNetCheckIns:
		if d.Threshold < 1 {
			return fmt.Errorf("badge %s: rule %s needs a threshold", d.ID, d.Rule)
		}
	case RuleFirstCheckIn:
	case RuleTimeWindow:
		if _, err := parseClock(d.Window.From); err != nil {
			return fmt.Errorf("badge %s: %w", d.ID, err)
		}
		if _, err := parseClock(d.Window.To); err != nil {
			return fmt.Errorf("badge %s: %w", d.ID, err)
		}
	default:
		return fmt.Errorf("badge %s: unknown rule %q", d.ID, d.Rule)
	}
	return nil
}

// Definitions returns all loaded badge definitions
func (c *Catalog) Definitions() []Definition {
	return c.defs
}

// Find returns the definition for a badge id, or nil
func (c *Catalog) Find(id string) *Definition {
	for i := range c.defs {
		if c.defs[i].ID == id {
			return &c.defs[i]
		}
	}
	return nil
}

// Sync mirrors the catalog into the badge_definitions table so clients can
// fetch display metadata as plain rows
func (c *Catalog) Sync(db *gorm.DB) error {
	for _, d := range c.defs {
		row := models.BadgeDefinition{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Icon:        d.Icon,
			Category:    d.Category,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "category"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to sync badge %s: %w", d.ID, err)
		}
	}
	return nil
}
