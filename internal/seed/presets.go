package seed

import (
	"fmt"
	"os"

	"linksea/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Preset describes a fixed set of accounts and their pages. Presets are
// declared in YAML so demo data can be edited without recompiling.
type Preset struct {
	Name  string       `yaml:"name"`
	Users []PresetUser `yaml:"users"`
}

// PresetUser declares one account with its profile and ordered links.
type PresetUser struct {
	Username string       `yaml:"username"`
	Email    string       `yaml:"email"`
	Bio      string       `yaml:"bio"`
	Disabled bool         `yaml:"disabled"`
	Links    []PresetLink `yaml:"links"`
}

// PresetLink declares one link; position is its index in the list.
type PresetLink struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// demoPresetYAML is the built-in demo page set, applied with SEED_PRESET=demo.
const demoPresetYAML = `
name: demo
users:
  - username: riverbend
    email: riverbend@example.com
    bio: Indie musician. New single out now.
    links:
      - {title: Latest Single, url: "https://open.spotify.com/artist/riverbend", icon: music}
      - {title: Tour Dates, url: "https://riverbend.dev/tour", icon: calendar}
      - {title: Merch, url: "https://riverbend.bigcartel.com", icon: shop}
      - {title: Instagram, url: "https://instagram.com/riverbend", icon: instagram}
  - username: pixelforge
    email: pixelforge@example.com
    bio: Game dev logs and tools.
    links:
      - {title: Devlog, url: "https://pixelforge.substack.com", icon: blog}
      - {title: GitHub, url: "https://github.com/pixelforge", icon: github}
      - {title: Buy me a coffee, url: "https://buymeacoffee.com/pixelforge", icon: coffee}
  - username: quietpages
    email: quietpages@example.com
    bio: Book reviews, slowly.
    disabled: true
    links:
      - {title: Reviews, url: "https://quietpages.dev", icon: book}
`

// builtinPresets maps preset names to their YAML definitions.
var builtinPresets = map[string]string{
	"demo": demoPresetYAML,
}

// LoadPreset resolves a preset by built-in name, or by treating the value as
// a path to a YAML file when no built-in matches.
func LoadPreset(nameOrPath string) (*Preset, error) {
	raw, ok := builtinPresets[nameOrPath]
	if !ok {
		data, err := os.ReadFile(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("preset %q is not built-in and could not be read as a file: %w", nameOrPath, err)
		}
		raw = string(data)
	}
	return parsePreset([]byte(raw))
}

func parsePreset(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("preset is missing a name")
	}
	for _, u := range p.Users {
		if u.Username == "" || u.Email == "" {
			return nil, fmt.Errorf("preset %q has a user without username or email", p.Name)
		}
	}
	return &p, nil
}

// ApplyPreset loads and applies a preset by name or path.
func ApplyPreset(db *gorm.DB, nameOrPath string) error {
	preset, err := LoadPreset(nameOrPath)
	if err != nil {
		return err
	}
	return preset.Apply(db)
}

// Apply upserts each preset user and replaces their links so re-running the
// seeder converges on the declared state instead of duplicating rows.
func (p *Preset) Apply(db *gorm.DB) error {
	for _, item := range p.Users {
		item := item
		err := db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.Where("email = ?", item.Email).First(&user).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					return err
				}
				user = models.User{Email: item.Email, Password: seedPasswordHash}
				if err := tx.Create(&user).Error; err != nil {
					return err
				}
			}

			profile := models.Profile{
				ID:         user.ID,
				Username:   item.Username,
				Bio:        item.Bio,
				IsDisabled: item.Disabled,
			}
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}

			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Link{}).Error; err != nil {
				return err
			}
			for pos, l := range item.Links {
				link := models.Link{
					UserID:      user.ID,
					Title:       l.Title,
					URL:         l.URL,
					Description: l.Description,
					Icon:        l.Icon,
					Position:    pos,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to apply preset user %q: %w", item.Username, err)
		}
	}
	return nil
}
