package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"linksea/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// linkTemplate pairs an icon key with a URL shape so generated pages look
// like real link-in-bio profiles rather than random noise.
type linkTemplate struct {
	icon  string
	title string
	url   func(handle string) string
}

var linkTemplates = []linkTemplate{
	{"website", "My Website", func(h string) string { return fmt.Sprintf("https://%s.dev", h) }},
	{"x", "Follow me on X", func(h string) string { return "https://x.com/" + h }},
	{"instagram", "Instagram", func(h string) string { return "https://instagram.com/" + h }},
	{"github", "GitHub", func(h string) string { return "https://github.com/" + h }},
	{"linkedin", "LinkedIn", func(h string) string { return "https://linkedin.com/in/" + h }},
	{"music", "Latest Release", func(h string) string { return "https://open.spotify.com/artist/" + h }},
	{"video", "YouTube Channel", func(h string) string { return "https://youtube.com/@" + h }},
	{"shop", "My Shop", func(h string) string { return fmt.Sprintf("https://%s.bigcartel.com", h) }},
	{"blog", "Blog", func(h string) string { return fmt.Sprintf("https://%s.substack.com", h) }},
	{"podcast", "Podcast", func(h string) string { return fmt.Sprintf("https://podcasts.example.com/%s", h) }},
	{"coffee", "Buy me a coffee", func(h string) string { return "https://buymeacoffee.com/" + h }},
	{"donate", "Support my work", func(h string) string { return "https://ko-fi.com/" + h }},
}

var clickReferrers = []string{
	"",
	"https://www.google.com/",
	"https://t.co/",
	"https://www.instagram.com/",
	"https://news.ycombinator.com/",
	"https://www.reddit.com/",
}

var clickUserAgents = []string{
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/126.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/125.0",
	"Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 Mobile Chrome/126.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
}

// CreateUsers persists count users each with a matching profile.
func (f *Factory) CreateUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := f.usernameFor(i)
		user := models.User{
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: seedPasswordHash,
		}
		if f.opts.DryRun {
			user.ID = f.claimID()
		} else if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}

		profile := models.Profile{
			ID:        user.ID,
			Username:  username,
			Bio:       gofakeit.Sentence(8),
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/300?u=%s", username),
		}
		if !f.opts.DryRun {
			if err := f.db.Create(&profile).Error; err != nil {
				return nil, err
			}
		}
		users = append(users, user)
	}
	return users, nil
}

// BuildLink constructs a link without persisting it. Position is left to the
// caller.
func (f *Factory) BuildLink(user *models.User, position int, overrides ...func(*models.Link)) *models.Link {
	tmpl := linkTemplates[f.rng.Intn(len(linkTemplates))]
	handle := strings.ToLower(gofakeit.Username())
	link := &models.Link{
		UserID:      user.ID,
		Title:       tmpl.title,
		URL:         tmpl.url(handle),
		Description: gofakeit.Sentence(6),
		Icon:        tmpl.icon,
		Position:    position,
	}
	for _, override := range overrides {
		override(link)
	}
	return link
}

// CreateLinks persists count links for the user with dense positions 0..count-1.
func (f *Factory) CreateLinks(user *models.User, count int) ([]models.Link, error) {
	links := make([]models.Link, 0, count)
	for pos := 0; pos < count; pos++ {
		links = append(links, *f.BuildLink(user, pos))
	}
	if len(links) == 0 {
		return links, nil
	}
	if f.opts.DryRun {
		for i := range links {
			links[i].ID = f.claimID()
		}
		return links, nil
	}
	if err := f.db.CreateInBatches(&links, 200).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// BuildClick constructs a click event for the link with a timestamp spread
// over the configured window.
func (f *Factory) BuildClick(link *models.Link) *models.ClickEvent {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	clickedAt := time.Now().UTC().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	return &models.ClickEvent{
		LinkID:    link.ID,
		UserID:    link.UserID,
		ClickedAt: clickedAt,
		Referrer:  clickReferrers[f.rng.Intn(len(clickReferrers))],
		UserAgent: clickUserAgents[f.rng.Intn(len(clickUserAgents))],
	}
}

// CreateClicks persists count click events spread across the provided links.
// Traffic is skewed toward earlier links so analytics breakdowns have a
// realistic head-heavy shape.
func (f *Factory) CreateClicks(links []models.Link, count int) ([]models.ClickEvent, error) {
	if len(links) == 0 || count <= 0 {
		return nil, nil
	}
	clicks := make([]models.ClickEvent, 0, count)
	for i := 0; i < count; i++ {
		// squaring a uniform sample biases selection toward index 0
		u := f.rng.Float64()
		idx := int(u * u * float64(len(links)))
		if idx >= len(links) {
			idx = len(links) - 1
		}
		clicks = append(clicks, *f.BuildClick(&links[idx]))
	}
	if f.opts.DryRun {
		for i := range clicks {
			clicks[i].ID = f.claimID()
		}
		return clicks, nil
	}
	if err := f.db.CreateInBatches(&clicks, 500).Error; err != nil {
		return nil, err
	}
	return clicks, nil
}

func (f *Factory) claimID() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *Factory) usernameFor(i int) string {
	base := strings.ToLower(gofakeit.Username())
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, base)
	if len(base) < 3 {
		base = "user"
	}
	if len(base) > 24 {
		base = base[:24]
	}
	return fmt.Sprintf("%s%d", base, i)
}
