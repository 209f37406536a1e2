package authoring

import (
	"log/slog"
	"time"

	"github.com/alnah/go-recipebox/internal/logger"
	"github.com/alnah/go-recipebox/internal/recipe"
)

// Service creates recipe records from submissions.
type Service struct {
	store Store
	now   func() time.Time
	log   *slog.Logger
}

// NewService returns a service saving to store. now stamps the created
// element and defaults to time.Now; a nil logger discards.
func NewService(store Store, now func() time.Time, log *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now, log: logger.OrDiscard(log)}
}

// Create builds the record for sub, derives its slug from the title, and
// saves it. It returns the written path.
func (s *Service) Create(sub Submission) (string, error) {
	rc := sub.Recipe()
	rec := recipe.New(rc, s.now())
	slug := recipe.Slugify(rc.Title)

	path, err := s.store.Save(slug, rec)
	if err != nil {
		return "", err
	}
	s.log.Info("recipe written", "path", path, "title", rc.Title)
	return path, nil
}

// CreateSample writes the fixed sample recipe.
func (s *Service) CreateSample() (string, error) {
	return s.Create(SampleSubmission())
}

// SampleSubmission returns the fixed sample recipe "Sample Lemon Pasta".
func SampleSubmission() Submission {
	return Submission{
		Title:        "Sample Lemon Pasta",
		Summary:      "Bright lemon pasta with parmesan and herbs.",
		ServingsText: "2",
		Servings:     2,
		TotalTime:    "20 minutes",
		Difficulty:   "easy",
		Tags:         []string{"pasta", "quick", "vegetarian"},
		Category:     "main-course",
		Ingredients: []string{
			"200g spaghetti",
			"1 lemon, zested and juiced",
			"2 tbsp butter",
			"50g parmesan, grated",
			"Salt and pepper to taste",
		},
		Steps: []string{
			"Cook pasta according to package instructions.",
			"Reserve some pasta water.",
			"Combine lemon, butter, and cheese off heat.",
			"Toss pasta with sauce, adding pasta water to loosen.",
		},
	}
}
