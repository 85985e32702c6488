// Package seed loads the starter content shipped with a fresh install:
// three catalog services, three news items and the admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"govsite/internal/auth"
	"govsite/internal/model"
	"govsite/internal/repository"
)

// Admin describes the account created on first start.
type Admin struct {
	Username string
	Password string
	Email    string
}

// Result counts what Apply created. Existing rows are left untouched.
type Result struct {
	Services int
	News     int
	Users    int
}

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

// Services returns the starter catalog.
func Services() []model.Service {
	return []model.Service{
		{
			Title:       "Building Permits",
			Slug:        "building-permits",
			Description: "Apply for construction and renovation permits",
			Content:     "Detailed information about building permits process...",
			Icon:        ptr("fa-file-signature"),
			ImageURL:    ptr("https://images.unsplash.com/photo-1503387762-592deb58ef4e"),
			Order:       1,
			IsActive:    true,
			Language:    "en",
		},
		{
			Title:       "Zoning Information",
			Slug:        "zoning-information",
			Description: "Check zoning regulations for properties",
			Content:     "Detailed information about zoning regulations...",
			Icon:        ptr("fa-map-marked-alt"),
			ImageURL:    ptr("https://images.unsplash.com/photo-1570339012089-0e9cc418ebae"),
			Order:       2,
			IsActive:    true,
			Language:    "en",
		},
		{
			Title:       "Urban Planning",
			Slug:        "urban-planning",
			Description: "View ongoing and future urban development plans",
			Content:     "Detailed information about urban planning process...",
			Icon:        ptr("fa-city"),
			ImageURL:    ptr("https://images.unsplash.com/photo-1495954902533-b8594cb5c7a1"),
			Order:       3,
			IsActive:    true,
			Language:    "en",
		},
	}
}

// News returns the starter news items. Author 1 is the seeded admin.
func News() []model.News {
	return []model.News{
		{
			Title:       "Downtown Revitalization Plan Up for Public Review",
			Slug:        "downtown-revitalization",
			Content:     "Detailed content about downtown revitalization...",
			Excerpt:     ptr("Join us for a series of community engagement sessions to discuss the proposed downtown revitalization project."),
			ImageURL:    ptr("https://images.unsplash.com/photo-1517245386807-bb43f82c33c4"),
			Category:    "Public Hearing",
			PublishDate: date("2023-06-15"),
			IsPublished: true,
			Author:      1,
			Language:    "en",
		},
		{
			Title:       "New Online Permit System Launches Next Month",
			Slug:        "online-permit-system",
			Content:     "Detailed content about the new permit system...",
			Excerpt:     ptr("Our new digital platform will streamline the permit application process, reducing wait times and paperwork."),
			ImageURL:    ptr("https://images.unsplash.com/photo-1504307651254-35680f356dfd"),
			Category:    "Announcement",
			PublishDate: date("2023-05-28"),
			IsPublished: true,
			Author:      1,
			Language:    "en",
		},
		{
			Title:       "Workshop: Sustainable Urban Development Practices",
			Slug:        "sustainable-workshop",
			Content:     "Detailed content about the sustainable development workshop...",
			Excerpt:     ptr("Learn about green building techniques, sustainable urban planning, and environmental conservation in city development."),
			ImageURL:    ptr("https://images.unsplash.com/photo-1544984243-ec57ea16fe25"),
			Category:    "Event",
			PublishDate: date("2023-05-10"),
			IsPublished: true,
			Author:      1,
			Language:    "en",
		},
	}
}

// Apply inserts every fixture whose slug (or username) is not taken yet.
// Running it twice is a no-op.
func Apply(ctx context.Context, store repository.Storage, admin Admin, log *zap.Logger) (Result, error) {
	var res Result

	for _, svc := range Services() {
		_, err := store.Services().FindBySlug(ctx, svc.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return res, fmt.Errorf("look up service %s: %w", svc.Slug, err)
		}
		if err := store.Services().Create(ctx, &svc); err != nil {
			return res, fmt.Errorf("create service %s: %w", svc.Slug, err)
		}
		res.Services++
	}

	for _, n := range News() {
		_, err := store.News().FindBySlug(ctx, n.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return res, fmt.Errorf("look up news %s: %w", n.Slug, err)
		}
		if err := store.News().Create(ctx, &n); err != nil {
			return res, fmt.Errorf("create news %s: %w", n.Slug, err)
		}
		res.News++
	}

	_, err := store.Users().FindByUsername(ctx, admin.Username)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		hash, err := auth.HashPassword(admin.Password)
		if err != nil {
			return res, fmt.Errorf("hash admin password: %w", err)
		}
		user := &model.User{
			Username:     admin.Username,
			PasswordHash: hash,
			Email:        admin.Email,
			Role:         model.RoleAdmin,
			FullName:     ptr("Admin User"),
		}
		if err := store.Users().Create(ctx, user); err != nil {
			return res, fmt.Errorf("create admin user: %w", err)
		}
		res.Users++
	default:
		return res, fmt.Errorf("look up admin user: %w", err)
	}

	log.Info("seed applied",
		zap.Int("services", res.Services),
		zap.Int("news", res.News),
		zap.Int("users", res.Users),
	)
	return res, nil
}
