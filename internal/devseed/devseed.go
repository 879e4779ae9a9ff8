// Package devseed populates a development database with representative
// program content: awardees, posts, announcements, events, and a couple of
// back-office accounts. Seeding is idempotent; records that already exist
// are left alone.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/luminaryawards/program-api/internal/data"
	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB            *sql.DB
	awardees      *service.AwardeeService
	posts         *service.PostService
	announcements *service.AnnouncementService
	events        *service.EventService
	users         *data.UserRepo
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:            db,
		awardees:      service.NewAwardeeService(service.AwardeeServiceOptions{AwardeeRepo: data.NewAwardeeRepo(db)}),
		posts:         service.NewPostService(service.PostServiceOptions{PostRepo: data.NewPostRepo(db)}),
		announcements: service.NewAnnouncementService(service.AnnouncementServiceOptions{AnnouncementRepo: data.NewAnnouncementRepo(db)}),
		events:        service.NewEventService(service.EventServiceOptions{EventRepo: data.NewEventRepo(db)}),
		users:         data.NewUserRepo(db),
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	adminID, userFailures := seedUsers(ctx, svcs.users, logger)
	failures += userFailures
	failures += seedAwardees(ctx, svcs.awardees, logger)
	failures += seedPosts(ctx, svcs.posts, adminID, logger)
	failures += seedAnnouncements(ctx, svcs.announcements, logger)
	failures += seedEvents(ctx, svcs.events, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedUsers(ctx context.Context, repo *data.UserRepo, logger *slog.Logger) (string, int) {
	users := []model.UpsertUserRequest{
		{ID: "dev-admin", Email: "admin@luminaryawards.local", DisplayName: "Dev Admin", Role: domainauth.RoleAdmin},
		{ID: "dev-editor", Email: "editor@luminaryawards.local", DisplayName: "Dev Editor", Role: domainauth.RoleEditor},
	}

	failures := 0
	for i := range users {
		if _, err := repo.Upsert(ctx, &users[i]); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed user", "id", users[i].ID, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			logger.InfoContext(ctx, "seeded user", "id", users[i].ID, "role", users[i].Role)
		}
	}
	return "dev-admin", failures
}

func seedAwardees(ctx context.Context, svc *service.AwardeeService, logger *slog.Logger) int {
	published := true
	photo := "https://cdn.luminaryawards.local/photos/amara-okafor.jpg"
	awardees := []model.CreateAwardeeRequest{
		{
			Slug:       "amara-okafor",
			FullName:   "Amara Okafor",
			CohortYear: 2024,
			Category:   model.AwardeeCategoryInnovation,
			Citation:   "For pioneering low-cost diagnostic tools for rural clinics.",
			Bio:        "Amara leads a biomedical engineering lab focused on point-of-care diagnostics.",
			PhotoURL:   &photo,
			Featured:   true,
			Published:  &published,
		},
		{
			Slug:       "lena-vasquez",
			FullName:   "Lena Vasquez",
			CohortYear: 2024,
			Category:   model.AwardeeCategoryLeadership,
			Citation:   "For two decades of public-interest advocacy and coalition building.",
			Published:  &published,
		},
		{
			Slug:       "tomas-lindqvist",
			FullName:   "Tomas Lindqvist",
			CohortYear: 2023,
			Category:   model.AwardeeCategoryArts,
			Citation:   "For a body of documentary work chronicling vanishing crafts.",
			Published:  &published,
		},
		{
			Slug:       "priya-raman",
			FullName:   "Priya Raman",
			CohortYear: 2023,
			Category:   model.AwardeeCategoryService,
			Citation:   "For organizing disaster-relief logistics across three continents.",
			// Intentionally left unpublished to exercise the draft path.
		},
	}

	failures := 0
	for i := range awardees {
		created, err := createAwardee(ctx, svc, &awardees[i])
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed awardee", "slug", awardees[i].Slug, "error", err)
			}
			failures++
			continue
		}
		logSeeded(ctx, logger, created, "awardee", awardees[i].Slug)
	}
	return failures
}

func createAwardee(ctx context.Context, svc *service.AwardeeService, req *model.CreateAwardeeRequest) (bool, error) {
	if _, err := svc.Create(ctx, req); err != nil {
		if errors.Is(err, data.ErrAwardeeSlugExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func seedPosts(ctx context.Context, svc *service.PostService, authorID string, logger *slog.Logger) int {
	live := time.Now().Add(-24 * time.Hour)
	scheduled := time.Now().Add(72 * time.Hour)
	posts := []model.CreatePostRequest{
		{
			Slug:        "2024-cohort-announced",
			Title:       "Meet the 2024 Cohort",
			Summary:     "Twelve honorees across four categories.",
			Body:        "The selection committee is proud to announce the 2024 cohort of honorees.",
			AuthorID:    authorID,
			Tags:        []string{"cohort", "announcement"},
			PublishedAt: &live,
		},
		{
			Slug:     "nomination-window-opens",
			Title:    "Nominations Open for 2025",
			Body:     "The nomination window for the 2025 program opens next month.",
			AuthorID: authorID,
			Tags:     []string{"nominations"},
			// No publish date: stays in draft.
		},
		{
			Slug:        "gala-program-preview",
			Title:       "A Preview of the Gala Program",
			Body:        "A look at the evening's program, speakers, and performances.",
			AuthorID:    authorID,
			Tags:        []string{"ceremony"},
			PublishedAt: &scheduled,
		},
	}

	failures := 0
	for i := range posts {
		created, err := createPost(ctx, svc, &posts[i])
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed post", "slug", posts[i].Slug, "error", err)
			}
			failures++
			continue
		}
		logSeeded(ctx, logger, created, "post", posts[i].Slug)
	}
	return failures
}

func createPost(ctx context.Context, svc *service.PostService, req *model.CreatePostRequest) (bool, error) {
	if _, err := svc.Create(ctx, req); err != nil {
		if errors.Is(err, data.ErrPostSlugExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func seedAnnouncements(ctx context.Context, svc *service.AnnouncementService, logger *slog.Logger) int {
	endsAt := time.Now().Add(14 * 24 * time.Hour)
	announcements := []model.CreateAnnouncementRequest{
		{
			Title:    "Gala tickets on sale",
			Body:     "Tickets for the annual award gala are now available.",
			Severity: model.AnnouncementSeverityInfo,
			StartsAt: time.Now().Add(-time.Hour),
			EndsAt:   &endsAt,
		},
	}

	failures := 0
	for i := range announcements {
		if _, err := svc.Create(ctx, &announcements[i]); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed announcement", "title", announcements[i].Title, "error", err)
			}
			failures++
			continue
		}
		logSeeded(ctx, logger, true, "announcement", announcements[i].Title)
	}
	return failures
}

func seedEvents(ctx context.Context, svc *service.EventService, logger *slog.Logger) int {
	published := true
	galaStart := time.Now().Add(30 * 24 * time.Hour)
	galaEnd := galaStart.Add(4 * time.Hour)
	registration := "https://luminaryawards.local/gala/register"
	events := []model.CreateEventRequest{
		{
			Slug:            "annual-gala",
			Title:           "Annual Award Gala",
			Description:     "The evening ceremony honoring this year's cohort.",
			Location:        "Grand Hall, Riverside Center",
			StartsAt:        galaStart,
			EndsAt:          &galaEnd,
			RegistrationURL: &registration,
			Published:       &published,
		},
		{
			Slug:        "nominee-workshop",
			Title:       "Nominee Workshop",
			Description: "A working session for prospective nominators.",
			StartsAt:    time.Now().Add(10 * 24 * time.Hour),
			Published:   &published,
		},
	}

	failures := 0
	for i := range events {
		created, err := createEvent(ctx, svc, &events[i])
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed event", "slug", events[i].Slug, "error", err)
			}
			failures++
			continue
		}
		logSeeded(ctx, logger, created, "event", events[i].Slug)
	}
	return failures
}

func createEvent(ctx context.Context, svc *service.EventService, req *model.CreateEventRequest) (bool, error) {
	if _, err := svc.Create(ctx, req); err != nil {
		if errors.Is(err, data.ErrEventSlugExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func logSeeded(ctx context.Context, logger *slog.Logger, created bool, kind, name string) {
	if logger == nil {
		return
	}
	msg := kind + " already exists"
	if created {
		msg = "created " + kind
	}
	logger.InfoContext(ctx, msg, "name", name)
}
