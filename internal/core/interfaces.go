package core

import (
	"context"
	"time"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user record operations. It is the
// persisted-record store behind the admin guard's fallback role lookup.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetRoleByID performs the guard's single fallback read.
	GetRoleByID(ctx context.Context, id string) (domainauth.Role, error)
	Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error)
	UpdateRole(ctx context.Context, id string, role domainauth.Role) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
}

// AwardeeRepository defines the interface for awardee data operations.
type AwardeeRepository interface {
	Create(ctx context.Context, req *model.CreateAwardeeRequest) (*model.Awardee, error)
	GetByID(ctx context.Context, id string) (*model.Awardee, error)
	GetBySlug(ctx context.Context, slug string) (*model.Awardee, error)
	List(ctx context.Context, opts model.AwardeesListOptions) ([]*model.Awardee, error)
	Update(ctx context.Context, id string, req model.UpdateAwardeeRequest) (*model.Awardee, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PostRepository defines the interface for blog post data operations.
type PostRepository interface {
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	List(ctx context.Context, opts model.PostsListOptions) ([]*model.Post, error)
	Update(ctx context.Context, id string, req model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	// PublishDue flips scheduled posts live once published_at has passed and
	// returns the number of rows updated.
	PublishDue(ctx context.Context, now time.Time) (int, error)
}

// AnnouncementRepository defines the interface for announcement data operations.
type AnnouncementRepository interface {
	Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error)
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	ListActive(ctx context.Context, now time.Time) ([]*model.Announcement, error)
	ListAll(ctx context.Context, limit, offset int) ([]*model.Announcement, error)
	Update(ctx context.Context, id string, req model.UpdateAnnouncementRequest) (*model.Announcement, error)
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteExpired prunes announcements that ended before cutoff and returns
	// the number of rows removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// EventRepository defines the interface for program event data operations.
type EventRepository interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	List(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error)
	Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NewsletterRepository defines the interface for newsletter subscriber data.
type NewsletterRepository interface {
	// Subscribe upserts a subscriber; resubscribing clears unsubscribed_at.
	Subscribe(ctx context.Context, email, token string) (*model.NewsletterSubscriber, error)
	UnsubscribeByToken(ctx context.Context, token string) (bool, error)
	List(ctx context.Context, limit, offset int, activeOnly bool) ([]*model.NewsletterSubscriber, error)
}

// InquiryRepository defines the interface for partnership inquiry data.
type InquiryRepository interface {
	Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.PartnershipInquiry, error)
	GetByID(ctx context.Context, id string) (*model.PartnershipInquiry, error)
	List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PartnershipInquiry, error)
	Close(ctx context.Context, id, closedBy string) (*model.PartnershipInquiry, error)
}

// PushSubscriptionRepository defines the interface for push registration data.
type PushSubscriptionRepository interface {
	Upsert(ctx context.Context, req *model.RegisterPushRequest) (*model.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) (bool, error)
	ListAll(ctx context.Context) ([]*model.PushSubscription, error)
}
