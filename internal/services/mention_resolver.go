package services

import (
	"context"
	"strings"

	"github.com/fundspace/backend/internal/models"
	"github.com/fundspace/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// mentionLimitPerKind caps each candidate kind independently.
	mentionLimitPerKind = 5
	// mentionMinQueryLen is the shortest query worth searching; a single
	// character is too noisy to rank meaningfully.
	mentionMinQueryLen = 2
)

// MentionResolver turns the free-text fragment typed after an "@" trigger
// into a bounded, type-tagged candidate list spanning members and
// organizations.
type MentionResolver struct {
	userRepo   repositories.UserRepository
	orgRepo    repositories.OrganizationRepository
	followRepo repositories.FollowRepository
	logger     *zap.Logger
}

// NewMentionResolver creates a MentionResolver
func NewMentionResolver(
	userRepo repositories.UserRepository,
	orgRepo repositories.OrganizationRepository,
	followRepo repositories.FollowRepository,
	logger *zap.Logger,
) *MentionResolver {
	return &MentionResolver{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		followRepo: followRepo,
		logger:     logger,
	}
}

// Suggest resolves query for viewerID:
//
//   - empty query: up to 5 members the viewer already follows — the empty
//     trigger surfaces people you have a relationship with, not a sample;
//   - one character: no candidates;
//   - two or more characters: substring search over member display name,
//     title and organization name, and over organization name; up to 5 of
//     each, members always ordered before organizations, store order kept
//     within each kind.
//
// Either sub-query failing degrades to no candidates of that kind; Suggest
// itself never fails.
func (r *MentionResolver) Suggest(ctx context.Context, viewerID uuid.UUID, query string) []models.MentionCandidate {
	query = strings.TrimSpace(query)

	if query == "" {
		return r.defaults(ctx, viewerID)
	}
	if len([]rune(query)) < mentionMinQueryLen {
		return []models.MentionCandidate{}
	}

	candidates := make([]models.MentionCandidate, 0, 2*mentionLimitPerKind)

	users, err := r.userRepo.SearchMembers(ctx, query, mentionLimitPerKind)
	if err != nil {
		r.logger.Warn("mention member search failed", zap.String("query", query), zap.Error(err))
		users = nil
	}
	for _, u := range users {
		candidates = append(candidates, models.MentionCandidateFromUser(u))
	}

	orgs, err := r.orgRepo.SearchByName(ctx, query, mentionLimitPerKind)
	if err != nil {
		r.logger.Warn("mention organization search failed", zap.String("query", query), zap.Error(err))
		orgs = nil
	}
	for _, o := range orgs {
		candidates = append(candidates, models.MentionCandidateFromOrganization(o))
	}

	return candidates
}

// defaults returns the viewer's followed members as zero-query suggestions.
func (r *MentionResolver) defaults(ctx context.Context, viewerID uuid.UUID) []models.MentionCandidate {
	if viewerID == uuid.Nil {
		return []models.MentionCandidate{}
	}

	following, err := r.followRepo.GetFollowing(ctx, viewerID, mentionLimitPerKind)
	if err != nil {
		r.logger.Warn("mention defaults failed", zap.String("viewer_id", viewerID.String()), zap.Error(err))
		return []models.MentionCandidate{}
	}

	candidates := make([]models.MentionCandidate, 0, len(following))
	for _, u := range following {
		candidates = append(candidates, models.MentionCandidateFromUser(u))
	}
	return candidates
}
