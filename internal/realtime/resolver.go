package realtime

import (
	"booking"
	"booking/internal/api/repo"
	"booking/pkg"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const recipientCacheTTL = 30 * time.Second

func recipientCacheKey(bookingID uint) string {
	return fmt.Sprintf("recipients:booking:%d", bookingID)
}

// Resolver maps a booking id to the set of user identities that must be
// notified about a mutation on it: the booking's client and the user
// account behind the booking's agent.
type Resolver struct {
	bookingRepo *repo.BookingRepository
	agentRepo   *repo.AgentRepository
	userRepo    *repo.UserRepository
	logger      zerolog.Logger
}

func NewResolver() *Resolver {
	return &Resolver{
		bookingRepo: repo.NewBookingRepository(),
		agentRepo:   repo.NewAgentRepository(),
		userRepo:    repo.NewUserRepository(),
		logger:      booking.Logger,
	}
}

// Resolve returns the deduplicated recipient set for a booking. Any
// lookup miss degrades to an empty set; the booking may legitimately
// have been deleted between the mutation and its resolution.
func (r *Resolver) Resolve(bookingID uint) []uint {
	cacheKey := recipientCacheKey(bookingID)

	var cached []uint
	if err := pkg.RedisGet(cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached
	} else if err != nil && !pkg.IsRedisNil(err) {
		r.logger.Debug().Err(err).Uint("bookingId", bookingID).Msg("Recipient cache read failed")
	}

	b, err := r.bookingRepo.FindByID(bookingID)
	if err != nil {
		r.logger.Warn().Err(err).Uint("bookingId", bookingID).Msg("Booking not found while resolving recipients")
		return nil
	}

	agent, err := r.agentRepo.FindByID(b.AgentID)
	if err != nil {
		r.logger.Warn().Err(err).Uint("agentId", b.AgentID).Msg("Agent not found while resolving recipients")
		return nil
	}

	agentUser, err := r.userRepo.FindByID(agent.UserID)
	if err != nil {
		r.logger.Warn().Err(err).Uint("userId", agent.UserID).Msg("Agent user not found while resolving recipients")
		return nil
	}

	recipients := dedupeIDs([]uint{b.ClientID, agentUser.ID})

	if err := pkg.RedisSet(cacheKey, recipients, recipientCacheTTL); err != nil {
		r.logger.Debug().Err(err).Uint("bookingId", bookingID).Msg("Failed to cache recipient set")
	}

	return recipients
}

// Invalidate drops the cached recipient set for a booking. Called when
// the booking is deleted so a stale set cannot outlive it.
func (r *Resolver) Invalidate(bookingID uint) {
	if err := pkg.RedisDelete(recipientCacheKey(bookingID)); err != nil {
		r.logger.Debug().Err(err).Uint("bookingId", bookingID).Msg("Failed to drop cached recipient set")
	}
}

// dedupeIDs removes duplicate identities while preserving order. A user
// should never be both client and agent of one booking, but the resolver
// does not rely on that.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
