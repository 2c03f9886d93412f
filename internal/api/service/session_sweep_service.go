package service

import (
	"booking"
	"booking/internal/api/models"
	"booking/internal/api/repo"
	"booking/pkg"
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SessionSweepService periodically walks every user's embedded session
// records and clears tokens that no longer verify against the signing
// secret. One user failing never aborts the sweep for the rest.
type SessionSweepService struct {
	userRepo *repo.UserRepository
	secret   string
	logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	interval time.Duration
}

func NewSessionSweepService() *SessionSweepService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionSweepService{
		userRepo: repo.NewUserRepository(),
		secret:   booking.GetConfig().JWTConfig.Secret,
		logger:   booking.Logger,
		ctx:      ctx,
		cancel:   cancel,
		interval: booking.GetConfig().SweepConfig.Interval,
	}
}

// Start begins the recurring sweep.
func (slf *SessionSweepService) Start() {
	slf.logger.Info().Dur("interval", slf.interval).Msg("Starting session sweep service")
	slf.wg.Add(1)
	go slf.run()
}

// Stop shuts the sweep down and waits for an in-flight pass to finish.
func (slf *SessionSweepService) Stop() {
	slf.logger.Info().Msg("Stopping session sweep service")
	slf.cancel()
	slf.wg.Wait()
	slf.logger.Info().Msg("Session sweep service stopped")
}

func (slf *SessionSweepService) run() {
	defer slf.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slf.logger.Error().Interface("panic", r).Msg("Session sweep panicked, restarting")
			slf.wg.Add(1)
			go slf.run()
		}
	}()

	ticker := time.NewTicker(slf.interval)
	defer ticker.Stop()

	for {
		select {
		case <-slf.ctx.Done():
			return
		case <-ticker.C:
			slf.SweepOnce()
		}
	}
}

// SweepOnce runs a single pass over all users.
func (slf *SessionSweepService) SweepOnce() {
	users, err := slf.userRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error fetching users for session sweep")
		return
	}

	swept := 0
	for i := range users {
		if slf.sweepUser(&users[i]) {
			swept++
		}
	}

	if swept > 0 {
		slf.logger.Info().Int("users", len(users)).Int("swept", swept).Msg("Session sweep pass completed")
	}
}

// sweepUser checks one user's sessions and saves the row once if any
// token was cleared. Failures are contained here so the caller can move
// on to the next user.
func (slf *SessionSweepService) sweepUser(user *models.User) (changed bool) {
	defer func() {
		if r := recover(); r != nil {
			slf.logger.Error().Interface("panic", r).Uint("userId", user.ID).Msg("Panic while sweeping user sessions")
			changed = false
		}
	}()

	if !SweepSessions(user, slf.secret) {
		return false
	}

	if err := slf.userRepo.Update(user); err != nil {
		slf.logger.Error().Err(err).Uint("userId", user.ID).Msg("Error saving swept user")
		return false
	}
	return true
}

// SweepSessions clears every session token of user that fails
// cryptographic verification, returning whether anything changed. Already
// revoked (empty) tokens are left alone.
func SweepSessions(user *models.User, secret string) bool {
	changed := false
	for i, session := range user.Sessions {
		if session.Token == "" {
			continue
		}
		if _, err := pkg.ValidateRefreshToken(session.Token, secret); err != nil {
			user.Sessions[i].Token = ""
			user.Sessions[i].LastModified = time.Now()
			changed = true
		}
	}
	return changed
}
