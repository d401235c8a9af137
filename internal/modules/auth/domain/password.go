package domain

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("password hashing failed")
	ErrHasherClosed  = errors.New("password hasher is closed")
)

// PasswordHasher runs bcrypt on a fixed set of worker goroutines so that
// hashing load is bounded and queued instead of competing with request I/O.
type PasswordHasher struct {
	cost   int
	jobs   chan func()
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	logger *zap.Logger
}

func NewPasswordHasher(cost int, workers int, logger *zap.Logger) *PasswordHasher {
	if workers < 1 {
		workers = 1
	}

	h := &PasswordHasher{
		cost:   cost,
		jobs:   make(chan func()),
		done:   make(chan struct{}),
		logger: logger,
	}

	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go h.work()
	}

	return h
}

func (h *PasswordHasher) work() {
	defer h.wg.Done()

	for {
		select {
		case job := <-h.jobs:
			job()
		case <-h.done:
			return
		}
	}
}

// Close stops the workers. Calls made after Close fail with ErrHasherClosed.
func (h *PasswordHasher) Close() {
	h.once.Do(func() {
		close(h.done)
	})
	h.wg.Wait()
}

func (h *PasswordHasher) HashPassword(ctx context.Context, password string) (string, error) {
	type result struct {
		hash []byte
		err  error
	}

	results := make(chan result, 1)
	job := func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		results <- result{hash, err}
	}

	if err := h.submit(ctx, job); err != nil {
		return "", err
	}

	select {
	case r := <-results:
		if r.err != nil {
			h.logger.Error("failed to hash password", zap.Error(r.err))
			return "", ErrHashingFailed
		}
		return string(r.hash), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Verify reports whether password matches passwordHash. A mismatch is not an
// error; only a failure of the hashing itself is.
func (h *PasswordHasher) Verify(ctx context.Context, passwordHash string, password string) (bool, error) {
	results := make(chan error, 1)
	job := func() {
		results <- bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	}

	if err := h.submit(ctx, job); err != nil {
		return false, err
	}

	select {
	case err := <-results:
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			h.logger.Error("failed to verify password", zap.Error(err))
			return false, ErrHashingFailed
		}
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (h *PasswordHasher) submit(ctx context.Context, job func()) error {
	select {
	case h.jobs <- job:
		return nil
	case <-h.done:
		return ErrHasherClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
