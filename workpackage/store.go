package workpackage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/annokit/annokit/errors"
	"github.com/annokit/annokit/protocol"
	"github.com/annokit/annokit/state"
)

// Key layout in the backing store.
const (
	packagePrefix = "wp."
	contentPrefix = "post."
)

func packageKey(id string) string        { return packagePrefix + id }
func contentKey(contentID string) string { return contentPrefix + contentID }

// Store persists work packages and applies their lifecycle transitions.
//
// Every transition is a read-modify-write against one key, serialized by
// the state store's revision check: of two racing transitions on the same
// id exactly one wins, the loser re-reads once and reports the guard
// failure it then observes. Distinct ids never contend.
type Store struct {
	state state.Store
	idGen func() string
	now   func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator sets a custom id generator. Tests use deterministic ids.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		s.idGen = gen
	}
}

// WithClock sets a custom time source for expiry tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a work package store over the given state backend.
func NewStore(st state.Store, opts ...StoreOption) *Store {
	s := &Store{
		state: st,
		idGen: func() string { return uuid.NewString() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries everything needed to issue a work package.
type CreateRequest struct {
	// Payload is the generated task to persist. Required.
	Payload protocol.Task

	// RequesterID is the identity the task was issued to. Optional.
	RequesterID string

	// ClientID is the issuing client identity. Required.
	ClientID string

	// TTL, when set, fixes the expiry at creation time plus the given
	// duration. A zero TTL produces an already-expired package. Nil
	// means the package never expires.
	TTL *time.Duration
}

// Create allocates a fresh work package in the pending state.
func (s *Store) Create(ctx context.Context, req CreateRequest) (*WorkPackage, error) {
	if req.Payload == nil {
		return nil, errors.InvalidInput("work package payload is required")
	}
	if req.ClientID == "" {
		return nil, errors.InvalidInput("issuing client id is required")
	}

	env, err := protocol.Seal(req.Payload)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "seal payload")
	}

	now := s.now()
	wp := &WorkPackage{
		ID:          s.idGen(),
		CreatedAt:   now,
		RequesterID: req.RequesterID,
		ClientID:    req.ClientID,
		Payload:     env,
		Resolution:  ResolutionPending,
	}
	if req.TTL != nil {
		expires := now.Add(*req.TTL)
		wp.ExpiresAt = &expires
	}

	data, err := json.Marshal(wp)
	if err != nil {
		return nil, errors.Wrap(err, "encode work package")
	}

	rev, err := s.state.Create(packageKey(wp.ID), data)
	if err != nil {
		if stderrors.Is(err, state.ErrKeyExists) {
			return nil, errors.Internal(fmt.Sprintf("work package id collision: %s", wp.ID))
		}
		return nil, errors.StoreUnavailable(err)
	}
	wp.revision = rev

	return wp, nil
}

// Get retrieves a work package by id.
func (s *Store) Get(ctx context.Context, id string) (*WorkPackage, error) {
	return s.load(id)
}

// FindByContentID resolves a bound content id to its work package.
// This is the hot path for every interaction: one index read plus one
// record read.
func (s *Store) FindByContentID(ctx context.Context, contentID string) (*WorkPackage, error) {
	if contentID == "" {
		return nil, errors.InvalidInput("content id is required")
	}

	owner, err := s.state.Get(contentKey(contentID))
	if err != nil {
		if stderrors.Is(err, state.ErrNotFound) {
			return nil, errors.NotFound(
				fmt.Sprintf("no work package bound to content id %s", contentID),
				errors.WithContentID(contentID))
		}
		return nil, errors.StoreUnavailable(err)
	}

	return s.load(string(owner))
}

// BindContentID records the client's acknowledgment: the content id is
// bound exactly once and the package advances to acknowledged.
func (s *Store) BindContentID(ctx context.Context, id, contentID string) (*WorkPackage, error) {
	if contentID == "" {
		return nil, errors.InvalidInput("content id is required")
	}

	// Reserve the content id before touching the record so two packages
	// can never share one.
	reserved := false
	if _, err := s.state.Create(contentKey(contentID), []byte(id)); err != nil {
		if !stderrors.Is(err, state.ErrKeyExists) {
			return nil, errors.StoreUnavailable(err)
		}
		owner, getErr := s.state.Get(contentKey(contentID))
		if getErr != nil {
			return nil, errors.StoreUnavailable(getErr)
		}
		if string(owner) != id {
			return nil, errors.InvalidInput(
				fmt.Sprintf("content id %s is already bound to another work package", contentID))
		}
		// Same owner: a retry of an earlier partial bind. Fall through
		// and finish the transition.
	} else {
		reserved = true
	}

	wp, err := s.transition(id, func(wp *WorkPackage) (bool, error) {
		if wp.ContentID != "" {
			return false, errors.AlreadyBound(id, errors.WithContentID(wp.ContentID))
		}
		if wp.Resolution.IsTerminal() {
			return false, errors.AlreadyResolved(id)
		}
		if wp.Expired(s.now()) {
			return false, errors.Expired(id)
		}
		wp.ContentID = contentID
		wp.Resolution = ResolutionAcknowledged
		return true, nil
	})
	if err != nil && reserved {
		// The guard refused the bind; release the reservation so the
		// content id stays unclaimed.
		_ = s.state.Delete(contentKey(contentID))
	}
	if err != nil {
		return nil, err
	}
	return wp, nil
}

// MarkRejected records a client failure report. Rejecting an already
// rejected package is a no-op success: failure reports may be retried.
func (s *Store) MarkRejected(ctx context.Context, id, reason string) error {
	_, err := s.transition(id, func(wp *WorkPackage) (bool, error) {
		switch wp.Resolution {
		case ResolutionRejected:
			return false, nil // idempotent retry
		case ResolutionCompleted:
			return false, errors.AlreadyResolved(id)
		}
		wp.Resolution = ResolutionRejected
		wp.FailureReason = reason
		return true, nil
	})
	return err
}

// Complete attaches a validated interaction and advances the package to
// completed. Only an acknowledged package can complete; anything else is
// an invalid transition, which also closes the double-completion race.
func (s *Store) Complete(ctx context.Context, id string, rec RecordedInteraction) (*WorkPackage, error) {
	return s.transition(id, func(wp *WorkPackage) (bool, error) {
		if wp.Resolution != ResolutionAcknowledged {
			return false, errors.InvalidTransition(id, fmt.Sprintf(
				"cannot complete a %s work package", wp.Resolution))
		}
		if wp.Expired(s.now()) {
			return false, errors.Expired(id)
		}
		wp.Interactions = append(wp.Interactions, rec)
		wp.Resolution = ResolutionCompleted
		return true, nil
	})
}

// List returns all work packages with the given resolution; an empty
// resolution returns everything. Intended for accounting, not hot paths.
func (s *Store) List(ctx context.Context, resolution Resolution) ([]*WorkPackage, error) {
	keys, err := s.state.Keys(packagePrefix + "*")
	if err != nil {
		return nil, errors.StoreUnavailable(err)
	}

	var out []*WorkPackage
	for _, key := range keys {
		wp, err := s.load(key[len(packagePrefix):])
		if err != nil {
			if errors.Is(err, errors.ErrCodeNotFound) {
				continue // deleted between listing and load
			}
			return nil, err
		}
		if resolution == "" || wp.Resolution == resolution {
			out = append(out, wp)
		}
	}
	return out, nil
}

// load reads and decodes one work package, capturing its revision.
func (s *Store) load(id string) (*WorkPackage, error) {
	entry, err := s.state.GetEntry(packageKey(id))
	if err != nil {
		if stderrors.Is(err, state.ErrNotFound) {
			return nil, errors.NotFound(
				fmt.Sprintf("work package %s not found", id),
				errors.WithWorkPackageID(id))
		}
		return nil, errors.StoreUnavailable(err)
	}

	var wp WorkPackage
	if err := json.Unmarshal(entry.Value, &wp); err != nil {
		return nil, errors.Wrap(err, "decode work package",
			errors.WithWorkPackageID(id))
	}
	wp.revision = entry.Revision
	return &wp, nil
}

// transition applies a guarded mutation atomically. apply returns whether
// a write is needed; returning false with a nil error is a no-op success.
// On a lost revision race the record is re-read once and the guard
// re-evaluated, so the loser observes the winner's state.
func (s *Store) transition(id string, apply func(*WorkPackage) (bool, error)) (*WorkPackage, error) {
	const attempts = 2

	for attempt := 0; attempt < attempts; attempt++ {
		wp, err := s.load(id)
		if err != nil {
			return nil, err
		}

		write, err := apply(wp)
		if err != nil {
			return nil, err
		}
		if !write {
			return wp, nil
		}

		data, err := json.Marshal(wp)
		if err != nil {
			return nil, errors.Wrap(err, "encode work package",
				errors.WithWorkPackageID(id))
		}

		rev, err := s.state.Update(packageKey(id), data, wp.revision)
		if err == nil {
			wp.revision = rev
			return wp, nil
		}
		if !stderrors.Is(err, state.ErrRevisionMismatch) {
			return nil, errors.StoreUnavailable(err)
		}
		// Lost the race; loop re-reads and re-evaluates the guard.
	}

	return nil, errors.StoreUnavailable(state.ErrRevisionMismatch,
		errors.WithWorkPackageID(id))
}
