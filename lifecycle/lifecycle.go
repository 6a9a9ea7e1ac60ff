package lifecycle

import (
	"context"
	"time"

	"github.com/annokit/annokit/archive"
	"github.com/annokit/annokit/bus"
	"github.com/annokit/annokit/catalog"
	"github.com/annokit/annokit/errors"
	"github.com/annokit/annokit/logging"
	"github.com/annokit/annokit/protocol"
	"github.com/annokit/annokit/ratelimit"
	"github.com/annokit/annokit/validate"
	"github.com/annokit/annokit/workpackage"
)

// Controller drives work packages through their lifecycle: it issues
// tasks from the catalog, binds client acknowledgments, records failure
// reports and accepts validated interactions.
type Controller struct {
	catalog    *catalog.Catalog
	packages   *workpackage.Store
	limiter    ratelimit.Limiter
	bus        bus.MessageBus
	archive    *archive.Archive
	log        *logging.Logger
	defaultTTL *time.Duration
	now        func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithBus enables lifecycle event publication.
func WithBus(b bus.MessageBus) Option {
	return func(c *Controller) {
		c.bus = b
	}
}

// WithArchive enables full-text indexing of completed text interactions.
func WithArchive(a *archive.Archive) Option {
	return func(c *Controller) {
		c.archive = a
	}
}

// WithLimiter bounds task issuance per issuing client id.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Controller) {
		c.limiter = l
	}
}

// WithLogger sets the logger. Defaults to stdout at info level.
func WithLogger(log *logging.Logger) Option {
	return func(c *Controller) {
		c.log = log.WithComponent("lifecycle")
	}
}

// WithDefaultTTL applies an expiry to every issued work package that
// does not carry its own. Nil (the default) means packages never expire.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		c.defaultTTL = &ttl
	}
}

// WithClock sets a custom time source for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a lifecycle controller over the given catalog and store.
func New(cat *catalog.Catalog, packages *workpackage.Store, opts ...Option) *Controller {
	c := &Controller{
		catalog:  cat,
		packages: packages,
		log:      logging.New().WithComponent("lifecycle"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TaskRequest asks for one task to be issued.
type TaskRequest struct {
	// Kind selects the task variant. The random sentinel picks one.
	Kind protocol.TaskKind

	// RequesterID identifies who the task is issued to. Optional.
	RequesterID string

	// ClientID identifies the issuing client. Required; rate limits are
	// keyed by it.
	ClientID string

	// Conversation supplies prior turns for reply and reply-ranking
	// tasks. Nil means the catalog samples its corpus.
	Conversation *protocol.Conversation

	// TTL overrides the controller's default expiry for this package.
	TTL *time.Duration
}

// IssuedTask pairs a generated task with its work package id. The
// client echoes the id back when acknowledging.
type IssuedTask struct {
	WorkPackageID string
	Task          protocol.Task
}

// RequestTask generates a task of the requested kind and persists a
// pending work package for it. The package only exists if generation
// succeeded; a failed generation leaves no trace.
func (c *Controller) RequestTask(ctx context.Context, req TaskRequest) (*IssuedTask, error) {
	if req.ClientID == "" {
		return nil, errors.InvalidInput("issuing client id is required")
	}
	if c.limiter != nil && !c.limiter.TryAcquire(req.ClientID) {
		return nil, errors.RateLimited(req.ClientID)
	}

	task, err := c.catalog.Generate(req.Kind, catalog.Context{Conversation: req.Conversation})
	if err != nil {
		return nil, err
	}

	ttl := req.TTL
	if ttl == nil {
		ttl = c.defaultTTL
	}

	wp, err := c.packages.Create(ctx, workpackage.CreateRequest{
		Payload:     task,
		RequesterID: req.RequesterID,
		ClientID:    req.ClientID,
		TTL:         ttl,
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("task issued",
		"work_package_id", wp.ID,
		"task_kind", wp.Payload.Kind,
		"client_id", wp.ClientID)
	c.publish(SubjectTaskIssued, wp)

	return &IssuedTask{WorkPackageID: wp.ID, Task: task}, nil
}

// AcknowledgeTask binds the client's content id to a pending work
// package and advances it to acknowledged. The binding is exclusive in
// both directions: a package takes one content id, a content id names
// one package.
func (c *Controller) AcknowledgeTask(ctx context.Context, workPackageID, contentID string) error {
	wp, err := c.packages.BindContentID(ctx, workPackageID, contentID)
	if err != nil {
		return err
	}

	c.log.Info("task acknowledged",
		"work_package_id", wp.ID,
		"content_id", wp.ContentID)
	c.publish(SubjectTaskAcknowledged, wp)
	return nil
}

// ReportTaskFailure records that the client could not handle the task.
// Retrying a report against an already rejected package succeeds.
func (c *Controller) ReportTaskFailure(ctx context.Context, workPackageID, reason string) error {
	if err := c.packages.MarkRejected(ctx, workPackageID, reason); err != nil {
		return err
	}

	wp, err := c.packages.Get(ctx, workPackageID)
	if err != nil {
		return err
	}

	c.log.Info("task rejected",
		"work_package_id", wp.ID,
		"reason", wp.FailureReason)
	c.publish(SubjectTaskRejected, wp)
	return nil
}

// SubmitInteraction validates an interaction against the task it was
// collected for and, on success, records it and completes the package.
// Validation failures leave the package untouched, so the client may
// correct and resubmit.
func (c *Controller) SubmitInteraction(ctx context.Context, in protocol.Interaction) (*workpackage.WorkPackage, error) {
	wp, err := c.packages.FindByContentID(ctx, in.ContentID())
	if err != nil {
		return nil, err
	}

	task, err := wp.Task()
	if err != nil {
		return nil, errors.Wrap(err, "open stored payload",
			errors.WithWorkPackageID(wp.ID))
	}

	if err := validate.Interaction(task, in); err != nil {
		return nil, err
	}

	rec, err := workpackage.Record(in, c.now())
	if err != nil {
		return nil, errors.Wrap(err, "encode interaction",
			errors.WithWorkPackageID(wp.ID))
	}

	wp, err = c.packages.Complete(ctx, wp.ID, rec)
	if err != nil {
		return nil, err
	}

	c.log.Info("task completed",
		"work_package_id", wp.ID,
		"interaction_kind", in.InteractionKind())
	c.publish(SubjectTaskCompleted, wp)
	c.index(wp, in)

	return wp, nil
}

// index stores completed text contributions in the archive. Failures
// are logged; the interaction is already durably recorded on the
// package.
func (c *Controller) index(wp *workpackage.WorkPackage, in protocol.Interaction) {
	if c.archive == nil {
		return
	}
	reply, ok := in.(protocol.TextReply)
	if !ok {
		return
	}

	err := c.archive.Add(archive.Document{
		WorkPackageID: wp.ID,
		TaskKind:      wp.Payload.Kind.String(),
		Kind:          string(in.InteractionKind()),
		Text:          reply.Text,
		RequesterID:   reply.RequesterID,
		RecordedAt:    c.now().UTC(),
	})
	if err != nil {
		c.log.Warn("archive indexing failed",
			"work_package_id", wp.ID, "error", err)
	}
}
