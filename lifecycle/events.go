package lifecycle

import (
	"encoding/json"
	"time"

	"github.com/annokit/annokit/protocol"
	"github.com/annokit/annokit/workpackage"
)

// Bus subjects, one per lifecycle transition.
const (
	SubjectTaskIssued       = "annokit.task.issued"
	SubjectTaskAcknowledged = "annokit.task.acknowledged"
	SubjectTaskRejected     = "annokit.task.rejected"
	SubjectTaskCompleted    = "annokit.task.completed"
)

// TaskEvent is the JSON body published on every lifecycle transition.
type TaskEvent struct {
	WorkPackageID string                 `json:"work_package_id"`
	TaskKind      protocol.TaskKind      `json:"task_kind"`
	Resolution    workpackage.Resolution `json:"resolution"`
	ContentID     string                 `json:"content_id,omitempty"`
	RequesterID   string                 `json:"requester_id,omitempty"`
	ClientID      string                 `json:"client_id,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// publish emits a lifecycle event. Publication is best-effort: failures
// are logged and never surfaced to the caller.
func (c *Controller) publish(subject string, wp *workpackage.WorkPackage) {
	if c.bus == nil {
		return
	}

	event := TaskEvent{
		WorkPackageID: wp.ID,
		TaskKind:      wp.Payload.Kind,
		Resolution:    wp.Resolution,
		ContentID:     wp.ContentID,
		RequesterID:   wp.RequesterID,
		ClientID:      wp.ClientID,
		Timestamp:     c.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		c.log.Warn("encode lifecycle event failed", "subject", subject, "error", err)
		return
	}
	if err := c.bus.Publish(subject, data); err != nil {
		c.log.Warn("publish lifecycle event failed", "subject", subject, "error", err)
	}
}
