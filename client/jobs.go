package client

import (
	"fmt"
	"net/http"
	"net/url"

	"k8s.io/utils/strings/slices"
)

// Lifecycle states a job moves through on the master.
const (
	JobStatusQueued    = "queued"
	JobStatusWaiting   = "waiting"
	JobStatusRunning   = "running"
	JobStatusCanceling = "canceling"
	JobStatusCanceled  = "canceled"
	JobStatusSuccess   = "success"
	JobStatusError     = "error"
)

var terminalJobStatuses = []string{JobStatusSuccess, JobStatusError, JobStatusCanceled}

// JobFinished reports whether a job status is terminal.
func JobFinished(status string) bool {
	return slices.Contains(terminalJobStatuses, status)
}

// GetJobs lists the jobs known to the master. Each entry carries the job
// id and its URI; GetJob fetches the full record.
func (c *Client) GetJobs() ([]*Resource, error) {
	return c.requestResourceList(KindJob, http.MethodGet, apiRoot+"/jobs", nil, nil)
}

// GetJob returns the full record of one job.
func (c *Client) GetJob(id string) (*Resource, error) {
	return c.requestResource(KindJob, http.MethodGet, fmt.Sprintf("%s/jobs/%s", apiRoot, id), nil, nil)
}

// CancelJob asks the master to abandon a queued or running job. The reply
// body comes back uninterpreted.
func (c *Client) CancelJob(id string, dryRun bool) (string, error) {
	query := url.Values{}
	addFlag(query, "dry-run", dryRun)
	return c.requestRaw(http.MethodDelete, fmt.Sprintf("%s/jobs/%s", apiRoot, id), query, nil)
}
