package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetJobs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/jobs" {
			t.Errorf("path = %s, want /2/jobs", r.URL.Path)
		}
		w.Write([]byte(`[{"id": 17, "uri": "/2/jobs/17"}, {"id": 18, "uri": "/2/jobs/18"}]`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	jobs, err := c.GetJobs()
	if err != nil {
		t.Fatalf("GetJobs returned error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Kind() != KindJob {
		t.Errorf("Kind() = %q, want %q", jobs[0].Kind(), KindJob)
	}
	if got := jobs[0].GetString("id"); got != "17" {
		t.Errorf("id = %q, want 17", got)
	}
}

func TestClient_GetJob(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/jobs/17" {
			t.Errorf("path = %s, want /2/jobs/17", r.URL.Path)
		}
		w.Write([]byte(`{"id": 17, "status": "success", "ops": [{"OP_ID": "OP_INSTANCE_STARTUP"}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	job, err := c.GetJob("17")
	if err != nil {
		t.Fatalf("GetJob returned error: %v", err)
	}
	if got := job.GetString("status"); got != JobStatusSuccess {
		t.Errorf("status = %q, want success", got)
	}
}

func TestClient_CancelJob_RawReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.Write([]byte(`[true, "job 17 canceled"]`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	reply, err := c.CancelJob("17", false)
	if err != nil {
		t.Fatalf("CancelJob returned error: %v", err)
	}
	// The cancel reply passes through uninterpreted.
	if reply != `[true, "job 17 canceled"]` {
		t.Errorf("reply = %q, want the raw body", reply)
	}
}

func TestJobFinished(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{JobStatusSuccess, true},
		{JobStatusError, true},
		{JobStatusCanceled, true},
		{JobStatusQueued, false},
		{JobStatusWaiting, false},
		{JobStatusRunning, false},
		{JobStatusCanceling, false},
	}
	for _, tc := range tests {
		if got := JobFinished(tc.status); got != tc.want {
			t.Errorf("JobFinished(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
