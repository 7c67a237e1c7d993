package rebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	job := NewJob(Spec{Image: "djf/ddns"}, 10)
	require.Len(t, job.ID, 8)
	assert.Equal(t, StatusPending, job.Status)
	assert.Equal(t, 0, job.Output.Len())
}

func TestApplyStatusMonotonic(t *testing.T) {
	jobs := []*Job{NewJob(Spec{Image: "a"}, 4)}

	Apply(jobs, Event{Kind: EventJobStarted, Job: 0})
	assert.Equal(t, StatusRunning, jobs[0].Status)

	Apply(jobs, Event{Kind: EventJobFinished, Job: 0})
	assert.Equal(t, StatusSucceeded, jobs[0].Status)

	// 终态后的事件不允许复活任务
	Apply(jobs, Event{Kind: EventJobStarted, Job: 0})
	assert.Equal(t, StatusSucceeded, jobs[0].Status)
	Apply(jobs, Event{Kind: EventJobFinished, Job: 0, Err: "late failure"})
	assert.Equal(t, StatusSucceeded, jobs[0].Status)
	assert.Empty(t, jobs[0].Err)
}

func TestApplyFailureCapturesError(t *testing.T) {
	jobs := []*Job{NewJob(Spec{Image: "a"}, 4)}
	Apply(jobs, Event{Kind: EventJobStarted, Job: 0})
	Apply(jobs, Event{Kind: EventJobFinished, Job: 0, Err: "spawn failed"})
	assert.Equal(t, StatusFailed, jobs[0].Status)
	assert.Equal(t, "spawn failed", jobs[0].Err)
}

func TestApplyIgnoresOutOfRange(t *testing.T) {
	jobs := []*Job{NewJob(Spec{Image: "a"}, 4)}
	Apply(jobs, Event{Kind: EventJobStarted, Job: 5})
	Apply(jobs, Event{Kind: EventJobStarted, Job: -1})
	assert.Equal(t, StatusPending, jobs[0].Status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.String())
	assert.Equal(t, "Running", StatusRunning.String())
	assert.Equal(t, "Done", StatusSucceeded.String())
	assert.Equal(t, "Failed", StatusFailed.String())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusRunning.Terminal())
}
