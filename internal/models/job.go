package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job represents one async upload run against a post type. Handlers must
// not serialize a Job directly; Snapshot gives a copy safe to marshal.
type Job struct {
	ID         string
	PostType   string
	Status     string // "running", "completed", "failed"
	StartedAt  time.Time
	FinishedAt *time.Time
	Error      string
	Output     []string
	Done       int
	Total      int
	Succeeded  int
	Failed     int
	mu         sync.Mutex
}

// AppendLog adds a log line to the job output.
func (j *Job) AppendLog(line string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Output = append(j.Output, line)
}

// LogsSince returns log lines starting from the given index.
func (j *Job) LogsSince(offset int) []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if offset >= len(j.Output) {
		return nil
	}
	lines := make([]string, len(j.Output)-offset)
	copy(lines, j.Output[offset:])
	return lines
}

// SetProgress records how many rows of the batch have been attempted.
func (j *Job) SetProgress(done, total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Done = done
	j.Total = total
}

// CurrentStatus returns the job status under lock.
func (j *Job) CurrentStatus() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Status
}

// JobSnapshot is a consistent copy of a job's state, safe to serialize
// while the upload goroutine is still mutating the job.
type JobSnapshot struct {
	ID         string     `json:"id"`
	PostType   string     `json:"post_type"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
	Output     []string   `json:"output"`
	Done       int        `json:"done"`
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
}

// Snapshot copies the job's state under lock.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	output := make([]string, len(j.Output))
	copy(output, j.Output)
	return JobSnapshot{
		ID:         j.ID,
		PostType:   j.PostType,
		Status:     j.Status,
		StartedAt:  j.StartedAt,
		FinishedAt: j.FinishedAt,
		Error:      j.Error,
		Output:     output,
		Done:       j.Done,
		Total:      j.Total,
		Succeeded:  j.Succeeded,
		Failed:     j.Failed,
	}
}

// Complete marks the job as completed with its final counts.
func (j *Job) Complete(succeeded, failed int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = "completed"
	j.Succeeded = succeeded
	j.Failed = failed
	now := time.Now()
	j.FinishedAt = &now
}

// Fail marks the job as failed with an error message.
func (j *Job) Fail(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = "failed"
	j.Error = err
	now := time.Now()
	j.FinishedAt = &now
}

// JobStore is an in-memory thread-safe store for jobs.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

// Create adds a new job, assigning it a UUID.
func (s *JobStore) Create(postType string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &Job{
		ID:        uuid.New().String(),
		PostType:  postType,
		Status:    "running",
		StartedAt: time.Now(),
		Output:    []string{},
	}
	s.jobs[j.ID] = j
	return j
}

// Get returns a job by ID.
func (s *JobStore) Get(id string) *Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs[id]
}

// List returns all jobs, most recent first.
func (s *JobStore) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		result = append(result, j)
	}
	for i := 0; i < len(result); i++ {
		for k := i + 1; k < len(result); k++ {
			if result[k].StartedAt.After(result[i].StartedAt) {
				result[i], result[k] = result[k], result[i]
			}
		}
	}
	return result
}
