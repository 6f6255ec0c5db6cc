package main

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jtejido/afislr/internal/afis"
	"github.com/jtejido/afislr/internal/minutia"
)

const (
	jobRunning = "running"
	jobDone    = "done"
	jobFailed  = "failed"
)

type job struct {
	future *afis.Future
	cancel context.CancelFunc
}

// jobStore keeps the most recent async identifications. The oldest job is
// cancelled and forgotten once more than limit are held.
type jobStore struct {
	mx    sync.Mutex
	jobs  map[string]*job
	order []string
	limit int
}

func newJobStore(limit int) *jobStore {
	return &jobStore{
		jobs:  make(map[string]*job),
		limit: limit,
	}
}

func (s *jobStore) start(db *afis.Database, query []minutia.Minutia, maxResults int) string {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	j := &job{
		future: db.IdentifyAsync(ctx, query, maxResults),
		cancel: cancel,
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	s.jobs[id] = j
	s.order = append(s.order, id)
	for len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		if o, ok := s.jobs[oldest]; ok {
			o.cancel()
			delete(s.jobs, oldest)
		}
	}
	return id
}

func (s *jobStore) get(id string) (*job, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()
	j, ok := s.jobs[id]
	return j, ok
}

// remove cancels id and forgets it.
func (s *jobStore) remove(id string) bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return false
	}
	j.cancel()
	delete(s.jobs, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (j *job) response(id string) jobResponse {
	res := jobResponse{JobID: id, Status: jobRunning}
	if !j.future.Ready() {
		return res
	}
	results, err := j.future.Wait()
	if err != nil {
		res.Status = jobFailed
		res.Error = err.Error()
		return res
	}
	res.Status = jobDone
	res.Results = results
	return res
}
