/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/golfclub-teebot/club"
)

const (
	schedulesDir = "schedules/"

	// fetchConcurrency bounds parallel object reads in ListSchedules.
	fetchConcurrency = 8
)

// ScheduleStore is a club.ScheduleStore keeping one JSON object per
// schedule. IDs are creation times in milliseconds, bumped when needed so
// every ID handed out by a store is larger than the last.
type ScheduleStore struct {
	bucket *Bucket
	now    func() time.Time

	mu     sync.Mutex
	lastID int64
}

var _ club.ScheduleStore = (*ScheduleStore)(nil)

func NewScheduleStore(b *Bucket) *ScheduleStore {
	return &ScheduleStore{
		bucket: b,
		now:    time.Now,
	}
}

func scheduleName(id int64) string {
	return fmt.Sprintf("%v%d.json", schedulesDir, id)
}

func (s *ScheduleStore) nextID(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *ScheduleStore) CreateSchedule(ctx context.Context,
	sched *club.Schedule) error {

	if err := sched.Normalize(); err != nil {
		return err
	}
	now := s.now().UTC()
	sched.ID = s.nextID(now)
	sched.CreatedAt = now

	data, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("encode schedule %v: %w", sched.ID, err)
	}
	return s.bucket.Put(ctx, scheduleName(sched.ID), data)
}

func (s *ScheduleStore) GetSchedule(ctx context.Context,
	id int64) (*club.Schedule, error) {

	return s.load(ctx, scheduleName(id))
}

func (s *ScheduleStore) load(ctx context.Context,
	name string) (*club.Schedule, error) {

	data, err := s.bucket.Get(ctx, name)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, fmt.Errorf("schedule %v: %w", name, club.ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	var sched club.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, fmt.Errorf("decode %v: %w", name, err)
	}
	return &sched, nil
}

// ListSchedules reads every stored schedule concurrently and returns them
// earliest tee time first.
func (s *ScheduleStore) ListSchedules(ctx context.Context) ([]club.Schedule,
	error) {

	names, err := s.bucket.List(ctx, schedulesDir)
	if err != nil {
		return nil, err
	}

	scheds := make([]club.Schedule, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(fetchConcurrency)
	for idx, name := range names {
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		eg.Go(func() error {
			sched, err := s.load(egCtx, name)
			if err != nil {
				return err
			}
			scheds[idx] = *sched
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]club.Schedule, 0, len(scheds))
	for _, sched := range scheds {
		if sched.ID != 0 {
			out = append(out, sched)
		}
	}
	club.SortSchedules(out)
	return out, nil
}

func (s *ScheduleStore) DeleteSchedule(ctx context.Context, id int64) error {
	// S3 deletes of missing keys succeed, so look first
	if _, err := s.GetSchedule(ctx, id); err != nil {
		return err
	}
	return s.bucket.Delete(ctx, scheduleName(id))
}
