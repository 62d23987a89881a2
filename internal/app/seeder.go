package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hostel_portal/internal/adapters/observability"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/generator"
)

// bulkUpserter is implemented by backends that can write many records in one round trip.
type bulkUpserter[T any] interface {
	UpsertMany(ctx context.Context, vs []T) error
}

// SeedBatchSize bounds one bulk write.
const SeedBatchSize = 200

type seedTask struct {
	kind string
	n    int
	run  func(ctx context.Context) error
}

func task[T domain.Entity[T]](kind string, repo domain.Repository[T], items []T) seedTask {
	return seedTask{kind: kind, n: len(items), run: func(ctx context.Context) error {
		for lo := 0; lo < len(items); lo += SeedBatchSize {
			batch := items[lo:min(lo+SeedBatchSize, len(items))]
			start := time.Now()
			if bu, ok := repo.(bulkUpserter[T]); ok {
				if err := bu.UpsertMany(ctx, batch); err != nil {
					return err
				}
			} else {
				for _, v := range batch {
					if err := repo.Upsert(ctx, v); err != nil {
						return err
					}
				}
			}
			observability.ObserveSeed(kind, len(batch), time.Since(start))
		}
		return nil
	}}
}

// Seed writes ds into st, one collection per worker with at most workers in
// flight, then drops every cached stat. The first failure is returned after
// all started collections finish.
func Seed(ctx context.Context, st Stores, cache domain.Cache, ds generator.Dataset, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	tasks := []seedTask{
		task(KindResident, st.Residents, ds.Residents),
		task(KindRoom, st.Rooms, ds.Rooms),
		task(KindPoll, st.Polls, ds.Polls),
		task(KindMovement, st.Movements, ds.Movements),
		task(KindComplaint, st.Complaints, ds.Complaints),
		task(KindAnnouncement, st.Announcements, ds.Announcements),
		task(KindMenuItem, st.MenuItems, ds.MenuItems),
		task(KindMenuDay, st.MenuDays, ds.WeeklyMenu),
		task(KindRating, st.Ratings, ds.Ratings),
		task(KindFeeItem, st.FeeItems, ds.FeeItems),
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, t := range tasks {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return fmt.Errorf("seed: %w", err)
		}
		wg.Add(1)
		go func(t seedTask) {
			defer wg.Done()
			defer sem.Release(1)

			if err := t.run(ctx); err != nil {
				log.Warn().Str("entity", t.kind).Str("err_type", observability.LabelErr(err)).Err(err).Msg("seed failed")
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("seed %s: %w", t.kind, err)
				}
				mu.Unlock()
				return
			}
			log.Info().Str("entity", t.kind).Int("records", t.n).Msg("seed ok")
		}(t)
	}
	wg.Wait()

	DropCachedViews(ctx, cache)
	return firstErr
}

// DropCachedViews removes every cached stat card and dashboard so the next
// read recomputes them from the stores. A nil cache is a no-op.
func DropCachedViews(ctx context.Context, cache domain.Cache) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, allStatKeys()...); err != nil {
		log.Warn().Err(err).Msg("dropping cached stats failed")
	}
}
