package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
)

func employeesDescriptor(t *testing.T) report.SectionDescriptor {
	t.Helper()
	d, ok := report.NewRegistry().Get("1.3")
	require.True(t, ok)
	return d
}

func TestAggregateSection(t *testing.T) {
	w := newTestWorld()
	joined := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	born := time.Date(1985, time.March, 12, 0, 0, 0, 0, time.UTC)

	newAgg := func(store *fakeSectionStore) *Aggregator {
		return NewAggregator(NewSectionFetcher(store), 8, zap.NewNop())
	}
	kvks := []hierarchy.Kvk{w.kvk1, w.kvk2, w.kvk3}

	t.Run("one failing kvk does not abort the section", func(t *testing.T) {
		store := newFakeSectionStore()
		for _, k := range kvks {
			store.employees[k.ID] = []report.EmployeeRecord{
				{Name: "Staff of " + k.Name, Designation: "SMS", DateOfJoining: &joined, DateOfBirth: &born},
			}
		}
		store.failKvks[w.kvk2.ID] = true

		payload, err := newAgg(store).AggregateSection(context.Background(), employeesDescriptor(t), kvks, report.NoFilter)
		require.NoError(t, err)
		require.Len(t, payload.PerKvkErrors, 1)
		assert.Equal(t, w.kvk2.ID, payload.PerKvkErrors[0].KvkID)
		require.Len(t, payload.Rows, 2)
		assert.Equal(t, w.kvk1.ID, payload.Rows[0].KvkID)
		assert.Equal(t, w.kvk3.ID, payload.Rows[1].KvkID)
	})

	t.Run("rows keep canonical order under uneven fetch latency", func(t *testing.T) {
		store := newFakeSectionStore()
		for _, k := range kvks {
			store.employees[k.ID] = []report.EmployeeRecord{
				{Name: "Staff of " + k.Name, Designation: "SMS", DateOfJoining: &joined, DateOfBirth: &born},
			}
		}
		// First KVK finishes last.
		store.delays[w.kvk1.ID] = 30 * time.Millisecond
		store.delays[w.kvk2.ID] = 10 * time.Millisecond

		payload, err := newAgg(store).AggregateSection(context.Background(), employeesDescriptor(t), kvks, report.NoFilter)
		require.NoError(t, err)
		require.Len(t, payload.Rows, 3)
		assert.Equal(t, "Staff of KVK Amritsar", payload.Rows[0].Values["Name"])
		assert.Equal(t, "Staff of KVK Bathinda", payload.Rows[1].Values["Name"])
		assert.Equal(t, "Staff of KVK Ludhiana", payload.Rows[2].Values["Name"])
	})

	t.Run("context cancellation aborts the whole section", func(t *testing.T) {
		store := newFakeSectionStore()
		store.blockUntilCancel = true

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		_, err := newAgg(store).AggregateSection(ctx, employeesDescriptor(t), kvks, report.NoFilter)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("empty section carries a no-records warning", func(t *testing.T) {
		store := newFakeSectionStore()
		payload, err := newAgg(store).AggregateSection(context.Background(), employeesDescriptor(t), kvks, report.NoFilter)
		require.NoError(t, err)
		assert.Empty(t, payload.Rows)
		require.Len(t, payload.Warnings, 1)
		assert.Contains(t, payload.Warnings[0], "no records")
	})

	t.Run("missing required field becomes a warning, not a failure", func(t *testing.T) {
		store := newFakeSectionStore()
		store.employees[w.kvk1.ID] = []report.EmployeeRecord{
			{Name: "T Singh", Designation: "Driver", DateOfBirth: &born}, // no joining date
		}
		payload, err := newAgg(store).AggregateSection(context.Background(), employeesDescriptor(t), []hierarchy.Kvk{w.kvk1}, report.NoFilter)
		require.NoError(t, err)
		require.Len(t, payload.Rows, 1)
		assert.Empty(t, payload.Rows[0].Values["Date of Joining"])
		require.NotEmpty(t, payload.Warnings)
		assert.Contains(t, payload.Warnings[0], "Date of Joining")
	})

	t.Run("narrative section renders one row per kvk", func(t *testing.T) {
		store := newFakeSectionStore()
		store.profiles[w.kvk1.ID] = []report.KvkProfileRecord{
			{KvkID: w.kvk1.ID, KvkName: "KVK Amritsar", HostOrganization: "PAU", Address: "GT Road",
				DistrictName: "Amritsar", StateName: "Punjab", ZoneName: "Zone I", SanctionedYear: 1994},
		}
		profile, ok := report.NewRegistry().Get("1.1")
		require.True(t, ok)

		payload, err := newAgg(store).AggregateSection(context.Background(), profile, []hierarchy.Kvk{w.kvk1}, report.NoFilter)
		require.NoError(t, err)
		require.Len(t, payload.Rows, 1)
		assert.Equal(t, report.FormatNarrative, payload.Format)
		assert.Equal(t, "KVK Amritsar", payload.Rows[0].Values["KVK Name"])
	})
}

func TestNewAggregatorClampsConcurrency(t *testing.T) {
	store := newFakeSectionStore()
	fetcher := NewSectionFetcher(store)

	assert.Equal(t, 1, NewAggregator(fetcher, 0, zap.NewNop()).concurrency)
	assert.Equal(t, 16, NewAggregator(fetcher, 100, zap.NewNop()).concurrency)
	assert.Equal(t, 8, NewAggregator(fetcher, 8, zap.NewNop()).concurrency)
}
