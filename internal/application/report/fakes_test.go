package report

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/domain/shared"
)

// fakeHierarchy is an in-memory hierarchy.Repository. KVKs are listed in
// name order to mirror the persistence layer's canonical ordering.
type fakeHierarchy struct {
	zones     []hierarchy.Zone
	states    []hierarchy.State
	districts []hierarchy.District
	orgs      []hierarchy.Organization
	kvks      []hierarchy.Kvk
}

func (f *fakeHierarchy) ListZones(ctx context.Context) ([]hierarchy.Zone, error) {
	return f.zones, nil
}

func (f *fakeHierarchy) ListStates(ctx context.Context, zoneIDs []uuid.UUID) ([]hierarchy.State, error) {
	set := toSet(zoneIDs)
	var out []hierarchy.State
	for _, s := range f.states {
		if set == nil {
			out = append(out, s)
			continue
		}
		if _, ok := set[s.ZoneID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListDistricts(ctx context.Context, stateIDs []uuid.UUID) ([]hierarchy.District, error) {
	set := toSet(stateIDs)
	var out []hierarchy.District
	for _, d := range f.districts {
		if set == nil {
			out = append(out, d)
			continue
		}
		if _, ok := set[d.StateID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListOrganizations(ctx context.Context, districtIDs []uuid.UUID) ([]hierarchy.Organization, error) {
	set := toSet(districtIDs)
	var out []hierarchy.Organization
	for _, o := range f.orgs {
		if set == nil {
			out = append(out, o)
			continue
		}
		if _, ok := set[o.DistrictID]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListKvks(ctx context.Context, organizationIDs []uuid.UUID) ([]hierarchy.Kvk, error) {
	set := toSet(organizationIDs)
	var out []hierarchy.Kvk
	for _, k := range f.kvks {
		if set == nil {
			out = append(out, k)
			continue
		}
		if _, ok := set[k.OrganizationID]; ok {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeHierarchy) GetKvk(ctx context.Context, id uuid.UUID) (*hierarchy.Kvk, error) {
	for _, k := range f.kvks {
		if k.ID == id {
			kvk := k
			return &kvk, nil
		}
	}
	return nil, shared.ErrNotFound
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// fakeSectionStore serves canned records per KVK. failKvks makes a fetch
// fail for specific KVKs; delays slows a KVK's fetch to shake out
// ordering assumptions; blockUntilCancel parks every fetch on the context.
type fakeSectionStore struct {
	mu               sync.Mutex
	profiles         map[uuid.UUID][]report.KvkProfileRecord
	employees        map[uuid.UUID][]report.EmployeeRecord
	vehicles         map[uuid.UUID][]report.VehicleRecord
	failKvks         map[uuid.UUID]bool
	delays           map[uuid.UUID]time.Duration
	blockUntilCancel bool
	lastFilter       report.Filter
}

func newFakeSectionStore() *fakeSectionStore {
	return &fakeSectionStore{
		profiles:  make(map[uuid.UUID][]report.KvkProfileRecord),
		employees: make(map[uuid.UUID][]report.EmployeeRecord),
		vehicles:  make(map[uuid.UUID][]report.VehicleRecord),
		failKvks:  make(map[uuid.UUID]bool),
		delays:    make(map[uuid.UUID]time.Duration),
	}
}

func (s *fakeSectionStore) gate(ctx context.Context, kvkID uuid.UUID) error {
	if s.blockUntilCancel {
		<-ctx.Done()
		return ctx.Err()
	}
	if d := s.delays[kvkID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.failKvks[kvkID] {
		return fmt.Errorf("store unavailable for kvk %s", kvkID)
	}
	return nil
}

func (s *fakeSectionStore) GetKvkProfile(ctx context.Context, kvkID uuid.UUID) (*report.KvkProfileRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	recs := s.profiles[kvkID]
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (s *fakeSectionStore) ListBankAccounts(ctx context.Context, kvkID uuid.UUID) ([]report.BankAccountRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *fakeSectionStore) ListEmployees(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.EmployeeRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastFilter = f
	s.mu.Unlock()
	var out []report.EmployeeRecord
	for _, e := range s.employees[kvkID] {
		if f.MatchesAnyDate(e.DateOfJoining, e.DateOfBirth) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeSectionStore) ListInfrastructureProjects(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.InfrastructureProjectRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *fakeSectionStore) ListVehicles(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.VehicleRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	var out []report.VehicleRecord
	for _, v := range s.vehicles[kvkID] {
		if f.MatchesYear(v.PurchaseYear) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *fakeSectionStore) ListEquipment(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.EquipmentRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *fakeSectionStore) ListLandRecords(ctx context.Context, kvkID uuid.UUID) ([]report.LandRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *fakeSectionStore) ListTrainings(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.TrainingRecord, error) {
	if err := s.gate(ctx, kvkID); err != nil {
		return nil, err
	}
	return nil, nil
}

// testWorld is a small two-zone hierarchy with four KVKs.
type testWorld struct {
	hier *fakeHierarchy

	zoneA, zoneB         hierarchy.Zone
	stateA, stateB       hierarchy.State
	districtA, districtB hierarchy.District
	orgA, orgB           hierarchy.Organization
	kvk1, kvk2, kvk3     hierarchy.Kvk
	kvkOther             hierarchy.Kvk
}

func newTestWorld() *testWorld {
	w := &testWorld{}
	w.zoneA = hierarchy.Zone{ID: uuid.New(), Name: "Zone I"}
	w.zoneB = hierarchy.Zone{ID: uuid.New(), Name: "Zone V"}
	w.stateA = hierarchy.State{ID: uuid.New(), ZoneID: w.zoneA.ID, Name: "Punjab"}
	w.stateB = hierarchy.State{ID: uuid.New(), ZoneID: w.zoneB.ID, Name: "Maharashtra"}
	w.districtA = hierarchy.District{ID: uuid.New(), StateID: w.stateA.ID, Name: "Ludhiana"}
	w.districtB = hierarchy.District{ID: uuid.New(), StateID: w.stateB.ID, Name: "Pune"}
	w.orgA = hierarchy.Organization{ID: uuid.New(), DistrictID: w.districtA.ID, Name: "PAU"}
	w.orgB = hierarchy.Organization{ID: uuid.New(), DistrictID: w.districtB.ID, Name: "MPKV"}
	w.kvk1 = hierarchy.Kvk{ID: uuid.New(), OrganizationID: w.orgA.ID, Name: "KVK Amritsar"}
	w.kvk2 = hierarchy.Kvk{ID: uuid.New(), OrganizationID: w.orgA.ID, Name: "KVK Bathinda"}
	w.kvk3 = hierarchy.Kvk{ID: uuid.New(), OrganizationID: w.orgA.ID, Name: "KVK Ludhiana"}
	w.kvkOther = hierarchy.Kvk{ID: uuid.New(), OrganizationID: w.orgB.ID, Name: "KVK Baramati"}

	w.hier = &fakeHierarchy{
		zones:     []hierarchy.Zone{w.zoneA, w.zoneB},
		states:    []hierarchy.State{w.stateA, w.stateB},
		districts: []hierarchy.District{w.districtA, w.districtB},
		orgs:      []hierarchy.Organization{w.orgA, w.orgB},
		kvks:      []hierarchy.Kvk{w.kvk1, w.kvk2, w.kvk3, w.kvkOther},
	}
	return w
}

func adminCaller() report.Caller {
	return report.Caller{UserID: uuid.New(), Name: "Admin", Role: report.RoleAdmin}
}

func districtCaller(districtID uuid.UUID) report.Caller {
	return report.Caller{UserID: uuid.New(), Name: "DDO Ludhiana", Role: report.RoleDistrict, HomeDistrictID: &districtID}
}
