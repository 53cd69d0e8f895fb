// Package hierarchy models the five-level organizational hierarchy
// (zone -> state -> district -> organization -> KVK) that report scopes
// are resolved against.
package hierarchy

import (
	"context"

	"github.com/google/uuid"
)

// Level identifies one level of the organizational hierarchy.
type Level string

const (
	LevelZone         Level = "zone"
	LevelState        Level = "state"
	LevelDistrict     Level = "district"
	LevelOrganization Level = "organization"
	LevelKvk          Level = "kvk"
)

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelZone, LevelState, LevelDistrict, LevelOrganization, LevelKvk:
		return Level(s), true
	}
	return "", false
}

// Child returns the level directly below l, or false for the leaf level.
func (l Level) Child() (Level, bool) {
	switch l {
	case LevelZone:
		return LevelState, true
	case LevelState:
		return LevelDistrict, true
	case LevelDistrict:
		return LevelOrganization, true
	case LevelOrganization:
		return LevelKvk, true
	}
	return "", false
}

// Zone is the top level of the hierarchy.
type Zone struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// State belongs to a zone.
type State struct {
	ID     uuid.UUID `json:"id"`
	ZoneID uuid.UUID `json:"zone_id"`
	Name   string    `json:"name"`
}

// District belongs to a state.
type District struct {
	ID      uuid.UUID `json:"id"`
	StateID uuid.UUID `json:"state_id"`
	Name    string    `json:"name"`
}

// Organization is the host institute a KVK is sanctioned under.
type Organization struct {
	ID         uuid.UUID `json:"id"`
	DistrictID uuid.UUID `json:"district_id"`
	Name       string    `json:"name"`
}

// Kvk is the leaf unit that owns all section data.
type Kvk struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
}

// Option is a (id, name) pair for cascading scope selection.
type Option struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Repository provides read access to the hierarchy. An empty parent list
// means "all parents" (used by admin-scoped callers).
type Repository interface {
	ListZones(ctx context.Context) ([]Zone, error)
	ListStates(ctx context.Context, zoneIDs []uuid.UUID) ([]State, error)
	ListDistricts(ctx context.Context, stateIDs []uuid.UUID) ([]District, error)
	ListOrganizations(ctx context.Context, districtIDs []uuid.UUID) ([]Organization, error)
	ListKvks(ctx context.Context, organizationIDs []uuid.UUID) ([]Kvk, error)
	GetKvk(ctx context.Context, id uuid.UUID) (*Kvk, error)
}
