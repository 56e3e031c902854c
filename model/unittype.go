package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoUnitTypes       = errors.New("unit type table not set")
	ErrUnknownUnitType   = errors.New("unknown unit type")
	ErrDuplicateUnitType = errors.New("duplicate unit type")
)

// Standard unit type names.
const (
	TypeResource = "Resource"
	TypeBase     = "Base"
	TypeBarracks = "Barracks"
	TypeWorker   = "Worker"
	TypeLight    = "Light"
	TypeHeavy    = "Heavy"
	TypeRanged   = "Ranged"
)

// UnitType describes the rules-level properties of a unit kind.
type UnitType struct {
	Name        string   `yaml:"name" json:"name"`
	Cost        int      `yaml:"cost" json:"cost"`
	HP          int      `yaml:"hp" json:"hp"`
	CanHarvest  bool     `yaml:"can_harvest" json:"can_harvest"`
	CanAttack   bool     `yaml:"can_attack" json:"can_attack"`
	CanMove     bool     `yaml:"can_move" json:"can_move"`
	IsResource  bool     `yaml:"is_resource" json:"is_resource"`
	IsStockpile bool     `yaml:"is_stockpile" json:"is_stockpile"`
	Produces    []string `yaml:"produces,omitempty" json:"produces,omitempty"`
}

// UnitTypeTable is a read-only registry of unit types. Build it once and
// share it; nothing mutates it after construction.
type UnitTypeTable struct {
	types  []UnitType
	byName map[string]int
}

// NewUnitTypeTable indexes types by case-insensitive name.
func NewUnitTypeTable(types []UnitType) (*UnitTypeTable, error) {
	t := &UnitTypeTable{
		types:  make([]UnitType, len(types)),
		byName: make(map[string]int, len(types)),
	}
	copy(t.types, types)
	for i, ut := range t.types {
		key := strings.ToLower(ut.Name)
		if key == "" {
			return nil, fmt.Errorf("unit type %d: empty name", i)
		}
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnitType, ut.Name)
		}
		t.byName[key] = i
	}
	return t, nil
}

// TypeByName returns the unit type with the given name.
func (t *UnitTypeTable) TypeByName(name string) (UnitType, bool) {
	if t == nil {
		return UnitType{}, false
	}
	i, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return UnitType{}, false
	}
	return t.types[i], true
}

// Types returns a copy of all registered types in declaration order.
func (t *UnitTypeTable) Types() []UnitType {
	out := make([]UnitType, len(t.types))
	copy(out, t.types)
	return out
}

// DefaultUnitTypeTable returns the standard ruleset.
func DefaultUnitTypeTable() *UnitTypeTable {
	t, err := NewUnitTypeTable([]UnitType{
		{Name: TypeResource, Cost: 1, HP: 1, IsResource: true},
		{Name: TypeBase, Cost: 10, HP: 10, IsStockpile: true, Produces: []string{TypeWorker}},
		{Name: TypeBarracks, Cost: 5, HP: 4, Produces: []string{TypeLight, TypeHeavy, TypeRanged}},
		{Name: TypeWorker, Cost: 1, HP: 1, CanHarvest: true, CanAttack: true, CanMove: true, Produces: []string{TypeBase, TypeBarracks}},
		{Name: TypeLight, Cost: 2, HP: 4, CanAttack: true, CanMove: true},
		{Name: TypeHeavy, Cost: 2, HP: 8, CanAttack: true, CanMove: true},
		{Name: TypeRanged, Cost: 2, HP: 1, CanAttack: true, CanMove: true},
	})
	if err != nil {
		panic(err)
	}
	return t
}

type unitTypeFile struct {
	UnitTypes []UnitType `yaml:"unit_types"`
}

// LoadUnitTypeTable reads a YAML file with a top-level unit_types list.
func LoadUnitTypeTable(path string) (*UnitTypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f unitTypeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(f.UnitTypes) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoUnitTypes)
	}
	return NewUnitTypeTable(f.UnitTypes)
}
