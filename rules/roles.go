package rules

import (
	"fmt"
	"strings"

	"github.com/jenkinchris11/comp250-bot/model"
)

// typed is a generic constraint for any model type with a TypeName accessor.
type typed interface {
	TypeName() string
}

// countType counts items whose TypeName matches t (case-insensitive).
func countType[T typed](items []T, t string) int {
	n := 0
	for _, item := range items {
		if strings.EqualFold(item.TypeName(), t) {
			n++
		}
	}
	return n
}

// Types holds the unit types every manager needs, resolved once from the
// registry. Re-resolve when the registry is replaced.
type Types struct {
	Table  *model.UnitTypeTable
	Worker model.UnitType
	Base   model.UnitType
}

// ResolveTypes looks up the worker and base types. A missing table or a
// table without them is a configuration error.
func ResolveTypes(tbl *model.UnitTypeTable) (Types, error) {
	if tbl == nil {
		return Types{}, model.ErrNoUnitTypes
	}
	worker, ok := tbl.TypeByName(model.TypeWorker)
	if !ok {
		return Types{}, fmt.Errorf("%w: %s", model.ErrUnknownUnitType, model.TypeWorker)
	}
	base, ok := tbl.TypeByName(model.TypeBase)
	if !ok {
		return Types{}, fmt.Errorf("%w: %s", model.ErrUnknownUnitType, model.TypeBase)
	}
	return Types{Table: tbl, Worker: worker, Base: base}, nil
}

// Of returns the type of u. Units of unknown type resolve to the zero
// UnitType, which has no capabilities.
func (t Types) Of(u model.Unit) model.UnitType {
	ut, _ := t.Table.TypeByName(u.Type)
	return ut
}

func (t Types) isBase(u model.Unit) bool {
	return strings.EqualFold(u.Type, t.Base.Name)
}
