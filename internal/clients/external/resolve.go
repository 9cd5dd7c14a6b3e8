package external

import (
	"context"

	entities "github.com/KirkDiggler/rpg-combat/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// ResolveRecord fills equipment details from the catalog for entries that
// carry a CatalogKey. Explicit record values always win: a weapon keeps its
// own dice and the record keeps its own armor class. The input is not modified.
func ResolveRecord(ctx context.Context, catalog Client, record entities.CombatantRecord) (entities.CombatantRecord, error) {
	if catalog == nil || len(record.Equipment) == 0 {
		return record, nil
	}

	equipment := make(map[string]entities.EquipmentRecord, len(record.Equipment))
	for slot, rec := range record.Equipment {
		equipment[slot] = rec
		if rec.CatalogKey == "" {
			continue
		}

		data, err := catalog.GetEquipment(ctx, rec.CatalogKey)
		if err != nil {
			return record, errors.Wrapf(err, "failed to resolve %s for %s", rec.CatalogKey, record.ID)
		}

		if rec.Name == "" {
			rec.Name = data.Name
		}
		switch data.Kind {
		case KindWeapon:
			if rec.Dice == "" {
				rec.Dice = data.DamageDice
			}
		case KindArmor:
			if record.ArmorClass == nil && data.ArmorClass > 0 {
				ac := data.ArmorClass
				record.ArmorClass = &ac
			}
		}
		equipment[slot] = rec
	}

	record.Equipment = equipment
	return record, nil
}
