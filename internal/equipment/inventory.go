package equipment

// Item is an inventory entry. Quantity zero is treated as one.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity,omitempty"`
}

// Inventory holds everything a character owns, grouped the way the
// calculators consume it. There is no equipped flag; AC and attack
// calculators enumerate all combinations instead.
type Inventory struct {
	Weapons []Item `json:"weapons,omitempty"`
	Armor   []Item `json:"armor,omitempty"`
	Shields []Item `json:"shields,omitempty"`
	Other   []Item `json:"other,omitempty"`
	Gold    int    `json:"gold,omitempty"`
}

func addItem(items []Item, name string, quantity int) []Item {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range items {
		if items[i].Name == name {
			if items[i].Quantity <= 0 {
				items[i].Quantity = 1
			}
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, Item{Name: name, Quantity: quantity})
}

func removeItem(items []Item, name string, quantity int) ([]Item, bool) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range items {
		if items[i].Name != name {
			continue
		}
		current := items[i].Quantity
		if current <= 0 {
			current = 1
		}
		if current <= quantity {
			return append(items[:i], items[i+1:]...), true
		}
		items[i].Quantity = current - quantity
		return items, true
	}
	return items, false
}

// AddWeapon adds a weapon to the inventory, stacking quantities
func (inv *Inventory) AddWeapon(name string, quantity int) {
	inv.Weapons = addItem(inv.Weapons, name, quantity)
}

// AddArmor adds a piece of body armor; shields go through AddShield
func (inv *Inventory) AddArmor(name string, quantity int) {
	inv.Armor = addItem(inv.Armor, name, quantity)
}

// AddShield adds a shield to the inventory
func (inv *Inventory) AddShield(name string, quantity int) {
	inv.Shields = addItem(inv.Shields, name, quantity)
}

// AddOther adds adventuring gear that does not affect derived stats
func (inv *Inventory) AddOther(name string, quantity int) {
	inv.Other = addItem(inv.Other, name, quantity)
}

// RemoveWeapon removes up to quantity of the named weapon. Returns false
// when the weapon is not in the inventory.
func (inv *Inventory) RemoveWeapon(name string, quantity int) bool {
	var ok bool
	inv.Weapons, ok = removeItem(inv.Weapons, name, quantity)
	return ok
}

// RemoveArmor removes up to quantity of the named armor
func (inv *Inventory) RemoveArmor(name string, quantity int) bool {
	var ok bool
	inv.Armor, ok = removeItem(inv.Armor, name, quantity)
	return ok
}

// RemoveShield removes up to quantity of the named shield
func (inv *Inventory) RemoveShield(name string, quantity int) bool {
	var ok bool
	inv.Shields, ok = removeItem(inv.Shields, name, quantity)
	return ok
}

// HasShield reports whether any shield is in the inventory
func (inv *Inventory) HasShield() bool {
	return len(inv.Shields) > 0
}
