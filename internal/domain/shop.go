package domain

// ─── Shop Types ─────────────────────────────────────────────────────────────

// ShopCategory groups purchasable items.
type ShopCategory string

const (
	ShopAvatars  ShopCategory = "avatars"
	ShopThemes   ShopCategory = "themes"
	ShopTitles   ShopCategory = "titles"
	ShopPowerups ShopCategory = "powerups"
)

// ShopItem is one catalog entry. Cosmetics (avatars, themes, titles) are
// one-time purchases; powerups stack as charges in the inventory.
type ShopItem struct {
	ID       string       `json:"id"`
	Category ShopCategory `json:"category"`
	Name     string       `json:"name"`
	Price    int          `json:"price"` // Spendable XP
	Effect   string       `json:"effect,omitempty"`
}

// LevelThreshold is one row of the level table.
type LevelThreshold struct {
	Level int `json:"level"`
	MinXP int `json:"minXp"`
}
