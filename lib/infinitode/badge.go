package infinitode

// Badge is an in-game pinned badge.
type Badge struct {
	IconImg      string
	IconColor    string
	OverlayImg   string
	OverlayColor string
}

// BadgeInfo describes one of a player's profile badges.
type BadgeInfo struct {
	Rarity string
	Color  string
}
