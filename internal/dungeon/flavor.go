package dungeon

// Flavor tables for room naming. Names are "<prefix> <suffix>" with the
// suffix keyed by room type; descriptions are drawn from a per-type pool.
// All draws are independent and with replacement, so repeats within a single
// dungeon are possible and fine.

var namePrefixes = []string{
	"Forgotten",
	"Ancient",
	"Crumbling",
	"Gloomy",
	"Silent",
	"Haunted",
	"Moss-Covered",
	"Shattered",
	"Flooded",
	"Dusty",
	"Echoing",
	"Forsaken",
	"Collapsed",
	"Withered",
	"Scorched",
}

var nameSuffixes = map[RoomType][]string{
	RoomTypeEntrance: {
		"Gateway",
		"Threshold",
		"Entry Hall",
		"Archway",
		"Vestibule",
	},
	RoomTypeChamber: {
		"Chamber",
		"Hall",
		"Sanctum",
		"Gallery",
		"Rotunda",
		"Cell",
	},
	RoomTypeCorridor: {
		"Passage",
		"Corridor",
		"Walkway",
		"Tunnel",
		"Crawlspace",
	},
	RoomTypeTreasure: {
		"Vault",
		"Treasury",
		"Hoard",
		"Strongroom",
		"Cache",
	},
	RoomTypeBoss: {
		"Lair",
		"Throne Room",
		"Arena",
		"Den",
		"Crypt",
	},
	RoomTypeExit: {
		"Exit",
		"Escape Tunnel",
		"Back Gate",
		"Breach",
	},
	RoomTypeSecret: {
		"Hideaway",
		"Alcove",
		"Secret Chamber",
		"Hidden Study",
		"Smuggler's Nook",
	},
}

var descriptions = map[RoomType][]string{
	RoomTypeEntrance: {
		"Daylight spills in behind you, the last you may see of it for a while.",
		"A heavy stone archway marks the boundary between the surface and the dark.",
		"Cold air drifts up from the passages ahead, carrying the smell of old stone.",
		"Scratched tallies on the wall count parties that entered. Fewer marks count those that left.",
	},
	RoomTypeChamber: {
		"Broken furniture and scattered bones suggest this room saw better days.",
		"The ceiling disappears into darkness somewhere far above.",
		"Faded murals cover the walls, their subjects worn beyond recognition.",
		"Rubble is heaped in the corners where part of the ceiling gave way.",
		"Something skitters away from your light as you step inside.",
	},
	RoomTypeCorridor: {
		"A narrow passage where the walls press close and the air grows stale.",
		"Your footsteps echo down the long stretch of worked stone.",
		"Water drips somewhere in the dark, keeping slow, patient time.",
		"The corridor bends out of sight, its far end swallowed by shadow.",
	},
	RoomTypeTreasure: {
		"The glint of metal catches your light from a half-spilled chest.",
		"Whoever hid their wealth here never came back for it.",
		"Coins lie scattered across the floor like fallen leaves.",
		"An ironbound strongbox sits in the center of the room, lid ajar.",
	},
	RoomTypeBoss: {
		"The bones littering the floor here belong to things that should have won.",
		"A vast presence has left its mark on every gouged wall of this place.",
		"The air is thick and warm, and something in the dark is breathing.",
		"Claw marks rake the stone from floor to ceiling.",
	},
	RoomTypeExit: {
		"A draft of fresh air promises a way back to the surface.",
		"Rough-cut stairs climb toward a sliver of pale light.",
		"The tunnel ahead slopes upward, and the darkness thins.",
	},
	RoomTypeSecret: {
		"This room does not appear on any map, and someone meant it that way.",
		"A concealed door swings shut behind you without a sound.",
		"Dust lies thick and undisturbed; you may be the first here in an age.",
		"Shelves of moldering curiosities line this forgotten alcove.",
	},
}

// roomName builds a "<prefix> <suffix>" name for the given room type
func (g *Generator) roomName(roomType RoomType) string {
	prefix := namePrefixes[g.rng.Intn(len(namePrefixes))]
	suffixes := nameSuffixes[roomType]
	return prefix + " " + suffixes[g.rng.Intn(len(suffixes))]
}

// roomDescription picks a flavor sentence for the given room type
func (g *Generator) roomDescription(roomType RoomType) string {
	pool := descriptions[roomType]
	return pool[g.rng.Intn(len(pool))]
}
