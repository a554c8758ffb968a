package world

import "time"

// Seed populates an empty Store with the canonical starter world: the
// required landing gazebo and town square, a handful of demonstration
// rooms, one multi-topic NPC, a starter quest, an achievement, a
// faction, a shop, and a set of trigger objects exercising every verb
// of the object action language. It is idempotent: if town_square
// already exists, Seed does nothing.
func (s *Store) Seed(now time.Time) error {
	if _, err := s.GetRoom(RequiredStartLocationID); err == nil {
		return nil
	}

	rooms := canonicalRooms(now)
	for _, r := range rooms {
		if err := s.PutRoom(r); err != nil {
			return err
		}
	}

	for _, o := range canonicalObjects(now) {
		if err := s.PutObject(o); err != nil {
			return err
		}
	}

	for _, n := range canonicalNpcs() {
		if err := s.PutNpc(n); err != nil {
			return err
		}
	}

	for _, q := range canonicalQuests() {
		if err := s.PutQuest(q); err != nil {
			return err
		}
	}

	for _, a := range canonicalAchievements() {
		if err := s.PutAchievement(a); err != nil {
			return err
		}
	}

	if err := s.PutFaction(canonicalFaction()); err != nil {
		return err
	}

	if err := s.PutShop(canonicalShop(now)); err != nil {
		return err
	}

	return s.PutWorldConfig(WorldConfig{
		WelcomeMessage:      "Welcome to Old Towne Mesh! Type LOOK to get your bearings, INVENTORY to check your pack, HELP for the full verb list.",
		HelpCompanion:       "Companions follow COMPANION LIST / TAME / FEED / PET / MOUNT / DISMOUNT / TRAIN.",
		HomeCooldownSeconds: 300,
		UpdatedAt:           now,
	})
}

func room(id, name, short, long string, flags ...RoomFlag) RoomRecord {
	f := make(map[RoomFlag]bool, len(flags))
	for _, fl := range flags {
		f[fl] = true
	}
	return RoomRecord{
		ID: id, Name: name, ShortDesc: short, LongDesc: long,
		Exits: map[Direction]string{}, Flags: f, MaxCapacity: 25,
		SchemaVersion: 1,
	}
}

func canonicalRooms(now time.Time) []RoomRecord {
	landing := room(RequiredLandingLocationID, "Landing Gazebo",
		"A welcoming gazebo where new arrivals first materialize.",
		"You stand in an octagonal gazebo with polished wooden railings. Soft mesh lanterns "+
			"cast a warm glow. A carved sign reads 'Welcome to Old Towne Mesh!' Through the "+
			"northern archway you can see the bustling Town Square. LOOK, INVENTORY, and HELP "+
			"will get you started. Head NORTH when ready.",
		RoomSafe, RoomIndoor)
	landing.Exits[North] = RequiredStartLocationID
	landing.CreatedAt = now

	square := room(RequiredStartLocationID, "Old Towne Square",
		"A tidy plaza centered around the Mesh beacon.",
		"Stone paths radiate from the beacon at the square's center. Mesh terminals hum "+
			"quietly while townsfolk trade stories about far-off packet relays.",
		RoomSafe)
	square.Exits[North] = "city_hall_lobby"
	square.Exits[East] = "mesh_museum"
	square.Exits[West] = "relay_tavern"
	square.Exits[South] = "south_market"
	square.CreatedAt = now

	cityHall := room("city_hall_lobby", "City Hall Lobby",
		"Sunlight filters through tall windows onto polished floors.",
		"Clerks shuffle reports about network outages while a patient queue waits to "+
			"register new callsigns.",
		RoomIndoor, RoomModerated)
	cityHall.Exits[South] = RequiredStartLocationID
	cityHall.Exits[North] = "mayor_office"
	cityHall.CreatedAt = now

	mayorOffice := room("mayor_office", "Mayor's Office",
		"A well-appointed office with an oak desk and mesh maps on the walls.",
		"Mayor Thompson reviews network topology maps behind a sturdy oak desk.",
		RoomSafe, RoomIndoor, RoomQuestLocation)
	mayorOffice.Exits[South] = "city_hall_lobby"
	mayorOffice.CreatedAt = now

	museum := room("mesh_museum", "Mesh Museum",
		"Glass cases display relics of the early mesh network.",
		"Dusty antenna arrays and hand-soldered boards sit behind protective glass.",
		RoomIndoor, RoomQuestLocation)
	museum.Exits[West] = RequiredStartLocationID
	museum.CreatedAt = now

	tavern := room("relay_tavern", "Relay Tavern",
		"A warm tavern full of off-duty node operators.",
		"Laughter and the clink of mugs fill the low-ceilinged common room.",
		RoomSafe, RoomIndoor, RoomHousingOffice)
	tavern.Exits[East] = RequiredStartLocationID
	tavern.HousingFilterTags = []string{"cottage", "apartment"}
	tavern.CreatedAt = now

	market := room("south_market", "South Market",
		"Stalls of traders hawk parts and provisions.",
		"Vendors call out prices on resistors, antenna wire, and travel rations.",
		RoomShop)
	market.Exits[North] = RequiredStartLocationID
	market.Exits[Down] = "maintenance_tunnels"
	market.CreatedAt = now

	tunnels := room("maintenance_tunnels", "Maintenance Tunnels",
		"Damp concrete corridors lit by emergency mesh beacons.",
		"Dripping pipes and the occasional skittering sound keep you alert down here.",
		RoomDark)
	tunnels.Exits[Up] = "south_market"
	tunnels.Exits[East] = "repeater_tower"
	tunnels.CreatedAt = now

	tower := room("repeater_tower", "Repeater Tower Base",
		"A steel lattice tower rises through a hole in the ceiling above.",
		"Cables snake up the tower's legs toward a locked maintenance hatch.",
		RoomIndoor)
	tower.Exits[West] = "maintenance_tunnels"
	tower.Exits[Up] = "repeater_upper"
	tower.CreatedAt = now

	towerUpper := room("repeater_upper", "Repeater Tower Upper Platform",
		"Wind whips across an exposed platform ringed with antennas.",
		"From up here Old Towne spreads out below, its mesh lanterns glowing like fireflies. "+
			"The repeater's status light blinks an angry red.",
		RoomQuestLocation)
	towerUpper.Exits[Down] = "repeater_tower"
	towerUpper.CreatedAt = now

	cottageTemplate := room("cottage_entry", "A Cozy Cottage",
		"A snug one-room cottage with a crackling hearth.",
		"Your own small cottage: a bed, a hearth, and a window looking out over Old Towne. "+
			"It's quiet here.", RoomSafe, RoomIndoor)
	cottageTemplate.CreatedAt = now

	apartmentTemplate := room("apartment_entry", "A Modest Apartment",
		"A compact apartment above the market square.",
		"A single room fitted with a bed, a writing desk, and a mesh terminal humming "+
			"quietly in the corner.", RoomSafe, RoomIndoor)
	apartmentTemplate.CreatedAt = now

	return []RoomRecord{
		landing, square, cityHall, mayorOffice, museum, tavern, market, tunnels, tower, towerUpper,
		cottageTemplate, apartmentTemplate,
	}
}

func canonicalObjects(now time.Time) []ObjectRecord {
	potion := ObjectRecord{
		ID: "healing_potion", Name: "healing potion",
		Description: "A small vial of shimmering restorative tonic.",
		Owner:       ObjectOwner{World: true}, Location: "south_market", Weight: 0.5,
		CurrencyValue: Decimal(15), Value: 15, Takeable: true, Usable: true,
		Actions: map[ObjectTrigger]string{
			OnUse: `message("You feel a warm tingle.") && heal(50) && consume()`,
		},
		CreatedBy: "seed", SchemaVersion: ObjectSchemaVersion,
	}

	key := ObjectRecord{
		ID: "ancient_key", Name: "ancient key",
		Description: "A tarnished brass key etched with mesh sigils.",
		Owner:       ObjectOwner{World: true}, Location: "maintenance_tunnels", Weight: 0.1,
		CurrencyValue: Decimal(0), Takeable: true, Usable: true,
		Actions: map[ObjectTrigger]string{
			OnLook: `has_quest("relay_restoration") ? "It hums faintly, as if it recognizes your purpose." : "A plain, worn key."`,
			OnUse:  `unlock_exit("north")`,
		},
		CreatedBy: "seed", SchemaVersion: ObjectSchemaVersion,
	}

	mysteryBox := ObjectRecord{
		ID: "mystery_box", Name: "mystery box",
		Description: "An unmarked crate that rattles when shaken.",
		Owner:       ObjectOwner{World: true}, Location: "mesh_museum", Weight: 2,
		CurrencyValue: Decimal(0), Takeable: true, Usable: false,
		Actions: map[ObjectTrigger]string{
			OnPoke: `random_chance(50) ? message("A handful of coins spill out!") && give_currency(25) : message("Nothing but packing straw.")`,
		},
		CreatedBy: "seed", SchemaVersion: ObjectSchemaVersion,
	}

	teleportStone := ObjectRecord{
		ID: "teleport_stone", Name: "teleport stone",
		Description: "A smooth river stone warm to the touch.",
		Owner:       ObjectOwner{World: true}, Location: "repeater_upper", Weight: 1,
		CurrencyValue: Decimal(0), Takeable: true, Usable: true,
		Actions: map[ObjectTrigger]string{
			OnUse: `message("The stone flashes and the world blurs.") && teleport("town_square")`,
		},
		CreatedBy: "seed", SchemaVersion: ObjectSchemaVersion,
	}

	questClue := ObjectRecord{
		ID: "faded_memo", Name: "faded memo",
		Description: "A handwritten memo, ink smudged by time.",
		Owner:       ObjectOwner{World: true}, Location: "mayor_office", Weight: 0.05,
		CurrencyValue: Decimal(0), Takeable: true, Usable: false,
		Actions: map[ObjectTrigger]string{
			OnLook: `"The mayor's signature is at the bottom, dated decades ago."`,
		},
		CreatedBy: "seed", SchemaVersion: ObjectSchemaVersion,
	}

	mushroom := ObjectRecord{
		ID: "singing_mushroom", Name: "singing mushroom",
		Description: "A softly luminescent mushroom that hums a tune.",
		Owner:       ObjectOwner{World: true}, Location: "maintenance_tunnels", Weight: 0.2,
		CurrencyValue: Decimal(5), Value: 5, Takeable: true, Usable: false,
		Actions: map[ObjectTrigger]string{
			OnLook: `"It hums a different note whenever you look away and back."`,
		},
		CreatedBy: "seed", SchemaVersion: ObjectSchemaVersion,
	}

	return []ObjectRecord{potion, key, mysteryBox, teleportStone, questClue, mushroom}
}

func canonicalNpcs() []NpcRecord {
	return []NpcRecord{
		{
			ID: "mayor_thompson", Name: "Mayor Thompson", Role: "quest_giver",
			Description: "A weathered mesh-network veteran who has run this town for decades.",
			Room:        "mayor_office",
			DialogTree: map[string]DialogNode{
				"greeting": {
					Text: "Welcome, traveler. Old Towne's relay has been flaky for weeks — care to help?",
					Choices: []DialogChoice{
						{Prompt: "Tell me about the relay.", Goto: "relay_info"},
						{Prompt: "I'll help restore it.", Goto: "accept_quest",
							Actions: []DialogAction{{Kind: StartQuest, QuestID: "relay_restoration"}}},
						{Prompt: "Not right now.", Goto: "exit"},
					},
				},
				"relay_info": {
					Text: "The repeater tower's upper platform hasn't been serviced since the ancient key went missing.",
					Choices: []DialogChoice{
						{Prompt: "I'll help restore it.", Goto: "accept_quest",
							Actions: []DialogAction{{Kind: StartQuest, QuestID: "relay_restoration"}}},
						{Prompt: "Goodbye.", Goto: "exit"},
					},
				},
				"accept_quest": {
					Text: "Bless you. Bring me word once the relay hums again.",
					Choices: []DialogChoice{
						{Prompt: "Farewell.", Goto: "exit"},
					},
				},
				"quest_complete": {
					Text: "You've done it! Old Towne owes you a debt.",
					Choices: []DialogChoice{
						{Prompt: "Happy to help.", Goto: "exit",
							Condition: Condition{Kind: HasCompletedQuest, QuestID: "relay_restoration"},
							Actions:   []DialogAction{{Kind: GiveCurrency, Amount: 200}}},
					},
				},
			},
		},
	}
}

func canonicalQuests() []QuestRecord {
	return []QuestRecord{
		{
			ID:   "relay_restoration",
			Name: "Relay Restoration",
			Description: "Restore the repeater tower's upper platform to working order.",
			Objectives: []QuestObjective{
				{Kind: ObjRoomVisit, Target: "repeater_upper", Count: 1},
				{Kind: ObjNpcTalk, Target: "mayor_thompson", Count: 1},
			},
			Reward: QuestReward{Currency: 200, Experience: 50},
		},
	}
}

func canonicalAchievements() []AchievementRecord {
	return []AchievementRecord{
		{
			ID: "wanderer", Name: "Wanderer", Description: "Visit 10 distinct rooms.",
			Category: CategoryExploration, Trigger: TriggerRoomVisits, Threshold: 10,
			Title: "the Wanderer",
		},
		{
			ID: "merchant", Name: "Merchant", Description: "Complete 5 trades.",
			Category: CategoryTrading, Trigger: TriggerTradeCount, Threshold: 5,
			Title: "the Merchant",
		},
	}
}

func canonicalFaction() FactionRecord {
	return FactionRecord{
		ID: "mesh_guild", Name: "Mesh Operators Guild",
		Tiers: []FactionTier{
			{MinReputation: 0, Name: "Stranger"},
			{MinReputation: 25, Name: "Associate", Benefit: "5% shop discount"},
			{MinReputation: 100, Name: "Trusted Relay", Benefit: "10% shop discount"},
		},
	}
}

func canonicalShop(now time.Time) ShopRecord {
	infiniteQty := (*int)(nil)
	return ShopRecord{
		ID: "south_market_general", Name: "South Market General Store",
		Description: "A well-stocked stall selling essentials to travelers.",
		Location:    "south_market", Owner: "world",
		Inventory: map[string]ShopItem{
			"healing_potion":   {ObjectID: "healing_potion", Quantity: infiniteQty},
			"singing_mushroom": {ObjectID: "singing_mushroom", Quantity: intPtr(5)},
		},
		Currency: Decimal(5000),
		Config:   DefaultShopConfig(),
		UpdatedAt: now,
	}
}

func intPtr(n int) *int { return &n }
