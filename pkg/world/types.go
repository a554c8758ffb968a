// Package world implements the TinyMUSH-style text-world store: rooms,
// objects, players, shops, NPCs with dialogue trees, quests,
// achievements, factions, and trade sessions, all persisted as one
// JSON file per record under a data directory.
package world

import "time"

// RequiredLandingLocationID is the room every new character is staged
// in before entering the world.
const RequiredLandingLocationID = "gazebo_landing"

// RequiredStartLocationID is the room a character enters after
// leaving the landing gazebo.
const RequiredStartLocationID = "town_square"

// Direction is a movement/exit direction.
type Direction string

const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Up        Direction = "up"
	Down      Direction = "down"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
)

// DirectionAliases maps every recognized movement token (short and
// long forms) to its canonical Direction.
var DirectionAliases = map[string]Direction{
	"N": North, "NORTH": North,
	"S": South, "SOUTH": South,
	"E": East, "EAST": East,
	"W": West, "WEST": West,
	"U": Up, "UP": Up,
	"D": Down, "DOWN": Down,
	"NE": Northeast, "NORTHEAST": Northeast,
	"NW": Northwest, "NORTHWEST": Northwest,
	"SE": Southeast, "SOUTHEAST": Southeast,
	"SW": Southwest, "SOUTHWEST": Southwest,
}

// RoomFlag is a boolean attribute attached to a room.
type RoomFlag string

const (
	RoomSafe           RoomFlag = "safe"
	RoomIndoor         RoomFlag = "indoor"
	RoomDark           RoomFlag = "dark"
	RoomShop           RoomFlag = "shop"
	RoomModerated      RoomFlag = "moderated"
	RoomQuestLocation  RoomFlag = "quest_location"
	RoomHousingOffice  RoomFlag = "housing_office"
	RoomNoTeleportOut  RoomFlag = "no_teleport_out"
)

// RoomRecord is a single location in the world.
type RoomRecord struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	ShortDesc        string               `json:"short_desc"`
	LongDesc         string               `json:"long_desc"`
	Exits            map[Direction]string `json:"exits"`
	Flags            map[RoomFlag]bool    `json:"flags"`
	MaxCapacity      int                  `json:"max_capacity"`
	Locked           bool                 `json:"locked"`
	HousingFilterTags []string            `json:"housing_filter_tags,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	SchemaVersion    int                  `json:"schema_version"`
}

// HasFlag reports whether r carries flag.
func (r RoomRecord) HasFlag(flag RoomFlag) bool { return r.Flags[flag] }

// ObjectOwner is a tagged union: either the world itself or a player.
type ObjectOwner struct {
	World    bool   `json:"world,omitempty"`
	Username string `json:"username,omitempty"`
}

// IsWorld reports whether the object is unowned (world property).
func (o ObjectOwner) IsWorld() bool { return o.World || o.Username == "" }

// ObjectFlag is a boolean attribute attached to an object.
type ObjectFlag string

const (
	ObjectHidden    ObjectFlag = "hidden"
	ObjectWorkbench ObjectFlag = "workbench"
)

// ObjectTrigger names an event an object's action language can react to.
type ObjectTrigger string

const (
	OnLook  ObjectTrigger = "on_look"
	OnUse   ObjectTrigger = "on_use"
	OnPoke  ObjectTrigger = "on_poke"
	OnEnter ObjectTrigger = "on_enter"
)

// OwnershipTransfer is one entry in an object's provenance history.
type OwnershipTransfer struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// ObjectSchemaVersion is stamped on every ObjectRecord.
const ObjectSchemaVersion = 1

// ObjectRecord is an item: takeable, usable, or a fixture with
// triggered actions.
type ObjectRecord struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"name"`
	Description       string                     `json:"description"`
	Owner             ObjectOwner                `json:"owner"`
	Location          string                     `json:"location,omitempty"` // room id, set only while World-owned and lying loose
	Weight            float64                    `json:"weight"`
	CurrencyValue     CurrencyAmount             `json:"currency_value"`
	Value             int64                      `json:"value"`
	Takeable          bool                       `json:"takeable"`
	Usable            bool                       `json:"usable"`
	Actions           map[ObjectTrigger]string   `json:"actions,omitempty"`
	Flags             map[ObjectFlag]bool        `json:"flags,omitempty"`
	Locked            bool                       `json:"locked"`
	CloneDepth        int                        `json:"clone_depth"`
	CloneSourceID     string                     `json:"clone_source_id,omitempty"`
	CloneCount        int                        `json:"clone_count"`
	OwnershipHistory  []OwnershipTransfer        `json:"ownership_history,omitempty"`
	CreatedBy         string                     `json:"created_by"`
	SchemaVersion     int                        `json:"schema_version"`
}

// InventoryStack is a quantity of identical objects a player carries.
type InventoryStack struct {
	ObjectID string    `json:"object_id"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// TutorialState tracks a player's progress through the onboarding flow.
type TutorialState struct {
	Status string `json:"status"` // not_started | in_progress | completed | skipped
	Step   int    `json:"step,omitempty"`
}

const (
	TutorialNotStarted = "not_started"
	TutorialInProgress = "in_progress"
	TutorialCompleted  = "completed"
	TutorialSkipped    = "skipped"
)

// PlayerStats holds a player's combat/vitality pools.
type PlayerStats struct {
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	MP    int `json:"mp"`
	MaxMP int `json:"max_mp"`
}

// PlayerRecord is the world-side character record, distinct from the
// BBS account (bbs.User) of the same username.
type PlayerRecord struct {
	Username           string                    `json:"username"`
	DisplayName        string                    `json:"display_name"`
	CurrentRoom        string                    `json:"current_room"`
	Credits            int64                     `json:"credits"`
	Currency           CurrencyAmount            `json:"currency"`
	BankedCurrency     CurrencyAmount            `json:"banked_currency"`
	Stats              PlayerStats               `json:"stats"`
	Inventory          []string                  `json:"inventory,omitempty"`
	InventoryStacks    []InventoryStack          `json:"inventory_stacks,omitempty"`
	EquippedTitle      string                    `json:"equipped_title,omitempty"`
	TutorialState      TutorialState             `json:"tutorial_state"`
	PrimaryHousingID   string                    `json:"primary_housing_id,omitempty"`
	InCombat           bool                      `json:"in_combat"`
	LastTeleport       *time.Time                `json:"last_teleport,omitempty"`
	LastHomeTeleport   *time.Time                `json:"last_home_teleport,omitempty"`
	ActiveQuests       map[string]QuestProgress  `json:"active_quests,omitempty"`
	CompletedQuests    map[string]bool           `json:"completed_quests,omitempty"`
	AchievementCounts  map[string]int            `json:"achievement_counts,omitempty"`
	EarnedAchievements map[string]bool           `json:"earned_achievements,omitempty"`
	EarnedTitles       map[string]bool           `json:"earned_titles,omitempty"`
	Reputation         map[string]int            `json:"reputation,omitempty"`
	Flags              map[string]bool           `json:"flags,omitempty"`
	Companions         []CompanionRecord         `json:"companions,omitempty"`
	MountedCompanion    string                   `json:"mounted_companion,omitempty"`
	TradeHistory       []TradeHistoryEntry       `json:"trade_history,omitempty"`
	SchemaVersion      int                       `json:"schema_version"`
}

// CompanionRecord is a tameable creature owned by a player.
type CompanionRecord struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"` // Horse | Dog | Bird | ...
	Loyalty    int             `json:"loyalty"`
	Skills     map[string]bool `json:"skills,omitempty"`
	AutoFollow bool            `json:"auto_follow"`
	TamedAt    time.Time       `json:"tamed_at"`
}

// ShopItem is one stocked line in a ShopRecord's inventory.
type ShopItem struct {
	ObjectID        string     `json:"object_id"`
	Quantity        *int       `json:"quantity,omitempty"` // nil = infinite
	Markup          *float64   `json:"markup,omitempty"`
	Markdown        *float64   `json:"markdown,omitempty"`
	RestockThreshold *int      `json:"restock_threshold,omitempty"`
	RestockTo       *int       `json:"restock_to,omitempty"`
	LastRestock     *time.Time `json:"last_restock,omitempty"`
}

// InStock reports whether the item can currently be bought.
func (i ShopItem) InStock() bool { return i.Quantity == nil || *i.Quantity > 0 }

// ShopConfig governs default pricing and stocking behavior.
type ShopConfig struct {
	MaxUniqueItems        int     `json:"max_unique_items"`
	MaxItemQuantity       int     `json:"max_item_quantity"`
	DefaultBuyMarkup      float64 `json:"default_buy_markup"`
	DefaultSellMarkdown   float64 `json:"default_sell_markdown"`
	EnableRestocking      bool    `json:"enable_restocking"`
	RestockIntervalSecs   int64   `json:"restock_interval_secs"`
}

// DefaultShopConfig matches the teacher's own default economy tuning.
func DefaultShopConfig() ShopConfig {
	return ShopConfig{
		MaxUniqueItems:      50,
		MaxItemQuantity:     999,
		DefaultBuyMarkup:    1.2,
		DefaultSellMarkdown: 0.7,
		EnableRestocking:    true,
		RestockIntervalSecs: 86400,
	}
}

// ShopRecord is a vendor located in a room.
type ShopRecord struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	Owner       string              `json:"owner"`
	Inventory   map[string]ShopItem `json:"inventory"`
	Currency    CurrencyAmount      `json:"currency"`
	Config      ShopConfig          `json:"config"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// DialogChoice is one option presented at a DialogNode.
type DialogChoice struct {
	Prompt    string         `json:"prompt"`
	Goto      string         `json:"goto"` // node id, or "exit"
	Condition Condition      `json:"condition,omitempty"`
	Actions   []DialogAction `json:"actions,omitempty"`
}

// DialogNode is one stop in an NPC's dialogue tree.
type DialogNode struct {
	Text    string         `json:"text"`
	Choices []DialogChoice `json:"choices"`
}

// NpcRecord is a non-player character.
type NpcRecord struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Role       string                `json:"role"`
	Description string               `json:"description"`
	Room       string                `json:"room"`
	Dialog     map[string]string     `json:"dialog,omitempty"` // legacy flat topic->text
	DialogTree map[string]DialogNode `json:"dialog_tree,omitempty"`
	Flags      map[string]bool       `json:"flags,omitempty"`
}

// QuestObjectiveKind enumerates the trackable quest-progress event types.
type QuestObjectiveKind string

const (
	ObjRoomVisit      QuestObjectiveKind = "room_visit"
	ObjNpcTalk        QuestObjectiveKind = "npc_talk"
	ObjItemCollect    QuestObjectiveKind = "item_collect"
	ObjItemUse        QuestObjectiveKind = "item_use"
	ObjCraftItem      QuestObjectiveKind = "craft_item"
	ObjSequenceExamine QuestObjectiveKind = "sequence_examine"
	ObjLightAcquired  QuestObjectiveKind = "light_acquired"
	ObjDarkRoomEnter  QuestObjectiveKind = "dark_room_enter"
)

// QuestObjective is one tracked requirement within a QuestRecord.
type QuestObjective struct {
	Kind   QuestObjectiveKind `json:"kind"`
	Target string             `json:"target"`
	Count  int                `json:"count"`
}

// QuestReward is granted when every objective of a quest is complete.
type QuestReward struct {
	Currency   int64    `json:"currency"`
	Experience int      `json:"experience"`
	Items      []string `json:"items,omitempty"`
}

// QuestRecord is a quest definition referenced by NPC dialogue.
type QuestRecord struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Prerequisite string           `json:"prerequisite,omitempty"`
	Objectives   []QuestObjective `json:"objectives"`
	Reward       QuestReward      `json:"reward"`
}

// QuestProgress tracks a player's counters against a QuestRecord's
// objectives.
type QuestProgress struct {
	Counts map[int]int `json:"counts"`
}

// AchievementCategory groups related achievements for the ACHIEVEMENTS
// verb's filter argument.
type AchievementCategory string

const (
	CategoryExploration AchievementCategory = "exploration"
	CategorySocial       AchievementCategory = "social"
	CategoryQuest        AchievementCategory = "quest"
	CategoryCrafting     AchievementCategory = "crafting"
	CategoryTrading      AchievementCategory = "trading"
	CategoryMessaging    AchievementCategory = "messaging"
)

// AchievementTrigger is the event type that advances an achievement's
// counter.
type AchievementTrigger string

const (
	TriggerKillCount        AchievementTrigger = "kill_count"
	TriggerRoomVisits       AchievementTrigger = "room_visits"
	TriggerFriendCount      AchievementTrigger = "friend_count"
	TriggerQuestCompletion  AchievementTrigger = "quest_completion"
	TriggerCraftCount       AchievementTrigger = "craft_count"
	TriggerTradeCount       AchievementTrigger = "trade_count"
	TriggerMessagesSent     AchievementTrigger = "messages_sent"
	TriggerCurrencyEarned   AchievementTrigger = "currency_earned"
	TriggerVisitLocation    AchievementTrigger = "visit_location"
	TriggerCompleteQuest    AchievementTrigger = "complete_quest"
)

// AchievementRecord is an unlockable milestone, optionally granting a
// wearable title.
type AchievementRecord struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Trigger     AchievementTrigger  `json:"trigger"`
	Target      string              `json:"target,omitempty"`
	Threshold   int                 `json:"threshold"`
	Title       string              `json:"title,omitempty"`
}

// FactionTier is one reputation threshold within a FactionRecord.
type FactionTier struct {
	MinReputation int    `json:"min_reputation"`
	Name          string `json:"name"`
	Benefit       string `json:"benefit,omitempty"`
}

// FactionRecord is a reputation-tracked group players can align with.
type FactionRecord struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Tiers []FactionTier `json:"tiers"`
}

// CurrentTier returns the highest tier rep qualifies for, or the zero
// value if rep is below every tier's threshold.
func (f FactionRecord) CurrentTier(rep int) (FactionTier, bool) {
	var best FactionTier
	found := false
	for _, t := range f.Tiers {
		if rep >= t.MinReputation && (!found || t.MinReputation > best.MinReputation) {
			best = t
			found = true
		}
	}
	return best, found
}

// TradeOffer is one side's staged offer within a TradeSession.
type TradeOffer struct {
	Currency int64            `json:"currency"`
	Items    []InventoryStack `json:"items,omitempty"`
	Accepted bool             `json:"accepted"`
}

// TradeSession is a pending two-party trade negotiation.
type TradeSession struct {
	ID        string     `json:"id"`
	PlayerA   string     `json:"player_a"`
	PlayerB   string     `json:"player_b"`
	OfferA    TradeOffer `json:"offer_a"`
	OfferB    TradeOffer `json:"offer_b"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// HousingInstance is a per-player clone of a housing template.
type HousingInstance struct {
	ID             string    `json:"id"`
	TemplateID     string    `json:"template_id"`
	Owner          string    `json:"owner"`
	EntryRoomID    string    `json:"entry_room_id"`
	RoomMappings   map[string]string `json:"room_mappings"`
	Guests         []string  `json:"guests,omitempty"`
	Locked         bool      `json:"locked"`
	CreatedAt      time.Time `json:"created_at"`
	LastVisitedAt  time.Time `json:"last_visited_at"`
	ReclaimPending bool      `json:"reclaim_pending"`
}

// WorldConfig holds operator-tunable branding/help/error strings and
// lifecycle parameters, editable at runtime via @SETCONFIG.
type WorldConfig struct {
	WelcomeMessage      string            `json:"welcome_message"`
	HelpCompanion       string            `json:"help_companion"`
	HomeCooldownSeconds int64             `json:"home_cooldown_seconds"`
	Fields              map[string]string `json:"fields,omitempty"`
	UpdatedAt           time.Time         `json:"updated_at"`
	UpdatedBy           string            `json:"updated_by,omitempty"`
}

// Bounds on a bulletin post's subject/body length.
const (
	MaxBulletinSubject = 50
	MaxBulletinBody    = 300
)

// BulletinMessage is one post to a shared, per-board message feed
// (BOARD/POST/READ).
type BulletinMessage struct {
	ID       string    `json:"id"`
	Board    string    `json:"board"`
	Author   string    `json:"author"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	PostedAt time.Time `json:"posted_at"`
}

// MailStatus is a MailMessage's read state.
type MailStatus string

const (
	MailUnread MailStatus = "Unread"
	MailRead   MailStatus = "Read"
)

// Mail folder names, also used as on-disk directory components.
const (
	MailFolderInbox = "inbox"
	MailFolderSent  = "sent"
)

// MailMessage is a private message between two players (MAIL/SEND/
// RMAIL/DMAIL). The same record is stored once per folder it appears
// in (sender's sent copy, recipient's inbox copy).
type MailMessage struct {
	ID        string     `json:"id"`
	Sender    string     `json:"sender"`
	Recipient string     `json:"recipient"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	SentAt    time.Time  `json:"sent_at"`
	Status    MailStatus `json:"status"`
}

// TradeHistoryEntry is one completed trade recorded against a player,
// rendered by THISTORY.
type TradeHistoryEntry struct {
	Partner      string    `json:"partner"`
	GaveCurrency int64     `json:"gave_currency"`
	GotCurrency  int64     `json:"got_currency"`
	At           time.Time `json:"at"`
}
