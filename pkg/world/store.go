package world

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/storagefs"
)

// ErrNotFound is returned by a Get when no record exists for the given id.
var ErrNotFound = errors.New("world: record not found")

const maxRecordBytes = 2_000_000

// Store is the TinyMUSH world's persistence root: one JSON file per
// record, keyed by type and id, under dataDir (rooms/<id>.json,
// players/<username>.json, objects/<id>.json, npcs/<id>.json,
// shops/<id>.json, quests/<id>.json, achievements/<id>.json,
// factions/<id>.json, trades/<id>.json, housing/<id>.json,
// config.json).
type Store struct {
	dataDir string
}

// New returns a Store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) path(kind, id string) string {
	return filepath.Join(s.dataDir, kind, safeID(id)+".json")
}

// safeID mirrors validate.SafeFilename's percent-encoding idea for the
// small set of characters a room/object id might legitimately carry
// (the landing-gazebo instance id embeds a literal "::").
func safeID(id string) string {
	return strings.NewReplacer("/", "%2F", "\\", "%5C", ":", "%3A").Replace(id)
}

func readRecord[T any](path string) (T, error) {
	var zero T
	data, err := storagefs.ReadFileChecked(path, maxRecordBytes)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, err
	}
	return v, nil
}

func writeRecord[T any](path string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return storagefs.WriteFileLocked(path, data)
}

func listIDs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// --- Rooms ---

func (s *Store) GetRoom(id string) (RoomRecord, error) {
	return readRecord[RoomRecord](s.path("rooms", id))
}

func (s *Store) PutRoom(r RoomRecord) error {
	return writeRecord(s.path("rooms", r.ID), r)
}

func (s *Store) ListRoomIDs() ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "rooms"))
}

// --- Objects ---

func (s *Store) GetObject(id string) (ObjectRecord, error) {
	return readRecord[ObjectRecord](s.path("objects", id))
}

func (s *Store) PutObject(o ObjectRecord) error {
	return writeRecord(s.path("objects", o.ID), o)
}

func (s *Store) ListObjectIDs() ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "objects"))
}

// GetObjectsInRoom returns every world-owned object currently lying in
// roomID (objects picked up into a player's inventory stop appearing
// here — InventoryStack is the source of truth for what a player
// holds).
func (s *Store) GetObjectsInRoom(roomID string) ([]ObjectRecord, error) {
	ids, err := s.ListObjectIDs()
	if err != nil {
		return nil, err
	}
	var objs []ObjectRecord
	for _, id := range ids {
		o, err := s.GetObject(id)
		if err != nil {
			continue
		}
		if o.Owner.IsWorld() && o.Location == roomID {
			objs = append(objs, o)
		}
	}
	return objs, nil
}

// --- Players ---

func (s *Store) GetPlayer(username string) (PlayerRecord, error) {
	return readRecord[PlayerRecord](s.path("players", username))
}

func (s *Store) PutPlayer(p PlayerRecord) error {
	return writeRecord(s.path("players", p.Username), p)
}

func (s *Store) ListPlayerIDs() ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "players"))
}

// --- NPCs ---

func (s *Store) GetNpc(id string) (NpcRecord, error) {
	return readRecord[NpcRecord](s.path("npcs", id))
}

func (s *Store) PutNpc(n NpcRecord) error {
	return writeRecord(s.path("npcs", n.ID), n)
}

// GetNpcsInRoom returns every NPC located in roomID.
func (s *Store) GetNpcsInRoom(roomID string) ([]NpcRecord, error) {
	ids, err := listIDs(filepath.Join(s.dataDir, "npcs"))
	if err != nil {
		return nil, err
	}
	var npcs []NpcRecord
	for _, id := range ids {
		n, err := s.GetNpc(id)
		if err != nil {
			continue
		}
		if n.Room == roomID {
			npcs = append(npcs, n)
		}
	}
	return npcs, nil
}

// --- Shops ---

func (s *Store) GetShop(id string) (ShopRecord, error) {
	return readRecord[ShopRecord](s.path("shops", id))
}

func (s *Store) PutShop(sh ShopRecord) error {
	return writeRecord(s.path("shops", sh.ID), sh)
}

// GetShopsInLocation returns every shop located in roomID.
func (s *Store) GetShopsInLocation(roomID string) ([]ShopRecord, error) {
	ids, err := listIDs(filepath.Join(s.dataDir, "shops"))
	if err != nil {
		return nil, err
	}
	var shops []ShopRecord
	for _, id := range ids {
		sh, err := s.GetShop(id)
		if err != nil {
			continue
		}
		if sh.Location == roomID {
			shops = append(shops, sh)
		}
	}
	return shops, nil
}

// --- Quests / Achievements / Factions ---

func (s *Store) GetQuest(id string) (QuestRecord, error) {
	return readRecord[QuestRecord](s.path("quests", id))
}

func (s *Store) PutQuest(q QuestRecord) error {
	return writeRecord(s.path("quests", q.ID), q)
}

func (s *Store) ListQuestIDs() ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "quests"))
}

func (s *Store) GetAchievement(id string) (AchievementRecord, error) {
	return readRecord[AchievementRecord](s.path("achievements", id))
}

func (s *Store) PutAchievement(a AchievementRecord) error {
	return writeRecord(s.path("achievements", a.ID), a)
}

func (s *Store) ListAchievementIDs() ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "achievements"))
}

func (s *Store) GetFaction(id string) (FactionRecord, error) {
	return readRecord[FactionRecord](s.path("factions", id))
}

func (s *Store) PutFaction(f FactionRecord) error {
	return writeRecord(s.path("factions", f.ID), f)
}

// --- Trade sessions ---

func (s *Store) PutTradeSession(t TradeSession) error {
	return writeRecord(s.path("trades", t.ID), t)
}

func (s *Store) GetTradeSession(id string) (TradeSession, error) {
	return readRecord[TradeSession](s.path("trades", id))
}

func (s *Store) DeleteTradeSession(id string) error {
	err := os.Remove(s.path("trades", id))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// GetPlayerActiveTrade returns the pending trade session involving
// username, if any.
func (s *Store) GetPlayerActiveTrade(username string) (TradeSession, bool, error) {
	ids, err := listIDs(filepath.Join(s.dataDir, "trades"))
	if err != nil {
		return TradeSession{}, false, err
	}
	for _, id := range ids {
		t, err := s.GetTradeSession(id)
		if err != nil {
			continue
		}
		if t.PlayerA == username || t.PlayerB == username {
			return t, true, nil
		}
	}
	return TradeSession{}, false, nil
}

// --- Housing ---

func (s *Store) GetHousingInstance(id string) (HousingInstance, error) {
	return readRecord[HousingInstance](s.path("housing", id))
}

func (s *Store) PutHousingInstance(h HousingInstance) error {
	return writeRecord(s.path("housing", h.ID), h)
}

func (s *Store) ListHousingInstanceIDs() ([]string, error) {
	return listIDs(filepath.Join(s.dataDir, "housing"))
}

// CountTemplateInstances counts existing housing instances cloned from
// templateID, consulted before RENT allocates another.
func (s *Store) CountTemplateInstances(templateID string) (int, error) {
	ids, err := s.ListHousingInstanceIDs()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, id := range ids {
		h, err := s.GetHousingInstance(id)
		if err != nil {
			continue
		}
		if h.TemplateID == templateID {
			count++
		}
	}
	return count, nil
}

// GetPlayerHousingInstances returns housing instances owned by username.
func (s *Store) GetPlayerHousingInstances(username string) ([]HousingInstance, error) {
	ids, err := s.ListHousingInstanceIDs()
	if err != nil {
		return nil, err
	}
	var owned []HousingInstance
	for _, id := range ids {
		h, err := s.GetHousingInstance(id)
		if err != nil {
			continue
		}
		if h.Owner == username {
			owned = append(owned, h)
		}
	}
	return owned, nil
}

// GetGuestHousingInstances returns housing instances username is
// listed as a guest of.
func (s *Store) GetGuestHousingInstances(username string) ([]HousingInstance, error) {
	ids, err := s.ListHousingInstanceIDs()
	if err != nil {
		return nil, err
	}
	var guestOf []HousingInstance
	for _, id := range ids {
		h, err := s.GetHousingInstance(id)
		if err != nil {
			continue
		}
		for _, g := range h.Guests {
			if g == username {
				guestOf = append(guestOf, h)
				break
			}
		}
	}
	return guestOf, nil
}

// --- World config ---

func (s *Store) configPath() string { return filepath.Join(s.dataDir, "config.json") }

func (s *Store) GetWorldConfig() (WorldConfig, error) {
	cfg, err := readRecord[WorldConfig](s.configPath())
	if errors.Is(err, ErrNotFound) {
		return WorldConfig{}, nil
	}
	return cfg, err
}

func (s *Store) PutWorldConfig(cfg WorldConfig) error {
	return writeRecord(s.configPath(), cfg)
}

// --- Banking ---

// BankDeposit moves amount from username's pocket currency to their
// banked currency, reading and committing the player record in one
// operation so the two fields never observe an inconsistent
// intermediate state.
func (s *Store) BankDeposit(username string, amount CurrencyAmount) error {
	p, err := s.GetPlayer(username)
	if err != nil {
		return err
	}
	pocket, err := p.Currency.Subtract(amount)
	if err != nil {
		return err
	}
	banked, err := p.BankedCurrency.Add(amount)
	if err != nil {
		return err
	}
	p.Currency = pocket
	p.BankedCurrency = banked
	return s.PutPlayer(p)
}

// BankWithdraw is BankDeposit's inverse.
func (s *Store) BankWithdraw(username string, amount CurrencyAmount) error {
	p, err := s.GetPlayer(username)
	if err != nil {
		return err
	}
	banked, err := p.BankedCurrency.Subtract(amount)
	if err != nil {
		return err
	}
	pocket, err := p.Currency.Add(amount)
	if err != nil {
		return err
	}
	p.BankedCurrency = banked
	p.Currency = pocket
	return s.PutPlayer(p)
}

// BankTransfer moves amount from sender's bank to recipient's bank.
// Both player records are loaded before either is written so a
// failure (insufficient funds, missing recipient) leaves neither
// account touched.
func (s *Store) BankTransfer(sender, recipient string, amount CurrencyAmount) error {
	from, err := s.GetPlayer(sender)
	if err != nil {
		return err
	}
	to, err := s.GetPlayer(recipient)
	if err != nil {
		return err
	}
	fromBank, err := from.BankedCurrency.Subtract(amount)
	if err != nil {
		return err
	}
	toBank, err := to.BankedCurrency.Add(amount)
	if err != nil {
		return err
	}
	from.BankedCurrency = fromBank
	to.BankedCurrency = toBank
	if err := s.PutPlayer(from); err != nil {
		return err
	}
	return s.PutPlayer(to)
}
