package world

import "time"

// Condition is a closed sum type gating whether a DialogChoice is
// visible to a given player — an exhaustive switch in Evaluate rather
// than a stringly-typed dispatch.
type Condition struct {
	Kind          ConditionKind `json:"kind,omitempty"`
	Flag          string        `json:"flag,omitempty"`
	FlagValue     bool          `json:"flag_value,omitempty"`
	MinCurrency   int64         `json:"min_currency,omitempty"`
	QuestID       string        `json:"quest_id,omitempty"`
	ItemID        string        `json:"item_id,omitempty"`
}

// ConditionKind discriminates Condition's active fields.
type ConditionKind string

const (
	NoCondition       ConditionKind = ""
	HasFlag           ConditionKind = "has_flag"
	HasCurrency       ConditionKind = "has_currency"
	HasCompletedQuest ConditionKind = "has_completed_quest"
	HasItem           ConditionKind = "has_item"
)

// Evaluate reports whether p satisfies c. A zero-value Condition
// (NoCondition) is always satisfied.
func (c Condition) Evaluate(p *PlayerRecord) bool {
	switch c.Kind {
	case NoCondition:
		return true
	case HasFlag:
		return p.Flags[c.Flag] == c.FlagValue
	case HasCurrency:
		return p.Currency.BaseValue() >= c.MinCurrency
	case HasCompletedQuest:
		return p.CompletedQuests[c.QuestID]
	case HasItem:
		for _, stack := range p.InventoryStacks {
			if stack.ObjectID == c.ItemID && stack.Quantity > 0 {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// DialogAction is a closed sum type applied to a player record when a
// DialogChoice is selected.
type DialogAction struct {
	Kind     DialogActionKind `json:"kind"`
	ItemID   string           `json:"item_id,omitempty"`
	Quantity int              `json:"quantity,omitempty"`
	Amount   int64            `json:"amount,omitempty"`
	Flag     string           `json:"flag,omitempty"`
	Value    bool             `json:"value,omitempty"`
	QuestID  string           `json:"quest_id,omitempty"`
}

// DialogActionKind discriminates DialogAction's active fields.
type DialogActionKind string

const (
	GiveItem     DialogActionKind = "give_item"
	TakeCurrency DialogActionKind = "take_currency"
	SetFlag      DialogActionKind = "set_flag"
	GiveCurrency DialogActionKind = "give_currency"
	StartQuest   DialogActionKind = "start_quest"
)

// Apply mutates p per a's kind. Errors surface only resource
// shortfalls (insufficient currency for TakeCurrency); all other
// kinds always succeed.
func (a DialogAction) Apply(p *PlayerRecord) error {
	switch a.Kind {
	case GiveItem:
		addInventoryStack(p, a.ItemID, qtyOrOne(a.Quantity))
		return nil
	case TakeCurrency:
		amt, err := p.Currency.Subtract(Decimal(a.Amount))
		if err != nil {
			return err
		}
		p.Currency = amt
		return nil
	case SetFlag:
		if p.Flags == nil {
			p.Flags = map[string]bool{}
		}
		p.Flags[a.Flag] = a.Value
		return nil
	case GiveCurrency:
		amt, err := p.Currency.Add(Decimal(a.Amount))
		if err != nil {
			return err
		}
		p.Currency = amt
		return nil
	case StartQuest:
		if p.ActiveQuests == nil {
			p.ActiveQuests = map[string]QuestProgress{}
		}
		if _, already := p.ActiveQuests[a.QuestID]; !already {
			p.ActiveQuests[a.QuestID] = QuestProgress{Counts: map[int]int{}}
		}
		return nil
	default:
		return nil
	}
}

func qtyOrOne(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

func addInventoryStack(p *PlayerRecord, objectID string, qty int) {
	for i := range p.InventoryStacks {
		if p.InventoryStacks[i].ObjectID == objectID {
			p.InventoryStacks[i].Quantity += qty
			return
		}
	}
	p.InventoryStacks = append(p.InventoryStacks, InventoryStack{ObjectID: objectID, Quantity: qty, AddedAt: time.Now().UTC()})
}
