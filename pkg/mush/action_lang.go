package mush

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

// ActionContext is the evaluation environment for an object's
// triggered action script: the player who caused it and the room
// they're in, plus a random source for random_chance.
type ActionContext struct {
	Player *world.PlayerRecord
	Room   world.RoomRecord
	Rng    *rand.Rand
}

// SideEffectKind names one of the action language's mutating builtins.
type SideEffectKind string

const (
	EffectMessage      SideEffectKind = "message"
	EffectHeal         SideEffectKind = "heal"
	EffectConsume      SideEffectKind = "consume"
	EffectUnlockExit   SideEffectKind = "unlock_exit"
	EffectTeleport     SideEffectKind = "teleport"
	EffectGiveCurrency SideEffectKind = "give_currency"
)

// SideEffect is one mutation an action script asked the caller to
// apply. Expr.Eval never mutates Player/Room itself — evaluation is
// pure, and the verb layer applies the returned side effects, which
// keeps trigger scripts safe to evaluate for preview (e.g. an OnLook
// description) without side effects leaking in.
type SideEffect struct {
	Kind   SideEffectKind
	Text   string
	Amount int64
}

// Expr is one node of a parsed action script.
type Expr interface {
	Eval(ctx *ActionContext) (any, []SideEffect)
}

// Lit is a literal string, number, or boolean.
type Lit struct{ Value any }

func (l Lit) Eval(*ActionContext) (any, []SideEffect) { return l.Value, nil }

// Call invokes a builtin by name.
type Call struct {
	Name string
	Args []Expr
}

func (c Call) Eval(ctx *ActionContext) (any, []SideEffect) {
	args := make([]any, len(c.Args))
	var effects []SideEffect
	for i, a := range c.Args {
		v, fx := a.Eval(ctx)
		args[i] = v
		effects = append(effects, fx...)
	}
	v, fx := evalBuiltin(c.Name, args, ctx)
	effects = append(effects, fx...)
	return v, effects
}

// And is the "&&" combinator: both sides evaluate for their side
// effects, but the right side is skipped once the left side is
// falsy (short-circuit), matching how a trigger script chains a
// guard condition before its effects.
type And struct{ L, R Expr }

func (a And) Eval(ctx *ActionContext) (any, []SideEffect) {
	lv, lfx := a.L.Eval(ctx)
	if !truthy(lv) {
		return false, lfx
	}
	rv, rfx := a.R.Eval(ctx)
	return truthy(rv), append(lfx, rfx...)
}

// Ternary is "cond ? then : else".
type Ternary struct{ Cond, Then, Else Expr }

func (t Ternary) Eval(ctx *ActionContext) (any, []SideEffect) {
	cv, cfx := t.Cond.Eval(ctx)
	if truthy(cv) {
		v, fx := t.Then.Eval(ctx)
		return v, append(cfx, fx...)
	}
	v, fx := t.Else.Eval(ctx)
	return v, append(cfx, fx...)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return v != nil
	}
}

func toInt(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case int64:
		return x
	default:
		return 0
	}
}

func evalBuiltin(name string, args []any, ctx *ActionContext) (any, []SideEffect) {
	arg := func(i int) any {
		if i < len(args) {
			return args[i]
		}
		return nil
	}
	switch name {
	case "message":
		text, _ := arg(0).(string)
		return true, []SideEffect{{Kind: EffectMessage, Text: text}}
	case "heal":
		return true, []SideEffect{{Kind: EffectHeal, Amount: toInt(arg(0))}}
	case "consume":
		return true, []SideEffect{{Kind: EffectConsume}}
	case "unlock_exit":
		dir, _ := arg(0).(string)
		return true, []SideEffect{{Kind: EffectUnlockExit, Text: dir}}
	case "teleport":
		dest, _ := arg(0).(string)
		return true, []SideEffect{{Kind: EffectTeleport, Text: dest}}
	case "give_currency":
		return true, []SideEffect{{Kind: EffectGiveCurrency, Amount: toInt(arg(0))}}
	case "has_quest":
		qid, _ := arg(0).(string)
		if ctx == nil || ctx.Player == nil {
			return false, nil
		}
		_, active := ctx.Player.ActiveQuests[qid]
		return active, nil
	case "random_chance":
		pct := toInt(arg(0))
		rng := ctx.Rng
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		return int64(rng.Intn(100)) < pct, nil
	default:
		return false, nil
	}
}

// Parse compiles an action script into an Expr tree.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tEOF {
		return nil, fmt.Errorf("mush: unexpected trailing token %q", p.peek().text)
	}
	return expr, nil
}

type tokenKind int

const (
	tEOF tokenKind = iota
	tString
	tNumber
	tIdent
	tLParen
	tRParen
	tComma
	tAnd
	tQuestion
	tColon
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func lex(src string) ([]token, error) {
	var toks []token
	r := []rune(src)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tRParen})
			i++
		case c == ',':
			toks = append(toks, token{kind: tComma})
			i++
		case c == '?':
			toks = append(toks, token{kind: tQuestion})
			i++
		case c == ':':
			toks = append(toks, token{kind: tColon})
			i++
		case c == '&':
			if i+1 < len(r) && r[i+1] == '&' {
				toks = append(toks, token{kind: tAnd})
				i += 2
				continue
			}
			return nil, fmt.Errorf("mush: unexpected '&' at offset %d", i)
		case c == '"':
			j := i + 1
			var sb strings.Builder
			for j < len(r) && r[j] != '"' {
				sb.WriteRune(r[j])
				j++
			}
			if j >= len(r) {
				return nil, fmt.Errorf("mush: unterminated string literal")
			}
			toks = append(toks, token{kind: tString, text: sb.String()})
			i = j + 1
		case c >= '0' && c <= '9':
			j := i
			for j < len(r) && (r[j] >= '0' && r[j] <= '9' || r[j] == '.') {
				j++
			}
			num, err := strconv.ParseFloat(string(r[i:j]), 64)
			if err != nil {
				return nil, fmt.Errorf("mush: bad number literal %q", string(r[i:j]))
			}
			toks = append(toks, token{kind: tNumber, num: num})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			toks = append(toks, token{kind: tIdent, text: string(r[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("mush: unexpected character %q at offset %d", c, i)
		}
	}
	toks = append(toks, token{kind: tEOF})
	return toks, nil
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.peek().kind != kind {
		return token{}, fmt.Errorf("mush: expected %s", what)
	}
	return p.advance(), nil
}

func (p *parser) parseTernary() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tQuestion {
		p.advance()
		then, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tColon, "':'"); err != nil {
			return nil, err
		}
		els, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return Ternary{Cond: left, Then: then, Else: els}, nil
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tAnd {
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = And{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.kind {
	case tString:
		p.advance()
		return Lit{Value: tok.text}, nil
	case tNumber:
		p.advance()
		return Lit{Value: tok.num}, nil
	case tLParen:
		p.advance()
		e, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case tIdent:
		p.advance()
		if _, err := p.expect(tLParen, "'(' after identifier"); err != nil {
			return nil, err
		}
		var args []Expr
		if p.peek().kind != tRParen {
			for {
				a, err := p.parseTernary()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.peek().kind != tComma {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(tRParen, "')'"); err != nil {
			return nil, err
		}
		return Call{Name: tok.text, Args: args}, nil
	default:
		return nil, fmt.Errorf("mush: unexpected token")
	}
}
