package bot

import (
	"fmt"
	"io/ioutil"
	"sync"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
	"uno-server/pkg/deck"
)

// Script is a strategy written in Lua
// The script must define a global function choose(hand, active) that returns
// a list of card ids to play, or an empty list to draw. Cards are passed as
// tables with the fields id, color, rank and code.
type Script struct {
	lock   sync.Mutex
	state  *lua.LState
	choose lua.LValue
	logger logrus.FieldLogger
}

// NewScript compiles the Lua source
func NewScript(source string) (*Script, error) {
	state := lua.NewState()
	if err := state.DoString(source); err != nil {
		state.Close()
		return nil, err
	}

	choose := state.GetGlobal("choose")
	if choose.Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("script does not define a choose function")
	}

	return &Script{
		state:  state,
		choose: choose,
		logger: logrus.StandardLogger(),
	}, nil
}

// LoadScript compiles the Lua file
func LoadScript(filename string) (*Script, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return NewScript(string(b))
}

// Close releases the Lua state
func (s *Script) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.Close()
}

// Choose implements Strategy
// If the script fails, the player draws
func (s *Script) Choose(hand deck.Hand, active deck.Card) []deck.Card {
	s.lock.Lock()
	defer s.lock.Unlock()

	L := s.state
	luaHand := L.NewTable()
	for _, card := range hand {
		luaHand.Append(cardTable(L, card))
	}

	err := L.CallByParam(lua.P{
		Fn:      s.choose,
		NRet:    1,
		Protect: true,
	}, luaHand, cardTable(L, active))
	if err != nil {
		s.logger.WithError(err).Warn("script failed, drawing a card")
		return nil
	}

	ret := L.Get(-1)
	L.Pop(1)

	ids, ok := ret.(*lua.LTable)
	if !ok {
		return nil
	}

	var cards []deck.Card
	ids.ForEach(func(_, v lua.LValue) {
		n, ok := v.(lua.LNumber)
		if !ok {
			return
		}

		if card, found := hand.Find(int(n)); found {
			cards = append(cards, card)
		}
	})

	return cards
}

func cardTable(L *lua.LState, card deck.Card) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LNumber(card.ID))
	t.RawSetString("color", lua.LString(card.Color.String()))
	t.RawSetString("rank", lua.LString(card.Rank.String()))
	t.RawSetString("code", lua.LString(deck.CardToString(card)))

	return t
}
