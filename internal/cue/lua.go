package cue

import (
	"context"
	"fmt"
	"math"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// LoadLua runs a cue script. Scripts build the cue by calling:
//
//	title(name)             select the game
//	send(cmd)               queue a command at the cursor
//	stop()                  queue command 0
//	wait(seconds)           move the cursor forward
//	at(seconds)             move the cursor to an absolute offset
//	sweep(from, to, gap)    send every command in [from, to], gap seconds apart
//
// Only the base, table, string and math libraries are available. The
// script stops with an error when ctx is done or it queues more than
// MaxEvents commands.
func LoadLua(ctx context.Context, name, src string) (*Cue, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	b := &luaBuilder{cue: &Cue{}}
	b.register(L)
	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("cue %s: %w", name, err)
	}
	b.cue.sortEvents()
	return b.cue, nil
}

type luaBuilder struct {
	cue    *Cue
	cursor time.Duration
}

func (b *luaBuilder) register(L *lua.LState) {
	L.SetGlobal("title", L.NewFunction(b.title))
	L.SetGlobal("send", L.NewFunction(b.send))
	L.SetGlobal("stop", L.NewFunction(b.stop))
	L.SetGlobal("wait", L.NewFunction(b.wait))
	L.SetGlobal("at", L.NewFunction(b.at))
	L.SetGlobal("sweep", L.NewFunction(b.sweep))
}

func checkCommand(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xff {
		L.ArgError(n, fmt.Sprintf("command %d out of byte range", v))
	}
	return uint8(v)
}

func checkSeconds(L *lua.LState, n int) time.Duration {
	v := float64(L.CheckNumber(n))
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		L.ArgError(n, "time is not a finite number")
	case v < 0:
		L.ArgError(n, "negative time")
	case v > MaxOffset.Seconds():
		L.ArgError(n, fmt.Sprintf("time past %v", MaxOffset))
	}
	return time.Duration(v * float64(time.Second))
}

func (b *luaBuilder) title(L *lua.LState) int {
	b.cue.Title = L.CheckString(1)
	return 0
}

func (b *luaBuilder) add(L *lua.LState, cmd uint8) {
	if len(b.cue.Events) >= MaxEvents {
		L.RaiseError("cue exceeds %d commands", MaxEvents)
	}
	b.cue.Events = append(b.cue.Events, Event{At: b.cursor, Command: cmd})
}

func (b *luaBuilder) advance(L *lua.LState, d time.Duration) {
	if d > MaxOffset-b.cursor {
		L.RaiseError("cue runs past %v", MaxOffset)
	}
	b.cursor += d
}

func (b *luaBuilder) send(L *lua.LState) int {
	b.add(L, checkCommand(L, 1))
	return 0
}

func (b *luaBuilder) stop(L *lua.LState) int {
	b.add(L, 0)
	return 0
}

func (b *luaBuilder) wait(L *lua.LState) int {
	b.advance(L, checkSeconds(L, 1))
	return 0
}

func (b *luaBuilder) at(L *lua.LState) int {
	b.cursor = checkSeconds(L, 1)
	return 0
}

func (b *luaBuilder) sweep(L *lua.LState) int {
	from, to := checkCommand(L, 1), checkCommand(L, 2)
	gap := checkSeconds(L, 3)
	if to < from {
		L.ArgError(2, "sweep end before start")
	}
	for v := int(from); v <= int(to); v++ {
		b.add(L, uint8(v))
		b.advance(L, gap)
	}
	return 0
}
