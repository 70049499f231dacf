package items

import (
	"strings"
	"testing"

	"github.com/nathoo/tuberoulette/engine/shotgun"
	"github.com/nathoo/tuberoulette/engine/state"
	"github.com/nathoo/tuberoulette/types"
)

// scriptedRNG returns queued values, falling back to lo when the queue is empty.
type scriptedRNG struct {
	ints  []int
	calls int
}

func (r *scriptedRNG) IntRange(lo, hi int) int {
	r.calls++
	if len(r.ints) == 0 {
		return lo
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v < lo || v > hi {
		panic("scripted value out of range")
	}
	return v
}

// fixedSteal always picks the same item.
type fixedSteal struct {
	id     types.ItemID
	ok     bool
	prompt string
}

func (f *fixedSteal) ChooseSteal(victim *state.Actor, prompt string) (types.ItemID, bool) {
	f.prompt = prompt
	return f.id, f.ok
}

func testSetup(shells ...types.Shell) (Env, *state.Actor, *state.Actor) {
	p := state.NewActor("You", 4, false)
	d := state.NewActor("Dealer", 4, true)
	s := state.NewState(p, d, 1)
	s.Shotgun = shotgun.New(shells...)
	return Env{State: s, RNG: &scriptedRNG{}}, p, d
}

func hasEvent(events []types.Event, typ string) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestCatalog_Complete(t *testing.T) {
	cat := Catalog()
	if len(cat) != 8 {
		t.Fatalf("expected 8 items, got %d", len(cat))
	}
	for i, it := range cat {
		if it.ID != types.AllItems[i] {
			t.Errorf("catalog[%d] = %v, want %v", i, it.ID, types.AllItems[i])
		}
		if it.Name == "" || it.Desc == "" {
			t.Errorf("item %v missing name or description", it.ID)
		}
	}
	if Name(types.ItemNone) == "" {
		t.Error("unknown id should still have a printable name")
	}
}

func TestApply_MagnifyingGlass(t *testing.T) {
	env, p, d := testSetup(types.ShellBlank, types.ShellLive)

	events, output := Apply(env, types.ItemMagnifyingGlass, p, d)

	if p.Knowledge.Current != types.ShellBlank {
		t.Errorf("player should know BLANK, got %v", p.Knowledge.Current)
	}
	if d.Knowledge.Current != types.ShellUnknown {
		t.Error("dealer must not learn anything")
	}
	if env.State.Shotgun.Cursor() != 0 {
		t.Error("glass must not move the cursor")
	}
	if !hasEvent(events, types.EventShellRevealed) {
		t.Errorf("expected shell_revealed event, got %v", events)
	}
	if len(output) != 1 || !strings.Contains(output[0], "BLANK") {
		t.Errorf("human should be told the shell, got %v", output)
	}
}

func TestApply_MagnifyingGlass_DealerKeepsSecret(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)

	_, output := Apply(env, types.ItemMagnifyingGlass, d, p)

	if d.Knowledge.Current != types.ShellLive {
		t.Errorf("dealer should know LIVE, got %v", d.Knowledge.Current)
	}
	if strings.Contains(output[0], "LIVE") {
		t.Errorf("narration leaked the dealer's shell: %q", output[0])
	}
}

func TestApply_Beer(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)
	p.Knowledge.Current = types.ShellLive
	d.Knowledge.Current = types.ShellLive

	events, output := Apply(env, types.ItemBeer, p, d)

	if env.State.Shotgun.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", env.State.Shotgun.Cursor())
	}
	if p.Knowledge.Current != types.ShellUnknown || d.Knowledge.Current != types.ShellUnknown {
		t.Error("beer should clear both actors' current knowledge")
	}
	if !hasEvent(events, types.EventShellEjected) {
		t.Errorf("expected shell_ejected event, got %v", events)
	}
	if !strings.Contains(output[0], "Ejected LIVE") {
		t.Errorf("unexpected narration %v", output)
	}
}

func TestApply_Beer_EmptyIsNoOp(t *testing.T) {
	env, p, d := testSetup(types.ShellLive)
	env.State.Shotgun.Fire()

	events, output := Apply(env, types.ItemBeer, p, d)

	if env.State.Shotgun.Cursor() != 1 {
		t.Error("cursor must not move on an empty tube")
	}
	if hasEvent(events, types.EventShellEjected) {
		t.Error("no shell should be ejected")
	}
	if len(output) != 1 || !strings.Contains(output[0], "empty") {
		t.Errorf("expected empty-gun narration, got %v", output)
	}
}

func TestApply_Handcuffs(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)

	Apply(env, types.ItemHandcuffs, p, d)

	if !d.SkipNext {
		t.Error("target should skip next turn")
	}
	if p.SkipNext {
		t.Error("user should not be cuffed")
	}
}

func TestApply_HandSaw(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)

	Apply(env, types.ItemHandSaw, p, d)

	if p.DmgMult != 2 {
		t.Errorf("DmgMult = %d, want 2", p.DmgMult)
	}
	if d.DmgMult != 1 {
		t.Error("opponent multiplier must not change")
	}
}

func TestApply_Inverter_KnowledgeFollows(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)
	p.Knowledge.Current = types.ShellLive

	Apply(env, types.ItemInverter, p, d)

	got, _ := env.State.Shotgun.Peek()
	if got != types.ShellBlank {
		t.Errorf("chambered shell = %v, want BLANK", got)
	}
	if p.Knowledge.Current != types.ShellBlank {
		t.Errorf("knowledge should flip in lockstep, got %v", p.Knowledge.Current)
	}
	if p.Knowledge.Current != got {
		t.Error("knowledge and peek disagree")
	}
}

func TestApply_Inverter_UnknownStaysUnknown(t *testing.T) {
	env, p, d := testSetup(types.ShellBlank, types.ShellLive)

	Apply(env, types.ItemInverter, p, d)

	if p.Knowledge.Current != types.ShellUnknown {
		t.Errorf("unknown knowledge should stay unknown, got %v", p.Knowledge.Current)
	}
	if got, _ := env.State.Shotgun.Peek(); got != types.ShellLive {
		t.Errorf("chambered shell = %v, want LIVE", got)
	}
}

func TestApply_Inverter_FlipsReachedPhoneReveal(t *testing.T) {
	env, p, d := testSetup(types.ShellBlank, types.ShellLive, types.ShellBlank)
	p.Knowledge.Learn(1, types.ShellLive)
	env.State.Shotgun.Fire()

	Apply(env, types.ItemInverter, p, d)

	if p.Knowledge.Positions[1] != types.ShellBlank {
		t.Errorf("reveal at the chamber should flip, got %v", p.Knowledge.Positions[1])
	}
}

func TestApply_BurnerPhone(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank, types.ShellLive, types.ShellBlank)
	env.RNG = &scriptedRNG{ints: []int{2}}

	events, output := Apply(env, types.ItemBurnerPhone, p, d)

	if got := p.Knowledge.Positions[2]; got != types.ShellLive {
		t.Errorf("position 2 = %v, want LIVE", got)
	}
	if len(d.Knowledge.Positions) != 0 {
		t.Error("dealer must not learn the reveal")
	}
	if !hasEvent(events, types.EventShellRevealed) {
		t.Error("expected shell_revealed event")
	}
	if !strings.Contains(output[0], "Shell 3 is LIVE") {
		t.Errorf("reveal should be narrated relative to the chamber, got %q", output[0])
	}
}

func TestApply_BurnerPhone_AbsolutePosition(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank, types.ShellLive, types.ShellBlank)
	env.State.Shotgun.Fire()
	env.RNG = &scriptedRNG{ints: []int{2}}

	Apply(env, types.ItemBurnerPhone, p, d)

	// cursor 1 + offset 2 = absolute position 3
	if got, ok := p.Knowledge.Positions[3]; !ok || got != types.ShellBlank {
		t.Errorf("Positions = %v, want {3: BLANK}", p.Knowledge.Positions)
	}
}

func TestApply_BurnerPhone_NeverCurrent(t *testing.T) {
	for i := 0; i < 50; i++ {
		env, p, d := testSetup(types.ShellLive, types.ShellBlank, types.ShellLive)
		Apply(env, types.ItemBurnerPhone, p, d)
		if _, ok := p.Knowledge.Positions[0]; ok {
			t.Fatal("phone revealed the chambered shell")
		}
	}
}

func TestApply_BurnerPhone_LastShell(t *testing.T) {
	env, p, d := testSetup(types.ShellLive)
	rng := &scriptedRNG{}
	env.RNG = rng

	events, output := Apply(env, types.ItemBurnerPhone, p, d)

	if len(p.Knowledge.Positions) != 0 {
		t.Error("nothing should be revealed")
	}
	if rng.calls != 0 {
		t.Error("no random draw should happen")
	}
	if hasEvent(events, types.EventShellRevealed) {
		t.Error("no reveal event expected")
	}
	if !strings.Contains(output[0], "How unfortunate") {
		t.Errorf("unexpected narration %v", output)
	}
}

func TestApply_Cigarette(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)
	p.HP = 2

	Apply(env, types.ItemCigarette, p, d)
	if p.HP != 3 {
		t.Errorf("HP = %d, want 3", p.HP)
	}

	p.HP = 4
	Apply(env, types.ItemCigarette, p, d)
	if p.HP != 4 {
		t.Errorf("HP = %d, should not overheal", p.HP)
	}
}

func TestApply_Adrenaline_HumanStealsCigarette(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)
	steal := &fixedSteal{id: types.ItemCigarette, ok: true}
	env.Steal = steal
	p.HP = 3
	d.Inventory = []types.ItemID{types.ItemBeer, types.ItemCigarette}

	events, output := Apply(env, types.ItemAdrenaline, p, d)

	if p.HP != 4 {
		t.Errorf("user HP = %d, want 4", p.HP)
	}
	if d.HasItem(types.ItemCigarette) {
		t.Error("cigarette should leave the victim's inventory")
	}
	if p.HasItem(types.ItemCigarette) {
		t.Error("stolen item must never land in the user's inventory")
	}
	if len(d.Inventory) != 1 || d.Inventory[0] != types.ItemBeer {
		t.Errorf("victim inventory = %v, want [Beer]", d.Inventory)
	}
	if steal.prompt == "" {
		t.Error("human chooser should have been asked")
	}
	if !hasEvent(events, types.EventItemStolen) || !hasEvent(events, types.EventActorHealed) {
		t.Errorf("expected stolen + healed events, got %v", events)
	}
	if !strings.Contains(strings.Join(output, "\n"), "steals Cigarette from Dealer") {
		t.Errorf("unexpected narration %v", output)
	}
}

func TestApply_Adrenaline_DealerStealsRandom(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)
	env.RNG = &scriptedRNG{ints: []int{1}}
	env.Steal = &fixedSteal{id: types.ItemBeer, ok: true} // must be ignored for the dealer
	p.Inventory = []types.ItemID{types.ItemBeer, types.ItemHandcuffs}

	Apply(env, types.ItemAdrenaline, d, p)

	if !p.SkipNext {
		t.Error("dealer should have stolen and used handcuffs on the player")
	}
	if len(p.Inventory) != 1 || p.Inventory[0] != types.ItemBeer {
		t.Errorf("player inventory = %v, want [Beer]", p.Inventory)
	}
	if env.State.Shotgun.Cursor() != 0 {
		t.Error("beer was not stolen, cursor must not move")
	}
}

func TestApply_Adrenaline_EmptyTarget(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)

	events, output := Apply(env, types.ItemAdrenaline, p, d)

	if hasEvent(events, types.EventItemStolen) {
		t.Error("nothing to steal")
	}
	if !strings.Contains(output[0], "Nothing to steal") {
		t.Errorf("unexpected narration %v", output)
	}
}

func TestApply_Adrenaline_Cancelled(t *testing.T) {
	env, p, d := testSetup(types.ShellLive, types.ShellBlank)
	env.Steal = &fixedSteal{ok: false}
	d.Inventory = []types.ItemID{types.ItemHandSaw}

	_, output := Apply(env, types.ItemAdrenaline, p, d)

	if len(d.Inventory) != 1 {
		t.Error("cancelled steal must leave the victim's items alone")
	}
	if p.DmgMult != 1 {
		t.Error("nothing should have been used")
	}
	if !strings.Contains(output[0], "cancels") {
		t.Errorf("unexpected narration %v", output)
	}
}
