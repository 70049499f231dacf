package state

import (
	"testing"

	"github.com/nathoo/tuberoulette/types"
)

func TestNewActor(t *testing.T) {
	a := NewActor("You", 4, false)
	if a.HP != 4 || a.MaxHP != 4 {
		t.Errorf("HP = %d/%d, want 4/4", a.HP, a.MaxHP)
	}
	if a.DmgMult != 1 {
		t.Errorf("DmgMult = %d, want 1", a.DmgMult)
	}
	if a.Knowledge.Current != types.ShellUnknown {
		t.Errorf("fresh actor should know nothing, got %v", a.Knowledge.Current)
	}
	if a.Inventory == nil || len(a.Inventory) != 0 {
		t.Errorf("expected empty non-nil inventory, got %v", a.Inventory)
	}
}

func TestActor_HealClamps(t *testing.T) {
	a := NewActor("You", 4, false)
	a.HP = 2

	if got := a.Heal(1); got != 3 {
		t.Errorf("Heal(1) = %d, want 3", got)
	}
	if got := a.Heal(5); got != 4 {
		t.Errorf("Heal(5) = %d, want clamp to 4", got)
	}
}

func TestActor_HurtNoFloor(t *testing.T) {
	a := NewActor("Dealer", 2, true)

	a.Hurt(2)
	if a.IsAlive() {
		t.Error("actor at 0 HP should be dead")
	}
	a.Hurt(2)
	if a.HP != -2 {
		t.Errorf("HP = %d, want -2", a.HP)
	}
}

func TestActor_Inventory(t *testing.T) {
	a := NewActor("You", 4, false)
	a.GiveItem(types.ItemBeer)
	a.GiveItem(types.ItemCigarette)
	a.GiveItem(types.ItemBeer)

	if !a.HasItem(types.ItemBeer) {
		t.Fatal("expected beer in inventory")
	}
	if a.HasItem(types.ItemHandSaw) {
		t.Fatal("did not expect a hand saw")
	}

	if !a.PopItem(types.ItemBeer) {
		t.Fatal("PopItem(beer) should succeed")
	}
	if len(a.Inventory) != 2 || a.Inventory[0] != types.ItemCigarette || a.Inventory[1] != types.ItemBeer {
		t.Errorf("inventory after pop = %v, want [cigarette beer]", a.Inventory)
	}
	if a.PopItem(types.ItemHandcuffs) {
		t.Error("PopItem of missing item should fail")
	}
}

func TestKnowledge_ResetAndForget(t *testing.T) {
	k := NewKnowledge()
	k.Current = types.ShellLive
	k.Learn(3, types.ShellBlank)

	k.Forget()
	if k.Current != types.ShellUnknown {
		t.Error("Forget should clear Current")
	}
	if len(k.Positions) != 1 {
		t.Error("Forget should keep position knowledge")
	}

	k.Current = types.ShellBlank
	k.Reset()
	if k.Current != types.ShellUnknown || len(k.Positions) != 0 {
		t.Errorf("Reset should clear everything, got %v %v", k.Current, k.Positions)
	}
}

func TestKnowledge_Upcoming(t *testing.T) {
	k := Knowledge{} // nil map must still be usable
	k.Learn(1, types.ShellLive)
	k.Learn(4, types.ShellBlank)
	k.Learn(6, types.ShellLive)

	got := k.Upcoming(4)
	if len(got) != 2 {
		t.Fatalf("Upcoming(4) = %v, want 2 entries", got)
	}
	if got[4] != types.ShellBlank || got[6] != types.ShellLive {
		t.Errorf("Upcoming(4) = %v", got)
	}
	if _, ok := got[1]; ok {
		t.Error("passed position should be stale")
	}
}

func TestState_Other(t *testing.T) {
	p := NewActor("You", 4, false)
	d := NewActor("Dealer", 4, true)
	s := NewState(p, d, 7)

	if s.Other(p) != d || s.Other(d) != p {
		t.Error("Other should return the opponent")
	}
	if s.Turn != p {
		t.Error("player should act first")
	}
	if s.Round != 1 || s.Seed != 7 {
		t.Errorf("Round=%d Seed=%d", s.Round, s.Seed)
	}
}

func TestState_ForgetCurrentAndGameOver(t *testing.T) {
	p := NewActor("You", 4, false)
	d := NewActor("Dealer", 4, true)
	s := NewState(p, d, 0)

	p.Knowledge.Current = types.ShellLive
	d.Knowledge.Current = types.ShellBlank
	s.ForgetCurrent()
	if p.Knowledge.Current != types.ShellUnknown || d.Knowledge.Current != types.ShellUnknown {
		t.Error("ForgetCurrent should clear both actors")
	}

	if s.GameOver() {
		t.Error("game should not be over at full health")
	}
	d.Hurt(4)
	if !s.GameOver() {
		t.Error("game should be over when the dealer dies")
	}
}
