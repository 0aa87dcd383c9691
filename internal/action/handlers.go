package action

import (
	"fmt"
	"strconv"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/world"
)

// RegisterStandardHandlers wires the auto-reconciliation handlers every
// world needs regardless of which actions are registered in its parser
// registry: auto-open/auto-unlock before a move, auto-unequip-to-free-hands
// before an equip, auto-remove before a put that would otherwise move a
// worn item out from under its wearer (the scenario of dropping a worn
// shirt), auto-equip the weapon before an attack and the item before a
// throw, and the destination-capacity/source-supply check on an explicit
// pour. Handlers fire in the order registered here, which is load
// bearing — auto-unlock must run before auto-open's own blocking check, and
// both must run before the move they're unblocking.
func RegisterStandardHandlers(w *World) {
	notify.On[MoveBefore](w.Notify, notify.Before, autoOpenBeforeMove)
	notify.OnVerify[MoveVerify](w.Notify, notify.Verify, preventMoveThroughClosed)

	notify.On[OpenBefore](w.Notify, notify.Before, autoUnlockBeforeOpen)
	notify.OnVerify[OpenVerify](w.Notify, notify.Verify, preventOpeningLocked)

	notify.On[EquipBefore](w.Notify, notify.Before, autoUnequipToFreeHands)

	notify.On[PutBefore](w.Notify, notify.Before, autoRemoveBeforePut)

	notify.On[AttackBefore](w.Notify, notify.Before, autoEquipBeforeAttack)
	notify.On[ThrowBefore](w.Notify, notify.Before, autoEquipBeforeThrow)

	notify.OnVerify[PourVerify](w.Notify, notify.Verify, limitPourToCapacityAndSupply)
}

// autoOpenBeforeMove queues an OpenAction ahead of a move through a closed
// connection, so the move itself only ever has to handle "still closed"
// (e.g. locked) as a failure.
func autoOpenBeforeMove(w *World, payload any) {
	p := payload.(MoveBefore)
	state, ok := world.Get[model.OpenState](w.Store, p.Connection)
	if !ok || state.Open {
		return
	}
	w.EnqueueFirst(p.Actor, NewOpenAction(p.Actor, p.Connection))
}

// preventMoveThroughClosed blocks a move through a connection that is
// still closed once Verify runs (the auto-open prequel may have failed,
// e.g. because the door is locked).
func preventMoveThroughClosed(w *World, payload any) notify.Verdict {
	p := payload.(MoveVerify)
	state, ok := world.Get[model.OpenState](w.Store, p.Connection)
	if !ok || state.Open {
		return notify.Valid()
	}
	return notify.InvalidFor(p.Actor, fmt.Sprintf("The %s is closed.", Name(w.Store, p.Connection)))
}

// autoUnlockBeforeOpen queues an unlock ahead of an open attempt against a
// locked target, so OpenAction's own Perform only has to handle "still
// locked" (e.g. no key) as a failure.
func autoUnlockBeforeOpen(w *World, payload any) {
	p := payload.(OpenBefore)
	if !p.ShouldBeOpen {
		return
	}
	lock, ok := world.Get[model.KeyedLock](w.Store, p.Target)
	if !ok || !lock.Locked {
		return
	}
	w.EnqueueFirst(p.Actor, NewUnlockAction(p.Actor, p.Target))
}

// preventOpeningLocked blocks opening a target that is still locked once
// Verify runs.
func preventOpeningLocked(w *World, payload any) notify.Verdict {
	p := payload.(OpenVerify)
	if !p.ShouldBeOpen {
		return notify.Valid()
	}
	lock, ok := world.Get[model.KeyedLock](w.Store, p.Target)
	if !ok || !lock.Locked {
		return notify.Valid()
	}
	return notify.InvalidFor(p.Actor, fmt.Sprintf("The %s is locked.", Name(w.Store, p.Target)))
}

// autoUnequipToFreeHands queues unequips of the wielder's oldest equipped
// items, in order, until there's room to hold a newly equipped item. A
// no-op for items already held or being unequipped.
func autoUnequipToFreeHands(w *World, payload any) {
	p := payload.(EquipBefore)
	if !p.Equipping || model.IsEquipping(w.Store, p.Actor, p.Item) {
		return
	}
	needed := model.ItemHandCost(w.Store, p.Item)
	for _, item := range model.OldestEquippedUntilFits(w.Store, p.Actor, needed) {
		w.EnqueueFirst(p.Actor, NewUnequipAction(p.Actor, item))
	}
}

// autoEquipBeforeAttack queues an equip of the weapon an attack is about to
// resolve with, if it's found loose in the attacker's own inventory rather
// than already in hand. A no-op for innate weapons and already-equipped
// ones.
func autoEquipBeforeAttack(w *World, payload any) {
	p := payload.(AttackBefore)
	weaponEntity, _, ok := resolveWeapon(w, p.Attacker, p.Weapon)
	if !ok || weaponEntity == p.Attacker || model.IsEquipping(w.Store, p.Attacker, weaponEntity) {
		return
	}
	w.EnqueueFirst(p.Attacker, NewEquipAction(p.Attacker, weaponEntity))
}

// autoEquipBeforeThrow queues an equip of the item about to be thrown, so
// the thrower is holding it rather than throwing straight out of a
// container. A no-op if it's already in hand.
func autoEquipBeforeThrow(w *World, payload any) {
	p := payload.(ThrowBefore)
	if model.IsEquipping(w.Store, p.Thrower, p.Item) {
		return
	}
	w.EnqueueFirst(p.Thrower, NewEquipAction(p.Thrower, p.Item))
}

// autoRemoveBeforePut queues a RemoveAction ahead of a put/get/drop that
// targets a currently-worn item, so the wearer always takes it off before
// it leaves their body: dropping a worn shirt auto-removes it first
// rather than erroring.
func autoRemoveBeforePut(w *World, payload any) {
	p := payload.(PutBefore)
	wearer, ok := model.WearerOf(w.Store, p.Item)
	if !ok {
		return
	}
	w.EnqueueFirst(wearer, NewRemoveAction(wearer, p.Item))
}

func liters(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// limitPourToCapacityAndSupply rejects an explicit-amount pour that would
// overflow the destination or ask for more than the source actually holds.
// A fill (Amount <= 0) always transfers as much as fits and never rejects
// here.
func limitPourToCapacityAndSupply(w *World, payload any) notify.Verdict {
	p := payload.(PourVerify)
	if p.Amount <= 0 {
		return notify.Valid()
	}

	dest, ok := world.Get[model.FluidContainer](w.Store, p.Dest)
	if ok {
		if free := dest.FreeVolume(); p.Amount > free+1e-9 {
			return notify.InvalidFor(p.Actor, fmt.Sprintf("%s can only hold %s L more.", Name(w.Store, p.Dest), liters(free)))
		}
	}

	source, ok := world.Get[model.FluidContainer](w.Store, p.Source)
	if ok {
		available := source.TotalVolume()
		if available <= 1e-9 {
			return notify.InvalidFor(p.Actor, fmt.Sprintf("%s is empty.", Name(w.Store, p.Source)))
		}
		if p.Amount > available+1e-9 {
			return notify.InvalidFor(p.Actor, fmt.Sprintf("%s only contains %s L.", Name(w.Store, p.Source), liters(available)))
		}
	}

	return notify.Valid()
}
