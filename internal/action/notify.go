package action

import (
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
)

// notifyDispatch fires a side-effecting notification of the given phase
// for payload, against this driver's own notification registry.
func notifyDispatch[P any](w *World, kind notify.Kind, payload P) {
	notify.Dispatch(w.Notify, kind, w, payload)
}

// notifyVerify runs every Verify handler registered for payload's type,
// short-circuiting on the first Invalid verdict.
func notifyVerify[P any](w *World, kind notify.Kind, payload P) notify.Verdict {
	return notify.DispatchVerify(w.Notify, kind, w, payload)
}

// translateVerdict adapts a notify.Verdict (plain per-entity strings) into
// an action.Verdict (rendered Outgoing messages), so Verify handlers don't
// need to depend on the message package at all.
func translateVerdict(v notify.Verdict) Verdict {
	if v.Valid {
		return Verdict{Valid: true}
	}
	var out []Outgoing
	for recipient, lines := range v.Messages {
		for _, line := range lines {
			out = append(out, toSelf(recipient, line, model.CategoryInternalMisc))
		}
	}
	return Verdict{Valid: false, Messages: out}
}
