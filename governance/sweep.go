package governance

import "github.com/dashpay/mnengine/chainparams"

// Sweep runs one aging pass over every tracked trigger, per spec.md §4.4
// "sweep". A trigger whose backing object has vanished or stopped being a
// trigger type is marked ErrorInvalid; ErrorInvalid and Unknown triggers
// are removed unconditionally, Valid/Executed triggers are removed once
// they age past their status's expiration window. deletionTime is the
// unix timestamp recorded on the backing object when a trigger is
// removed, mirroring CGovernanceObject::nDeletionTime.
func (m *TriggerManager) Sweep(currentHeight int32, deletionTime int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for hash, trigger := range m.triggers.byHash {
		obj, ok := m.objects.Lookup(hash)
		if !ok || !obj.IsTriggerType() {
			trigger.Status = StatusErrorInvalid
		}

		var remove bool
		switch trigger.Status {
		case StatusErrorInvalid, StatusUnknown:
			remove = true
		case StatusValid, StatusExecuted:
			remove = currentHeight > trigger.EventHeight+expirationBlocks(trigger.Status, m.params)
		}

		if remove {
			m.triggers.remove(hash)
			if ok {
				obj.MarkForDeletion(deletionTime)
			}
		}
	}
}

// expirationBlocks returns the aging window for status, per spec.md §4.4:
// Executed triggers live one full cycle, Valid triggers one sub-cycle;
// any other status falls back to the bonus interval, mirroring the
// original's defensive default (never reached in practice since
// ErrorInvalid/Unknown are removed before an age check).
func expirationBlocks(status Status, params *chainparams.Params) int32 {
	switch status {
	case StatusExecuted:
		return params.MegaInterval
	case StatusValid:
		return params.SubInterval
	default:
		return params.BonusInterval
	}
}
