// Package arbitrate picks which remote clip to apply when several devices
// have pushed one.
package arbitrate

import "go.klb.dev/clippy/internal/message"

// ChooseClip returns the clip to apply from items, which must be ordered
// newest-first. With an empty priority the newest clip wins. Otherwise each
// device is represented by its newest clip and the first device in priority
// that has one wins; if no listed device has a clip the newest overall is
// returned. ok is false only when items is empty.
func ChooseClip(priority []string, items []message.RemoteClip) (clip message.RemoteClip, ok bool) {
	if len(items) == 0 {
		return message.RemoteClip{}, false
	}
	if len(priority) == 0 {
		return items[0], true
	}

	newest := make(map[string]int, len(items))
	for i, it := range items {
		if it.DeviceID == "" {
			continue
		}
		if _, seen := newest[it.DeviceID]; !seen {
			newest[it.DeviceID] = i
		}
	}

	for _, id := range priority {
		if i, found := newest[id]; found {
			return items[i], true
		}
	}
	return items[0], true
}
