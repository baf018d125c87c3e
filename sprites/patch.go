package sprites

import "sort"

// Patch adds to override every animation of base it does not define itself.
// Animations present in both keep the override's version. It returns the ids
// that were filled in from base, in lexical order.
func Patch(base, override *Sprite) []string {
	var filled []string
	anims := override.Animations()
	for id, a := range base.Animations() {
		if _, ok := anims[id]; ok {
			continue
		}
		anims[id] = a
		filled = append(filled, id)
	}
	sort.Strings(filled)
	return filled
}
