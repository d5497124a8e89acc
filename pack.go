package uniformbuf

import "sort"

// PackedItem is one value's placement inside a dynamic buffer's byte
// block. Type is the effective (possibly widened) type: a vec3 that is
// not followed by a float packs at vec4 size. ValueSize is the number
// of bytes copied from the input on refresh, which for a widened vec3
// stays at 12 so refresh never reads past the caller's vector.
type PackedItem struct {
	Type      ElementType
	Offset    int
	Size      int
	ValueSize int
}

// packedLayout is the construction-time result of the packing pass. The
// item order is fixed for the lifetime of the buffer; lookup[i] is the
// index, within the caller's full input collection, of the input that
// populates items[i]. byId resolves the same mapping by input id.
type packedLayout struct {
	items  []PackedItem
	lookup []int
	byId   map[string]int
	size   int
}

type packRef struct {
	input *Input
	index int // position in the caller's full collection
}

// packInputs reorders the eligible inputs to satisfy std140-style UBO
// alignment and assigns byte offsets. Returns nil when no input is
// eligible, meaning no dynamic buffer is needed at all.
func packInputs(inputs []*Input) *packedLayout {
	var elig []packRef
	for i, in := range inputs {
		if !in.eligible() {
			continue
		}
		if in.Type > maxElementType {
			panic("uniformbuf: unsupported element type " + in.Type.String())
		}
		elig = append(elig, packRef{input: in, index: i})
	}
	if len(elig) == 0 {
		return nil
	}

	// Order as vec4, vec3, vec2, float. Stable, so inputs of equal type
	// keep their original relative order.
	sort.SliceStable(elig, func(a, b int) bool {
		return elig[a].input.Type > elig[b].input.Type
	})

	// First occurrence of each type in the sorted order.
	first := map[ElementType]int{}
	for i, r := range elig {
		if _, ok := first[r.input.Type]; !ok {
			first[r.input.Type] = i
		}
	}

	// Without a vec3 the sort order alone is alignment-correct.
	if start, ok := first[Vec3]; ok {
		elig = pairVec3s(elig, start)
	}

	layout := &packedLayout{
		items:  make([]PackedItem, 0, len(elig)),
		lookup: make([]int, 0, len(elig)),
		byId:   make(map[string]int, len(elig)),
	}
	offset := 0
	for i, r := range elig {
		t := effectiveType(elig, i)
		item := PackedItem{
			Type:      t,
			Offset:    offset,
			Size:      t.ByteSize(),
			ValueSize: r.input.Type.ByteSize(),
		}
		layout.items = append(layout.items, item)
		layout.lookup = append(layout.lookup, r.index)
		layout.byId[r.input.Id] = i
		offset += item.Size
	}
	layout.size = offset
	return layout
}

// pairVec3s walks the run of vec3s starting at start and relocates one
// float behind each vec3 that is not already followed by one, so the
// pair fills a 16-byte slot. Each float is consumed at most once; when
// the pool runs dry the remaining vec3s widen to vec4 in the offset
// pass.
func pairVec3s(refs []packRef, start int) []packRef {
	var floats []int
	for i, r := range refs {
		if r.input.Type == Float {
			floats = append(floats, i)
		}
	}

	i := start
	for i < len(refs) && refs[i].input.Type == Vec3 {
		if i+1 >= len(refs) {
			break
		}
		// Floats sort last, so a vec3 already followed by one can only
		// be the end of the run.
		if refs[i+1].input.Type == Float {
			break
		}
		if len(floats) == 0 {
			i++
			continue
		}
		j := floats[0]
		floats = floats[1:]
		refs = moveAfter(refs, j, i)
		i += 2
	}
	return refs
}

// moveAfter relocates refs[from] to directly after refs[to]. Requires
// from > to, which holds here because floats sort after vec3s.
func moveAfter(refs []packRef, from, to int) []packRef {
	moved := refs[from]
	copy(refs[to+2:from+1], refs[to+1:from])
	refs[to+1] = moved
	return refs
}

// effectiveType widens a vec3 to vec4 size unless a float directly
// follows and fills the remaining 4 bytes of its 16-byte slot.
func effectiveType(refs []packRef, i int) ElementType {
	t := refs[i].input.Type
	if t == Vec3 && (i+1 >= len(refs) || refs[i+1].input.Type != Float) {
		return Vec4
	}
	return t
}
