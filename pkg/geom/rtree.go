package geom

import "sort"

// RTree is a static, bulk-loaded R-tree over AABBs, built once via
// BulkLoad and queried read-only afterward. It implements the
// Sort-Tile-Recursive (STR) packing algorithm: the classic choice for
// bulk-loading an R-tree when the full item set is known up front, which
// is always true for Stage D (it runs once per pipeline call over a fixed
// polygon set).
type RTree struct {
	root *rtreeNode
}

type rtreeItem struct {
	box   AABB
	index int
}

type rtreeNode struct {
	box      AABB
	children []*rtreeNode
	item     *rtreeItem // set on leaves
}

// BulkLoad builds an RTree over the given boxes using STR packing. The
// nodeCapacity controls fan-out; 16 is a reasonable default for the
// thousands-of-rectangles scale spec.md §5 describes.
func BulkLoad(boxes []AABB, nodeCapacity int) *RTree {
	if nodeCapacity < 2 {
		nodeCapacity = 16
	}
	items := make([]*rtreeItem, len(boxes))
	for i, b := range boxes {
		items[i] = &rtreeItem{box: b, index: i}
	}
	if len(items) == 0 {
		return &RTree{root: &rtreeNode{}}
	}
	root := strPack(items, nodeCapacity)
	return &RTree{root: root}
}

func strPack(items []*rtreeItem, cap int) *rtreeNode {
	if len(items) <= cap {
		children := make([]*rtreeNode, len(items))
		box := items[0].box
		for i, it := range items {
			leaf := &rtreeNode{box: it.box, item: it}
			children[i] = leaf
			if i > 0 {
				box = box.Union(it.box)
			}
		}
		return &rtreeNode{box: box, children: children}
	}

	// Number of leaf-level slices: ceil(sqrt(ceil(n/cap))).
	leafCount := (len(items) + cap - 1) / cap
	sliceCount := isqrtCeil(leafCount)
	sliceSize := sliceCount * cap

	sort.Slice(items, func(i, j int) bool {
		return items[i].box.Center().X < items[j].box.Center().X
	})

	var nodes []*rtreeNode
	for s := 0; s < len(items); s += sliceSize {
		end := s + sliceSize
		if end > len(items) {
			end = len(items)
		}
		slice := items[s:end]
		sort.Slice(slice, func(i, j int) bool {
			return slice[i].box.Center().Y < slice[j].box.Center().Y
		})
		for t := 0; t < len(slice); t += cap {
			tEnd := t + cap
			if tEnd > len(slice) {
				tEnd = len(slice)
			}
			group := slice[t:tEnd]
			children := make([]*rtreeNode, len(group))
			box := group[0].box
			for i, it := range group {
				leaf := &rtreeNode{box: it.box, item: it}
				children[i] = leaf
				if i > 0 {
					box = box.Union(it.box)
				}
			}
			nodes = append(nodes, &rtreeNode{box: box, children: children})
		}
	}

	if len(nodes) == 1 {
		return nodes[0]
	}
	return strPackNodes(nodes, cap)
}

// strPackNodes packs already-built internal nodes one level higher.
func strPackNodes(nodes []*rtreeNode, cap int) *rtreeNode {
	for len(nodes) > cap {
		sliceCount := isqrtCeil((len(nodes) + cap - 1) / cap)
		sliceSize := sliceCount * cap
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].box.Center().X < nodes[j].box.Center().X })

		var next []*rtreeNode
		for s := 0; s < len(nodes); s += sliceSize {
			end := s + sliceSize
			if end > len(nodes) {
				end = len(nodes)
			}
			slice := nodes[s:end]
			sort.Slice(slice, func(i, j int) bool { return slice[i].box.Center().Y < slice[j].box.Center().Y })
			for t := 0; t < len(slice); t += cap {
				tEnd := t + cap
				if tEnd > len(slice) {
					tEnd = len(slice)
				}
				group := slice[t:tEnd]
				box := group[0].box
				for _, g := range group[1:] {
					box = box.Union(g.box)
				}
				next = append(next, &rtreeNode{box: box, children: group})
			}
		}
		nodes = next
	}
	box := nodes[0].box
	for _, n := range nodes[1:] {
		box = box.Union(n.box)
	}
	return &rtreeNode{box: box, children: nodes}
}

func isqrtCeil(n int) int {
	if n <= 1 {
		return 1
	}
	r := 1
	for r*r < n {
		r++
	}
	return r
}

// Query returns the indices of every box whose AABB intersects q.
func (t *RTree) Query(q AABB) []int {
	var out []int
	if t.root == nil {
		return out
	}
	var walk func(n *rtreeNode)
	walk = func(n *rtreeNode) {
		if n == nil || !n.box.Intersects(q) {
			return
		}
		if n.item != nil {
			out = append(out, n.item.index)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}
