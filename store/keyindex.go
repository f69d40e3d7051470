package store

import "github.com/google/btree"

// keyIndex is a secondary ordered index over live keys, kept in step with
// the primary keyspace map. It exists purely to give KEYS a stable,
// allocation-light iteration order instead of Go's randomized map
// iteration; it never participates in lookup, find-or-create, or
// expiration decisions, which all go through the primary map.
type keyIndex struct {
	tree *btree.BTree
}

type keyItem string

func (a keyItem) Less(than btree.Item) bool {
	return a < than.(keyItem)
}

func newKeyIndex() *keyIndex {
	return &keyIndex{tree: btree.New(32)}
}

func (k *keyIndex) insert(key string) {
	k.tree.ReplaceOrInsert(keyItem(key))
}

func (k *keyIndex) remove(key string) {
	k.tree.Delete(keyItem(key))
}

func (k *keyIndex) len() int {
	return k.tree.Len()
}

// ascend visits every indexed key in ascending order. fn returning false
// stops the traversal early, matching btree.BTree.Ascend's contract.
func (k *keyIndex) ascend(fn func(key string) bool) {
	k.tree.Ascend(func(item btree.Item) bool {
		return fn(string(item.(keyItem)))
	})
}
