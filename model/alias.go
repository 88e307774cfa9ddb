package model

import "strconv"

// AliasTable maps the integer flag carried by a type-1940 record to the
// logical set name it stands for. It is built during model setup and
// consulted whenever an A8 set-name field is resolved: at model-setup
// commit for the defined sets, and through Store.ResolveSetName for later
// records that name a set (spec §3, §9 "Label alias").
type AliasTable struct {
	byKey map[int64]string
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{byKey: make(map[int64]string)}
}

// Define records that intKey resolves to logicalName.
func (a *AliasTable) Define(intKey int64, logicalName string) {
	a.byKey[intKey] = logicalName
}

// Resolve returns the logical name for raw, an A8 set-name field as read
// from the stream. If raw's trimmed text is the decimal string form of a
// defined alias key, the logical name is returned; otherwise raw is
// returned unchanged (it was never an alias).
func (a *AliasTable) Resolve(raw string) string {
	key, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}

	if name, ok := a.byKey[key]; ok {
		return name
	}

	return raw
}
