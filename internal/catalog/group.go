package catalog

// Group is one category of the catalog with its entries in catalog order.
type Group struct {
	Category string  `json:"category"`
	Entries  []Entry `json:"entries"`
}

// GroupByCategory groups entries by category. Categories appear in the
// order they are first seen; entries keep their relative order.
func GroupByCategory(entries []Entry) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, Group{Category: e.Category})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	return groups
}
