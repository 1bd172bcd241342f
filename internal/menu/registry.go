package menu

import "strings"

// Node is one screen or action of the menu tree. Ids are colon paths, so
// "drivers:select" is the select entry under drivers.
//
// Radio levels show which entry is in effect; MultiSelect levels let the user
// mark several entries. SubmitMarks passes the full marked set to Action,
// even when it is empty.
type Node struct {
	ID          string
	Loader      Loader
	Action      Action
	Delete      Action
	Children    map[string]*Node
	MultiSelect bool
	SubmitMarks bool
	Radio       bool
}

// nodeTable declares every node below the root, parents before children.
func nodeTable() []Node {
	return []Node{
		{ID: "drivers", Loader: loadDriversMenu},
		{ID: "drivers:select", Loader: loadDriverSelectMenu, Action: DriverSelectAction, Delete: DriverRemoveAction, Radio: true},
		{ID: "drivers:install", Action: DriverInstallAction},
		{ID: "drivers:clear", Action: DriverClearAction},
		{ID: "settings", Loader: loadSettingsMenu, Action: SettingAction, Delete: SettingResetAction},
		{ID: "settings:option", Action: SettingOptionAction, Radio: true},
		{ID: "input", Loader: loadInputMenu},
		{ID: "input:profiles", Loader: loadInputProfilesMenu, Action: InputProfileAction},
		{ID: "input:bindings", Loader: loadInputBindingsMenu},
		{ID: "addons", Loader: loadAddonsMenu, Action: AddonApplyAction, MultiSelect: true, SubmitMarks: true},
	}
}

// Registry indexes the menu tree by node id.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry links the node table under the root menu.
func BuildRegistry() *Registry {
	root := &Node{
		ID:       "root",
		Loader:   func(Context) ([]Item, error) { return RootItems(), nil },
		Children: make(map[string]*Node),
	}
	nodes := map[string]*Node{root.ID: root}
	table := nodeTable()
	for i := range table {
		node := &table[i]
		node.Children = make(map[string]*Node)
		nodes[node.ID] = node
		parentID, key := parentKey(node.ID)
		if parent, ok := nodes[parentID]; ok {
			parent.Children[key] = node
		}
	}
	return &Registry{root: root, nodes: nodes}
}

func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by id.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves the entry key of the level parentID.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

// parentKey splits "a:b:c" into "a:b" and "c"; top-level ids hang off root.
func parentKey(id string) (string, string) {
	idx := strings.LastIndexByte(id, ':')
	if idx < 0 {
		return "root", id
	}
	return id[:idx], id[idx+1:]
}
