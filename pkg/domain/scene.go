package domain

import "slices"

// Scene is a named, ordered stack of nodes composited together.
// Nodes[0] is drawn on top.
type Scene struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// SceneOption overrides a default of NewScene.
type SceneOption func(*Scene)

// WithSceneID sets an explicit identity instead of a generated one.
func WithSceneID(id string) SceneOption {
	return func(s *Scene) {
		s.ID = id
	}
}

// WithSceneName sets the display name.
func WithSceneName(name string) SceneOption {
	return func(s *Scene) {
		s.Name = name
	}
}

// WithNodes replaces the default single node.
func WithNodes(nodes ...Node) SceneOption {
	return func(s *Scene) {
		s.Nodes = slices.Clone(nodes)
	}
}

// NewScene creates a scene holding one empty node.
func NewScene(opts ...SceneOption) Scene {
	s := Scene{
		ID:    NewID(),
		Nodes: []Node{NewNode()},
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.Nodes == nil {
		s.Nodes = []Node{}
	}
	return s
}

// TopNode returns the node at index 0.
func (s Scene) TopNode() (Node, bool) {
	if len(s.Nodes) == 0 {
		return Node{}, false
	}
	return s.Nodes[0], true
}

// NodeIndex returns the position of a node in the z-order, or -1.
func (s Scene) NodeIndex(nodeID string) int {
	return slices.IndexFunc(s.Nodes, func(n Node) bool {
		return n.ID == nodeID
	})
}

// NodeByID looks up a node in this scene.
func (s Scene) NodeByID(nodeID string) (Node, bool) {
	i := s.NodeIndex(nodeID)
	if i < 0 {
		return Node{}, false
	}
	return s.Nodes[i], true
}

// AddNode puts a node on top of the stack.
func (s Scene) AddNode(node Node) Scene {
	nodes := make([]Node, 0, len(s.Nodes)+1)
	nodes = append(nodes, node)
	s.Nodes = append(nodes, s.Nodes...)
	return s
}

// DeleteNode removes a node. Unknown ids are a no-op.
func (s Scene) DeleteNode(nodeID string) Scene {
	i := s.NodeIndex(nodeID)
	if i < 0 {
		return s
	}
	s.Nodes = slices.Delete(slices.Clone(s.Nodes), i, i+1)
	return s
}

// EditNode replaces the addressed node with fn(node).
// Unknown ids return the scene unchanged.
func (s Scene) EditNode(nodeID string, fn func(Node) Node) Scene {
	i := s.NodeIndex(nodeID)
	if i < 0 {
		return s
	}
	nodes := slices.Clone(s.Nodes)
	nodes[i] = fn(nodes[i])
	s.Nodes = nodes
	return s
}

// MapNodes replaces every node with fn(node).
func (s Scene) MapNodes(fn func(Node) Node) Scene {
	nodes := make([]Node, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = fn(n)
	}
	s.Nodes = nodes
	return s
}

// Rename returns the scene with a new display name.
func (s Scene) Rename(name string) Scene {
	s.Name = name
	return s
}

// Equal compares two scenes by content.
func (s Scene) Equal(o Scene) bool {
	return s.ID == o.ID &&
		s.Name == o.Name &&
		slices.EqualFunc(s.Nodes, o.Nodes, Node.Equal)
}
