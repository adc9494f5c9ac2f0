// Package model defines the data structures used throughout the nestquiz application.
package model

// NodeType is the variant of a quiz node.
type NodeType string

const (
	NodeSection        NodeType = "section"
	NodeMultipleChoice NodeType = "multiple-choice"
	NodeSingleChoice   NodeType = "single-choice"
	NodeOpenAnswer     NodeType = "open-answer"
)

// NodeTypes lists every accepted node type in display order.
var NodeTypes = []NodeType{NodeSection, NodeMultipleChoice, NodeSingleChoice, NodeOpenAnswer}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	for _, known := range NodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether nodes of this type carry answer options.
func (t NodeType) HasOptions() bool {
	return t == NodeMultipleChoice || t == NodeSingleChoice
}

// Option is a single answer of a choice question.
type Option struct {
	ID      string `json:"id" xml:"id,attr" validate:"required"`
	Text    string `json:"text" xml:"text"`
	Correct bool   `json:"correct" xml:"correct,attr"`
}

// NodeData holds the fields shared by the hierarchical and the flat form of a node.
type NodeData struct {
	ID          string   `json:"id" xml:"id,attr" validate:"required"`
	Title       string   `json:"title" xml:"title" validate:"required"`
	Type        NodeType `json:"type" xml:"type,attr" validate:"required,oneof=section multiple-choice single-choice open-answer"`
	Description string   `json:"description" xml:"description,omitempty"`
	Image       string   `json:"image" xml:"image,omitempty"`
	Code        string   `json:"code" xml:"code,omitempty"`
	Order       int      `json:"order" xml:"order,attr"`
	Randomize   bool     `json:"randomize" xml:"randomize,attr"`
	Options     []Option `json:"options" xml:"options>option,omitempty" validate:"dive"`
}

// Node is the hierarchical form of a quiz node. A node owns its children exclusively.
type Node struct {
	NodeData
	Children []Node `json:"children,omitempty" xml:"children>node,omitempty" validate:"dive"`
}

// FlatNode is the nested-set form of a node. ParentID is a lookup reference only;
// it is nil for forest roots.
type FlatNode struct {
	NodeData
	Left        int     `json:"left" xml:"left,attr"`
	Right       int     `json:"right" xml:"right,attr"`
	Level       int     `json:"level" xml:"level,attr"`
	ParentID    *string `json:"parent_id" xml:"parent_id,attr,omitempty"`
	HasChildren bool    `json:"has_children" xml:"has_children,attr"`
	ChildCount  int     `json:"children_count" xml:"children_count,attr"`
}

// IsRoot reports whether the node has no parent reference.
func (n FlatNode) IsRoot() bool {
	return n.ParentID == nil
}

// Parent returns the parent identifier, or the empty string for a root.
func (n FlatNode) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// Contains reports whether other's interval lies strictly inside n's interval.
func (n FlatNode) Contains(other FlatNode) bool {
	return n.Left < other.Left && other.Right < n.Right
}
