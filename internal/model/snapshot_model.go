package model

import (
	"encoding/xml"
	"time"
)

// TreeStats holds aggregate figures over a flat snapshot.
type TreeStats struct {
	TotalNodes int     `json:"totalNodes" xml:"total_nodes,attr"`
	MaxDepth   int     `json:"maxDepth" xml:"max_depth,attr"`
	RootNodes  int     `json:"rootNodes" xml:"root_nodes,attr"`
	LeafNodes  int     `json:"leafNodes" xml:"leaf_nodes,attr"`
	AvgDepth   float64 `json:"avgDepth" xml:"avg_depth,attr"`
}

// ValidationResult is the outcome of an interval well-formedness check.
// Errors is empty iff Valid is true.
type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// SnapshotInfo contains basic information about a stored snapshot version.
type SnapshotInfo struct {
	ID        int64
	Name      string
	Checksum  string
	NodeCount int
	Created   time.Time
}

// Envelope is the file representation of an exported snapshot.
type Envelope struct {
	XMLName      xml.Name   `json:"-" xml:"mptt"`
	Format       string     `json:"format" xml:"format,attr"`
	Version      string     `json:"version" xml:"version,attr"`
	Timestamp    time.Time  `json:"timestamp" xml:"timestamp,attr"`
	Stats        TreeStats  `json:"stats" xml:"stats"`
	Checksum     string     `json:"checksum,omitempty" xml:"checksum,omitempty"`
	Nodes        []FlatNode `json:"nodes" xml:"nodes>node"`
	Hierarchical []Node     `json:"hierarchical,omitempty" xml:"hierarchical>node,omitempty"`
}
