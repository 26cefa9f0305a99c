// Package model holds the CVRP data model: nodes, the problem instance and
// its distance matrix, routes, and solutions.
package model

// Node is a depot or customer location. Nodes are immutable once built.
type Node struct {
	ID      int
	X, Y    float64
	Demand  float64
	IsDepot bool
}

// NewNode constructs a Node. The depot is the single node with Demand == 0
// and IsDepot == true; callers are responsible for that invariant.
func NewNode(id int, x, y, demand float64, isDepot bool) Node {
	return Node{ID: id, X: x, Y: y, Demand: demand, IsDepot: isDepot}
}
