package model

import "math"

// Problem is a CVRP instance: the node list, the depot's position within
// it, vehicle capacity, an optional max-vehicles hint, and the fully
// materialized symmetric distance matrix. Problem is immutable after
// construction — the matrix is computed once in NewProblem so that
// GetDistance is an O(1) lookup on the hot path of Split and local search.
type Problem struct {
	Name            string
	Nodes           []Node
	DepotIndex      int
	VehicleCapacity float64
	MaxVehicles     int // 0 means unset
	distanceMatrix  [][]float64
}

// NewProblem builds a Problem and precomputes its distance matrix.
// maxVehicles of 0 means "no hint given".
func NewProblem(name string, nodes []Node, depotIndex int, vehicleCapacity float64, maxVehicles int) *Problem {
	p := &Problem{
		Name:            name,
		Nodes:           nodes,
		DepotIndex:      depotIndex,
		VehicleCapacity: vehicleCapacity,
		MaxVehicles:     maxVehicles,
	}
	p.distanceMatrix = computeDistanceMatrix(nodes)
	return p
}

func computeDistanceMatrix(nodes []Node) [][]float64 {
	n := len(nodes)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := euclidean(nodes[i], nodes[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}
	return matrix
}

func euclidean(a, b Node) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// GetDistance returns the precomputed Euclidean distance between node
// indices from and to. D[i][i] == 0 and D[i][j] == D[j][i] by construction.
func (p *Problem) GetDistance(from, to int) float64 {
	return p.distanceMatrix[from][to]
}

// CustomerCount returns the number of non-depot nodes.
func (p *Problem) CustomerCount() int {
	return len(p.Nodes) - 1
}

// Depot returns the depot node.
func (p *Problem) Depot() Node {
	return p.Nodes[p.DepotIndex]
}

// Customers returns the ids of all non-depot nodes, in node-list order.
func (p *Problem) Customers() []int {
	customers := make([]int, 0, p.CustomerCount())
	for i, n := range p.Nodes {
		if !n.IsDepot {
			customers = append(customers, i)
		}
	}
	return customers
}

// Center returns the centroid of all customer coordinates, or (0, 0) if
// there are none.
func (p *Problem) Center() (float64, float64) {
	var sumX, sumY float64
	var count int
	for _, n := range p.Nodes {
		if !n.IsDepot {
			sumX += n.X
			sumY += n.Y
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return sumX / float64(count), sumY / float64(count)
}
