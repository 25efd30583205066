// Package layout owns the on-disk locations of everything a survey run
// produces. All paths hang off a data root and a plots root so runs are
// relocatable.
package layout

import (
	"fmt"
	"path/filepath"
)

// Paths resolves output locations for processed data and rendered plots.
type Paths struct {
	DataRoot  string
	PlotsRoot string
}

// New constructs a Paths value for the specified roots.
func New(dataRoot string, plotsRoot string) Paths {
	return Paths{
		DataRoot:  dataRoot,
		PlotsRoot: plotsRoot,
	}
}

// Distribution returns the CSV location for a network's distribution of the
// specified kind (geographic, client, hosting).
func (p Paths) Distribution(network string, kind string) string {
	return filepath.Join(p.DataRoot, "processed", "blockchains", network, kind+"_distribution.csv")
}

// Plot returns the image location for a network's distribution chart.
func (p Paths) Plot(network string, kind string) string {
	return filepath.Join(p.PlotsRoot, "blockchains", network, kind+"_distribution.png")
}

// RawSnapshot returns the archive location for a network's raw snapshot.
func (p Paths) RawSnapshot(network string) string {
	return filepath.Join(p.DataRoot, "raw", network, "snapshot.json")
}

// RawFile returns the location of a manually collected input file for
// networks without a queryable directory.
func (p Paths) RawFile(network string, name string) string {
	return filepath.Join(p.DataRoot, "raw", network, name)
}

// NodeCounts returns the location for a timestamped total-node-count report.
func (p Paths) NodeCounts(timestamp string) string {
	return filepath.Join(p.DataRoot, "processed", "node_counts", fmt.Sprintf("node_counts_%s.json", timestamp))
}

// NodeCountsDir returns the directory holding total-node-count reports.
func (p Paths) NodeCountsDir() string {
	return filepath.Join(p.DataRoot, "processed", "node_counts")
}

// NodeCountsPlot returns the image location for the total-node-count chart.
func (p Paths) NodeCountsPlot(timestamp string) string {
	return filepath.Join(p.PlotsRoot, "node_counts", fmt.Sprintf("node_counts_%s.png", timestamp))
}

// TransparencyMatrix returns the CSV location for the transparency score
// matrix.
func (p Paths) TransparencyMatrix() string {
	return filepath.Join(p.DataRoot, "processed", "common", "transparency_matrix.csv")
}

// TransparencyPlot returns the image location for the transparency ranking
// chart.
func (p Paths) TransparencyPlot() string {
	return filepath.Join(p.PlotsRoot, "common", "transparency_ranking.png")
}

// GeoBarPlot returns the image location for a network's geographic bar chart.
func (p Paths) GeoBarPlot(network string) string {
	return filepath.Join(p.PlotsRoot, "geographic_distribution", network+"_geographic_distribution.png")
}
