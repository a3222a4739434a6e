package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// StageTiming is the wall time of one pipeline stage
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	// Virtual lights
	Lights         int // Total lights clustered
	DirectLights   int // Lights converted directly from sources
	IndirectLights int // Lights deposited by random walks
	Walks          int // Light paths traced

	// Camera samples
	Rays         int // Camera samples traced
	GatherPoints int // Samples that reached a smooth surface
	Background   int // Samples that left the scene
	Lost         int // Samples absorbed by specular chains
	Exhausted    int // Samples that ran out of specular depth

	// Grouping and clustering
	Groups          int // Gather groups
	LightGroups     int // Light subsets clustered independently
	MatrixNonZero   int // Reduced matrix cells with a contribution
	Representatives int // Scaled lights over all groups
	MaxCutSize      int // Largest cut of any group
	Seeds           int // Unique initial seeds over all clustering calls
	Splits          int // Accepted cluster splits
	Rejected        int // Splits discarded for increasing the cost
	EarlyStops      int // Clustering calls ended on the error threshold

	// Final pass
	Shaded      int // Surface samples shaded
	Evaluations int // Light evaluations of the final pass

	Stages     []StageTiming
	RenderTime time.Duration
}

// AverageCutSize returns the mean number of representative lights per group
func (s RenderStats) AverageCutSize() float64 {
	if s.Groups == 0 {
		return 0
	}
	return float64(s.Representatives) / float64(s.Groups)
}

// Table formats the statistics for display
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Statistic", "Value"})

	table.Append([]string{"Lights", "Total", fmt.Sprintf("%d", s.Lights)})
	table.Append([]string{"", "Direct", fmt.Sprintf("%d", s.DirectLights)})
	table.Append([]string{"", "Indirect", fmt.Sprintf("%d (%d walks)", s.IndirectLights, s.Walks)})
	table.Append([]string{"Shoot", "Camera samples", fmt.Sprintf("%d", s.Rays)})
	table.Append([]string{"", "Gather points", fmt.Sprintf("%d", s.GatherPoints)})
	table.Append([]string{"", "Background", fmt.Sprintf("%d", s.Background)})
	table.Append([]string{"", "Lost / exhausted", fmt.Sprintf("%d / %d", s.Lost, s.Exhausted)})
	table.Append([]string{"Cluster", "Gather groups", fmt.Sprintf("%d", s.Groups)})
	table.Append([]string{"", "Light groups", fmt.Sprintf("%d", s.LightGroups)})
	table.Append([]string{"", "Matrix non-zero", fmt.Sprintf("%d", s.MatrixNonZero)})
	table.Append([]string{"", "Cut size", fmt.Sprintf("%.1f avg, %d max", s.AverageCutSize(), s.MaxCutSize)})
	table.Append([]string{"", "Seeds / splits", fmt.Sprintf("%d / %d", s.Seeds, s.Splits)})
	table.Append([]string{"", "Rejected / early stops", fmt.Sprintf("%d / %d", s.Rejected, s.EarlyStops)})
	table.Append([]string{"Final", "Shaded samples", fmt.Sprintf("%d", s.Shaded)})
	table.Append([]string{"", "Light evaluations", fmt.Sprintf("%d", s.Evaluations)})
	for _, stage := range s.Stages {
		table.Append([]string{"Time", stage.Name, stage.Duration.String()})
	}
	table.SetFooter([]string{"", "Total", s.RenderTime.String()})

	table.Render()
	return buf.String()
}
