package model

import (
	"github.com/alexiusacademia/goglass/internal/connect"
	"github.com/plan-systems/klog"
)

// ConnectReport describes the lines created by ConnectNodes
type ConnectReport struct {
	Lines  []Line
	Result *connect.Result

	// Joined lists the candidate pairs a line already joined before the run
	Joined []connect.Edge
}

// ConnectNodes joins the listed nodes (every node when list is empty) with
// straight lines between nearest neighbours, at most maxDegree lines per
// node. The two nodes furthest apart are never joined and lines already in
// the model are not duplicated.
func (m *Model) ConnectNodes(list []int, maxDegree int) (*ConnectReport, error) {
	points := m.Points(list)

	result, err := connect.Connect(points, connect.Options{
		Existing:  m.Edges(),
		MaxDegree: maxDegree,
	})
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("furthest nodes %d and %d (%.3fm) will not be connected",
		result.Furthest.A, result.Furthest.B, result.Furthest.Distance)

	report := &ConnectReport{Result: result}
	for _, p := range result.Candidates {
		if m.LineExists(p.A, p.B) {
			report.Joined = append(report.Joined, p.Edge())
		}
	}
	for _, e := range result.Edges {
		l, err := m.AddLine(0, e.A, e.B)
		if err != nil {
			return nil, err
		}
		klog.V(2).Infof("created line %d between nodes %d and %d", l.No, e.A, e.B)
		report.Lines = append(report.Lines, l)
	}
	return report, nil
}
