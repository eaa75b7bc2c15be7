package physics

// Snapshot is an immutable copy of the arena state for collaborators that
// must not touch live points (renderers, network streaming).
type Snapshot struct {
	Frame    uint64         `json:"frame"`
	Time     float64        `json:"time"`
	Checksum uint64         `json:"checksum"`
	Bodies   []BodySnapshot `json:"bodies"`
}

type BodySnapshot struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Center   Vec2    `json:"center"`
	Points   []Vec2  `json:"points"`
	Strain   float64 `json:"strain"`
	Softened bool    `json:"softened"`
}

// Snapshot copies every point position. Strain is the summed magnitude of
// the force accumulators, which holds the gathered spring forces when the
// arena reports forces.
func (a *Arena) Snapshot() Snapshot {
	s := Snapshot{
		Frame:    a.frame,
		Time:     a.time,
		Checksum: a.Checksum(),
		Bodies:   make([]BodySnapshot, 0, len(a.bodies)),
	}
	for _, b := range a.bodies {
		bs := BodySnapshot{
			ID:       b.ID.String(),
			Name:     b.Name,
			Center:   b.Center(),
			Points:   make([]Vec2, 0, b.sys.Len()),
			Softened: b.Softened(),
		}
		for _, p := range b.sys.points {
			bs.Points = append(bs.Points, p.pos)
			if a.cfg.ReportForces {
				bs.Strain += p.force.Length()
			}
		}
		s.Bodies = append(s.Bodies, bs)
	}
	return s
}
