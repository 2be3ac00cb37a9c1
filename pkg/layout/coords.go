package layout

import "github.com/matzehuels/gsnview/pkg/geom"

// assignCoordinates stacks the ranks from the top margin down and lays out
// each rank from the left margin, centering nodes vertically in their band.
func (l *Layout) assignCoordinates(opts Options) {
	rights := make([]int, len(l.Ranks))
	top := opts.Margin
	l.Width, l.Height = opts.Margin, opts.Margin

	for rank, row := range l.Ranks {
		if rank > 0 {
			top += opts.VGap
		}
		band := 0
		for _, inst := range row {
			band = max(band, inst.Node.Height())
		}

		left := opts.Margin
		rights[rank] = left
		for _, inst := range row {
			w := inst.Node.Width()
			inst.Center = geom.Point{X: left + w/2, Y: top + band/2}
			rights[rank] = left + w
			left += w + opts.HGap
		}
		l.Width = max(l.Width, rights[rank])
		top += band
		l.Height = top
	}

	if opts.Align != AlignCenter {
		return
	}
	for rank, row := range l.Ranks {
		shift := (l.Width - rights[rank]) / 2
		for _, inst := range row {
			inst.Center.X += shift
		}
	}
}
