package layout

import (
	"fmt"
	"strings"
)

// BuildTemplate renders the group as a grid track list, one token per item.
//
//   - handles and pixel panels are literal lengths ("10px")
//   - committed panels become minmax(<min>, min(calc(<f> * (100% - <static>px)), <max>))
//   - collapsed panels are their collapsed size
//   - panels that were never laid out fall back to their default, or
//     minmax(<min>, <max>) with "1fr" for an unbounded max
func BuildTemplate(c Context) string {
	static := StaticWidth(c)
	tokens := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		switch v := it.(type) {
		case Handle:
			tokens = append(tokens, v.Size.String())
		case Panel:
			tokens = append(tokens, panelTrack(v, static))
		}
	}
	return strings.Join(tokens, " ")
}

func panelTrack(p Panel, static float64) string {
	lo := p.Min
	if !lo.IsSet() {
		lo = Px(0)
	}
	switch p.CurrentValue.Kind {
	case Pixels:
		return p.CurrentValue.String()
	case Percent:
		hi := "100%"
		if p.Max.Kind != Fill && p.Max.IsSet() {
			hi = p.Max.String()
		}
		return fmt.Sprintf("minmax(%s, min(calc(%s * (100%% - %spx)), %s))",
			lo, formatNumber(p.CurrentValue.Value), formatNumber(static), hi)
	}

	switch {
	case p.IsCollapsed():
		return p.CollapsedSize.String()
	case p.Default.IsSet():
		return p.Default.String()
	}
	hi := FillUnit
	if p.Max.IsSet() {
		hi = p.Max
	}
	return fmt.Sprintf("minmax(%s, %s)", lo, hi)
}
