package workspace

import "coindeck/internal/market"

// MainLinkGroup is the single shared group token. The source design supports
// exactly one link group per workspace; extending to multiple independent
// groups only requires generating distinct tokens here.
const MainLinkGroup = "main"

// toggleLink flips a panel in or out of the shared link group.
func toggleLink(p *Panel) {
	if p.LinkGroup != nil {
		p.LinkGroup = nil
		return
	}
	g := MainLinkGroup
	p.LinkGroup = &g
}

// groupMembers returns every panel sharing the given panel's link group,
// including itself. An unlinked panel yields nil.
func groupMembers(panels []*Panel, p *Panel) []*Panel {
	if p == nil || p.LinkGroup == nil {
		return nil
	}
	var members []*Panel
	for _, q := range panels {
		if q.LinkGroup != nil && *q.LinkGroup == *p.LinkGroup {
			members = append(members, q)
		}
	}
	return members
}

// propagateInstrument applies the instrument to the origin's whole link
// group in one synchronous pass, or to the origin alone when unlinked.
// All-or-nothing: panels outside the group are never touched.
func propagateInstrument(panels []*Panel, origin *Panel, in market.Instrument) {
	if origin == nil {
		return
	}
	if origin.LinkGroup == nil {
		origin.Instrument = in
		return
	}
	for _, q := range groupMembers(panels, origin) {
		q.Instrument = in
	}
}
