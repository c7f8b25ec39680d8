package inline

type mode uint8

const (
	modeNone mode = iota
	// Within a verbatim or math element, e.g. "$`xxxxx".
	modeVerbatim
	// Potentially within an attribute list, e.g. "{a=b ".
	modeAttributes
	// Potentially within an autolink or inline link URL, e.g. "<https://".
	modeURL
	// Potentially within a reference link tag, e.g. "[text][tag ".
	modeReferenceLinkTag
)

// state records the single non-recursive element the parser is inside, if
// any. Only the fields of the active mode are meaningful.
type state struct {
	mode mode

	// modeVerbatim
	container   Container
	openerLen   int
	openerEvent int

	// modeAttributes
	comment bool

	// modeURL
	auto bool
}

func verbatimState(c Container, openerLen, openerEvent int) state {
	return state{mode: modeVerbatim, container: c, openerLen: openerLen, openerEvent: openerEvent}
}

func (s state) verbatim() (c Container, openerLen, openerEvent int, ok bool) {
	if s.mode != modeVerbatim {
		return 0, 0, 0, false
	}
	return s.container, s.openerLen, s.openerEvent, true
}

func (s state) active() bool { return s.mode != modeNone }

type opener struct {
	container Container
	event     int
}
