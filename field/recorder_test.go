package field

// drawCall is one recorded Context operation
type drawCall struct {
	op             string // "clear", "line", "circle"
	x0, y0, x1, y1 float64
	width, radius  float64
	paint          Paint
}

// recorder is a Context that remembers every call
type recorder struct {
	calls []drawCall
}

func (r *recorder) ClearRect(x, y, w, h float64) {
	r.calls = append(r.calls, drawCall{op: "clear", x0: x, y0: y, x1: x + w, y1: y + h})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, p Paint) {
	r.calls = append(r.calls, drawCall{op: "line", x0: x0, y0: y0, x1: x1, y1: y1, width: width, paint: p})
}

func (r *recorder) FillCircle(cx, cy, radius float64, p Paint) {
	r.calls = append(r.calls, drawCall{op: "circle", x0: cx, y0: cy, radius: radius, paint: p})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (r *recorder) reset() { r.calls = nil }

// fakeSurface is a Surface with a settable size
type fakeSurface struct {
	w, h   float64
	dpr    float64
	pw, ph int
	ctx    *recorder
	noCtx  bool
}

func newFakeSurface(w, h, dpr float64) *fakeSurface {
	return &fakeSurface{w: w, h: h, dpr: dpr, ctx: &recorder{}}
}

func (s *fakeSurface) Bounds() (float64, float64) { return s.w, s.h }
func (s *fakeSurface) DevicePixelRatio() float64 { return s.dpr }
func (s *fakeSurface) SetBackingSize(pw, ph int) { s.pw, s.ph = pw, ph }
func (s *fakeSurface) Context() Context {
	if s.noCtx {
		return nil
	}
	return s.ctx
}
