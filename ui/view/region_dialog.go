package view

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soocke/roi-ocr-go/domain/region"
	"github.com/soocke/roi-ocr-go/ui/images"
	"github.com/soocke/roi-ocr-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

const outlineThickness = 2

// RegionDialog is a modal window that shows a scaled preview. The user drags
// the region with the left mouse button or types it in preview pixels; the
// outline follows every drag motion and keystroke.
type RegionDialog struct {
	logger *slog.Logger
}

// NewRegionDialog returns a dialog usable as a region.Drawer.
func NewRegionDialog(logger *slog.Logger) *RegionDialog {
	return &RegionDialog{logger: logger}
}

// regionForm holds the widgets of one open dialog.
type regionForm struct {
	win    *ToplevelWidget
	canvas *LabelWidget
	hint   *LabelWidget
	fields [4]*TextWidget // x, y, w, h
	photo  *Img
	base   image.Image
	bounds image.Rectangle // preview bounds rebased to the origin
	drag   dragState

	result    image.Rectangle
	confirmed bool
}

// Draw blocks until the user confirms or cancels. title is the image path.
// The returned rectangle is in preview coordinates.
func (d *RegionDialog) Draw(preview image.Image, title string) (image.Rectangle, bool) {
	if preview == nil {
		return image.Rectangle{}, false
	}
	b := preview.Bounds()
	f := &regionForm{base: preview, bounds: image.Rect(0, 0, b.Dx(), b.Dy())}
	initial := image.Rect(b.Dx()/4, b.Dy()/4, b.Dx()*3/4, b.Dy()*3/4)

	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Select region: " + filepath.Base(title))
	f.win = win
	WmAttributes(win.Window, "-topmost", 1)
	GridColumnConfigure(win.Window, 0, Weight(1))

	f.photo = NewPhoto(Data(f.render(initial)))
	// No border or padding: event coordinates are image coordinates.
	f.canvas = win.Label(Image(f.photo), Borderwidth(0), Padx(0), Pady(0), Cursor("crosshair"))
	Grid(f.canvas, Row(0), Column(0), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	Bind(f.canvas.Window, "<ButtonPress-1>", Command(func(e *Event) {
		f.drag.start(image.Pt(e.X, e.Y), f.bounds)
	}))
	Bind(f.canvas.Window, "<B1-Motion>", Command(func(e *Event) {
		if r, ok := f.drag.move(image.Pt(e.X, e.Y), f.bounds); ok {
			f.setFields(r)
			f.show(r)
		}
	}))
	Bind(f.canvas.Window, "<ButtonRelease-1>", Command(func(e *Event) {
		if r, ok := f.drag.finish(image.Pt(e.X, e.Y), f.bounds); ok {
			f.setFields(r)
			f.show(r)
		}
	}))

	form := win.Frame()
	Grid(form, Row(1), Column(0), Sticky("we"), Padx("0.4m"))
	vals := [4]int{initial.Min.X, initial.Min.Y, initial.Dx(), initial.Dy()}
	for i, name := range [4]string{"X", "Y", "W", "H"} {
		lbl := win.Label(Txt(name))
		Grid(lbl, In(form), Row(0), Column(2*i), Sticky("e"), Padx("0.2m"))
		w := win.Text(Height(1), Width(7))
		Grid(w, In(form), Row(0), Column(2*i+1), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
		w.Insert("1.0", strconv.Itoa(vals[i]))
		Bind(w, "<KeyRelease>", Command(f.redraw))
		f.fields[i] = w
	}
	f.hint = win.Label(Txt(f.describe(initial)), Anchor("w"))
	Grid(f.hint, Row(2), Column(0), Sticky("we"), Padx("0.4m"))

	controls := win.Frame()
	Grid(controls, Row(3), Column(0), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(f.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	full := win.Button(Txt("Whole image"), Command(f.selectAll))
	Grid(full, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(f.cancel))
	Grid(cancel, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	Bind(win, "<Return>", Command(f.confirm))
	Bind(win, "<Escape>", Command(f.cancel))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", f.cancel)

	win.Wait()
	if f.photo != nil {
		f.photo.Delete()
	}
	if d.logger != nil {
		d.logger.Debug("region dialog closed", "confirmed", f.confirmed, "rect", f.result)
	}
	return f.result, f.confirmed
}

func (f *regionForm) render(r image.Rectangle) []byte {
	b := f.base.Bounds()
	// OutlineRect works in source coordinates.
	return images.EncodePNG(images.OutlineRect(f.base, r.Add(b.Min), theme.OutlineColor(), outlineThickness))
}

func (f *regionForm) describe(r image.Rectangle) string {
	return fmt.Sprintf("Preview %dx%d, region %s", f.bounds.Dx(), f.bounds.Dy(), region.FromRect(r))
}

// read parses the four fields and clamps the result to the preview.
func (f *regionForm) read() (image.Rectangle, bool) {
	var s [4]string
	for i, w := range f.fields {
		s[i] = strings.Join(w.Get("1.0", END), "")
	}
	roi, err := region.ParseROI(s[0], s[1], s[2], s[3])
	if err != nil {
		return image.Rectangle{}, false
	}
	r := roi.Rect().Intersect(f.bounds)
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

func (f *regionForm) redraw() {
	r, ok := f.read()
	if !ok {
		f.hint.Configure(Txt("Drag on the image, or enter whole numbers with positive width and height inside the preview."))
		return
	}
	f.show(r)
}

// show renders r onto the preview and updates the hint.
func (f *regionForm) show(r image.Rectangle) {
	old := f.photo
	f.photo = NewPhoto(Data(f.render(r)))
	f.canvas.Configure(Image(f.photo))
	if old != nil {
		old.Delete()
	}
	f.hint.Configure(Txt(f.describe(r)))
}

// setFields writes r into the number fields.
func (f *regionForm) setFields(r image.Rectangle) {
	vals := [4]int{r.Min.X, r.Min.Y, r.Dx(), r.Dy()}
	for i, w := range f.fields {
		w.Delete("1.0", END)
		w.Insert("1.0", strconv.Itoa(vals[i]))
	}
}

func (f *regionForm) selectAll() {
	f.setFields(f.bounds)
	f.redraw()
}

// dragState tracks a left-button drag over the preview.
type dragState struct {
	anchor image.Point
	active bool
}

// start begins a drag at p. Presses outside bounds are ignored.
func (d *dragState) start(p image.Point, bounds image.Rectangle) {
	d.active = p.In(bounds)
	if d.active {
		d.anchor = p
	}
}

// move returns the rectangle from the anchor to p. ok is false when no drag
// is active or the rectangle has no area.
func (d *dragState) move(p image.Point, bounds image.Rectangle) (image.Rectangle, bool) {
	if !d.active {
		return image.Rectangle{}, false
	}
	r := region.DragRect(d.anchor, p, bounds)
	return r, !r.Empty()
}

// finish is move followed by ending the drag.
func (d *dragState) finish(p image.Point, bounds image.Rectangle) (image.Rectangle, bool) {
	r, ok := d.move(p, bounds)
	d.active = false
	return r, ok
}

func (f *regionForm) confirm() {
	r, ok := f.read()
	if !ok {
		f.redraw()
		return
	}
	f.result, f.confirmed = r, true
	Destroy(f.win)
}

func (f *regionForm) cancel() { Destroy(f.win) }
