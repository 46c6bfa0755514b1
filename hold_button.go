package main

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// holdTickInterval is how often the fill animation advances while held
const holdTickInterval = 50 * time.Millisecond

// HoldButton must be pressed continuously for its hold duration before
// it fires, so an alarm cannot be dismissed by a stray click. Releasing
// or leaving the button resets the progress.
type HoldButton struct {
	widget.BaseWidget
	Text       string
	OnComplete func()

	holdTime time.Duration

	mu       sync.Mutex
	holding  bool
	hovered  bool
	progress float64
	stop     chan struct{}
}

func NewHoldButton(text string, holdTime time.Duration, onComplete func()) *HoldButton {
	b := &HoldButton{
		Text:       text,
		OnComplete: onComplete,
		holdTime:   holdTime,
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.ForegroundColor())
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.ButtonColor())
	progressBar := canvas.NewRectangle(theme.PrimaryColor())

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

func (b *HoldButton) Tapped(*fyne.PointEvent) {
	// Tapped fires on release; hold behavior lives in MouseDown/MouseUp
}

func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {
}

func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.mu.Lock()
	b.hovered = true
	b.mu.Unlock()
	b.Refresh()
}

func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {
}

func (b *HoldButton) MouseOut() {
	b.mu.Lock()
	b.hovered = false
	b.mu.Unlock()
	// Leaving the button cancels the hold
	b.cancelHold()
	b.Refresh()
}

func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.startHold()
}

func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.cancelHold()
}

func (b *HoldButton) startHold() {
	b.mu.Lock()
	if b.holding {
		b.mu.Unlock()
		return
	}
	b.holding = true
	b.progress = 0

	increment := float64(holdTickInterval) / float64(b.holdTime)
	stop := make(chan struct{})
	b.stop = stop
	b.mu.Unlock()

	go func() {
		ticker := time.NewTicker(holdTickInterval)
		defer ticker.Stop()

		for {
			// Ticker.Stop does not close the channel; the stop
			// signal is what ends a canceled hold
			select {
			case <-stop:
				return
			case <-ticker.C:
			}

			b.mu.Lock()
			if !b.holding {
				b.mu.Unlock()
				return
			}
			b.progress += increment
			done := b.progress >= 1
			b.mu.Unlock()

			fyne.Do(b.Refresh)

			if done {
				if b.OnComplete != nil {
					fyne.Do(b.OnComplete)
				}
				return
			}
		}
	}()
}

func (b *HoldButton) cancelHold() {
	b.mu.Lock()
	b.holding = false
	b.progress = 0
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	b.mu.Unlock()
	b.Refresh()
}

func (b *HoldButton) snapshot() (hovered bool, progress float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hovered, b.progress
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress bar fills from left to right
	_, progress := r.button.snapshot()
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(progress), size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	if minWidth < 260 {
		minWidth = 260
	}
	if minHeight < 72 {
		minHeight = 72
	}

	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	hovered, progress := r.button.snapshot()

	r.text.Text = r.button.Text
	r.text.Color = theme.ForegroundColor()

	if hovered {
		r.bg.FillColor = theme.HoverColor()
	} else {
		r.bg.FillColor = theme.ButtonColor()
	}

	size := r.bg.Size()
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(progress), size.Height))

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {
}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.ButtonColor()
}
