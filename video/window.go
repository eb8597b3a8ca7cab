package video

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Keys stopping the run while the preview is focused.
const (
	KeyQuit   = 'q'
	KeyEscape = 27
)

// Window shows the annotated frames on screen. Pressing q or ESC
// calls the cancel function, so the run terminates after the current frame.
type Window struct {
	win    *gocv.Window
	cancel context.CancelCauseFunc
}

// ErrQuit is the cancellation cause recorded when the user quits from the preview.
var ErrQuit = errors.New("quit from the preview window")

// NewWindow opens a preview window.
func NewWindow(title string, cancel context.CancelCauseFunc) *Window {
	return &Window{
		win:    gocv.NewWindow(title),
		cancel: cancel,
	}
}

// Write displays the frame and polls the keyboard for a millisecond.
func (w *Window) Write(frame *image.NRGBA) error {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("could not convert the frame: %w", err)
	}
	defer mat.Close()

	w.win.IMShow(mat)
	if key := w.win.WaitKey(1); key == KeyQuit || key == KeyEscape {
		if w.cancel != nil {
			w.cancel(ErrQuit)
		}
	}
	return nil
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
