package chart

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"sync"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// BrowserDisplay opens each chart in a visible Chrome window and blocks
// until the window is closed
type BrowserDisplay struct {
	Width  int
	Height int
}

// Display implements Displayer. The image is inlined as a data URL so
// nothing is written to disk.
func (d BrowserDisplay) Display(ctx context.Context, name string, png []byte) error {
	width, height := d.Width, d.Height
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(width, height),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// Closing the tab detaches the target; quitting the browser drops the connection
	closed := make(chan struct{})
	var once sync.Once
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if _, ok := ev.(*inspector.EventDetached); ok {
			once.Do(func() { close(closed) })
		}
	})

	if err := chromedp.Run(browserCtx,
		inspector.Enable(),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, chartPage(name, png)).Do(ctx)
		}),
	); err != nil {
		return fmt.Errorf("opening chart window: %w", err)
	}

	fmt.Printf("Showing %s (close the window to continue)\n", name)

	select {
	case <-closed:
	case <-chromedp.FromContext(browserCtx).Browser.LostConnection:
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

// chartPage wraps an encoded PNG in a minimal HTML document
func chartPage(name string, png []byte) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head><title>%s</title></head>`+
		`<body style="margin:0;background:#fff"><img alt="%s" src="data:image/png;base64,%s"></body></html>`,
		html.EscapeString(name), html.EscapeString(name), base64.StdEncoding.EncodeToString(png))
}
