package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"lantern/pkg/browser"
	"lantern/pkg/config"
	"lantern/pkg/css"
	"lantern/pkg/observability"
	"lantern/pkg/render"
	"lantern/pkg/resource"
	"lantern/pkg/text"
)

// viewer serialises access to the browser between the loader goroutine and
// key handlers on the UI goroutine.
type viewer struct {
	mu      sync.Mutex
	browser *browser.Browser
	canvas  *render.Canvas
	image   *canvas.Image
	logger  *zap.Logger
}

// redraw paints the page and returns a copy the UI can own.
func (v *viewer) redraw() (image.Image, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.browser.Draw(); err != nil {
		return nil, err
	}
	src := v.canvas.Image()
	snapshot := image.NewRGBA(src.Bounds())
	xdraw.Draw(snapshot, snapshot.Bounds(), src, src.Bounds().Min, xdraw.Src)
	return snapshot, nil
}

func (v *viewer) show(img image.Image) {
	fyne.Do(func() {
		v.image.Image = img
		v.image.Refresh()
	})
}

func (v *viewer) scroll(down bool) {
	v.mu.Lock()
	if down {
		v.browser.ScrollDown()
	} else {
		v.browser.ScrollUp()
	}
	v.mu.Unlock()

	img, err := v.redraw()
	if err != nil {
		v.logger.Error("redraw failed", zap.Error(err))
		return
	}
	v.image.Image = img
	v.image.Refresh()
}

func main() {
	cfgFile := flag.String("config", "", "config file")
	flag.Parse()

	vp, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfigFromViper(vp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.Logger, nil)
	defer func() { _ = logger.Sync() }()

	uaRules, err := css.LoadStylesheet(cfg.Style.UserAgentSheet)
	if err != nil {
		logger.Fatal("loading user agent stylesheet", zap.Error(err))
	}

	width, height := cfg.Viewport.Width, cfg.Viewport.Height
	fonts := text.NewFontCache()
	surface := render.NewCanvas(width, height, fonts)
	fetcher := resource.NewHTTPFetcher(cfg.Network.Timeout, cfg.Network.UserAgent, logger)
	b := browser.New(fetcher, fonts, surface, logger, browser.Options{
		Width:          float64(width),
		Height:         float64(height),
		ScrollStep:     cfg.Scroll.Step,
		UserAgentRules: uaRules,
	})

	a := app.New()
	w := a.NewWindow("lantern")
	w.Resize(fyne.NewSize(float32(width), float32(height+80)))

	pageImage := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	pageImage.FillMode = canvas.ImageFillOriginal

	v := &viewer{browser: b, canvas: surface, image: pageImage, logger: logger}

	status := widget.NewLabel("Enter a URL and press Enter")

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com")
	urlEntry.OnSubmitted = func(raw string) {
		raw = strings.TrimSpace(raw)
		u, err := resource.ParseURL(raw)
		if err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		status.SetText("Loading " + u.String() + "...")
		go func() {
			v.mu.Lock()
			err := b.Load(context.Background(), u)
			v.mu.Unlock()
			if err != nil {
				logger.Warn("load failed", zap.Stringer("url", u), zap.Error(err))
				fyne.Do(func() { status.SetText("Error: " + err.Error()) })
				return
			}
			img, err := v.redraw()
			if err != nil {
				logger.Error("redraw failed", zap.Error(err))
				return
			}
			v.show(img)
			fyne.Do(func() {
				status.SetText(u.String())
				w.SetTitle("lantern - " + u.String())
				// Hand arrow keys to the page.
				w.Canvas().Unfocus()
			})
		}()
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDown:
			v.scroll(true)
		case fyne.KeyUp:
			v.scroll(false)
		}
	})

	topBar := container.NewBorder(nil, nil, nil, nil, urlEntry)
	content := container.NewBorder(topBar, status, nil, nil, pageImage)
	w.SetContent(content)
	w.Canvas().Focus(urlEntry)

	if flag.NArg() > 0 {
		urlEntry.SetText(flag.Arg(0))
		urlEntry.OnSubmitted(flag.Arg(0))
	}

	w.ShowAndRun()
}
