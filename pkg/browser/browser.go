package browser

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"lantern/pkg/css"
	"lantern/pkg/html"
	"lantern/pkg/layout"
	"lantern/pkg/resource"
	"lantern/pkg/text"
)

// DefaultScrollStep is how far one ScrollDown or ScrollUp moves.
const DefaultScrollStep = 100

// Painter draws a command list at a scroll offset. Commands must be drawn
// in list order.
type Painter interface {
	Paint(scroll float64, cmds []layout.Command) error
}

// Options configures a Browser.
type Options struct {
	Width      float64
	Height     float64
	ScrollStep float64

	// UserAgentRules replace the built-in stylesheet when non-nil.
	UserAgentRules []css.Rule
}

// Browser owns one page at a time: its tree, rules, layout and paint list.
// A Browser is not safe for concurrent use.
type Browser struct {
	fetcher resource.Fetcher
	engine  *layout.Engine
	painter Painter
	logger  *zap.Logger

	height     float64
	scrollStep float64
	uaRules    []css.Rule

	url      resource.URL
	document *html.Node
	rules    []css.Rule
	root     *layout.Box
	commands []layout.Command
	scroll   float64
}

// New creates a Browser. painter may be nil when only layout output is
// needed.
func New(fetcher resource.Fetcher, measurer text.Measurer, painter Painter, logger *zap.Logger, opts Options) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = DefaultScrollStep
	}
	uaRules := opts.UserAgentRules
	if uaRules == nil {
		uaRules = css.DefaultStylesheet()
	}
	return &Browser{
		fetcher:    fetcher,
		engine:     layout.NewEngine(opts.Width, opts.Height, measurer),
		painter:    painter,
		logger:     logger.Named("browser"),
		height:     opts.Height,
		scrollStep: opts.ScrollStep,
		uaRules:    uaRules,
	}
}

// Load fetches u and renders it, replacing the current page.
func (b *Browser) Load(ctx context.Context, u resource.URL) error {
	b.logger.Info("loading page", zap.Stringer("url", u))
	resp, err := b.fetcher.Fetch(ctx, u)
	if err != nil {
		return fmt.Errorf("loading %s: %w", u, err)
	}
	b.LoadHTML(ctx, u, resp.Body)
	return nil
}

// LoadHTML renders body as if it had been fetched from u. Relative
// stylesheet links resolve against u.
func (b *Browser) LoadHTML(ctx context.Context, u resource.URL, body string) {
	document := html.Parse(body)
	rules := css.SortRules(b.collectRules(ctx, u, document))
	css.Cascade(document, rules)

	root := b.engine.Layout(document)
	commands := layout.Paint(root)

	b.url = u
	b.document = document
	b.rules = rules
	b.root = root
	b.commands = commands
	b.scroll = 0

	b.logger.Debug("page laid out",
		zap.Stringer("url", u),
		zap.Int("rules", len(rules)),
		zap.Int("commands", len(commands)),
		zap.Float64("height", root.Height),
	)
}

// Draw paints the visible part of the current page.
func (b *Browser) Draw() error {
	if b.painter == nil {
		return nil
	}
	return b.painter.Paint(b.scroll, b.commands)
}

// ScrollDown moves one step down, stopping where the bottom of the
// document meets the bottom of the window.
func (b *Browser) ScrollDown() {
	if b.root == nil {
		return
	}
	b.scroll = math.Min(b.scroll+b.scrollStep, layout.MaxScroll(b.root, b.height))
}

// ScrollUp moves one step up, stopping at the top.
func (b *Browser) ScrollUp() {
	b.scroll = math.Max(0, b.scroll-b.scrollStep)
}

func (b *Browser) URL() resource.URL          { return b.url }
func (b *Browser) Document() *html.Node       { return b.document }
func (b *Browser) Rules() []css.Rule          { return b.rules }
func (b *Browser) Layout() *layout.Box        { return b.root }
func (b *Browser) Commands() []layout.Command { return b.commands }
func (b *Browser) Scroll() float64            { return b.scroll }
