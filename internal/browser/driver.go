// internal/browser/driver.go
package browser

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/driftcursor/driftcursor/internal/cursor"
)

// Compile-time check that Driver satisfies the cursor contract.
var _ cursor.Driver = (*Driver)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// elementHandle is the driver's concrete cursor.TargetHandle. Geometry is
// re-read by selector so a handle survives DOM reflows as long as the
// selector still matches.
type elementHandle struct {
	selector string
	nodeID   cdp.NodeID
}

// Driver implements cursor.Driver on top of a chromedp tab context.
// Pointer-event dispatch is throttled by a rate limiter so a synthesized
// trajectory cannot flood the transport faster than a real input device
// would.
type Driver struct {
	tab     context.Context
	logger  *zap.Logger
	limiter *rate.Limiter
	rng     *rand.Rand
}

// NewDriver wraps an active chromedp tab context. eventsPerSecond caps
// pointer-move dispatch; zero or negative disables throttling.
func NewDriver(tab context.Context, logger *zap.Logger, eventsPerSecond float64) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if eventsPerSecond > 0 {
		limit = rate.Limit(eventsPerSecond)
	}
	return &Driver{
		tab:     tab,
		logger:  logger.Named("browser"),
		limiter: rate.NewLimiter(limit, 1),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ResolveTarget waits for the selector to become visible (bounded by wait)
// and returns a handle to the first matching node.
func (d *Driver) ResolveTarget(ctx context.Context, selector string, wait time.Duration) (cursor.TargetHandle, error) {
	resolveCtx := ctx
	if wait > 0 {
		var cancel context.CancelFunc
		resolveCtx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	var nodes []*cdp.Node
	err := chromedp.Run(resolveCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery),
	)
	if err != nil && len(nodes) == 0 {
		return nil, fmt.Errorf("browser: no visible node for %q: %w", selector, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("browser: selector %q matched no nodes", selector)
	}
	return &elementHandle{selector: selector, nodeID: nodes[0].NodeID}, nil
}

// BoundingRect returns the element's border box in viewport coordinates via
// getBoundingClientRect, which stays correct across scrolls and reflows.
func (d *Driver) BoundingRect(ctx context.Context, h cursor.TargetHandle) (*cursor.Rect, error) {
	eh, err := toHandle(h)
	if err != nil {
		return nil, err
	}

	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return null;
		const r = el.getBoundingClientRect();
		return { x: r.x, y: r.y, width: r.width, height: r.height };
	})()`, eh.selector)

	var raw []byte
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &raw)); err != nil {
		return nil, fmt.Errorf("browser: bounding rect of %q: %w", eh.selector, err)
	}
	if string(raw) == "null" {
		return nil, nil
	}
	var rect cursor.Rect
	if err := json.Unmarshal(raw, &rect); err != nil {
		return nil, fmt.Errorf("browser: decoding rect of %q: %w", eh.selector, err)
	}
	return &rect, nil
}

// IntersectsViewport reports whether any part of the element overlaps the
// visible viewport.
func (d *Driver) IntersectsViewport(ctx context.Context, h cursor.TargetHandle) (bool, error) {
	eh, err := toHandle(h)
	if err != nil {
		return false, err
	}

	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		const r = el.getBoundingClientRect();
		return r.bottom > 0 && r.right > 0 &&
			r.top < window.innerHeight && r.left < window.innerWidth;
	})()`, eh.selector)

	var intersects bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &intersects)); err != nil {
		return false, fmt.Errorf("browser: viewport test of %q: %w", eh.selector, err)
	}
	return intersects, nil
}

// DispatchMouseMove sends one pointer position, carrying the synthesized
// event time when present.
func (d *Driver) DispatchMouseMove(ctx context.Context, p cursor.TimedPoint) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}
	params := input.DispatchMouseEvent(input.MouseMoved, p.X, p.Y)
	if p.Timestamp > 0 {
		ts := input.TimeSinceEpoch(time.UnixMilli(p.Timestamp))
		params = params.WithTimestamp(&ts)
	}
	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return params.Do(ctx)
	}))
}

// DispatchMouseButton sends a press or release at the given position.
func (d *Driver) DispatchMouseButton(ctx context.Context, p cursor.Point, press bool, button cursor.MouseButton, clickCount int) error {
	eventType := input.MouseReleased
	if press {
		eventType = input.MousePressed
	}
	params := input.DispatchMouseEvent(eventType, p.X, p.Y).
		WithButton(input.MouseButton(button)).
		WithClickCount(int64(clickCount))
	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return params.Do(ctx)
	}))
}

// ScrollIntoView delegates to the page-level scroll behavior.
func (d *Driver) ScrollIntoView(ctx context.Context, h cursor.TargetHandle) error {
	eh, err := toHandle(h)
	if err != nil {
		return err
	}
	return chromedp.Run(ctx, chromedp.ScrollIntoView(eh.selector, chromedp.ByQuery))
}

// ScrollTo performs an instant native scroll to absolute document
// coordinates.
func (d *Driver) ScrollTo(ctx context.Context, left, top float64) error {
	js := fmt.Sprintf(`window.scrollTo({ left: %f, top: %f, behavior: "instant" })`, left, top)
	return chromedp.Run(ctx, chromedp.Evaluate(js, nil))
}

// DispatchWheel sends a simulated wheel event at the viewport center.
func (d *Driver) DispatchWheel(ctx context.Context, dx, dy float64) error {
	w, h, err := d.ViewportSize(ctx)
	if err != nil {
		return err
	}
	params := input.DispatchMouseEvent(input.MouseWheel, w/2, h/2).
		WithDeltaX(dx).
		WithDeltaY(dy)
	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return params.Do(ctx)
	}))
}

// ScrollPosition returns the current scroll offsets.
func (d *Driver) ScrollPosition(ctx context.Context) (cursor.Point, error) {
	var raw []byte
	js := `({ x: window.scrollX, y: window.scrollY })`
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &raw)); err != nil {
		return cursor.Point{}, fmt.Errorf("browser: scroll position: %w", err)
	}
	var p cursor.Point
	if err := json.Unmarshal(raw, &p); err != nil {
		return cursor.Point{}, fmt.Errorf("browser: decoding scroll position: %w", err)
	}
	return p, nil
}

// DocumentSize returns the full document dimensions.
func (d *Driver) DocumentSize(ctx context.Context) (float64, float64, error) {
	var size struct {
		W float64 `json:"w"`
		H float64 `json:"h"`
	}
	var raw []byte
	js := `({ w: document.documentElement.scrollWidth, h: document.documentElement.scrollHeight })`
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &raw)); err != nil {
		return 0, 0, fmt.Errorf("browser: document size: %w", err)
	}
	if err := json.Unmarshal(raw, &size); err != nil {
		return 0, 0, fmt.Errorf("browser: decoding document size: %w", err)
	}
	return size.W, size.H, nil
}

// ViewportSize returns the visible viewport dimensions.
func (d *Driver) ViewportSize(ctx context.Context) (float64, float64, error) {
	var size struct {
		W float64 `json:"w"`
		H float64 `json:"h"`
	}
	var raw []byte
	js := `({ w: window.innerWidth, h: window.innerHeight })`
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &raw)); err != nil {
		return 0, 0, fmt.Errorf("browser: viewport size: %w", err)
	}
	if err := json.Unmarshal(raw, &size); err != nil {
		return 0, 0, fmt.Errorf("browser: decoding viewport size: %w", err)
	}
	return size.W, size.H, nil
}

// RandomViewportPoint picks a uniformly random point inside the viewport.
func (d *Driver) RandomViewportPoint(ctx context.Context) (cursor.Point, error) {
	w, h, err := d.ViewportSize(ctx)
	if err != nil {
		return cursor.Point{}, err
	}
	return cursor.Point{X: d.rng.Float64() * w, Y: d.rng.Float64() * h}, nil
}

// Connected reports whether the tab context is still usable.
func (d *Driver) Connected() bool {
	if d.tab.Err() != nil {
		return false
	}
	c := chromedp.FromContext(d.tab)
	return c != nil && c.Browser != nil
}

// Sleep pauses for d, respecting context cancellation.
func (d *Driver) Sleep(ctx context.Context, dur time.Duration) error {
	return chromedp.Run(ctx, chromedp.Sleep(dur))
}

func toHandle(h cursor.TargetHandle) (*elementHandle, error) {
	eh, ok := h.(*elementHandle)
	if !ok {
		return nil, fmt.Errorf("browser: foreign target handle %T", h)
	}
	return eh, nil
}
