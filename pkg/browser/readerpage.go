package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/lumenfeed/reader-e2e/pkg/fixtures"
)

// ReaderPage layers reader-specific operations over a rod page. Every method
// targets the app shell's DOM contract (data-testid attributes and the
// data-loaded marker on the article list).
type ReaderPage struct {
	page    *rod.Page
	timeout time.Duration
}

// NewReaderPage wraps an already-navigated page.
func NewReaderPage(page *rod.Page, timeout time.Duration) *ReaderPage {
	return &ReaderPage{page: page, timeout: timeout}
}

// Page exposes the underlying rod page for one-off operations.
func (r *ReaderPage) Page() *rod.Page {
	return r.page
}

// Timeout returns the wait budget used by the page's polling operations.
func (r *ReaderPage) Timeout() time.Duration {
	return r.timeout
}

const pollInterval = 100 * time.Millisecond

// waitFor polls a boolean JS predicate until it holds or the timeout runs
// out. The predicate must be a zero-argument arrow function.
func (r *ReaderPage) waitFor(desc, js string) error {
	deadline := time.Now().Add(r.timeout)
	for time.Now().Before(deadline) {
		result, err := r.page.Eval(js)
		if err == nil && result.Value.Bool() {
			return nil
		}
		time.Sleep(pollInterval)
	}
	return fmt.Errorf("timeout waiting for %s (waited %v)", desc, r.timeout)
}

// WaitForArticleList waits until the article list has rendered from a
// successful fetch.
func (r *ReaderPage) WaitForArticleList() error {
	return r.waitFor("article list to load", `() => {
		const list = document.querySelector('#article-list');
		return list !== null && list.dataset.loaded === 'true';
	}`)
}

// ListLoadState returns the article list's data-loaded marker: "true",
// "false", or "error".
func (r *ReaderPage) ListLoadState() (string, error) {
	result, err := r.page.Eval(`() => {
		const list = document.querySelector('#article-list');
		return list ? list.dataset.loaded : '';
	}`)
	if err != nil {
		return "", fmt.Errorf("read list state: %w", err)
	}
	return result.Value.Str(), nil
}

// ArticleIDs returns the ids of the listed articles in display order.
func (r *ReaderPage) ArticleIDs() ([]string, error) {
	result, err := r.page.Eval(`() =>
		Array.from(document.querySelectorAll('.article-item')).map(el => el.dataset.id)
	`)
	if err != nil {
		return nil, fmt.Errorf("collect article ids: %w", err)
	}
	var ids []string
	for _, v := range result.Value.Arr() {
		ids = append(ids, v.Str())
	}
	return ids, nil
}

// ReadFlags returns each listed article's data-read flag keyed by id.
func (r *ReaderPage) ReadFlags() (map[string]bool, error) {
	result, err := r.page.Eval(`() => {
		const out = {};
		document.querySelectorAll('.article-item').forEach(el => {
			out[el.dataset.id] = el.dataset.read === 'true';
		});
		return out;
	}`)
	if err != nil {
		return nil, fmt.Errorf("collect read flags: %w", err)
	}
	flags := make(map[string]bool)
	for id, v := range result.Value.Map() {
		flags[id] = v.Bool()
	}
	return flags, nil
}

// StarredFlags returns each listed article's data-starred flag keyed by id.
func (r *ReaderPage) StarredFlags() (map[string]bool, error) {
	result, err := r.page.Eval(`() => {
		const out = {};
		document.querySelectorAll('.article-item').forEach(el => {
			out[el.dataset.id] = el.dataset.starred === 'true';
		});
		return out;
	}`)
	if err != nil {
		return nil, fmt.Errorf("collect starred flags: %w", err)
	}
	flags := make(map[string]bool)
	for id, v := range result.Value.Map() {
		flags[id] = v.Bool()
	}
	return flags, nil
}

// OpenArticle clicks through to an article's detail page and waits for its
// content to render.
func (r *ReaderPage) OpenArticle(id string) error {
	selector := fmt.Sprintf(`.article-item[data-id=%q] .article-link`, id)
	link, err := r.page.Timeout(r.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("article link %s: %w", id, err)
	}
	if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click article %s: %w", id, err)
	}
	return r.waitFor("article content to load", `() => {
		const el = document.querySelector('#article-content');
		return el !== null && el.dataset.loaded === 'true';
	}`)
}

// Back uses the detail page's back button (history navigation) and waits for
// the list to render again.
func (r *ReaderPage) Back() error {
	btn, err := r.page.Timeout(r.timeout).Element("#back-btn")
	if err != nil {
		return fmt.Errorf("back button: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click back: %w", err)
	}
	if err := r.page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for list page: %w", err)
	}
	return r.WaitForArticleList()
}

// setControl assigns a form control's value and fires the given event, the
// way a user interaction would.
func (r *ReaderPage) setControl(selector, value, event string) error {
	_, err := r.page.Eval(`(selector, value, event) => {
		const el = document.querySelector(selector);
		if (!el) throw new Error('no element ' + selector);
		el.value = value;
		el.dispatchEvent(new Event(event, { bubbles: true }));
	}`, selector, value, event)
	if err != nil {
		return fmt.Errorf("set %s: %w", selector, err)
	}
	return nil
}

// SetReadFilter switches the read filter and waits for the list to reload.
func (r *ReaderPage) SetReadFilter(f fixtures.ReadFilter) error {
	if err := r.setControl("#read-filter", string(f), "change"); err != nil {
		return err
	}
	return r.WaitForArticleList()
}

// SetCategory switches the category dropdown; an empty category clears it.
func (r *ReaderPage) SetCategory(category string) error {
	if err := r.setControl("#category-filter", category, "change"); err != nil {
		return err
	}
	return r.WaitForArticleList()
}

// SetSortOrder switches the sort order and waits for the list to reload.
func (r *ReaderPage) SetSortOrder(o fixtures.SortOrder) error {
	if err := r.setControl("#sort-order", string(o), "change"); err != nil {
		return err
	}
	return r.WaitForArticleList()
}

// Search types into the search box and waits for the narrowed list.
func (r *ReaderPage) Search(query string) error {
	if err := r.setControl("#search-input", query, "input"); err != nil {
		return err
	}
	return r.WaitForArticleList()
}

// SelectFeed clicks a feed in the sidebar. An empty id selects "All feeds".
func (r *ReaderPage) SelectFeed(id string) error {
	_, err := r.page.Eval(`(id) => {
		const items = document.querySelectorAll('#feed-list .feed-item');
		for (const item of items) {
			if ((item.dataset.feedId || '') === id) {
				item.click();
				return;
			}
		}
		throw new Error('no feed item ' + id);
	}`, id)
	if err != nil {
		return fmt.Errorf("select feed %q: %w", id, err)
	}
	return r.WaitForArticleList()
}

// ApplyFilter drives all filter controls to match the given state. Zero
// fields are left at their defaults.
func (r *ReaderPage) ApplyFilter(f fixtures.FilterState) error {
	if f.FeedID != "" {
		if err := r.SelectFeed(f.FeedID); err != nil {
			return err
		}
	}
	if f.Category != "" {
		if err := r.SetCategory(f.Category); err != nil {
			return err
		}
	}
	if f.ReadFilter != "" {
		if err := r.SetReadFilter(f.ReadFilter); err != nil {
			return err
		}
	}
	if f.SortOrder != "" {
		if err := r.SetSortOrder(f.SortOrder); err != nil {
			return err
		}
	}
	if f.SearchQuery != "" {
		if err := r.Search(f.SearchQuery); err != nil {
			return err
		}
	}
	return nil
}

// Refresh clicks the refresh button without waiting, so callers can observe
// failure states as well as reloads.
func (r *ReaderPage) Refresh() error {
	btn, err := r.page.Timeout(r.timeout).Element("#refresh-btn")
	if err != nil {
		return fmt.Errorf("refresh button: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click refresh: %w", err)
	}
	return nil
}

// ScrollTo scrolls the window to a vertical offset and gives the scroll
// handler a beat to run.
func (r *ReaderPage) ScrollTo(y int) error {
	_, err := r.page.Eval(`(y) => window.scrollTo(0, y)`, y)
	if err != nil {
		return fmt.Errorf("scroll to %d: %w", y, err)
	}
	time.Sleep(200 * time.Millisecond)
	return nil
}

// ScrollY returns the current window scroll offset.
func (r *ReaderPage) ScrollY() (int, error) {
	result, err := r.page.Eval(`() => Math.round(window.scrollY)`)
	if err != nil {
		return 0, fmt.Errorf("read scroll offset: %w", err)
	}
	return result.Value.Int(), nil
}

// ScrollPastArticles scrolls far enough that the first n list items sit
// fully above the viewport, which marks them read.
func (r *ReaderPage) ScrollPastArticles(n int) error {
	_, err := r.page.Eval(`(n) => {
		const items = document.querySelectorAll('.article-item');
		if (items.length <= n) {
			window.scrollTo(0, document.body.scrollHeight);
			return;
		}
		const target = items[n];
		window.scrollTo(0, window.scrollY + target.getBoundingClientRect().top);
	}`, n)
	if err != nil {
		return fmt.Errorf("scroll past %d articles: %w", n, err)
	}
	// Let the IntersectionObserver callbacks fire.
	time.Sleep(300 * time.Millisecond)
	return nil
}

// SessionStateRaw returns the raw sessionStorage payload, or "" when unset.
func (r *ReaderPage) SessionStateRaw() (string, error) {
	result, err := r.page.Eval(`(key) => sessionStorage.getItem(key) || ''`, fixtures.SessionKey)
	if err != nil {
		return "", fmt.Errorf("read session state: %w", err)
	}
	return result.Value.Str(), nil
}

// SetSessionStateRaw writes the sessionStorage payload directly. Used to
// corrupt state for resilience tests.
func (r *ReaderPage) SetSessionStateRaw(raw string) error {
	_, err := r.page.Eval(`(key, raw) => sessionStorage.setItem(key, raw)`, fixtures.SessionKey, raw)
	if err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// ClearSessionState removes the sessionStorage payload.
func (r *ReaderPage) ClearSessionState() error {
	_, err := r.page.Eval(`(key) => sessionStorage.removeItem(key)`, fixtures.SessionKey)
	if err != nil {
		return fmt.Errorf("clear session state: %w", err)
	}
	return nil
}

// SetViewport resizes the emulated viewport.
func (r *ReaderPage) SetViewport(vp fixtures.Viewport) error {
	err := r.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
		Mobile:            vp.Mobile,
	})
	if err != nil {
		return fmt.Errorf("set viewport %s: %w", vp.Name, err)
	}
	// Let CSS transitions settle after the reflow.
	time.Sleep(300 * time.Millisecond)
	return nil
}

// SidebarVisible reports whether the sidebar is on screen (not translated
// out of the viewport).
func (r *ReaderPage) SidebarVisible() (bool, error) {
	result, err := r.page.Eval(`() => {
		const el = document.querySelector('#sidebar');
		if (!el) return false;
		const rect = el.getBoundingClientRect();
		return rect.width > 0 && rect.right > 0 && rect.left < window.innerWidth;
	}`)
	if err != nil {
		return false, fmt.Errorf("check sidebar: %w", err)
	}
	return result.Value.Bool(), nil
}

// SidebarToggleVisible reports whether the mobile sidebar toggle renders.
func (r *ReaderPage) SidebarToggleVisible() (bool, error) {
	result, err := r.page.Eval(`() => {
		const el = document.querySelector('#sidebar-toggle');
		return el !== null && getComputedStyle(el).display !== 'none';
	}`)
	if err != nil {
		return false, fmt.Errorf("check sidebar toggle: %w", err)
	}
	return result.Value.Bool(), nil
}

// ToggleSidebar clicks the mobile sidebar toggle.
func (r *ReaderPage) ToggleSidebar() error {
	btn, err := r.page.Timeout(r.timeout).Element("#sidebar-toggle")
	if err != nil {
		return fmt.Errorf("sidebar toggle: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click sidebar toggle: %w", err)
	}
	// The slide-in transition is 200ms.
	time.Sleep(300 * time.Millisecond)
	return nil
}

// HeaderCondensed reports whether the glass header is in its condensed
// scrolled state.
func (r *ReaderPage) HeaderCondensed() (bool, error) {
	result, err := r.page.Eval(`() => {
		const el = document.querySelector('#app-header');
		return el !== null && el.classList.contains('condensed');
	}`)
	if err != nil {
		return false, fmt.Errorf("check header: %w", err)
	}
	return result.Value.Bool(), nil
}

// WaitForAttr waits until an element's data attribute holds the given value.
// attr is the dataset name as written in markup, e.g. "data-done".
func (r *ReaderPage) WaitForAttr(selector, attr, value string) error {
	js := fmt.Sprintf(`() => {
		const el = document.querySelector(%q);
		return el !== null && el.getAttribute(%q) === %q;
	}`, selector, attr, value)
	return r.waitFor(fmt.Sprintf("%s[%s=%q]", selector, attr, value), js)
}

// VisibleToast returns the toast text when a toast is showing, "" otherwise.
func (r *ReaderPage) VisibleToast() (string, error) {
	result, err := r.page.Eval(`() => {
		const el = document.querySelector('#toast');
		if (!el || !el.classList.contains('visible')) return '';
		return el.textContent;
	}`)
	if err != nil {
		return "", fmt.Errorf("check toast: %w", err)
	}
	return result.Value.Str(), nil
}

// WaitForToast waits until a toast becomes visible and returns its text.
func (r *ReaderPage) WaitForToast() (string, error) {
	if err := r.waitFor("toast", `() => {
		const el = document.querySelector('#toast');
		return el !== null && el.classList.contains('visible');
	}`); err != nil {
		return "", err
	}
	return r.VisibleToast()
}

// FailAPIRequests intercepts matching requests and fails them at the network
// layer. Returns a stop function; callers must invoke it before the page
// closes.
func (r *ReaderPage) FailAPIRequests(pattern string) (stop func(), err error) {
	router := r.page.HijackRequests()
	err = router.Add(pattern, "", func(ctx *rod.Hijack) {
		ctx.Response.Fail(proto.NetworkErrorReasonConnectionFailed)
	})
	if err != nil {
		return nil, fmt.Errorf("add hijack for %q: %w", pattern, err)
	}
	go router.Run()
	// Give the router a beat to enable interception before the caller
	// triggers requests.
	time.Sleep(100 * time.Millisecond)
	return func() { _ = router.Stop() }, nil
}
