package server

// The three pages below are the mock reader's entire frontend: the article
// list shell, the article detail page, and the settings page. They implement
// only the behaviors the E2E suite asserts on. Kept as Go consts so the
// server stays a single binary with no asset pipeline.

// appShellHTML is the article list page at /reader.
//
// DOM contract relied on by pkg/browser and the tests:
//   - #article-list[data-loaded]   "true" after render, "error" after a failed fetch
//   - li.article-item[data-id][data-read][data-starred]
//   - #sidebar / #sidebar-toggle   sidebar collapses below 768px
//   - #app-header.condensed        added past 80px scroll, 200ms transition
//   - #toast.visible               error toast
//   - sessionStorage "reader:list-state"  {scrollOffset, filter, readIds, savedAt}
const appShellHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Lumen Reader</title>
<style>
    * { box-sizing: border-box; }
    body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #f2f3f5; }
    #app-header {
        position: sticky; top: 0; z-index: 10;
        display: flex; align-items: center; gap: 16px;
        padding: 24px;
        background: rgba(255, 255, 255, 0.65);
        backdrop-filter: blur(12px);
        -webkit-backdrop-filter: blur(12px);
        transition: padding 0.2s ease, box-shadow 0.2s ease;
    }
    #app-header.condensed { padding: 8px 24px; box-shadow: 0 2px 8px rgba(0,0,0,0.12); }
    #app-header h1 { margin: 0; font-size: 20px; }
    #sidebar-toggle { display: none; border: none; background: #4285f4; color: white; padding: 8px 12px; border-radius: 4px; cursor: pointer; }
    #layout { display: flex; }
    #sidebar { width: 240px; flex-shrink: 0; padding: 16px; background: #fff; min-height: 100vh; }
    #sidebar ul { list-style: none; margin: 0; padding: 0; }
    #sidebar li { padding: 8px 10px; border-radius: 4px; cursor: pointer; }
    #sidebar li.active { background: #e8f0fe; color: #1a73e8; }
    #sidebar .unread-count { float: right; color: #888; font-size: 12px; }
    main { flex: 1; padding: 16px 24px; }
    #filter-bar { display: flex; gap: 12px; margin-bottom: 16px; flex-wrap: wrap; }
    #filter-bar select, #filter-bar input { padding: 6px 8px; border: 1px solid #ccc; border-radius: 4px; }
    #article-list { list-style: none; margin: 0; padding: 0; }
    .article-item { background: #fff; border-radius: 6px; padding: 16px; margin-bottom: 12px; box-shadow: 0 1px 2px rgba(0,0,0,0.08); }
    .article-item[data-read="true"] { opacity: 0.55; }
    .article-item h3 { margin: 0 0 6px; font-size: 16px; }
    .article-item a { color: #202124; text-decoration: none; }
    .article-item p { margin: 0; color: #5f6368; font-size: 14px; }
    .star-btn { border: none; background: none; cursor: pointer; font-size: 16px; float: right; }
    #empty-state, #list-loading { padding: 24px; color: #5f6368; }
    .hidden { display: none !important; }
    #toast {
        position: fixed; bottom: 24px; left: 50%; transform: translateX(-50%) translateY(20px);
        background: #d93025; color: white; padding: 12px 20px; border-radius: 6px;
        opacity: 0; pointer-events: none; transition: opacity 0.2s ease, transform 0.2s ease;
    }
    #toast.visible { opacity: 1; transform: translateX(-50%); }
    @media (max-width: 767px) {
        #sidebar-toggle { display: inline-block; }
        #sidebar {
            position: fixed; top: 0; left: 0; bottom: 0; z-index: 20;
            transform: translateX(-110%); transition: transform 0.2s ease;
        }
        #sidebar.open { transform: none; }
    }
</style>
</head>
<body>
<header id="app-header" data-testid="app-header">
    <button id="sidebar-toggle" data-testid="sidebar-toggle" aria-label="Toggle sidebar">Feeds</button>
    <h1>Lumen Reader</h1>
    <a href="/reader/settings" id="settings-link" data-testid="settings-link">Settings</a>
</header>
<div id="layout">
    <aside id="sidebar" data-testid="sidebar">
        <ul id="feed-list">
            <li class="feed-item active" data-feed-id="">All feeds</li>
        </ul>
    </aside>
    <main>
        <div id="filter-bar" data-testid="filter-bar">
            <select id="read-filter" data-testid="read-filter">
                <option value="all">All</option>
                <option value="unread">Unread</option>
                <option value="read">Read</option>
            </select>
            <select id="category-filter" data-testid="category-filter">
                <option value="">All categories</option>
                <option value="tech">Tech</option>
                <option value="news">News</option>
                <option value="science">Science</option>
                <option value="culture">Culture</option>
            </select>
            <select id="sort-order" data-testid="sort-order">
                <option value="newest">Newest first</option>
                <option value="oldest">Oldest first</option>
            </select>
            <input id="search-input" data-testid="search-input" type="search" placeholder="Search articles">
            <button id="refresh-btn" data-testid="refresh-btn">Refresh</button>
        </div>
        <div id="list-loading" data-testid="list-loading">Loading articles…</div>
        <ul id="article-list" data-testid="article-list" data-loaded="false"></ul>
        <div id="empty-state" data-testid="empty-state" class="hidden">No articles match the current filters.</div>
    </main>
</div>
<div id="toast" data-testid="toast" role="alert"></div>
<script>
(function () {
    'use strict';

    var SESSION_KEY = 'reader:list-state';

    function defaultState() {
        return {
            scrollOffset: 0,
            filter: { feedId: '', category: '', readFilter: 'all', sortOrder: 'newest', searchQuery: '' },
            readIds: [],
            savedAt: ''
        };
    }

    // Corrupt or missing session payloads fall back to defaults; the bad
    // value is discarded so the next save starts clean.
    function loadState() {
        var raw;
        try {
            raw = sessionStorage.getItem(SESSION_KEY);
        } catch (e) {
            return defaultState();
        }
        if (!raw) return defaultState();
        var parsed;
        try {
            parsed = JSON.parse(raw);
        } catch (e) {
            try { sessionStorage.removeItem(SESSION_KEY); } catch (e2) {}
            return defaultState();
        }
        if (!parsed || typeof parsed !== 'object' || Array.isArray(parsed)) {
            try { sessionStorage.removeItem(SESSION_KEY); } catch (e2) {}
            return defaultState();
        }
        var state = defaultState();
        if (typeof parsed.scrollOffset === 'number' && isFinite(parsed.scrollOffset)) {
            state.scrollOffset = parsed.scrollOffset;
        }
        if (parsed.filter && typeof parsed.filter === 'object' && !Array.isArray(parsed.filter)) {
            var f = parsed.filter;
            if (typeof f.feedId === 'string') state.filter.feedId = f.feedId;
            if (typeof f.category === 'string') state.filter.category = f.category;
            if (f.readFilter === 'all' || f.readFilter === 'read' || f.readFilter === 'unread') state.filter.readFilter = f.readFilter;
            if (f.sortOrder === 'newest' || f.sortOrder === 'oldest') state.filter.sortOrder = f.sortOrder;
            if (typeof f.searchQuery === 'string') state.filter.searchQuery = f.searchQuery;
        }
        if (Array.isArray(parsed.readIds)) {
            state.readIds = parsed.readIds.filter(function (id) { return typeof id === 'string'; });
        }
        return state;
    }

    var state = loadState();
    var restorePending = true;

    function saveState() {
        state.savedAt = new Date().toISOString();
        try {
            sessionStorage.setItem(SESSION_KEY, JSON.stringify(state));
        } catch (e) { /* storage unavailable: state lives for this page only */ }
    }

    var toastTimer = null;
    function showToast(message) {
        var toast = document.getElementById('toast');
        toast.textContent = message;
        toast.classList.add('visible');
        if (toastTimer) clearTimeout(toastTimer);
        toastTimer = setTimeout(function () { toast.classList.remove('visible'); }, 4000);
    }

    var list = document.getElementById('article-list');
    var loading = document.getElementById('list-loading');
    var emptyState = document.getElementById('empty-state');

    var observer = new IntersectionObserver(function (entries) {
        entries.forEach(function (entry) {
            // An item fully scrolled above the viewport counts as read.
            if (!entry.isIntersecting && entry.boundingClientRect.bottom < 0) {
                markRead(entry.target);
            }
        });
    });

    function markRead(item) {
        if (item.dataset.read === 'true') return;
        item.dataset.read = 'true';
        var id = item.dataset.id;
        if (state.readIds.indexOf(id) === -1) state.readIds.push(id);
        saveState();
        fetch('/api/articles/' + encodeURIComponent(id) + '/read', { method: 'POST' })
            .catch(function () { /* read state stays local when offline */ });
    }

    function renderArticles(articles) {
        observer.disconnect();
        list.textContent = '';
        articles.forEach(function (a) {
            var item = document.createElement('li');
            item.className = 'article-item';
            item.dataset.id = a.id;
            item.dataset.read = String(a.isRead || state.readIds.indexOf(a.id) !== -1);
            item.dataset.starred = String(a.isStarred);

            var star = document.createElement('button');
            star.className = 'star-btn';
            star.textContent = a.isStarred ? '★' : '☆';
            star.addEventListener('click', function () { toggleStar(item, star); });

            var title = document.createElement('h3');
            var link = document.createElement('a');
            link.className = 'article-link';
            link.href = '/reader/article/' + encodeURIComponent(a.id);
            link.textContent = a.title;
            link.addEventListener('click', function () {
                state.scrollOffset = window.scrollY;
                saveState();
            });
            title.appendChild(link);

            var summary = document.createElement('p');
            summary.textContent = a.summary;

            item.appendChild(star);
            item.appendChild(title);
            item.appendChild(summary);
            list.appendChild(item);
            observer.observe(item);
        });
        emptyState.classList.toggle('hidden', articles.length > 0);
    }

    function toggleStar(item, star) {
        var starred = item.dataset.starred !== 'true';
        item.dataset.starred = String(starred);
        star.textContent = starred ? '★' : '☆';
        fetch('/api/articles/' + encodeURIComponent(item.dataset.id) + '/star', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ starred: starred })
        }).catch(function () { showToast('Failed to update star'); });
    }

    function loadArticles() {
        loading.classList.remove('hidden');
        list.dataset.loaded = 'false';

        var params = new URLSearchParams();
        if (state.filter.feedId) params.set('feed', state.filter.feedId);
        if (state.filter.category) params.set('category', state.filter.category);
        if (state.filter.readFilter !== 'all') params.set('read', state.filter.readFilter);
        if (state.filter.sortOrder !== 'newest') params.set('sort', state.filter.sortOrder);
        if (state.filter.searchQuery) params.set('q', state.filter.searchQuery);

        return fetch('/api/articles?' + params.toString())
            .then(function (res) {
                if (!res.ok) throw new Error('articles request failed: ' + res.status);
                return res.json();
            })
            .then(function (articles) {
                renderArticles(articles);
                loading.classList.add('hidden');
                list.dataset.loaded = 'true';
                if (restorePending) {
                    restorePending = false;
                    window.scrollTo(0, state.scrollOffset);
                }
            })
            .catch(function () {
                loading.classList.add('hidden');
                list.dataset.loaded = 'error';
                showToast('Failed to load articles');
            });
    }

    function loadFeeds() {
        fetch('/api/feeds')
            .then(function (res) {
                if (!res.ok) throw new Error('feeds request failed: ' + res.status);
                return res.json();
            })
            .then(function (feeds) {
                var feedList = document.getElementById('feed-list');
                feeds.forEach(function (f) {
                    var item = document.createElement('li');
                    item.className = 'feed-item';
                    item.dataset.feedId = f.id;
                    item.dataset.category = f.category;
                    item.textContent = f.title;

                    var count = document.createElement('span');
                    count.className = 'unread-count';
                    count.textContent = String(f.unreadCount);
                    item.appendChild(count);

                    feedList.appendChild(item);
                });
                feedList.addEventListener('click', function (ev) {
                    var item = ev.target.closest('.feed-item');
                    if (!item) return;
                    feedList.querySelectorAll('.feed-item').forEach(function (el) { el.classList.remove('active'); });
                    item.classList.add('active');
                    state.filter.feedId = item.dataset.feedId || '';
                    saveState();
                    loadArticles();
                });
            })
            .catch(function () { showToast('Failed to load feeds'); });
    }

    // Filter bar wiring.
    var readFilter = document.getElementById('read-filter');
    var categoryFilter = document.getElementById('category-filter');
    var sortOrder = document.getElementById('sort-order');
    var searchInput = document.getElementById('search-input');

    readFilter.value = state.filter.readFilter;
    categoryFilter.value = state.filter.category;
    sortOrder.value = state.filter.sortOrder;
    searchInput.value = state.filter.searchQuery;

    readFilter.addEventListener('change', function () {
        state.filter.readFilter = readFilter.value;
        saveState();
        loadArticles();
    });
    categoryFilter.addEventListener('change', function () {
        state.filter.category = categoryFilter.value;
        saveState();
        loadArticles();
    });
    sortOrder.addEventListener('change', function () {
        state.filter.sortOrder = sortOrder.value;
        saveState();
        loadArticles();
    });
    searchInput.addEventListener('input', function () {
        state.filter.searchQuery = searchInput.value;
        saveState();
        loadArticles();
    });
    document.getElementById('refresh-btn').addEventListener('click', function () {
        loadArticles();
    });

    document.getElementById('sidebar-toggle').addEventListener('click', function () {
        document.getElementById('sidebar').classList.toggle('open');
    });

    // Glass header condenses past the scroll threshold; scroll offset is
    // persisted so back navigation can restore it.
    var header = document.getElementById('app-header');
    window.addEventListener('scroll', function () {
        header.classList.toggle('condensed', window.scrollY > 80);
        state.scrollOffset = window.scrollY;
        saveState();
    }, { passive: true });

    loadFeeds();
    loadArticles();
})();
</script>
</body>
</html>`

// articlePageHTML is the article detail page. Opening it marks the article
// read; the back button uses history navigation so the list page restores
// its session state.
const articlePageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Lumen Reader — Article</title>
<style>
    body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #f2f3f5; }
    header { display: flex; align-items: center; gap: 16px; padding: 16px 24px; background: rgba(255,255,255,0.65); backdrop-filter: blur(12px); }
    main { max-width: 720px; margin: 24px auto; background: #fff; border-radius: 6px; padding: 32px; }
    #back-btn { border: none; background: #4285f4; color: white; padding: 8px 14px; border-radius: 4px; cursor: pointer; }
    #article-meta { color: #5f6368; font-size: 13px; }
</style>
</head>
<body>
<header>
    <button id="back-btn" data-testid="back-btn">Back</button>
    <h1>Lumen Reader</h1>
</header>
<main id="article-content" data-testid="article-content" data-loaded="false">
    <h2 id="article-title"></h2>
    <div id="article-meta"></div>
    <p id="article-summary"></p>
</main>
<script>
(function () {
    'use strict';

    document.getElementById('back-btn').addEventListener('click', function () {
        history.back();
    });

    var parts = location.pathname.split('/');
    var id = decodeURIComponent(parts[parts.length - 1]);

    fetch('/api/articles/' + encodeURIComponent(id))
        .then(function (res) {
            if (!res.ok) throw new Error('article request failed: ' + res.status);
            return res.json();
        })
        .then(function (a) {
            document.getElementById('article-title').textContent = a.title;
            document.getElementById('article-meta').textContent = a.feedId + ' · ' + a.publishedAt;
            document.getElementById('article-summary').textContent = a.summary;
            document.getElementById('article-content').dataset.loaded = 'true';
            return fetch('/api/articles/' + encodeURIComponent(id) + '/read', { method: 'POST' });
        })
        .catch(function () {
            document.getElementById('article-content').dataset.loaded = 'error';
        });
})();
</script>
</body>
</html>`

// settingsPageHTML is the settings page. The theme toggle persists to
// sessionStorage; the maintenance section drives the chunked purge endpoint.
const settingsPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Lumen Reader — Settings</title>
<style>
    body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #f2f3f5; }
    body[data-theme="dark"] { background: #202124; color: #e8eaed; }
    body[data-theme="dark"] section { background: #2d2e31; }
    header { display: flex; align-items: center; gap: 16px; padding: 16px 24px; background: rgba(255,255,255,0.65); backdrop-filter: blur(12px); }
    main { max-width: 720px; margin: 24px auto; }
    section { background: #fff; border-radius: 6px; padding: 24px; margin-bottom: 16px; }
    section h2 { margin-top: 0; font-size: 16px; }
    button { border: none; background: #4285f4; color: white; padding: 8px 14px; border-radius: 4px; cursor: pointer; }
    #purge-result { margin-top: 8px; color: #5f6368; font-size: 13px; }
</style>
</head>
<body>
<header>
    <a href="/reader" id="back-link" data-testid="back-link">Back to reader</a>
    <h1>Settings</h1>
</header>
<main>
    <section data-testid="settings-appearance">
        <h2>Appearance</h2>
        <button id="theme-toggle" data-testid="theme-toggle">Toggle dark theme</button>
    </section>
    <section data-testid="settings-feeds">
        <h2>Feeds</h2>
        <ul id="settings-feed-list" data-testid="settings-feed-list"></ul>
    </section>
    <section data-testid="settings-maintenance">
        <h2>Maintenance</h2>
        <button id="purge-btn" data-testid="purge-btn">Delete read articles</button>
        <div id="purge-result" data-testid="purge-result"></div>
    </section>
</main>
<script>
(function () {
    'use strict';

    var THEME_KEY = 'reader:theme';

    function applyTheme(theme) {
        document.body.dataset.theme = theme;
    }
    try {
        applyTheme(sessionStorage.getItem(THEME_KEY) || 'light');
    } catch (e) {
        applyTheme('light');
    }
    document.getElementById('theme-toggle').addEventListener('click', function () {
        var next = document.body.dataset.theme === 'dark' ? 'light' : 'dark';
        applyTheme(next);
        try { sessionStorage.setItem(THEME_KEY, next); } catch (e) {}
    });

    fetch('/api/feeds')
        .then(function (res) { return res.json(); })
        .then(function (feeds) {
            var listEl = document.getElementById('settings-feed-list');
            feeds.forEach(function (f) {
                var item = document.createElement('li');
                item.dataset.feedId = f.id;
                item.textContent = f.title + ' (' + f.url + ')';
                listEl.appendChild(item);
            });
        })
        .catch(function () { /* feed list is informational here */ });

    // Purge runs in chunks until the server reports nothing left to delete.
    document.getElementById('purge-btn').addEventListener('click', function () {
        var resultEl = document.getElementById('purge-result');
        var totalDeleted = 0;

        function purgeChunk() {
            return fetch('/api/articles?chunk=10', { method: 'DELETE' })
                .then(function (res) {
                    if (!res.ok) throw new Error('purge failed: ' + res.status);
                    return res.json();
                })
                .then(function (out) {
                    totalDeleted += out.deleted;
                    if (out.remaining > 0) return purgeChunk();
                    resultEl.textContent = 'Deleted ' + totalDeleted + ' read articles';
                    resultEl.dataset.done = 'true';
                });
        }
        resultEl.dataset.done = 'false';
        purgeChunk().catch(function () {
            resultEl.textContent = 'Purge failed';
            resultEl.dataset.done = 'error';
        });
    });
})();
</script>
</body>
</html>`
