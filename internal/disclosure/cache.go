// Package disclosure implements the lazily loaded chapter → article → rule
// tree with its casebook and guideline annotations.
//
// Every node's children are fetched at most once per Cache. Collapsing is a
// pure state flip and re-expanding reuses the cached children. Concurrent
// loads of the same node or annotation are coalesced into one repository
// call. A failed load caches nothing, so retrying is a fresh Toggle.
//
// Annotations load in two tiers. Expanding an article fetches its rules and
// then, concurrently, one batched casebook existence check for all of them
// and one guideline existence check. Full case or guideline text is fetched
// only when the matching sub-accordion is opened.
package disclosure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
)

// Source is the subset of the content repository the tree reads from.
type Source interface {
	ListChapters(ctx context.Context, env content.Environment) ([]content.Chapter, error)
	ListArticles(ctx context.Context, chapterID content.ID) ([]content.Article, error)
	ListRules(ctx context.Context, articleID content.ID) ([]content.Rule, error)
	CheckCaseExistence(ctx context.Context, ruleIDs []content.ID) (map[content.ID][]int, error)
	FetchCaseDetails(ctx context.Context, ruleIDs []content.ID) ([]content.Case, error)
	CheckGuidelineExistence(ctx context.Context, articleID content.ID, ruleIDs []content.ID) (bool, error)
	FetchGuidelineDetails(ctx context.Context, articleID content.ID, ruleIDs []content.ID) ([]content.Guideline, error)
}

// Cache is the disclosure state of one tree view. It is safe for
// concurrent use.
type Cache struct {
	source Source
	env    content.Environment
	flight singleflight.Group

	// mu guards everything below. It is never held across a Source call.
	mu          sync.Mutex
	roots       []NodeKey
	rootsLoaded bool
	nodes       map[NodeKey]*node

	caseRefs        map[content.ID][]int // rule id → case numbers, tier 1
	caseChecked     map[content.ID]bool
	guidelineExists map[content.ID]bool // article id → present, tier 1

	caseDetails      map[content.ID][]content.Case
	guidelineDetails map[content.ID][]content.Guideline
	casesOpen        map[content.ID]bool
	guidelinesOpen   map[content.ID]bool

	fetches   map[Tier]int
	coalesced int
}

// New creates an empty Cache for one environment.
func New(source Source, env content.Environment) *Cache {
	return &Cache{
		source:           source,
		env:              env,
		nodes:            make(map[NodeKey]*node),
		caseRefs:         make(map[content.ID][]int),
		caseChecked:      make(map[content.ID]bool),
		guidelineExists:  make(map[content.ID]bool),
		caseDetails:      make(map[content.ID][]content.Case),
		guidelineDetails: make(map[content.ID][]content.Guideline),
		casesOpen:        make(map[content.ID]bool),
		guidelinesOpen:   make(map[content.ID]bool),
		fetches:          make(map[Tier]int),
	}
}

// Environment returns the environment the tree was opened for.
func (c *Cache) Environment() content.Environment {
	return c.env
}

// LoadChapters returns the root level, fetching it on first use.
func (c *Cache) LoadChapters(ctx context.Context) ([]NodeView, error) {
	c.mu.Lock()
	loaded := c.rootsLoaded
	c.mu.Unlock()

	if !loaded {
		_, err := c.do(ctx, "chapters:"+string(c.env), func(ctx context.Context) (any, error) {
			return nil, c.loadChapters(ctx)
		})
		if err != nil {
			c.logFailure(ctx, err)
			return nil, err
		}
	}

	return c.Tree(), nil
}

// Tree returns the views of all root nodes, descending into expanded nodes.
// It is empty until LoadChapters succeeded.
func (c *Cache) Tree() []NodeView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewsLocked(c.roots)
}

// Toggle expands a collapsed node or collapses an expanded one. The first
// expansion fetches the node's children; later ones reuse them. Toggling a
// node that is still expanding collapses it without cancelling the fetch,
// and toggling it again joins the same fetch.
func (c *Cache) Toggle(ctx context.Context, key NodeKey) (NodeView, error) {
	c.mu.Lock()
	n, ok := c.nodes[key]
	if !ok {
		c.mu.Unlock()
		return NodeView{}, fmt.Errorf("toggle %s: %w", key, ErrUnknownNode)
	}

	switch {
	case n.state == StateExpanded || n.state == StateExpanding:
		n.state = StateCollapsed
		view := c.viewLocked(n)
		c.mu.Unlock()
		return view, nil
	case n.fetched:
		n.state = StateExpanded
		view := c.viewLocked(n)
		c.mu.Unlock()
		return view, nil
	}
	n.state = StateExpanding
	c.mu.Unlock()

	err := c.ensureChildren(ctx, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if n.state == StateExpanding {
			n.state = StateCollapsed
		}
		return c.viewLocked(n), err
	}
	if n.state == StateExpanding {
		n.state = StateExpanded
	}
	return c.viewLocked(n), nil
}

// Node returns the current view of a node.
func (c *Cache) Node(key NodeKey) (NodeView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.nodes[key]
	if !ok {
		return NodeView{}, false
	}
	return c.viewLocked(n), true
}

// Children returns the cached children of a node regardless of its state.
// The second result is false when they were never fetched.
func (c *Cache) Children(key NodeKey) ([]NodeView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.nodes[key]
	if !ok || !n.fetched {
		return nil, false
	}
	return c.viewsLocked(n.children), true
}

// ToggleCases opens or closes the casebook accordion of a rule, loading the
// full cases on first open. A failed load leaves the accordion closed.
func (c *Cache) ToggleCases(ctx context.Context, ruleID content.ID) (CaseAccordion, error) {
	c.mu.Lock()
	if c.casesOpen[ruleID] {
		c.casesOpen[ruleID] = false
		c.mu.Unlock()
		return CaseAccordion{RuleID: ruleID}, nil
	}
	c.mu.Unlock()

	cases, err := c.EnsureCaseDetails(ctx, ruleID)
	if err != nil {
		return CaseAccordion{RuleID: ruleID}, err
	}

	c.mu.Lock()
	c.casesOpen[ruleID] = true
	c.mu.Unlock()
	return CaseAccordion{RuleID: ruleID, Open: true, Cases: cases}, nil
}

// EnsureCaseDetails returns the full casebook entries of a rule, fetching
// them at most once. A rule the existence check found no cases for is
// answered without a fetch.
func (c *Cache) EnsureCaseDetails(ctx context.Context, ruleID content.ID) ([]content.Case, error) {
	if cases, ok := c.cachedCases(ruleID); ok {
		return cases, nil
	}

	v, err := c.do(ctx, "case-details:"+string(ruleID), func(ctx context.Context) (any, error) {
		if cases, ok := c.cachedCases(ruleID); ok {
			return cases, nil
		}
		c.countFetch(TierCaseDetails)
		cases, err := c.source.FetchCaseDetails(ctx, []content.ID{ruleID})
		if err != nil {
			return nil, &LoadError{NodeID: RuleKey(ruleID).String(), Tier: TierCaseDetails, Err: err}
		}
		if cases == nil {
			cases = []content.Case{}
		}
		c.mu.Lock()
		c.caseDetails[ruleID] = cases
		c.mu.Unlock()
		return cases, nil
	})
	if err != nil {
		c.logFailure(ctx, err)
		return nil, err
	}
	return v.([]content.Case), nil
}

func (c *Cache) cachedCases(ruleID content.ID) ([]content.Case, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cases, ok := c.caseDetails[ruleID]; ok {
		return cases, true
	}
	if c.caseChecked[ruleID] && len(c.caseRefs[ruleID]) == 0 {
		c.caseDetails[ruleID] = []content.Case{}
		return c.caseDetails[ruleID], true
	}
	return nil, false
}

// ToggleGuidelines opens or closes the guideline accordion of an article,
// loading the full guidelines on first open.
func (c *Cache) ToggleGuidelines(ctx context.Context, articleID content.ID) (GuidelineAccordion, error) {
	c.mu.Lock()
	if c.guidelinesOpen[articleID] {
		c.guidelinesOpen[articleID] = false
		c.mu.Unlock()
		return GuidelineAccordion{ArticleID: articleID}, nil
	}
	c.mu.Unlock()

	guidelines, err := c.EnsureGuidelineDetails(ctx, articleID)
	if err != nil {
		return GuidelineAccordion{ArticleID: articleID}, err
	}

	c.mu.Lock()
	c.guidelinesOpen[articleID] = true
	c.mu.Unlock()
	return GuidelineAccordion{ArticleID: articleID, Open: true, Guidelines: guidelines}, nil
}

// EnsureGuidelineDetails returns the guidelines of an article and its rules,
// fetching them at most once.
func (c *Cache) EnsureGuidelineDetails(ctx context.Context, articleID content.ID) ([]content.Guideline, error) {
	if guidelines, ok := c.cachedGuidelines(articleID); ok {
		return guidelines, nil
	}
	// Rule-linked guidelines need the article's rule ids.
	ruleIDs, ok := c.ruleIDsOf(articleID)
	if !ok {
		return nil, fmt.Errorf("guidelines of %s: %w", ArticleKey(articleID), ErrUnknownNode)
	}

	v, err := c.do(ctx, "guideline-details:"+string(articleID), func(ctx context.Context) (any, error) {
		if guidelines, ok := c.cachedGuidelines(articleID); ok {
			return guidelines, nil
		}
		c.countFetch(TierGuidelineDetails)
		guidelines, err := c.source.FetchGuidelineDetails(ctx, articleID, ruleIDs)
		if err != nil {
			return nil, &LoadError{NodeID: ArticleKey(articleID).String(), Tier: TierGuidelineDetails, Err: err}
		}
		if guidelines == nil {
			guidelines = []content.Guideline{}
		}
		c.mu.Lock()
		c.guidelineDetails[articleID] = guidelines
		c.mu.Unlock()
		return guidelines, nil
	})
	if err != nil {
		c.logFailure(ctx, err)
		return nil, err
	}
	return v.([]content.Guideline), nil
}

func (c *Cache) cachedGuidelines(articleID content.ID) ([]content.Guideline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if guidelines, ok := c.guidelineDetails[articleID]; ok {
		return guidelines, true
	}
	if exists, checked := c.guidelineExists[articleID]; checked && !exists {
		c.guidelineDetails[articleID] = []content.Guideline{}
		return c.guidelineDetails[articleID], true
	}
	return nil, false
}

// ruleIDsOf returns the ids of an article's rules. ok is false until the
// article's rules have been fetched.
func (c *Cache) ruleIDsOf(articleID content.ID) (ids []content.ID, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, found := c.nodes[ArticleKey(articleID)]
	if !found || !n.fetched {
		return nil, false
	}
	ids = make([]content.ID, len(n.children))
	for i, child := range n.children {
		ids[i] = child.ID
	}
	return ids, true
}

// Stats returns fetch and coalescing counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	fetches := make(map[Tier]int, len(c.fetches))
	for tier, n := range c.fetches {
		fetches[tier] = n
	}
	return Stats{Nodes: len(c.nodes), Fetches: fetches, Coalesced: c.coalesced}
}

// do runs fn once per key across concurrent callers. The flight is detached
// from the caller's cancellation so an abandoned request still fills the cache.
func (c *Cache) do(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	v, err, shared := c.flight.Do(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	if shared {
		c.mu.Lock()
		c.coalesced++
		c.mu.Unlock()
	}
	return v, err
}

func (c *Cache) countFetch(tier Tier) {
	c.mu.Lock()
	c.fetches[tier]++
	c.mu.Unlock()
}

func (c *Cache) logFailure(ctx context.Context, err error) {
	attrs := []any{"environment", c.env, "error", err}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		attrs = append(attrs, "node", loadErr.NodeID, "tier", loadErr.Tier)
	}
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "Failed to load tree content", attrs...)
}

func (c *Cache) loadChapters(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.rootsLoaded
	c.mu.Unlock()
	if loaded {
		return nil
	}

	c.countFetch(TierChapters)
	chapters, err := c.source.ListChapters(ctx, c.env)
	if err != nil {
		return &LoadError{NodeID: "root:" + string(c.env), Tier: TierChapters, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.roots = make([]NodeKey, 0, len(chapters))
	for _, ch := range chapters {
		key := ChapterKey(ch.ID)
		c.addNodeLocked(key, "", ch)
		c.roots = append(c.roots, key)
	}
	c.rootsLoaded = true
	slog.Debug("Loaded chapters", "environment", c.env, "count", len(chapters))
	return nil
}

func (c *Cache) ensureChildren(ctx context.Context, key NodeKey) error {
	_, err := c.do(ctx, "children:"+key.String(), func(ctx context.Context) (any, error) {
		c.mu.Lock()
		fetched := c.nodes[key].fetched
		c.mu.Unlock()
		if fetched {
			return nil, nil
		}

		switch key.Level {
		case LevelChapter:
			return nil, c.loadChapter(ctx, key)
		case LevelArticle:
			return nil, c.loadArticle(ctx, key)
		}
		return nil, nil
	})
	if err != nil {
		c.logFailure(ctx, err)
	}
	return err
}

func (c *Cache) loadChapter(ctx context.Context, key NodeKey) error {
	c.countFetch(TierChildren)
	articles, err := c.source.ListArticles(ctx, key.ID)
	if err != nil {
		return &LoadError{NodeID: key.String(), Tier: TierChildren, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	children := make([]NodeKey, 0, len(articles))
	for _, a := range articles {
		child := ArticleKey(a.ID)
		c.addNodeLocked(child, key.ID, a)
		children = append(children, child)
	}
	c.commitChildrenLocked(key, children)
	return nil
}

// loadArticle fetches the rules of an article and runs both existence
// checks. Nothing is committed unless all three calls succeed.
func (c *Cache) loadArticle(ctx context.Context, key NodeKey) error {
	c.countFetch(TierChildren)
	rules, err := c.source.ListRules(ctx, key.ID)
	if err != nil {
		return &LoadError{NodeID: key.String(), Tier: TierChildren, Err: err}
	}

	ruleIDs := make([]content.ID, len(rules))
	for i, r := range rules {
		ruleIDs[i] = r.ID
	}

	var (
		refs          map[content.ID][]int
		hasGuidelines bool
	)
	g, gctx := errgroup.WithContext(ctx)
	if len(ruleIDs) > 0 {
		g.Go(func() error {
			c.countFetch(TierCaseExistence)
			r, err := c.source.CheckCaseExistence(gctx, ruleIDs)
			if err != nil {
				return &LoadError{NodeID: key.String(), Tier: TierCaseExistence, Err: err}
			}
			refs = r
			return nil
		})
	}
	g.Go(func() error {
		c.countFetch(TierGuidelineExistence)
		ok, err := c.source.CheckGuidelineExistence(gctx, key.ID, ruleIDs)
		if err != nil {
			return &LoadError{NodeID: key.String(), Tier: TierGuidelineExistence, Err: err}
		}
		hasGuidelines = ok
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	children := make([]NodeKey, 0, len(rules))
	for _, r := range rules {
		child := RuleKey(r.ID)
		c.addNodeLocked(child, key.ID, r)
		children = append(children, child)
		c.caseChecked[r.ID] = true
		if nums := refs[r.ID]; len(nums) > 0 {
			c.caseRefs[r.ID] = append([]int(nil), nums...)
		}
	}
	c.guidelineExists[key.ID] = hasGuidelines
	c.commitChildrenLocked(key, children)
	return nil
}

func (c *Cache) addNodeLocked(key NodeKey, parentID content.ID, record any) {
	if _, ok := c.nodes[key]; ok {
		return
	}
	n := &node{key: key, parentID: parentID, state: StateCollapsed, record: record}
	if key.Level == LevelRule {
		n.children = []NodeKey{}
		n.fetched = true
	}
	c.nodes[key] = n
}

func (c *Cache) commitChildrenLocked(key NodeKey, children []NodeKey) {
	n := c.nodes[key]
	n.children = children
	n.fetched = true
}

func (c *Cache) viewsLocked(keys []NodeKey) []NodeView {
	views := make([]NodeView, 0, len(keys))
	for _, key := range keys {
		if n, ok := c.nodes[key]; ok {
			views = append(views, c.viewLocked(n))
		}
	}
	return views
}

func (c *Cache) viewLocked(n *node) NodeView {
	view := NodeView{
		Level:    n.key.Level,
		ID:       n.key.ID,
		ParentID: n.parentID,
		State:    n.state,
		Record:   n.record,
	}
	if n.state == StateExpanded {
		view.Children = c.viewsLocked(n.children)
	}

	switch n.key.Level {
	case LevelRule:
		view.CaseNumbers = c.caseRefs[n.key.ID]
		if c.casesOpen[n.key.ID] {
			view.CasesOpen = true
			view.Cases = c.caseDetails[n.key.ID]
		}
	case LevelArticle:
		if exists, checked := c.guidelineExists[n.key.ID]; checked {
			view.HasGuidelines = &exists
		}
		if c.guidelinesOpen[n.key.ID] {
			view.GuidelinesOpen = true
			view.Guidelines = c.guidelineDetails[n.key.ID]
		}
	}
	return view
}
