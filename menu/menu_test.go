package menu

import "testing"

// observableCtx is a minimal live context for event-plumbing tests.
type observableCtx struct {
	subs []func()
}

func (o *observableCtx) OnChange(fn func()) (cancel func()) {
	o.subs = append(o.subs, fn)
	i := len(o.subs) - 1
	return func() { o.subs[i] = nil }
}

func (o *observableCtx) change() {
	for _, fn := range o.subs {
		if fn != nil {
			fn()
		}
	}
}

func TestMenuChangeOnRegistryChange(t *testing.T) {
	r := NewRegistry()
	m := NewService(r, nil, nil).CreateMenu(LocationEditorContext, nil)
	defer m.Dispose()

	var fired int
	m.OnChange(func() { fired++ })

	reg := r.RegisterItem(LocationEditorContext, ItemContribution{Command: CommandRef{ID: "a"}})
	if fired != 1 {
		t.Fatalf("registration fired %d menu events, want 1", fired)
	}

	// Changes to other locations are not this menu's business.
	r.RegisterItem(LocationStatusBar, ItemContribution{Command: CommandRef{ID: "b"}})
	if fired != 1 {
		t.Fatalf("unrelated location fired the menu event, count %d", fired)
	}

	reg.Dispose()
	if fired != 2 {
		t.Fatalf("disposal fired %d menu events, want 2", fired)
	}
}

func TestMenuChangeOnContextChange(t *testing.T) {
	r := NewRegistry()
	ctx := &observableCtx{}
	m := NewService(r, nil, nil).CreateMenu(LocationEditorContext, ctx)
	defer m.Dispose()

	var fired int
	m.OnChange(func() { fired++ })

	ctx.change()
	if fired != 1 {
		t.Fatalf("context change fired %d menu events, want 1", fired)
	}
}

func TestMenuListenerDispose(t *testing.T) {
	r := NewRegistry()
	m := NewService(r, nil, nil).CreateMenu(LocationEditorContext, nil)
	defer m.Dispose()

	var fired int
	l := m.OnChange(func() { fired++ })
	l.Dispose()
	l.Dispose()

	r.RegisterItem(LocationEditorContext, ItemContribution{Command: CommandRef{ID: "a"}})
	if fired != 0 {
		t.Errorf("disposed listener fired %d times", fired)
	}
}

func TestMenuDisposeReleasesSubscriptionsOnly(t *testing.T) {
	r := NewRegistry()
	r.RegisterItem(LocationEditorContext, ItemContribution{Command: CommandRef{ID: "a"}})

	ctx := &observableCtx{}
	m := NewService(r, nil, nil).CreateMenu(LocationEditorContext, ctx)

	var fired int
	m.OnChange(func() { fired++ })

	m.Dispose()
	m.Dispose()

	r.RegisterItem(LocationEditorContext, ItemContribution{Command: CommandRef{ID: "b"}})
	ctx.change()
	if fired != 0 {
		t.Errorf("disposed menu fired %d events", fired)
	}

	// The registry is untouched by menu disposal.
	if got := len(r.GetItems(LocationEditorContext)); got != 2 {
		t.Errorf("registry has %d items after menu disposal, want 2", got)
	}
}

func TestMenuLocation(t *testing.T) {
	m := NewService(NewRegistry(), nil, nil).CreateMenu(LocationTitleBar, nil)
	defer m.Dispose()

	if m.Location() != LocationTitleBar {
		t.Errorf("Location() = %q", m.Location())
	}
}
