package port

import (
	"context"
	"errors"

	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

var (
	// ErrTabNotFound is returned when the host no longer knows a tab id.
	ErrTabNotFound = errors.New("tab not found")
	// ErrNoListener is returned when a tab has no tab-side listener yet
	// (page still loading, restricted page, script not injected).
	ErrNoListener = errors.New("no tab-side listener")
	// ErrDisconnected is returned when no extension is connected.
	ErrDisconnected = errors.New("extension not connected")
)

// TabHost is the browser tabs API of the currently focused window.
type TabHost interface {
	// QueryTabs returns every live tab.
	QueryTabs(ctx context.Context) ([]entity.TabInfo, error)

	// ActiveTab returns the focused tab, or nil when the window has none.
	ActiveTab(ctx context.Context) (*entity.TabInfo, error)

	// CreateTab opens url in a new tab. The tab is focused when active is true.
	CreateTab(ctx context.Context, url string, active bool) (*entity.TabInfo, error)

	// ActivateTab focuses an existing tab.
	// Returns ErrTabNotFound when the id is stale.
	ActivateTab(ctx context.Context, id entity.TabID) error
}

// TabMessenger delivers messages to the content script running in a tab.
// Every call may fail with ErrNoListener while the tab is still loading.
type TabMessenger interface {
	// GetScrollPosition reads the page scroll offset.
	GetScrollPosition(ctx context.Context, id entity.TabID) (entity.ScrollPosition, error)

	// SetScrollPosition scrolls the page to pos.
	SetScrollPosition(ctx context.Context, id entity.TabID, pos entity.ScrollPosition) error

	// Notify shows a toast inside the page.
	Notify(ctx context.Context, id entity.TabID, message string, notifType NotificationType) error

	// ShowSessionRestorePrompt asks the page to offer loading a saved session.
	ShowSessionRestorePrompt(ctx context.Context, id entity.TabID) error
}
