package bridge

import (
	"context"

	"github.com/reklai/harpoon-telescope/internal/application/port"
	"github.com/reklai/harpoon-telescope/internal/domain/entity"
)

// QueryTabs implements port.TabHost.
func (s *Server) QueryTabs(ctx context.Context) ([]entity.TabInfo, error) {
	var tabs []entity.TabInfo
	if err := s.call(ctx, CallQueryTabs, nil, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

// ActiveTab implements port.TabHost.
func (s *Server) ActiveTab(ctx context.Context) (*entity.TabInfo, error) {
	var tab *entity.TabInfo
	if err := s.call(ctx, CallActiveTab, nil, &tab); err != nil {
		return nil, err
	}
	if tab == nil || tab.ID == entity.NoTab {
		return nil, nil
	}
	return tab, nil
}

// CreateTab implements port.TabHost.
func (s *Server) CreateTab(ctx context.Context, url string, active bool) (*entity.TabInfo, error) {
	var tab entity.TabInfo
	if err := s.call(ctx, CallCreateTab, createPayload{URL: url, Active: active}, &tab); err != nil {
		return nil, err
	}
	if tab.URL == "" {
		tab.URL = url
	}
	return &tab, nil
}

// ActivateTab implements port.TabHost.
func (s *Server) ActivateTab(ctx context.Context, id entity.TabID) error {
	return s.call(ctx, CallActivateTab, tabPayload{TabID: int64(id)}, nil)
}

// GetScrollPosition implements port.TabMessenger.
func (s *Server) GetScrollPosition(ctx context.Context, id entity.TabID) (entity.ScrollPosition, error) {
	var pos entity.ScrollPosition
	if err := s.call(ctx, CallGetScroll, tabPayload{TabID: int64(id)}, &pos); err != nil {
		return entity.ScrollPosition{}, err
	}
	return pos, nil
}

// SetScrollPosition implements port.TabMessenger.
func (s *Server) SetScrollPosition(ctx context.Context, id entity.TabID, pos entity.ScrollPosition) error {
	return s.call(ctx, CallSetScroll, scrollPayload{TabID: int64(id), X: pos.X, Y: pos.Y}, nil)
}

// Notify implements port.TabMessenger.
func (s *Server) Notify(ctx context.Context, id entity.TabID, message string, notifType port.NotificationType) error {
	return s.call(ctx, CallNotify, notifyPayload{TabID: int64(id), Message: message, Type: notifType.String()}, nil)
}

// ShowSessionRestorePrompt implements port.TabMessenger.
func (s *Server) ShowSessionRestorePrompt(ctx context.Context, id entity.TabID) error {
	return s.call(ctx, CallShowRestorePrompt, tabPayload{TabID: int64(id)}, nil)
}
