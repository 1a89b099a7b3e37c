// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package present

import (
	"sync"

	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
)

// Cache keeps the presenter of the most recently seen snapshot, so the
// lookup maps are built once per load rather than once per request. A
// snapshot that only differs by entry counters reuses the maps.
//
// The zero value is ready to use.
type Cache struct {
	mu        sync.Mutex
	snapshot  *catalog.Snapshot
	presenter *Presenter
}

// For returns the presenter for snapshot, building it if the snapshot changed.
func (c *Cache) For(snapshot *catalog.Snapshot) *Presenter {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.snapshot == snapshot:
	case c.presenter != nil && c.snapshot.Generation() == snapshot.Generation():
		c.presenter = c.presenter.rebind(snapshot)
	default:
		c.presenter = New(snapshot)
	}
	c.snapshot = snapshot
	return c.presenter
}
