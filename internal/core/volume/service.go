// Copyright (c) 2026 Ansiklopedi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume

import (
	"github.com/taibuivan/ansiklopedi/internal/core/catalog"
	"github.com/taibuivan/ansiklopedi/internal/platform/apperr"
	"github.com/taibuivan/ansiklopedi/internal/present"
	"github.com/taibuivan/ansiklopedi/internal/search"
	"github.com/taibuivan/ansiklopedi/pkg/pagination"
)

const resourceVolume = "Volume"

// Entries is one page of the entries printed in a volume.
type Entries struct {
	Volume  catalog.Volume  `json:"volume"`
	Entries []present.Card  `json:"entries"`
	Meta    pagination.Meta `json:"meta"`
}

// Service answers volume queries from the current catalogue snapshot.
//
// The upstream source has no single-volume endpoint, so an unknown volume is
// reported as not found without a fallback lookup.
type Service struct {
	store      *catalog.Store
	presenters *present.Cache
}

// NewService constructs the volume [Service].
func NewService(store *catalog.Store, presenters *present.Cache) *Service {
	return &Service{store: store, presenters: presenters}
}

// List returns the volumes in print order with their entry counts.
func (service *Service) List() ([]present.VolumeSummary, []string) {
	snapshot := service.store.Current()
	return service.presenters.For(snapshot).VolumeSummaries(), snapshot.Unavailable
}

// Entries lists the published entries of a volume, narrowed by q. Without
// an explicit sort they follow the printed page order.
func (service *Service) Entries(id string, q search.Query) (Entries, []string, error) {
	snapshot := service.store.Current()

	volume, ok := snapshot.Volume(id)
	if !ok {
		return Entries{}, nil, apperr.NotFound(resourceVolume)
	}

	q.VolumeID = volume.ID
	if q.Sort == "" {
		q.Sort = search.SortPage
	}
	result := search.Entries(snapshot.Entries, q)

	return Entries{
		Volume:  volume,
		Entries: service.presenters.For(snapshot).Cards(result.Items),
		Meta:    result.Meta(),
	}, snapshot.Unavailable, nil
}
