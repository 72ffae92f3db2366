package persist

import (
	"github.com/mitchellh/go-homedir"

	"github.com/voidshard/tilegrid"
)

// saveRequestKey is the tilemap attachment key of a pending SaveRequest.
type saveRequestKey struct{}

// SaveRequest marks a tilemap to be written by the next Codec.Save pass.
type SaveRequest struct {
	Path        string
	TexturePath string
	Label       string
	Layers      LayerMask
	RemoveAfter bool
	Mode        Mode
}

// SaveRequestBuilder configures a SaveRequest.
type SaveRequestBuilder struct {
	req SaveRequest
}

// NewSaveRequest starts a request writing under basePath. A leading ~ is
// expanded to the user's home directory.
//
// In ModeTilemap, saving a tilemap called "forest" with basePath "maps"
// produces
//
//	maps/forest/tilemap_meta
//	maps/forest/tiles
//	maps/forest/path_tiles   (when requested)
//
// and in ModePattern a single maps/forest.pattern.
func NewSaveRequest(basePath string) *SaveRequestBuilder {
	return &SaveRequestBuilder{req: SaveRequest{Path: basePath, Mode: ModeTilemap}}
}

// WithLayer adds a layer to save. With no layers set only the tile layer
// is saved.
func (b *SaveRequestBuilder) WithLayer(l Layer) *SaveRequestBuilder {
	b.req.Layers = b.req.Layers.With(l)
	return b
}

// WithTexture records the texture path in the saved metadata.
func (b *SaveRequestBuilder) WithTexture(path string) *SaveRequestBuilder {
	b.req.TexturePath = path
	return b
}

// WithLabel names the pattern (ModePattern only).
func (b *SaveRequestBuilder) WithLabel(label string) *SaveRequestBuilder {
	b.req.Label = label
	return b
}

// RemoveMapAfterDone despawns the tilemap once it is saved successfully.
func (b *SaveRequestBuilder) RemoveMapAfterDone() *SaveRequestBuilder {
	b.req.RemoveAfter = true
	return b
}

// WithMode sets the save mode, default ModeTilemap.
func (b *SaveRequestBuilder) WithMode(m Mode) *SaveRequestBuilder {
	b.req.Mode = m
	return b
}

// Request returns the configured request without attaching it.
func (b *SaveRequestBuilder) Request() (*SaveRequest, error) {
	req := b.req
	if req.Layers == 0 {
		req.Layers = LayerMask(LayerTiles)
	}
	path, err := homedir.Expand(req.Path)
	if err != nil {
		return nil, err
	}
	req.Path = path
	return &req, nil
}

// Build attaches the request to m; the next Codec.Save pass writes it.
// A request already pending on m is replaced.
func (b *SaveRequestBuilder) Build(m *tilegrid.Tilemap) error {
	req, err := b.Request()
	if err != nil {
		return err
	}
	m.Attach(saveRequestKey{}, req)
	return nil
}

// Pending returns the save request waiting on m, if any.
func Pending(m *tilegrid.Tilemap) (*SaveRequest, bool) {
	v, ok := m.Attachment(saveRequestKey{})
	if !ok {
		return nil, false
	}
	return v.(*SaveRequest), true
}
