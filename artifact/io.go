package artifact

import (
	"bytes"
	"context"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Save writes the TOML encoding of a to URL. The URL may use any scheme
// the storage layer understands, including plain paths and mem://.
func Save(ctx context.Context, URL string, a Artifact) error {
	data, err := EncodeTOML(a)
	if err != nil {
		return err
	}
	fs := afs.New()
	return fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data))
}

// Load reads an artifact of the given kind from URL.
func Load(ctx context.Context, URL string, kind Kind) (Artifact, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	return DecodeTOML(kind, data)
}
