package host

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"github.com/viant/afs"
)

// BinaryHash returns the MD5 hex digest of the file at URL, the digest
// format backends report from their BinaryHash operation. The URL may use
// any scheme the storage layer understands.
func BinaryHash(ctx context.Context, URL string) (string, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}
