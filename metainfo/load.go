package metainfo

import (
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
)

var log = logging.Logger("torrentmeta/metainfo")

// Load reads a whole .torrent document from r and parses it.
func Load(r io.Reader) (*MetaInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read torrent")
	}
	return Parse(data)
}

// LoadFile parses the .torrent file at path.
func LoadFile(path string) (*MetaInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read torrent file")
	}

	mi, err := Parse(data)
	if err != nil {
		log.Debugw("rejected torrent file", "path", path, "size", len(data), "error", err)
		return nil, err
	}
	log.Debugw("loaded torrent file",
		"path", path,
		"name", mi.Info.DisplayName(),
		"pieces", mi.NumPieces(),
		"length", mi.TotalLength(),
	)
	return mi, nil
}
