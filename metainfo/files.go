package metainfo

import "github.com/pkg/errors"

// PieceHashSize is the length of one SHA-1 piece hash.
const PieceHashSize = 20

// CommonFileInfo holds the info-dictionary fields shared by single-file and
// multi-file torrents.
type CommonFileInfo struct {
	PieceLength uint64                // Bytes per piece
	Pieces      [][PieceHashSize]byte // SHA-1 hash of each piece, in order
	Private     bool                  // BEP 27 private flag
}

// NewCommonFileInfo splits the concatenated piece hashes into 20-byte
// entries. pieces must be a whole number of hashes and pieceLength must be
// positive.
func NewCommonFileInfo(pieceLength uint64, pieces []byte, private bool) (CommonFileInfo, error) {
	if pieceLength == 0 {
		return CommonFileInfo{}, errors.Wrap(ErrInvalidDocument, "piece length must be positive")
	}
	if len(pieces)%PieceHashSize != 0 {
		return CommonFileInfo{}, errors.Wrapf(ErrInvalidDocument,
			"pieces length %d is not a multiple of %d", len(pieces), PieceHashSize)
	}

	hashes := make([][PieceHashSize]byte, len(pieces)/PieceHashSize)
	for i := range hashes {
		copy(hashes[i][:], pieces[i*PieceHashSize:])
	}
	return CommonFileInfo{
		PieceLength: pieceLength,
		Pieces:      hashes,
		Private:     private,
	}, nil
}

// FileInfo is the file layout of a torrent: either *SingleFileInfo or
// *MultipleFileInfo.
type FileInfo interface {
	Common() CommonFileInfo
	// DisplayName is the file name for single-file torrents and the
	// directory name for multi-file ones.
	DisplayName() string
	TotalLength() uint64
	isFileInfo()
}

// SingleFileInfo describes a torrent containing one file.
type SingleFileInfo struct {
	CommonFileInfo
	Name   string
	Length uint64
	MD5Sum *string
}

func (s *SingleFileInfo) Common() CommonFileInfo { return s.CommonFileInfo }
func (s *SingleFileInfo) DisplayName() string    { return s.Name }
func (s *SingleFileInfo) TotalLength() uint64    { return s.Length }
func (*SingleFileInfo) isFileInfo()              {}

// File is one entry of a multi-file torrent.
type File struct {
	Length uint64
	Path   []string // Path components, root to leaf
	MD5Sum *string
}

// MultipleFileInfo describes a torrent containing a directory of files.
type MultipleFileInfo struct {
	CommonFileInfo
	Name  string // Directory name
	Files []File
}

func (m *MultipleFileInfo) Common() CommonFileInfo { return m.CommonFileInfo }
func (m *MultipleFileInfo) DisplayName() string    { return m.Name }
func (*MultipleFileInfo) isFileInfo()              {}

// TotalLength returns total size of all files
func (m *MultipleFileInfo) TotalLength() uint64 {
	var total uint64
	for _, f := range m.Files {
		total += f.Length
	}
	return total
}
