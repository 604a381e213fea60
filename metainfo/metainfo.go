// Package metainfo reads the torrent metainfo schema out of a decoded bencode tree.
package metainfo

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mindsgn-studio/torrentmeta/bencode"
)

// ErrInvalidDocument is wrapped by every error reporting a document that
// decodes but does not match the torrent schema.
var ErrInvalidDocument = errors.New("metainfo: invalid document")

// MetaInfo is the content of a .torrent file.
type MetaInfo struct {
	Info         FileInfo   // Single-file or multi-file layout
	Announce     string     // Primary tracker URL
	AnnounceList [][]string // Tiered tracker list (BEP 12); nil when absent
	CreationDate *uint64    // Seconds since the Unix epoch
	Comment      *string
	CreatedBy    *string
	Encoding     *string
}

// Parse decodes a .torrent document. The whole buffer must be a single
// bencoded dictionary.
func Parse(data []byte) (*MetaInfo, error) {
	root, err := bencode.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode torrent")
	}
	return FromValue(root)
}

// FromValue builds a MetaInfo from a decoded root value. Unknown keys are
// ignored. Any missing or malformed required field fails the whole document;
// a malformed optional field is left absent. An announce-list that is not a
// list fails the document, while a malformed tier or URL inside it only drops
// the field.
//
// Size fields are never negative: a negative piece length or file length
// fails the document and a negative creation date is left absent.
func FromValue(root bencode.Value) (*MetaInfo, error) {
	rootDict, ok := bencode.AsDict(root)
	if !ok {
		return nil, errors.Wrap(ErrInvalidDocument, "root must be a dictionary")
	}

	announce, err := requiredString(rootDict, "announce")
	if err != nil {
		return nil, err
	}

	if v, present := rootDict["announce-list"]; present {
		if _, ok := bencode.AsList(v); !ok {
			return nil, fieldError(rootDict, "announce-list", "list")
		}
	}

	infoDict, ok := bencode.AsDict(rootDict["info"])
	if !ok {
		return nil, fieldError(rootDict, "info", "dictionary")
	}
	info, err := parseInfoDict(infoDict)
	if err != nil {
		return nil, errors.WithMessage(err, "info")
	}

	return &MetaInfo{
		Info:         info,
		Announce:     announce,
		AnnounceList: announceList(rootDict["announce-list"]),
		CreationDate: optionalSize(rootDict, "creation date"),
		Comment:      optionalString(rootDict, "comment"),
		CreatedBy:    optionalString(rootDict, "created by"),
		Encoding:     optionalString(rootDict, "encoding"),
	}, nil
}

func parseInfoDict(dict bencode.Dict) (FileInfo, error) {
	common, err := parseCommon(dict)
	if err != nil {
		return nil, err
	}
	name, err := requiredString(dict, "name")
	if err != nil {
		return nil, err
	}

	// Multi-file mode
	if filesVal, present := dict["files"]; present {
		entries, ok := bencode.AsList(filesVal)
		if !ok {
			return nil, fieldError(dict, "files", "list")
		}
		files := make([]File, 0, len(entries))
		for i, entry := range entries {
			f, err := parseFile(entry)
			if err != nil {
				return nil, errors.WithMessagef(err, "files[%d]", i)
			}
			files = append(files, f)
		}
		return &MultipleFileInfo{CommonFileInfo: common, Name: name, Files: files}, nil
	}

	// Single-file mode
	length, err := requiredSize(dict, "length")
	if err != nil {
		return nil, err
	}
	return &SingleFileInfo{
		CommonFileInfo: common,
		Name:           name,
		Length:         length,
		MD5Sum:         optionalString(dict, "md5sum"),
	}, nil
}

func parseCommon(dict bencode.Dict) (CommonFileInfo, error) {
	pieceLength, err := requiredSize(dict, "piece length")
	if err != nil {
		return CommonFileInfo{}, err
	}
	pieces, ok := bencode.AsBytes(dict["pieces"])
	if !ok {
		return CommonFileInfo{}, fieldError(dict, "pieces", "string")
	}
	private := false
	if v, ok := bencode.AsInt(dict["private"]); ok {
		private = v == 1
	}
	return NewCommonFileInfo(pieceLength, pieces, private)
}

func parseFile(v bencode.Value) (File, error) {
	dict, ok := bencode.AsDict(v)
	if !ok {
		return File{}, errors.Wrap(ErrInvalidDocument, "file entry must be a dictionary")
	}
	length, err := requiredSize(dict, "length")
	if err != nil {
		return File{}, err
	}
	path, ok := bencode.AsStrings(dict["path"])
	if !ok {
		return File{}, fieldError(dict, "path", "list of UTF-8 strings")
	}
	return File{
		Length: length,
		Path:   path,
		MD5Sum: optionalString(dict, "md5sum"),
	}, nil
}

// announceList is all-or-nothing: one malformed tier or URL drops the field.
// FromValue has already rejected a non-list value.
func announceList(v bencode.Value) [][]string {
	tiers, ok := bencode.AsList(v)
	if !ok {
		return nil
	}
	out := make([][]string, 0, len(tiers))
	for _, tier := range tiers {
		urls, ok := bencode.AsStrings(tier)
		if !ok {
			return nil
		}
		out = append(out, urls)
	}
	return out
}

func requiredString(dict bencode.Dict, key string) (string, error) {
	s, ok := bencode.AsString(dict[key])
	if !ok {
		return "", fieldError(dict, key, "UTF-8 string")
	}
	return s, nil
}

// requiredSize reads a non-negative integer. Negative values are rejected
// rather than reinterpreted as huge unsigned ones.
func requiredSize(dict bencode.Dict, key string) (uint64, error) {
	n, ok := bencode.AsInt(dict[key])
	if !ok {
		return 0, fieldError(dict, key, "integer")
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidDocument, "%q is negative (%d)", key, n)
	}
	return uint64(n), nil
}

func optionalString(dict bencode.Dict, key string) *string {
	s, ok := bencode.AsString(dict[key])
	if !ok {
		return nil
	}
	return &s
}

func optionalSize(dict bencode.Dict, key string) *uint64 {
	n, ok := bencode.AsInt(dict[key])
	if !ok || n < 0 {
		return nil
	}
	u := uint64(n)
	return &u
}

func fieldError(dict bencode.Dict, key, want string) error {
	v, present := dict[key]
	if !present || v == nil {
		return errors.Wrapf(ErrInvalidDocument, "missing %q", key)
	}
	return errors.Wrapf(ErrInvalidDocument, "%q is a %s, want %s", key, v.Kind(), want)
}

// TotalLength returns total size of all files
func (m *MetaInfo) TotalLength() uint64 {
	return m.Info.TotalLength()
}

// NumPieces returns the number of pieces
func (m *MetaInfo) NumPieces() int {
	return len(m.Info.Common().Pieces)
}

func (m *MetaInfo) IsPrivate() bool {
	return m.Info.Common().Private
}

// CreationTime converts the creation date, if present, to a time.Time.
func (m *MetaInfo) CreationTime() (time.Time, bool) {
	if m.CreationDate == nil {
		return time.Time{}, false
	}
	return time.Unix(int64(*m.CreationDate), 0).UTC(), true
}

// Trackers lists every tracker URL once: the announce URL first, then the
// announce-list tiers in order.
func (m *MetaInfo) Trackers() []string {
	seen := map[string]bool{m.Announce: true}
	out := []string{m.Announce}
	for _, tier := range m.AnnounceList {
		for _, url := range tier {
			if !seen[url] {
				seen[url] = true
				out = append(out, url)
			}
		}
	}
	return out
}
