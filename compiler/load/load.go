package load

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/blockgen/block"
)

var (
	// ErrUnknownFormat is returned for documents in an unsupported format.
	ErrUnknownFormat = errors.New("load: unknown document format")
	// ErrMissingType is returned for a block without a type.
	ErrMissingType = errors.New("block type is required")
	// ErrMissingName is returned for a variable without a name.
	ErrMissingName = errors.New("variable name is required")
)

// Format is the encoding of a workspace document.
type Format string

// Supported formats.
const (
	YAML    Format = "yaml"
	JSON    Format = "json"
	Msgpack Format = "msgpack"
)

// FormatOf returns the format of a document file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".msgpack", ".mpk":
		return Msgpack, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// IsDocument reports whether path has the extension of a workspace document.
func IsDocument(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Decode reads a document in the given format.
func Decode(r io.Reader, f Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch f {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	case Msgpack:
		err = msgpack.NewDecoder(r).Decode(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("load: decode %s: %w", f, err)
	}
	return doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, f Format) error {
	var err error
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case Msgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		err = enc.Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("load: encode %s: %w", f, err)
	}
	return nil
}

// Fingerprint returns a digest of the document contents. Documents that
// decode to the same value share a fingerprint whatever their format.
func (d *Document) Fingerprint() (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d, Msgpack); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// Program is a loaded workspace document.
type Program struct {
	// Path is the file the document was read from.
	Path string
	// Name is the file name without directory and extension.
	Name        string
	Document    *Document
	Workspace   *block.Workspace
	Fingerprint string
}

// Load reads the workspace document at path, picking the decoder from the
// file extension.
func Load(path string) (*Program, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer file.Close()
	doc, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return newProgram(path, doc)
}

// LoadDir loads every workspace document directly inside dir, in file
// name order.
func LoadDir(dir string) ([]*Program, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	var progs []*Program
	for _, e := range entries {
		if e.IsDir() || !IsDocument(e.Name()) {
			continue
		}
		p, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		progs = append(progs, p)
	}
	return progs, nil
}

func newProgram(path string, doc *Document) (*Program, error) {
	ws, err := doc.Workspace()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fp, err := doc.Fingerprint()
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	return &Program{
		Path:        path,
		Name:        strings.TrimSuffix(base, filepath.Ext(base)),
		Document:    doc,
		Workspace:   ws,
		Fingerprint: fp,
	}, nil
}
