// Package config loads GUI documents and tool settings from YAML.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrNoSource is returned when a request names no document.
	ErrNoSource = errors.New("config: no document source")
	// ErrEmptyDocument is returned for a source without content.
	ErrEmptyDocument = errors.New("config: document is empty")
)

// Loader fetches documents from files, an fs.FS or memory.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOption configures the default loader.
type LoaderOption func(*loader)

// WithFileSystem sets the fs.FS used by SourceFromFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *loader) {
		l.fs = files
	}
}

type loader struct {
	fs fs.FS
}

// NewLoader returns the default Loader.
func NewLoader(options ...LoaderOption) Loader {
	l := &loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func (l *loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, ErrNoSource
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return Document{}, errors.New("config: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	case SourceKindBytes:
		bs, ok := src.(BytesSource)
		if !ok {
			return Document{}, fmt.Errorf("config: unexpected bytes source %T", src)
		}
		data = bs.Data
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("config: load %s: %w", src.Location(), err)
	}
	return NewDocument(src, data)
}
