package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// legacyKeys maps field names used by older roster exports onto current ones.
var legacyKeys = map[string]string{
	"image_key":    "image",
	"faction":      "magistry",
	"quote":        "philosophy",
	"welcome_tone": "tone",
}

// DefaultDebounce coalesces bursts of filesystem events into one reload signal.
const DefaultDebounce = 150 * time.Millisecond

// FileLoader implements ports.RosterLoader and ports.Watchable over a YAML or JSON file.
type FileLoader struct {
	path     string
	debounce time.Duration
}

// NewFileLoader creates a loader for the roster file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path, debounce: DefaultDebounce}
}

// Path returns the roster file location.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads and decodes the roster file.
func (l *FileLoader) Load(ctx context.Context) ([]domain.Guide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return Parse(data, filepath.Ext(l.path))
}

// Parse decodes roster content. ext selects the format (".json", ".yaml" or ".yml").
// The document is either a list of guides or an object with a "guides" list.
func Parse(data []byte, ext string) ([]domain.Guide, error) {
	var raw any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse roster json: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse roster yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported roster format %q", ext)
	}

	records, err := recordsOf(raw)
	if err != nil {
		return nil, err
	}

	guides := make([]domain.Guide, 0, len(records))
	for i, rec := range records {
		g, err := decodeGuide(rec)
		if err != nil {
			return nil, fmt.Errorf("guide #%d: %w", i, err)
		}
		guides = append(guides, g)
	}
	return guides, nil
}

func recordsOf(raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case map[string]any:
		list, ok := v["guides"].([]any)
		if !ok {
			return nil, fmt.Errorf("roster document has no guides list")
		}
		return list, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected roster document of type %T", raw)
	}
}

func decodeGuide(rec any) (domain.Guide, error) {
	fields, ok := rec.(map[string]any)
	if !ok {
		return domain.Guide{}, fmt.Errorf("expected a mapping, got %T", rec)
	}

	normalized := make(map[string]any, len(fields))
	for k, v := range fields {
		normalized[strings.ToLower(k)] = v
	}
	for legacy, current := range legacyKeys {
		v, ok := normalized[legacy]
		if !ok {
			continue
		}
		if _, set := normalized[current]; !set {
			normalized[current] = v
		}
		delete(normalized, legacy)
	}

	var g domain.Guide
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &g,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return domain.Guide{}, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return domain.Guide{}, fmt.Errorf("failed to decode guide: %w", err)
	}
	if g.ID == "" {
		g.ID = g.Name
	}
	g.Tone = domain.Tone(strings.ToLower(string(g.Tone)))
	return g, nil
}

// Watch signals when the roster file is written, created or replaced.
// The directory is watched so that atomic rename-based saves are observed.
func (l *FileLoader) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start roster watcher: %w", err)
	}
	abs, err := filepath.Abs(l.path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer fsw.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case evt, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(l.debounce)
				} else {
					timer.Reset(l.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return ch, nil
}
