package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinPrefix selects a sprite compiled into the binary.
const BuiltinPrefix = "builtin:"

// maxFetchSize bounds remote and local asset reads.
const maxFetchSize = 4 << 20

var ErrUnknownBuiltin = errors.New("unknown builtin sprite")

// Loader resolves sprite sources in the background.
//
// Supported sources:
//   - builtin:<name>   sprite sheets embedded in the binary
//   - http(s)://...    fetched with a per-request timeout
//   - anything else    a local file path
//
// Each failure is logged once and leaves the cell Failed for good.
type Loader struct {
	logger  *log.Logger
	client  *http.Client
	timeout time.Duration
	wg      sync.WaitGroup
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for load failures.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout sets the per-asset timeout for remote sources.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// NewLoader creates a loader. Without options it logs nowhere.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger:  log.New(io.Discard),
		client:  http.DefaultClient,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns a Pending cell immediately and resolves it in the background.
// An empty source yields a Failed cell without logging.
func (l *Loader) Load(name, src string) *Cell {
	cell := NewCell(name)
	if strings.TrimSpace(src) == "" {
		cell.Fail()
		return cell
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		sp, err := l.fetchSprite(src)
		if err != nil {
			l.logger.Warn("asset load failed", "asset", name, "source", src, "error", err)
			cell.Fail()
			return
		}
		cell.Resolve(sp)
		l.logger.Debug("asset loaded", "asset", name, "w", sp.Width, "h", sp.Height)
	}()
	return cell
}

// Wait blocks until every load started so far has resolved.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) fetchSprite(src string) (*Sprite, error) {
	data, err := l.fetch(src)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *Loader) fetch(src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, BuiltinPrefix):
		return readBuiltin(strings.TrimPrefix(src, BuiltinPrefix))
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()
		return l.fetchHTTP(ctx, src)
	default:
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("assets: open %s: %w", src, err)
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxFetchSize))
	}
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assets: fetch %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", url, err)
	}
	return data, nil
}

func readBuiltin(name string) ([]byte, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("assets: %q: %w", name, ErrUnknownBuiltin)
	}
	return data, nil
}

// Builtins returns the names of the embedded sprites.
func Builtins() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}
