package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"zoia/internal/check"
	"zoia/internal/diag"
	"zoia/internal/project"
	"zoia/internal/source"
	"zoia/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки файлов на диске, ключ - CacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash project.Digest
	Canonical   string

	// Spans are stored with the file ID of the run that produced them and
	// rebased on load.
	Diagnostics []diag.Diagnostic
	Check       check.Result
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey identifies a check result: file content, manifest and tool version.
func CacheKey(file *source.File, manifest *project.Manifest) project.Digest {
	var manifestHash project.Digest
	if manifest != nil {
		manifestHash = manifest.Hash
	}
	return project.Combine(project.Digest(file.Hash), manifestHash, project.HashString(version.Version))
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "files" - по два первых символа, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(tmp)
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. A payload written
// by another schema version is reported as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, чтобы параллельные читатели не увидели полуудалённое состояние
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func newPayload(res *CheckResult, diags []diag.Diagnostic) *DiskPayload {
	return &DiskPayload{
		Path:        res.File.Path,
		ContentHash: project.Digest(res.File.Hash),
		Canonical:   res.Canonical,
		Diagnostics: diags,
		Check:       res.Check,
	}
}

// restore fills res from payload, rebasing spans onto res.File.
func (p *DiskPayload) restore(res *CheckResult, bag *diag.Bag) {
	id := res.File.ID
	for _, d := range p.Diagnostics {
		d.Primary.File = id
		for i := range d.Notes {
			d.Notes[i].Span.File = id
		}
		for i := range d.Fixes {
			for j := range d.Fixes[i].Edits {
				d.Fixes[i].Edits[j].Span.File = id
			}
		}
		bag.Add(d)
	}
	res.Canonical = p.Canonical
	res.Check = p.Check
	for i := range res.Check.Header {
		res.Check.Header[i].Pos.File = res.File.Path
	}
	for i := range res.Check.Values {
		res.Check.Values[i].Pos.File = res.File.Path
	}
	for _, e := range res.Check.Errors {
		e.File = res.File.Path
	}
}
