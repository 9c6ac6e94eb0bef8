package resty

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// DefaultIndexURL is the package index queried for latest versions.
const DefaultIndexURL = "https://pypi.org/pypi"

// Update compares an installed package with the index.
type Update struct {
	Package   string `json:"package"`
	Installed string `json:"installed"`
	Latest    string `json:"latest"`
}

// Outdated reports whether a newer version is published.
func (u Update) Outdated() bool {
	return u.Installed != "" && u.Latest != "" && CompareVersions(u.Installed, u.Latest) < 0
}

// UpdateChecker looks up the latest published versions. Results are cached
// on disk for ttl.
type UpdateChecker struct {
	client    *resty.Client
	indexURL  string
	cachePath string
	ttl       time.Duration
	now       func() time.Time
	logger    hclog.Logger
}

// NewUpdateChecker creates a checker caching results in dataDir.
func NewUpdateChecker(client *resty.Client, indexURL, dataDir string, ttl time.Duration, logger hclog.Logger) *UpdateChecker {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &UpdateChecker{
		client:    client,
		indexURL:  strings.TrimRight(indexURL, "/"),
		cachePath: filepath.Join(dataDir, "update_check.json"),
		ttl:       ttl,
		now:       time.Now,
		logger:    logger.Named("update"),
	}
}

// SetClock overrides the time source.
func (c *UpdateChecker) SetClock(now func() time.Time) {
	c.now = now
}

type updateCache struct {
	CheckedAt time.Time         `json:"checked_at"`
	Latest    map[string]string `json:"latest"`
}

// Check returns an Update per installed package, sorted by name. Packages
// missing from a fresh cache are fetched concurrently.
func (c *UpdateChecker) Check(ctx context.Context, installed map[string]string) ([]Update, error) {
	cache := c.readCache()
	latest := make(map[string]string, len(installed))
	var missing []string
	for pkg := range installed {
		if v, ok := cache.Latest[pkg]; ok && c.now().Sub(cache.CheckedAt) < c.ttl {
			latest[pkg] = v
			continue
		}
		missing = append(missing, pkg)
	}

	if len(missing) > 0 {
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, pkg := range missing {
			g.Go(func() error {
				v, err := c.Latest(gctx, pkg)
				if err != nil {
					return err
				}
				mu.Lock()
				latest[pkg] = v
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		c.writeCache(updateCache{CheckedAt: c.now(), Latest: latest})
	}

	updates := make([]Update, 0, len(installed))
	for pkg, v := range installed {
		updates = append(updates, Update{Package: pkg, Installed: v, Latest: latest[pkg]})
	}
	slices.SortFunc(updates, func(a, b Update) int { return cmp.Compare(a.Package, b.Package) })
	return updates, nil
}

type pypiProject struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// Latest fetches the newest published version of pkg.
func (c *UpdateChecker) Latest(ctx context.Context, pkg string) (string, error) {
	var project pypiProject
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&project).
		ForceContentType("application/json").
		SetPathParam("package", pkg).
		Get(c.indexURL + "/{package}/json")
	if err != nil {
		return "", fmt.Errorf("query %s: %w", pkg, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("query %s: index responded %s", pkg, resp.Status())
	}
	if project.Info.Version == "" {
		return "", fmt.Errorf("query %s: no version in response", pkg)
	}
	return project.Info.Version, nil
}

func (c *UpdateChecker) readCache() updateCache {
	var cache updateCache
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("cannot read update cache", "error", err)
		}
		return cache
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		c.logger.Warn("ignoring corrupt update cache", "error", err)
		return updateCache{}
	}
	return cache
}

func (c *UpdateChecker) writeCache(cache updateCache) {
	data, err := json.Marshal(cache)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(c.cachePath), 0o755)
	}
	if err == nil {
		err = os.WriteFile(c.cachePath, data, 0o644)
	}
	if err != nil {
		c.logger.Warn("cannot write update cache", "error", err)
	}
}

var releasePrefix = regexp.MustCompile(`^\d+(\.\d+)*`)

// CompareVersions orders two PEP 440 style versions by their numeric
// release segments. Pre-release suffixes such as "rc1" or ".dev0" sort
// before the plain release and ".post" suffixes after it.
func CompareVersions(a, b string) int {
	ra, sa := splitVersion(a)
	rb, sb := splitVersion(b)
	for i := range max(len(ra), len(rb)) {
		if c := cmp.Compare(segment(ra, i), segment(rb, i)); c != 0 {
			return c
		}
	}
	return cmp.Or(cmp.Compare(suffixRank(sa), suffixRank(sb)), strings.Compare(sa, sb))
}

func suffixRank(s string) int {
	switch {
	case s == "":
		return 1
	case strings.HasPrefix(s, "post"):
		return 2
	default:
		return 0
	}
}

func splitVersion(v string) ([]int, string) {
	v = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(v)), "v")
	release := releasePrefix.FindString(v)
	var nums []int
	if release != "" {
		for _, part := range strings.Split(release, ".") {
			n, _ := strconv.Atoi(part)
			nums = append(nums, n)
		}
	}
	return nums, strings.TrimLeft(v[len(release):], ".-_")
}

func segment(nums []int, i int) int {
	if i < len(nums) {
		return nums[i]
	}
	return 0
}
