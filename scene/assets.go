package scene

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/scenekit/prefab"
)

// AssetType is a coarse classification guessed from a path's extension
type AssetType int

const (
	AssetUnknown AssetType = iota
	AssetTexture
	AssetSound
	AssetMusic
	AssetPrefab
)

func (t AssetType) String() string {
	switch t {
	case AssetTexture:
		return "texture"
	case AssetSound:
		return "sound"
	case AssetMusic:
		return "music"
	case AssetPrefab:
		return "prefab"
	}
	return "unknown"
}

// AssetRef is one referenced external asset path found in a scene
type AssetRef struct {
	Path string
	Type AssetType
}

// GuessAssetType classifies a path by extension
func GuessAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tga", ".gif":
		return AssetTexture
	case ".wav":
		return AssetSound
	case ".ogg", ".mp3", ".flac":
		return AssetMusic
	case ".prefab":
		return AssetPrefab
	}
	return AssetUnknown
}

// ExtractAssets walks prefab trees and collects the deduplicated
// string-literal values that look like asset paths (they carry a short
// file extension), plus every base-prefab reference
func ExtractAssets(roots []*prefab.Prefab) []AssetRef {
	seen := make(map[string]bool)
	var refs []AssetRef

	add := func(path string, typ AssetType) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		refs = append(refs, AssetRef{Path: path, Type: typ})
	}

	for _, root := range roots {
		root.Walk(func(node *prefab.Prefab) {
			if node.Base != "" {
				add(node.Base, AssetPrefab)
			}
			for i := range node.Components {
				for _, fa := range node.Components[i].Fields {
					if fa.Value.Kind != prefab.ValueString {
						continue
					}
					if looksLikeAssetPath(fa.Value.Str) {
						add(fa.Value.Str, GuessAssetType(fa.Value.Str))
					}
				}
			}
		})
	}
	return refs
}

// looksLikeAssetPath requires a short alphanumeric file extension
func looksLikeAssetPath(s string) bool {
	ext := filepath.Ext(s)
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// preloadParallelism bounds concurrent asset reads during Preload
const preloadParallelism = 8

// Preload reads every referenced asset under baseDir up front,
// returning the loaded bytes keyed by asset path. Missing files fail
// the whole preload; scenes that tolerate absent assets should skip
// preloading instead.
func Preload(ctx context.Context, s *Scene, baseDir string) (map[string][]byte, error) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(preloadParallelism)

	loaded := make([][]byte, len(s.assets))
	for i, ref := range s.assets {
		i, ref := i, ref
		g.Go(func() error {
			data, err := os.ReadFile(filepath.Join(baseDir, ref.Path))
			if err != nil {
				return err
			}
			loaded[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(s.assets))
	for i, ref := range s.assets {
		out[ref.Path] = loaded[i]
	}
	return out, nil
}
