// Package paths locates the content directory and the mod directories inside
// it.
package paths

import (
	"os"
	"path/filepath"
	"sort"

	"badc0de.net/pkg/go-skinmod/atlas"
	"badc0de.net/pkg/go-skinmod/skins"
	"badc0de.net/pkg/go-skinmod/sprites"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// EnvContentDir names the environment variable that overrides the content
// directory search.
const EnvContentDir = "SKINMOD_CONTENT"

// ModsDir is the directory under the content directory holding one
// directory per mod.
const ModsDir = "Mods"

func possibleDirs(dirName string) []string {
	var dirs []string
	if env := os.Getenv(EnvContentDir); env != "" {
		dirs = append(dirs, env)
	}
	dirs = append(dirs, dirName)
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), dirName))
	}
	return dirs
}

// Find locates the named content directory and returns its path, or an empty
// string if none was found.
//
// For example, for "Content" it may return "/opt/game/Content".
func Find(dirName string) string {
	for _, dir := range possibleDirs(dirName) {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			glog.Infof("paths.Find(%q)=%s", dirName, dir)
			return dir
		}
	}
	glog.V(1).Infof("paths.Find(%q): not found", dirName)
	return ""
}

// ModDirs returns the directories under contentDir/Mods in lexical order. A
// content directory without mods has none.
func ModDirs(contentDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(contentDir, ModsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "listing mods in %q", contentDir)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(contentDir, ModsDir, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Dirs returns the content directories of contentDir: the directory itself,
// then each mod directory.
func Dirs(contentDir string) ([]string, error) {
	if contentDir == "" {
		return nil, errors.New("no content directory")
	}
	if fi, err := os.Stat(contentDir); err != nil {
		return nil, errors.Wrap(err, "content directory")
	} else if !fi.IsDir() {
		return nil, errors.Errorf("content directory %q is not a directory", contentDir)
	}
	mods, err := ModDirs(contentDir)
	if err != nil {
		return nil, err
	}
	return append([]string{contentDir}, mods...), nil
}

// Sources returns a content source for each of Dirs(contentDir).
func Sources(contentDir string) ([]skins.Source, error) {
	dirs, err := Dirs(contentDir)
	if err != nil {
		return nil, err
	}
	var sources []skins.Source
	for _, d := range dirs {
		sources = append(sources, skins.DirSource(d))
	}
	glog.V(1).Infof("paths: %d content sources under %s", len(sources), contentDir)
	return sources, nil
}

// AtlasesDir is where atlases live inside a content directory, one
// directory per atlas.
const AtlasesDir = "Graphics/Atlases"

// LoadAtlas loads the atlas name from every one of dirs. Textures of earlier
// directories are replaced by later ones with the same path.
func LoadAtlas(name string, dirs []string) (*atlas.Atlas, error) {
	a := atlas.New(name)
	for _, d := range dirs {
		if err := a.AddFS(os.DirFS(d), AtlasesDir+"/"+name); err != nil {
			return nil, errors.Wrapf(err, "loading atlas %s from %q", name, d)
		}
	}
	glog.Infof("paths: atlas %s has %d textures", name, a.Len())
	return a, nil
}

// LoadBank builds the base bank name from contentDir/Graphics/<name>.xml on
// store. A missing description yields an empty bank.
func LoadBank(name string, store atlas.Store, contentDir string) (*sprites.Bank, error) {
	p := filepath.Join(contentDir, "Graphics", name+".xml")
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			glog.Warningf("paths: no %s, %s bank is empty", p, name)
			return sprites.NewBank(name, store), nil
		}
		return nil, errors.Wrapf(err, "opening %s bank", name)
	}
	defer f.Close()
	b, err := sprites.Build(name, store, f)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s bank from %q", name, p)
	}
	glog.Infof("paths: %s bank has %d sprites", name, b.Len())
	return b, nil
}
