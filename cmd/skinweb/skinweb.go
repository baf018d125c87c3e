// Command skinweb serves the skin picker and asset inspection pages for a
// content directory.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"badc0de.net/pkg/go-skinmod"
	"badc0de.net/pkg/go-skinmod/overlay"
	"badc0de.net/pkg/go-skinmod/paths"
	"badc0de.net/pkg/go-skinmod/web"

	figure "github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for skinweb")
	settingsPath  = flag.String("settings_path", "skinmod.yaml", "where the selected skin is saved; empty keeps it in memory")
	accessLog     = flag.Bool("access_log", true, "whether to log requests to stderr")

	contentDir string
)

func newModule() (*skinmod.Module, error) {
	dirs, err := paths.Dirs(contentDir)
	if err != nil {
		return nil, err
	}
	gameplay, err := paths.LoadAtlas("Gameplay", dirs)
	if err != nil {
		return nil, err
	}
	portraitTextures, err := paths.LoadAtlas("Portraits", dirs)
	if err != nil {
		return nil, err
	}
	grades, err := paths.LoadAtlas("ColorGrading", dirs)
	if err != nil {
		return nil, err
	}
	spritesBank, err := paths.LoadBank("Sprites", gameplay, contentDir)
	if err != nil {
		return nil, err
	}
	portraits, err := paths.LoadBank("Portraits", portraitTextures, contentDir)
	if err != nil {
		return nil, err
	}

	m, err := skinmod.New(skinmod.Config{
		SettingsPath:     *settingsPath,
		Banks:            overlay.Banks{Sprites: spritesBank, Portraits: portraits},
		Gameplay:         gameplay,
		PortraitTextures: portraitTextures,
		ColorGrades:      grades,
	})
	if err != nil {
		return nil, err
	}
	sources, err := paths.Sources(contentDir)
	if err != nil {
		return nil, err
	}
	if err := m.LoadContent(sources); err != nil {
		return nil, err
	}
	m.Merge()
	return m, nil
}

func main() {
	paths.SetupDirFlag("Content", "content_dir", &contentDir)
	flagutil.Parse()

	figure.NewFigure("skinweb", "", true).Print()

	m, err := newModule()
	if err != nil {
		glog.Exitf("skinweb: %v", err)
	}

	r := mux.NewRouter()
	web.NewHandler(m, m.Redirector.Gameplay).RegisterRoutes(r)
	// x/net/trace registers /debug/requests and /debug/events here.
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)

	var h http.Handler = handlers.CompressHandler(r)
	if *accessLog {
		h = handlers.CombinedLoggingHandler(os.Stderr, h)
	}
	glog.Infof("skinweb: listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
