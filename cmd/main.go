// SwiftScroll - smooth scrolling for the mouse wheel
// Intercepts raw wheel notches and replays them as eased, momentum-blended
// synthetic scroll events toward the window under the cursor.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"swiftscroll/internal/api"
	"swiftscroll/internal/autostart"
	"swiftscroll/internal/config"
	"swiftscroll/internal/engine"
	"swiftscroll/internal/hook"
	"swiftscroll/internal/hotkey"
	"swiftscroll/internal/inject"
	"swiftscroll/internal/scroller"
	"swiftscroll/internal/target"
	"swiftscroll/internal/tray"
)

var (
	version      = "1.0.2"
	showVer      = flag.Bool("version", false, "Show version")
	showSettings = flag.Bool("settings", false, "Print the settings file path")
	setEnabled   = flag.String("enabled", "", "Set the master switch (true|false) and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("swiftscroll version %s\n", version)
		return
	}

	cfgMgr, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		log.Printf("Warning: failed to load settings: %v", err)
	}

	if *showSettings {
		fmt.Println(cfgMgr.Path())
		return
	}

	if *setEnabled != "" {
		handleSetEnabled(cfgMgr, *setEnabled)
		return
	}

	runService(cfgMgr)
}

func handleSetEnabled(cfgMgr *config.Manager, state string) {
	if state != "true" && state != "false" {
		log.Fatalf("Invalid -enabled value %q, want true or false", state)
	}
	cfgMgr.Update(func(s *config.Settings) {
		s.Enabled = state == "true"
	})
	if err := cfgMgr.Save(); err != nil {
		log.Fatalf("Failed to save settings: %v", err)
	}
	fmt.Printf("Smooth scrolling enabled: %s\n", state)
}

func runService(cfgMgr *config.Manager) {
	log.Printf("SwiftScroll %s starting...", version)

	cfg := cfgMgr.Get()

	eng := engine.New(inject.NewInjector(), cfg.ScrollParams)
	hk := hook.New()
	sc := scroller.New(cfgMgr, hk, eng, target.NewResolver())
	hk.OnWheel = sc.HandleWheel
	hk.OnHWheel = sc.HandleHWheel

	apiServer := api.NewServer(cfgMgr, sc)

	var trayRef *tray.Tray
	cfgMgr.RegisterChangeCallback(func() {
		sc.OnSettingsChanged()
		s := cfgMgr.Get()
		autostart.Sync(s.StartOnBoot)
		if trayRef != nil {
			trayRef.SetEnabled(s.Enabled)
		}
		apiServer.BroadcastSettings()
	})

	if err := sc.Start(); err != nil {
		log.Printf("Warning: scroller failed to start: %v", err)
	}

	toggle := hotkey.NewListener(func() {
		on := sc.Toggle()
		log.Printf("Hotkey: smooth scrolling enabled=%v", on)
	})
	if err := toggle.Start(); err != nil {
		log.Printf("Warning: toggle hotkey unavailable: %v", err)
	}

	autostart.Sync(cfg.StartOnBoot)

	stopWatch, err := cfgMgr.Watch()
	if err != nil {
		log.Printf("Warning: settings watcher unavailable: %v", err)
		stopWatch = func() {}
	}

	go func() {
		if err := apiServer.Start(cfg.UIPort); err != nil {
			log.Printf("Settings server error: %v", err)
		}
	}()

	presetNames := make([]string, len(config.Presets))
	for i, p := range config.Presets {
		presetNames[i] = p.Name
	}

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			log.Printf("SwiftScroll shutting down...")
			sc.Stop()
			toggle.Stop()
			stopWatch()
		})
	}

	tr := tray.New(tray.Options{
		Tooltip: "SwiftScroll - smooth mouse wheel scrolling",
		Presets: presetNames,
		Enabled: sc.Enabled,
		OnToggleEnabled: func() {
			sc.Toggle()
		},
		OnPreset: func(name string) {
			p, ok := config.FindPreset(name)
			if !ok {
				return
			}
			log.Printf("Tray: applying preset %q", name)
			cfgMgr.Update(func(s *config.Settings) {
				s.ScrollParams = p.Params
			})
			if err := cfgMgr.Save(); err != nil {
				log.Printf("Warning: %v", err)
			}
		},
		OnOpenSettings: func() {
			openBrowser(fmt.Sprintf("http://127.0.0.1:%d", cfgMgr.Get().UIPort))
		},
		OnQuit: shutdown,
	})
	trayRef = tr

	// Ctrl+C and service stop tear down hook, engine, tray in order
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		shutdown()
		tr.Stop()
	}()

	// Blocks until Quit
	tr.Run()
	shutdown()
}

// openBrowser opens the settings page in the default browser
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Warning: failed to open browser: %v", err)
	}
}
