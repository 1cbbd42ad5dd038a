package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

var (
	serveAddr string
	serveTray bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().BoolVar(&serveTray, "tray", false, "show a system tray icon (macOS)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gesture recognition daemon",
	Long:  "Start the capture pipeline and HTTP server, loading any previously trained gestures.",
	Example: `
  mudra serve
  mudra serve --addr :9090 --config ~/.mudra/config.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		path, err := dbPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		st, err := store.New(path)
		if err != nil {
			return fmt.Errorf("initialize store: %w", err)
		}
		defer st.Close()

		a := app.New(app.Config{
			Store:        st,
			PluginDir:    cfg.PluginDir,
			CameraID:     cfg.CameraID,
			MotionThresh: cfg.MotionThresh,
			Dim:          cfg.Dim,
			NumBins:      cfg.NumBins,
			Threshold:    cfg.Threshold,
			Seed:         cfg.Seed,
		})

		if err := a.LoadRecognizerState(); err != nil {
			log.Printf("Failed to load saved recognizer state: %v", err)
		}
		if err := a.LoadGestures(); err != nil {
			log.Printf("Failed to load saved gestures: %v", err)
		}
		if err := a.DiscoverPlugins(); err != nil {
			log.Printf("Failed to discover plugins: %v", err)
		}

		webDir := findWebDir()
		if webDir != "" {
			fmt.Printf("Serving static files from: %s\n", webDir)
		}

		srv := server.New(server.Config{
			StaticDir:  webDir,
			Store:      st,
			Recognizer: a.Recognizer(),
		})

		a.SetEnabled(true)
		if err := a.Start(); err != nil {
			return fmt.Errorf("start capture pipeline: %w", err)
		}
		defer a.Stop()

		if serveTray {
			return runWithTray(a, srv)
		}

		fmt.Printf("Starting server on %s\n", serveAddr)
		if err := srv.ListenAndServe(serveAddr); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

// runWithTray starts the HTTP server in the background and blocks on the
// system tray's event loop, wiring tray actions to the running App.
func runWithTray(a *app.App, srv *server.Server) error {
	go func() {
		fmt.Printf("Starting server on %s\n", serveAddr)
		if err := srv.ListenAndServe(serveAddr); err != nil {
			log.Printf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(a.Stop)
	t.SetTrainedClassCount(len(a.Recognizer().GetClassNames()))
	a.OnGestureMatched(t.SetLastGesture)

	t.Run()
	return nil
}
