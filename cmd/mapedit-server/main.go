package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mapedit/internal/catalog"
	"mapedit/internal/config"
	"mapedit/internal/geom"
	"mapedit/internal/logging"
	"mapedit/internal/maploader"
	"mapedit/internal/mapstate"
	"mapedit/internal/session"
	"mapedit/internal/statusapi"
)

// version is the build-time version string; overridden via -ldflags in
// release builds.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{Use: "mapedit-server"}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the map-editing session server",
		Run: func(cmd *cobra.Command, args []string) {
			listenAddr, _ := cmd.Flags().GetString("listen")
			statusAddr, _ := cmd.Flags().GetString("status-addr")
			envFile, _ := cmd.Flags().GetString("env-file")
			loadPath, _ := cmd.Flags().GetString("load")

			cfg := config.Load(envFile)
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}
			if statusAddr != "" {
				cfg.StatusAddr = statusAddr
			}

			log := logging.New(cfg.LogLevel)
			if err := runServe(cfg, log, loadPath); err != nil {
				log.WithError(err).Fatal("server exited")
			}
		},
	}
	cmd.Flags().String("listen", "", "TCP address the session listener binds to (overrides config/env)")
	cmd.Flags().String("status-addr", "", "address the read-only status HTTP surface binds to (overrides config/env)")
	cmd.Flags().String("env-file", "", "optional .env file to load before reading environment overrides")
	cmd.Flags().String("load", "", "optional map archive to pre-load before accepting connections")
	return cmd
}

// descriptorIsArchetypeName treats an embedded block's descriptor bytes
// as the literal name of the archetype it imitates, since parsing the
// real binary descriptor format is out of scope here.
func descriptorIsArchetypeName(raw []byte) (string, error) {
	return string(raw), nil
}

func runServe(cfg config.Config, log *logrus.Logger, loadPath string) error {
	size := cfg.GridSize
	if size == (geom.Vec3U8{}) {
		size = geom.Vec3U8{X: 48, Y: 40, Z: 48}
	}

	m := mapstate.New(size, catalog.MustLoad())

	if loadPath != "" {
		parsed, err := maploader.OpenArchive(loadPath)
		if err != nil {
			return fmt.Errorf("opening map archive %q: %w", loadPath, err)
		}
		if err := maploader.Load(m, parsed, descriptorIsArchetypeName); err != nil {
			return fmt.Errorf("loading map archive %q: %w", loadPath, err)
		}
		log.WithField("path", loadPath).Info("pre-loaded map archive")
	}

	sess := session.New(m, log)

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("binding session listener: %w", err)
	}
	log.WithField("addr", ln.Addr().String()).Info("session listener started")

	if cfg.StatusAddr != "" {
		status := statusapi.New(sess, log)
		go func() {
			log.WithField("addr", cfg.StatusAddr).Info("status HTTP surface started")
			if err := http.ListenAndServe(cfg.StatusAddr, status.Router()); err != nil {
				log.WithError(err).Error("status HTTP surface exited")
			}
		}()
	}

	return sess.Serve(ln)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
