// Command driftwm boots the window-manager core: animator, compositor
// state, workspace manager, scratchpad, command controller, and the
// i3-compatible IPC socket. Wiring a real display-server runtime behind
// displayserver.WindowController, and calling command.Controller's
// HandleWindowCreated/HandleWindowClosed/HandleOutputInfo as that runtime
// reports them, is left to the runtime-specific backend; this entrypoint
// wires the core against a no-op controller and a single bootstrap output
// so the process is a complete, runnable skeleton.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shardwm/shardwm/animation"
	"github.com/shardwm/shardwm/command"
	"github.com/shardwm/shardwm/config"
	"github.com/shardwm/shardwm/displayserver"
	"github.com/shardwm/shardwm/ipc"
	"github.com/shardwm/shardwm/wm"
)

const shutdownTimeout = 5 * time.Second

// noopController discards every display-server call; stands in until a
// real runtime backend is wired behind displayserver.WindowController.
type noopController struct{}

func (noopController) AssignGeometry(displayserver.WindowID, displayserver.Rect) error { return nil }
func (noopController) SetWindowState(displayserver.WindowID, displayserver.WindowState) error {
	return nil
}
func (noopController) SetDepthLayer(displayserver.WindowID, displayserver.DepthLayer) error {
	return nil
}
func (noopController) SetClip(displayserver.WindowID, displayserver.Rect, bool) error { return nil }
func (noopController) Raise(displayserver.WindowID) error                            { return nil }
func (noopController) SendToBack(displayserver.WindowID) error                       { return nil }
func (noopController) SelectActive(displayserver.WindowID) error                     { return nil }
func (noopController) RequestClose(displayserver.WindowID) error                     { return nil }
func (noopController) MoveCursor(int, int) error                                     { return nil }

func main() {
	socketPath := flag.String("socket", defaultSocketPath(), "path for the IPC unix socket")
	flag.Parse()

	cfg := config.Default()
	anim := animation.New()
	cs := wm.NewCompositorState(anim, cfg)
	wsm := wm.NewWorkspaceManager(cs, cfg)
	scratch := wm.NewScratchpad()

	var winCtrl displayserver.WindowController = noopController{}
	ctrl := command.New(cs, wsm, scratch, winCtrl, cfg)

	// A real backend reports its outputs (and subsequent window
	// create/close events) through these same Handle* entry points as they
	// arrive; this bootstrap output stands in until one is wired, so the
	// core has somewhere to place a window.
	ctrl.HandleOutputInfo(displayserver.OutputInfo{
		Name: "bootstrap-0",
		ID:   0,
		Area: displayserver.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
	})

	executor := ipc.NewExecutor(ctrl)
	server := ipc.NewServer(*socketPath, executor, func() interface{} {
		return ctrl.GetTree()
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl.OnQuit(stop)

	anim.Start(ctx)
	if err := server.Start(); err != nil {
		log.Fatalf("driftwm: ipc socket %s: %v", *socketPath, err)
	}

	log.Printf("driftwm: listening on %s", *socketPath)
	<-ctx.Done()

	log.Printf("driftwm: shutting down")
	if err := anim.Stop(); err != nil {
		log.Printf("driftwm: animator stop: %v", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("driftwm: ipc server stop: %v", err)
	}
}

func defaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return fmt.Sprintf("%s/driftwm-%d.sock", dir, os.Getpid())
}
