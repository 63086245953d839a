package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tacusci/logging/v2"
	"github.com/takama/daemon"
	"github.com/tauraamui/videowall/pkg/config"
	"github.com/tauraamui/videowall/pkg/configdef"
	"github.com/tauraamui/videowall/pkg/log"
	"github.com/tauraamui/videowall/pkg/resample"
	"github.com/tauraamui/videowall/pkg/resample/cvscaler"
	"github.com/tauraamui/videowall/pkg/streamer"
	"github.com/tauraamui/videowall/pkg/wall"
)

const (
	name        = "videowall"
	description = "Video wall daemon which streams rendered frames to LED wall controllers over UDP"
)

type Service struct {
	daemon.Daemon
}

// Setup writes the default config file
func (service *Service) Setup() (string, error) {
	log.Info("Setting up videowall service...")

	err := config.DefaultCreator().Create()
	if err != nil {
		if !errors.Is(err, configdef.ErrConfigAlreadyExists) {
			return "", err
		}
		log.Error("%v", err)
	}

	return "Setup successful...", nil
}

func (service *Service) RemoveSetup() (string, error) {
	log.Info("Removing setup for videowall service...")
	err := config.DefaultDestroyer().Destroy()
	if err != nil {
		log.Error("unable to delete config file: %s", err.Error())
	}

	return "Removing setup successful...", nil
}

func (service *Service) Manage() (string, error) {
	usage := fmt.Sprintf("videowalld %s\nUsage: videowalld setup | remove-setup | install | remove | start | stop | status | version", wall.Version)

	if len(os.Args) > 1 {
		command := os.Args[1]
		switch command {
		case "setup":
			return service.Setup()
		case "remove-setup":
			return service.RemoveSetup()
		case "install":
			return service.Install()
		case "remove":
			return service.Remove()
		case "start":
			return service.Start()
		case "stop":
			return service.Stop()
		case "status":
			return service.Status()
		case "version":
			return wall.Version, nil
		default:
			return usage, nil
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	log.Info("Starting videowall daemon %s...", wall.Version)

	server, err := streamer.NewServer(config.DefaultResolver(), resolveScaler)
	if err != nil {
		log.Fatal("%v", err)
	}

	ctx, cancelStartup := context.WithCancel(context.Background())
	go startupServer(ctx, server)

	killSignal := <-interrupt
	fmt.Print("\r")
	log.Error("Received signal: %s", killSignal)

	cancelStartup()
	log.Info("Shutting down server...")
	<-server.Shutdown()

	for title, stats := range server.Stats() {
		log.Info("Wall [%s] sent %d frames (%d bytes), dropped %d", title, stats.FramesSent, stats.BytesSent, stats.FramesDropped)
	}

	return "Shutdown successful... BYE! 👋", nil
}

func resolveScaler(name string) resample.Scaler {
	if name == "opencv" {
		return cvscaler.New()
	}
	return resample.Resolve(name)
}

func startupServer(ctx context.Context, server *streamer.Server) {
	connectToWalls(ctx, server)
	server.SetupProcesses()
	server.RunProcesses()
}

func connectToWalls(ctx context.Context, server *streamer.Server) {
	errs := server.ConnectWithCancel(ctx)
	for _, err := range errs {
		log.Error("%v", err)
	}
}

func init() {
	log.SetLevel(os.Getenv("VIDEOWALL_LOGGING_LEVEL"))
}

func main() {
	daemonType := daemon.SystemDaemon
	if runtime.GOOS == "darwin" {
		daemonType = daemon.UserAgent
	}

	srv, err := daemon.New(name, description, daemonType)
	if err != nil {
		logging.Error("%v", err) //nolint
		os.Exit(1)
	}

	service := &Service{srv}
	status, err := service.Manage()
	if err != nil {
		logging.Error("%v", err) //nolint
		os.Exit(1)
	}

	logging.Info("%s", status) //nolint
}
