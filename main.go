package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mariq/rgbctl/internal/daemon"
	"github.com/mariq/rgbctl/internal/engine"
	"github.com/mariq/rgbctl/internal/lights"
	"github.com/mariq/rgbctl/internal/lights/openrgb"
	"github.com/mariq/rgbctl/internal/logging"
)

var (
	logger = logging.New("main")
	config = RGBConfig{}
)

type RGBConfig struct {
	OpenRGBHost     string        `env:"OPENRGB_HOST" envDefault:"localhost"`
	OpenRGBPort     int           `env:"OPENRGB_PORT" envDefault:"6742"`
	InputDevicePath string        `env:"INPUT_DEVICE_PATH" envDefault:"/dev/input/event9"`
	GridWidth       int           `env:"GRID_WIDTH" envDefault:"22"`
	GridHeight      int           `env:"GRID_HEIGHT" envDefault:"6"`
	TickInterval    time.Duration `env:"TICK_INTERVAL" envDefault:"30ms"`
}

func main() {
	defer logger.Sync()

	_ = godotenv.Load()
	err := env.Parse(&config)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to parse environment variables")
	}

	logger.With(zap.Any("config", config)).Info("Starting rgbctl")
	logger.Info("Adjust INPUT_DEVICE_PATH to your keyboard's event device (see /proc/bus/input/devices).")
	logger.Info("Adjust OPENRGB_HOST / OPENRGB_PORT if the OpenRGB SDK server is not local.")
	logger.Info("Adjust GRID_WIDTH and GRID_HEIGHT to match the keyboard's LED matrix.")
	logger.Info("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(context.Background())

	client, err := openrgb.Connect(config.OpenRGBHost, config.OpenRGBPort)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to connect to OpenRGB SDK server")
	}

	devices, err := client.Devices()
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to enumerate OpenRGB devices")
	}

	groups := lights.GroupByName(devices)
	logger.With(
		zap.Int("keyboards", len(groups.Keyboards)),
		zap.Int("mice", len(groups.Mice)),
		zap.Int("ram", len(groups.RAM)),
		zap.Int("fans", len(groups.Fans))).
		Info("Device inventory")

	state := engine.New(config.GridWidth, config.GridHeight)

	go func() {
		f, err := os.Open(config.InputDevicePath)
		if err != nil {
			logger.With(zap.Error(err), zap.String("path", config.InputDevicePath)).
				Warn("Could not open input device; running ambient animation only")
			return
		}
		defer f.Close()
		daemon.RunInput(ctx, f, state)
	}()

	go daemon.Run(ctx, daemon.Config{TickInterval: config.TickInterval}, state, groups)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown
	logger.Info("Shutting down")
	cancel()
}
