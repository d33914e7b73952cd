// Command clearloop opens a window and clears it to a fixed color every
// frame until the window is closed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/clearloop"
	"github.com/gogpu/clearloop/config"
	"github.com/gogpu/clearloop/driver"
	"github.com/gogpu/clearloop/platform/glfw"
)

func main() {
	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := clearloop.InitLogger(os.Stderr, cfg.LogSpec()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		clearloop.Logger().Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	opts, err := cfg.DriverOptions()
	if err != nil {
		return err
	}

	host, err := glfw.NewHost(glfw.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	if err != nil {
		return err
	}
	defer host.Close()

	d := driver.New(opts)
	defer func() {
		if err := d.Close(); err != nil {
			clearloop.Logger().Warn("release graphics resources", "error", err)
		}
	}()

	return host.Run(d)
}
