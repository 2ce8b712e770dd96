package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/IanScottMcGuire/bincarousel/controller"
)

func main() {
	var configFile string
	var listPorts bool
	flag.StringVar(&configFile, "config", os.Getenv("CONFIG_FILE"), "YAML config file. Environment variables override its values")
	flag.BoolVar(&listPorts, "list-ports", false, "List serial ports that look like the carousel and exit")
	flag.Parse()

	if listPorts {
		printPorts()
		return
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		panic(err)
	}

	c, err := controller.New(cfg)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	// Ctrl-C e-stops the carousel before leaving
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = c.Run(ctx, os.Stdin, os.Stdout)
	if err != nil {
		panic(err)
	}
}

func loadConfig(path string) (controller.Config, error) {
	if path == "" {
		return controller.NewConfigFromEnv()
	}
	return controller.LoadConfig(path)
}

func printPorts() {
	ports, err := controller.GetSerialPorts()
	if errors.Is(err, controller.ErrNoUSBSerial) {
		fmt.Println("no serial ports found")
		return
	}
	if err != nil {
		panic(err)
	}

	for _, p := range ports {
		fmt.Println(p)
	}
}
